package domain

import (
	"errors"
	"testing"
)

const today DayKey = "2024-01-03"

func mustAdd(t *testing.T, log *HabitLog, name string) *Habit {
	t.Helper()
	h, err := log.AddHabit(name, today)
	if err != nil {
		t.Fatalf("AddHabit(%q) error = %v", name, err)
	}
	return h
}

func TestHabitLog_AddHabit(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"trimmed name", "  Read  ", nil},
		{"empty name", "", ErrEmptyName},
		{"whitespace only", "   ", ErrEmptyName},
		{"duplicate differing in case", "yoga", ErrDuplicateName},
		{"duplicate with padding", " YOGA ", ErrDuplicateName},
	}

	log := NewHabitLog()
	mustAdd(t, log, "Yoga")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := len(log.Habits)
			h, err := log.AddHabit(tt.input, today)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("AddHabit(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				if len(log.Habits) != before {
					t.Errorf("AddHabit(%q) changed the log on error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("AddHabit(%q) unexpected error = %v", tt.input, err)
			}
			if h.Name != "Read" {
				t.Errorf("AddHabit() name = %q, want trimmed", h.Name)
			}
			if h.ID == "" || h.Completion == nil {
				t.Error("AddHabit() should assign an id and an empty completion map")
			}
		})
	}
}

func TestHabitLog_AddHabit_PreservesOrder(t *testing.T) {
	log := NewHabitLog()
	mustAdd(t, log, "A")
	mustAdd(t, log, "B")
	mustAdd(t, log, "C")

	names := log.HabitNames()
	if len(names) != 3 || names[0] != "A" || names[1] != "B" || names[2] != "C" {
		t.Errorf("HabitNames() = %v", names)
	}
}

func TestHabitLog_RemoveHabit(t *testing.T) {
	log := NewHabitLog()
	a := mustAdd(t, log, "A")
	mustAdd(t, log, "B")

	if err := log.RemoveHabit("missing", today); !errors.Is(err, ErrHabitNotFound) {
		t.Errorf("RemoveHabit(missing) error = %v, want ErrHabitNotFound", err)
	}
	if err := log.RemoveHabit(a.ID, today); err != nil {
		t.Fatalf("RemoveHabit() error = %v", err)
	}
	if len(log.Habits) != 1 || log.Habits[0].Name != "B" {
		t.Errorf("RemoveHabit() left %v", log.HabitNames())
	}
}

func TestHabitLog_RemoveHabit_CanCompleteToday(t *testing.T) {
	log := NewHabitLog()
	a := mustAdd(t, log, "A")
	b := mustAdd(t, log, "B")
	if _, err := log.ToggleHabit(a.ID, today, today); err != nil {
		t.Fatal(err)
	}
	if log.PerfectDays != 0 {
		t.Fatalf("PerfectDays = %d before removal", log.PerfectDays)
	}

	if err := log.RemoveHabit(b.ID, today); err != nil {
		t.Fatal(err)
	}
	if log.PerfectDays != 1 || log.Streak != 1 || log.LastPerfectDate != today {
		t.Errorf("removing the only unfinished habit should make today perfect: %+v", log)
	}
}

func TestHabitLog_ToggleHabit(t *testing.T) {
	log := NewHabitLog()
	h := mustAdd(t, log, "Yoga")

	t.Run("absent becomes true", func(t *testing.T) {
		done, err := log.ToggleHabit(h.ID, today, today)
		if err != nil || !done {
			t.Fatalf("ToggleHabit() = %v, %v", done, err)
		}
		if h.Analytics.TotalCompleted != 1 || h.Analytics.CurrentStreak != 1 {
			t.Errorf("analytics not refreshed: %+v", h.Analytics)
		}
	})

	t.Run("true becomes false", func(t *testing.T) {
		done, err := log.ToggleHabit(h.ID, today, today)
		if err != nil || done {
			t.Fatalf("ToggleHabit() = %v, %v", done, err)
		}
		if h.Analytics.TotalCompleted != 0 {
			t.Errorf("analytics not refreshed: %+v", h.Analytics)
		}
	})

	t.Run("future day is allowed", func(t *testing.T) {
		done, err := log.ToggleHabit(h.ID, today.AddDays(2), today)
		if err != nil || !done {
			t.Fatalf("ToggleHabit(future) = %v, %v", done, err)
		}
	})

	t.Run("unknown habit", func(t *testing.T) {
		_, err := log.ToggleHabit("missing", today, today)
		if !errors.Is(err, ErrHabitNotFound) {
			t.Errorf("ToggleHabit(missing) error = %v", err)
		}
	})
}

func TestHabitLog_ToggleHabit_PastIsImmutable(t *testing.T) {
	log := NewHabitLog()
	h := mustAdd(t, log, "Yoga")
	yesterday := today.AddDays(-1)

	for _, id := range []string{h.ID, "missing"} {
		_, err := log.ToggleHabit(id, yesterday, today)
		if !errors.Is(err, ErrImmutablePast) {
			t.Errorf("ToggleHabit(%s, yesterday) error = %v, want ErrImmutablePast", id, err)
		}
	}
	if len(h.Completion) != 0 {
		t.Errorf("past toggle changed completion: %v", h.Completion)
	}
}

func TestHabitLog_RecalcToday(t *testing.T) {
	t.Run("empty log resets counters", func(t *testing.T) {
		log := &HabitLog{PerfectDays: 4, Streak: 2, LastPerfectDate: "2024-01-02"}
		out := log.RecalcToday(today)
		if log.PerfectDays != 0 || log.Streak != 0 || !log.LastPerfectDate.IsZero() {
			t.Errorf("RecalcToday() on empty log = %+v", log)
		}
		if !out.Changed || out.BecamePerfect {
			t.Errorf("RecalcToday() outcome = %+v", out)
		}
	})

	t.Run("imperfect day zeroes streak only", func(t *testing.T) {
		log := &HabitLog{
			Habits:          []*Habit{{ID: "a", Completion: map[DayKey]bool{}}},
			PerfectDays:     4,
			Streak:          2,
			LastPerfectDate: "2024-01-02",
		}
		log.RecalcToday(today)
		if log.Streak != 0 || log.PerfectDays != 4 || log.LastPerfectDate != "2024-01-02" {
			t.Errorf("RecalcToday() = %+v", log)
		}
	})

	t.Run("perfect day after yesterday extends streak", func(t *testing.T) {
		log := &HabitLog{
			Habits:          []*Habit{{ID: "a", Completion: completion(today)}},
			PerfectDays:     4,
			Streak:          2,
			LastPerfectDate: today.AddDays(-1),
		}
		out := log.RecalcToday(today)
		if log.PerfectDays != 5 || log.Streak != 3 || log.LastPerfectDate != today {
			t.Errorf("RecalcToday() = %+v", log)
		}
		if !out.BecamePerfect {
			t.Error("BecamePerfect should be true")
		}
	})

	t.Run("perfect day after a gap restarts streak", func(t *testing.T) {
		log := &HabitLog{
			Habits:          []*Habit{{ID: "a", Completion: completion(today)}},
			PerfectDays:     4,
			Streak:          2,
			LastPerfectDate: today.AddDays(-3),
		}
		log.RecalcToday(today)
		if log.PerfectDays != 5 || log.Streak != 1 {
			t.Errorf("RecalcToday() = %+v", log)
		}
	})

	t.Run("idempotent within a day", func(t *testing.T) {
		log := &HabitLog{Habits: []*Habit{{ID: "a", Completion: completion(today)}}}
		log.RecalcToday(today)
		out := log.RecalcToday(today)
		if log.PerfectDays != 1 || log.Streak != 1 {
			t.Errorf("second RecalcToday() double counted: %+v", log)
		}
		if out.Changed || out.BecamePerfect {
			t.Errorf("second RecalcToday() outcome = %+v", out)
		}
	})

	t.Run("re-perfecting today does not restore the streak", func(t *testing.T) {
		log := NewHabitLog()
		h := mustAdd(t, log, "A")
		_, _ = log.ToggleHabit(h.ID, today, today)
		_, _ = log.ToggleHabit(h.ID, today, today)
		_, _ = log.ToggleHabit(h.ID, today, today)
		if log.PerfectDays != 1 || log.Streak != 0 || log.LastPerfectDate != today {
			t.Errorf("ratchet state = %+v", log)
		}
	})
}

func TestHabitLog_Challenges(t *testing.T) {
	log := NewHabitLog()

	if _, err := log.AddChallenge("  "); !errors.Is(err, ErrEmptyName) {
		t.Errorf("AddChallenge(blank) error = %v", err)
	}
	c, err := log.AddChallenge(" 30 days of yoga ")
	if err != nil {
		t.Fatalf("AddChallenge() error = %v", err)
	}
	if c.Name != "30 days of yoga" {
		t.Errorf("AddChallenge() name = %q", c.Name)
	}
	if err := log.RemoveChallenge("missing"); !errors.Is(err, ErrChallengeNotFound) {
		t.Errorf("RemoveChallenge(missing) error = %v", err)
	}
	if err := log.RemoveChallenge(c.ID); err != nil {
		t.Fatalf("RemoveChallenge() error = %v", err)
	}
	if len(log.Challenges) != 0 {
		t.Errorf("Challenges = %v", log.Challenges)
	}
}

func TestErrorClassification(t *testing.T) {
	if !IsUserVisible(ErrDuplicateName) || !IsUserVisible(ErrEmptyProfileField) {
		t.Error("duplicate names and empty profile fields are user visible")
	}
	for _, err := range []error{ErrEmptyName, ErrHabitNotFound, ErrImmutablePast, ErrChallengeNotFound} {
		if IsUserVisible(err) {
			t.Errorf("%v should be silent", err)
		}
		if !IsNoop(err) {
			t.Errorf("%v should be a no-op", err)
		}
	}
}

func TestHabitLog_Clone(t *testing.T) {
	log := NewHabitLog()
	h := mustAdd(t, log, "Run")
	if _, err := log.ToggleHabit(h.ID, today, today); err != nil {
		t.Fatalf("ToggleHabit() error = %v", err)
	}

	c := log.Clone()
	c.Habits[0].Completion[today] = false
	c.Habits[0].Name = "Walk"

	if !log.Habits[0].Completed(today) || log.Habits[0].Name != "Run" {
		t.Error("Clone() shares habit state with the original")
	}
	if c.PerfectDays != log.PerfectDays || c.Streak != log.Streak {
		t.Errorf("Clone() counters = %d/%d, want %d/%d", c.PerfectDays, c.Streak, log.PerfectDays, log.Streak)
	}
}
