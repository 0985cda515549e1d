package domain

import "strings"

// HabitLog is the root aggregate: every habit, every challenge, and the
// global perfect-day counters. It is the only owner of its habits.
type HabitLog struct {
	Habits     []*Habit
	Challenges []Challenge

	// PerfectDays counts days on which every habit was completed.
	PerfectDays int
	// Streak is the run of consecutive perfect days ending today.
	Streak int
	// LastPerfectDate is the most recent day recognised as perfect; empty if none.
	LastPerfectDate DayKey
}

// NewHabitLog returns an empty log.
func NewHabitLog() *HabitLog {
	return &HabitLog{
		Habits:     []*Habit{},
		Challenges: []Challenge{},
	}
}

// Clone returns a deep copy of the log.
func (l *HabitLog) Clone() *HabitLog {
	c := *l
	c.Habits = make([]*Habit, len(l.Habits))
	for i, h := range l.Habits {
		c.Habits[i] = h.Clone()
	}
	c.Challenges = make([]Challenge, len(l.Challenges))
	copy(c.Challenges, l.Challenges)
	return &c
}

// RecalcOutcome describes what a perfect-day recalculation did.
type RecalcOutcome struct {
	// BecamePerfect is true when this call recognised today as a new perfect day.
	BecamePerfect bool
	// Changed is true when any global counter changed.
	Changed bool
}

// FindHabit returns the habit with the given id, or nil.
func (l *HabitLog) FindHabit(id string) *Habit {
	for _, h := range l.Habits {
		if h.ID == id {
			return h
		}
	}
	return nil
}

// FindHabitByName returns the habit whose name matches, ignoring case, or nil.
func (l *HabitLog) FindHabitByName(name string) *Habit {
	for _, h := range l.Habits {
		if h.SameName(name) {
			return h
		}
	}
	return nil
}

// HabitNames returns habit names in display order.
func (l *HabitLog) HabitNames() []string {
	names := make([]string, len(l.Habits))
	for i, h := range l.Habits {
		names[i] = h.Name
	}
	return names
}

// AddHabit appends a new habit after checking its name is unique.
func (l *HabitLog) AddHabit(name string, today DayKey) (*Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if l.FindHabitByName(name) != nil {
		return nil, ErrDuplicateName
	}

	h, err := NewHabit(name)
	if err != nil {
		return nil, err
	}
	l.Habits = append(l.Habits, h)
	l.Refresh(today)
	return h, nil
}

// RemoveHabit deletes the habit with the given id.
func (l *HabitLog) RemoveHabit(id string, today DayKey) error {
	for i, h := range l.Habits {
		if h.ID == id {
			l.Habits = append(l.Habits[:i], l.Habits[i+1:]...)
			l.Refresh(today)
			return nil
		}
	}
	return ErrHabitNotFound
}

// ToggleHabit flips the completion of a habit on day and returns the new value.
// Days before today are immutable, whether or not the habit exists.
func (l *HabitLog) ToggleHabit(id string, day, today DayKey) (bool, error) {
	if day.Before(today) {
		return false, ErrImmutablePast
	}
	h := l.FindHabit(id)
	if h == nil {
		return false, ErrHabitNotFound
	}

	done := h.toggle(day)
	l.Refresh(today)
	return done, nil
}

// AddChallenge appends a challenge.
func (l *HabitLog) AddChallenge(name string) (Challenge, error) {
	c, err := NewChallenge(name)
	if err != nil {
		return Challenge{}, err
	}
	l.Challenges = append(l.Challenges, c)
	return c, nil
}

// RemoveChallenge deletes the challenge with the given id.
func (l *HabitLog) RemoveChallenge(id string) error {
	for i, c := range l.Challenges {
		if c.ID == id {
			l.Challenges = append(l.Challenges[:i], l.Challenges[i+1:]...)
			return nil
		}
	}
	return ErrChallengeNotFound
}

// IsPerfect reports whether every habit is completed on day.
// A log without habits never has a perfect day.
func (l *HabitLog) IsPerfect(day DayKey) bool {
	if len(l.Habits) == 0 {
		return false
	}
	for _, h := range l.Habits {
		if !h.Completed(day) {
			return false
		}
	}
	return true
}

// RecalcToday advances the global perfect-day counters for today.
//
// The counters only move forward: a day that was missed and never revisited
// is not recovered, unlike the per-habit analytics which are recomputed
// from the full completion history. Calling it twice on the same day is a no-op.
func (l *HabitLog) RecalcToday(today DayKey) RecalcOutcome {
	before := l.counters()
	out := l.recalc(today)
	out.Changed = before != l.counters()
	return out
}

type counters struct {
	perfectDays int
	streak      int
	last        DayKey
}

func (l *HabitLog) counters() counters {
	return counters{l.PerfectDays, l.Streak, l.LastPerfectDate}
}

func (l *HabitLog) recalc(today DayKey) RecalcOutcome {
	if len(l.Habits) == 0 {
		l.PerfectDays = 0
		l.Streak = 0
		l.LastPerfectDate = ""
		return RecalcOutcome{}
	}

	if !l.IsPerfect(today) {
		l.Streak = 0
		return RecalcOutcome{}
	}

	if l.LastPerfectDate == today {
		return RecalcOutcome{}
	}

	l.PerfectDays++
	if !l.LastPerfectDate.IsZero() && l.LastPerfectDate.DaysUntil(today) == 1 {
		l.Streak++
	} else {
		l.Streak = 1
	}
	l.LastPerfectDate = today

	return RecalcOutcome{BecamePerfect: true}
}

// Refresh runs the perfect-day recalculation and recomputes every habit's analytics.
func (l *HabitLog) Refresh(today DayKey) RecalcOutcome {
	out := l.RecalcToday(today)
	for _, h := range l.Habits {
		h.Analytics = AnalyzeHabit(h.Completion, today)
	}
	return out
}
