package integration

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/xvierd/habit-cli/internal/adapters/storage"
	"github.com/xvierd/habit-cli/internal/domain"
	"github.com/xvierd/habit-cli/internal/ports"
	"github.com/xvierd/habit-cli/internal/services"
)

// calendar is a clock the test moves forward one day at a time.
type calendar struct {
	now time.Time
}

func (c *calendar) Now() time.Time { return c.now }

func (c *calendar) nextDay(n int) { c.now = c.now.AddDate(0, 0, n) }

// setupTestStorage creates a temporary database for integration tests
func setupTestStorage(t *testing.T) (ports.Storage, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create storage: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store, dbPath
}

// open starts a fresh service over store, as a new CLI invocation would.
func open(t *testing.T, store ports.Storage, clock ports.Clock) *services.HabitService {
	t.Helper()
	svc := services.NewHabitService(store.Snapshots(), clock, nil, nil)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("failed to load habit log: %v", err)
	}
	return svc
}

func toggleAll(t *testing.T, svc *services.HabitService) {
	t.Helper()
	ctx := context.Background()
	habits, err := svc.Habits(ctx)
	if err != nil {
		t.Fatalf("failed to list habits: %v", err)
	}
	for _, h := range habits {
		if _, err := svc.ToggleHabit(ctx, h.ID, svc.Today()); err != nil {
			t.Fatalf("failed to toggle %s: %v", h.Name, err)
		}
	}
}

func summary(t *testing.T, svc *services.HabitService) domain.Summary {
	t.Helper()
	s, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("failed to get summary: %v", err)
	}
	return s
}

// TestMultiDayLifecycle follows a log across restarts on consecutive days
func TestMultiDayLifecycle(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()
	clock := &calendar{now: time.Date(2024, time.January, 1, 9, 0, 0, 0, time.Local)}

	// Day 1: declare two habits and finish both.
	svc := open(t, store, clock)
	for _, name := range []string{"Read", "Run"} {
		if _, err := svc.AddHabit(ctx, name); err != nil {
			t.Fatalf("failed to add %s: %v", name, err)
		}
	}
	toggleAll(t, svc)

	s := summary(t, svc)
	if s.PerfectDays != 1 || s.Streak != 1 || s.LastPerfectDate != "2024-01-01" {
		t.Fatalf("day 1: perfect=%d streak=%d last=%s", s.PerfectDays, s.Streak, s.LastPerfectDate)
	}

	// Day 2: the unfinished morning zeroes the streak before both are done again.
	clock.nextDay(1)
	svc = open(t, store, clock)
	if s := summary(t, svc); s.Streak != 0 || s.PerfectDays != 1 {
		t.Fatalf("day 2 morning: perfect=%d streak=%d", s.PerfectDays, s.Streak)
	}
	toggleAll(t, svc)
	s = summary(t, svc)
	if s.PerfectDays != 2 || s.LastPerfectDate != "2024-01-02" {
		t.Fatalf("day 2: perfect=%d last=%s", s.PerfectDays, s.LastPerfectDate)
	}
	if s.Habits[0].Stats.CurrentStreak != 2 {
		t.Errorf("day 2: Read current streak = %d, want 2", s.Habits[0].Stats.CurrentStreak)
	}

	// Day 3 is skipped. Day 4: the gap resets the streak to one.
	clock.nextDay(2)
	svc = open(t, store, clock)

	// Past days stay locked after a restart.
	_, err := svc.ToggleHabit(ctx, s.Habits[0].ID, "2024-01-03")
	if !errors.Is(err, domain.ErrImmutablePast) {
		t.Fatalf("toggling a past day: got %v, want ErrImmutablePast", err)
	}

	toggleAll(t, svc)
	s = summary(t, svc)
	if s.PerfectDays != 3 || s.Streak != 1 {
		t.Fatalf("day 4: perfect=%d streak=%d", s.PerfectDays, s.Streak)
	}

	read := s.Habits[0]
	if read.Stats.CurrentStreak != 1 || read.Stats.HighestStreak != 2 || read.Stats.TotalCompleted != 3 {
		t.Errorf("day 4: Read stats = %+v", read.Stats)
	}
	if read.SkippedDays != 1 {
		t.Errorf("day 4: Read skipped days = %d, want 1", read.SkippedDays)
	}
	if s.HighestStreakEver != 2 || s.TotalCompleted != 6 {
		t.Errorf("day 4: highest=%d total=%d", s.HighestStreakEver, s.TotalCompleted)
	}
}

// TestRemovingUnfinishedHabitCompletesTheDay checks that a removal triggers the ratchet
func TestRemovingUnfinishedHabitCompletesTheDay(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()
	clock := &calendar{now: time.Date(2024, time.March, 10, 20, 0, 0, 0, time.Local)}

	svc := open(t, store, clock)
	read, _ := svc.AddHabit(ctx, "Read")
	run, _ := svc.AddHabit(ctx, "Run")
	if _, err := svc.ToggleHabit(ctx, read.ID, svc.Today()); err != nil {
		t.Fatal(err)
	}
	if s := summary(t, svc); s.PerfectDays != 0 {
		t.Fatalf("perfect days = %d before removal", s.PerfectDays)
	}

	if err := svc.RemoveHabit(ctx, run.ID); err != nil {
		t.Fatal(err)
	}

	svc = open(t, store, clock)
	if s := summary(t, svc); s.PerfectDays != 1 || s.Streak != 1 {
		t.Errorf("after removal: perfect=%d streak=%d", s.PerfectDays, s.Streak)
	}
}

// TestDashboardThroughStateService wires profile, habits and dashboard together
func TestDashboardThroughStateService(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()
	// Wednesday.
	clock := &calendar{now: time.Date(2024, time.January, 3, 8, 0, 0, 0, time.Local)}

	habits := open(t, store, clock)
	habits.SetWeekStart(time.Monday)
	profiles := services.NewProfileService(store.Profiles(), habits, nil)
	state := services.NewStateService(habits, profiles)

	if _, err := profiles.Login(ctx, "Ada", "ada@example.com"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	h, err := state.AddHabit(ctx, "Read")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := state.ToggleHabit(ctx, h.ID, "2024-01-03"); err != nil {
		t.Fatal(err)
	}
	if _, err := state.AddChallenge(ctx, "No sugar"); err != nil {
		t.Fatal(err)
	}

	d, err := state.GetDashboard(ctx)
	if err != nil {
		t.Fatalf("GetDashboard failed: %v", err)
	}
	if d.Greeting != "Ada" {
		t.Errorf("greeting = %q, want Ada", d.Greeting)
	}
	if d.Week[0].Key != "2024-01-01" || !d.Week[2].IsToday {
		t.Errorf("week should start Monday with Wednesday as today: %+v", d.Week)
	}
	want := []int{0, 0, 1, 0, 0, 0, 0}
	for i, v := range want {
		if d.Series[i] != v {
			t.Errorf("series = %v, want %v", d.Series, want)
			break
		}
	}
	if len(d.Challenges) != 1 || !d.Summary.PerfectToday {
		t.Errorf("challenges=%d perfectToday=%v", len(d.Challenges), d.Summary.PerfectToday)
	}

	if err := profiles.Logout(ctx, true); err != nil {
		t.Fatal(err)
	}
	d, _ = state.GetDashboard(ctx)
	if d.Greeting != domain.DefaultGreeting || len(d.Habits) != 0 {
		t.Errorf("after logout --all: greeting=%q habits=%d", d.Greeting, len(d.Habits))
	}
}

// TestMoveBetweenBackends exports from sqlite and imports into the JSON store
func TestMoveBetweenBackends(t *testing.T) {
	store, _ := setupTestStorage(t)
	ctx := context.Background()
	clock := &calendar{now: time.Date(2024, time.June, 1, 12, 0, 0, 0, time.Local)}

	src := open(t, store, clock)
	for _, name := range []string{"Read", "Run", "Stretch"} {
		if _, err := src.AddHabit(ctx, name); err != nil {
			t.Fatal(err)
		}
	}
	toggleAll(t, src)

	log, err := src.Snapshot(ctx)
	if err != nil {
		t.Fatal(err)
	}
	data, err := storage.EncodeSnapshot(log)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := storage.DecodeSnapshot(data)
	if err != nil {
		t.Fatal(err)
	}

	jsonStore, err := storage.Open(storage.BackendJSON, t.TempDir())
	if err != nil {
		t.Fatalf("failed to open json store: %v", err)
	}
	defer jsonStore.Close()

	dst := open(t, jsonStore, clock)
	if err := dst.Import(ctx, decoded); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	dst = open(t, jsonStore, clock)
	want, got := summary(t, src), summary(t, dst)
	if got.PerfectDays != want.PerfectDays || got.Streak != want.Streak || got.TotalCompleted != want.TotalCompleted {
		t.Errorf("json backend summary = %+v, want %+v", got, want)
	}
	for i, h := range got.Habits {
		if h.ID != want.Habits[i].ID || h.Name != want.Habits[i].Name {
			t.Errorf("habit %d = %s/%s, want %s/%s", i, h.ID, h.Name, want.Habits[i].ID, want.Habits[i].Name)
		}
	}
}
