// Package domain contains the core entities of the habit tracker: habits,
// challenges, the habit log that owns them, and the streak analytics derived
// from each habit's completion mapping. Nothing in here knows about storage,
// terminals or clocks; "today" is always passed in by the caller.
package domain

import (
	"errors"
	"sort"
	"strings"
	"time"
)

// Common domain errors.
var (
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrDuplicateName     = errors.New("a habit with this name already exists")
	ErrHabitNotFound     = errors.New("habit not found")
	ErrChallengeNotFound = errors.New("challenge not found")
	ErrImmutablePast     = errors.New("days before today cannot be changed")
	ErrCorruptedState    = errors.New("stored habit log is corrupted")
)

// IsUserVisible reports whether err should be shown to the user.
// Everything else degrades to a silent no-op.
func IsUserVisible(err error) bool {
	return errors.Is(err, ErrDuplicateName) || errors.Is(err, ErrEmptyProfileField)
}

// IsNoop reports whether err marks a rejected mutation that left state untouched.
func IsNoop(err error) bool {
	return errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrDuplicateName) ||
		errors.Is(err, ErrHabitNotFound) ||
		errors.Is(err, ErrChallengeNotFound) ||
		errors.Is(err, ErrImmutablePast)
}

// Habit is a recurring activity with a sparse per-day completion mapping.
type Habit struct {
	ID         string
	Name       string
	Completion map[DayKey]bool
	CreatedAt  time.Time

	// Analytics is derived from Completion and recomputed on every mutation.
	Analytics HabitStats
}

// NewHabit creates a habit with an empty completion mapping.
func NewHabit(name string) (*Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	return &Habit{
		ID:         generateID(),
		Name:       name,
		Completion: make(map[DayKey]bool),
		CreatedAt:  time.Now(),
	}, nil
}

// Completed reports whether the habit was marked done on day.
// An absent entry counts as not completed.
func (h *Habit) Completed(day DayKey) bool {
	return h.Completion[day]
}

// CompletedDays returns the days marked true, oldest first.
func (h *Habit) CompletedDays() []DayKey {
	return completedDays(h.Completion)
}

// SameName reports whether name matches the habit's name, ignoring case.
func (h *Habit) SameName(name string) bool {
	return strings.EqualFold(h.Name, strings.TrimSpace(name))
}

// Clone returns a deep copy of the habit.
func (h *Habit) Clone() *Habit {
	c := *h
	c.Completion = make(map[DayKey]bool, len(h.Completion))
	for k, v := range h.Completion {
		c.Completion[k] = v
	}
	return &c
}

func (h *Habit) toggle(day DayKey) bool {
	if h.Completion == nil {
		h.Completion = make(map[DayKey]bool)
	}
	h.Completion[day] = !h.Completion[day]
	return h.Completion[day]
}

func completedDays(completion map[DayKey]bool) []DayKey {
	days := make([]DayKey, 0, len(completion))
	for day, done := range completion {
		if done {
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

// Challenge is a free-form goal listed next to habits. It takes no part in analytics.
type Challenge struct {
	ID   string
	Name string
}

// NewChallenge creates a challenge with the given name.
func NewChallenge(name string) (Challenge, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Challenge{}, ErrEmptyName
	}
	return Challenge{ID: generateID(), Name: name}, nil
}
