// Package services implements the application layer (use cases)
// following hexagonal architecture principles.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/xvierd/habit-cli/internal/domain"
	"github.com/xvierd/habit-cli/internal/ports"
)

// HabitService owns the single in-memory habit log and persists it after
// every successful mutation.
type HabitService struct {
	mu        sync.Mutex
	store     ports.SnapshotRepository
	clock     ports.Clock
	notifier  ports.Notifier
	logger    *zap.Logger
	weekStart time.Weekday

	log *domain.HabitLog
}

// NewHabitService creates a new habit service. notifier and logger may be nil.
func NewHabitService(store ports.SnapshotRepository, clock ports.Clock, notifier ports.Notifier, logger *zap.Logger) *HabitService {
	if clock == nil {
		clock = ports.SystemClock
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HabitService{
		store:     store,
		clock:     clock,
		notifier:  notifier,
		logger:    logger,
		weekStart: time.Sunday,
	}
}

// SetWeekStart sets the first day of the dashboard week.
func (s *HabitService) SetWeekStart(day time.Weekday) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weekStart = day
}

// Today returns the current day key.
func (s *HabitService) Today() domain.DayKey {
	return domain.DayOf(s.clock.Now())
}

// Load reads the stored log. A missing or corrupted record starts an empty
// log; the perfect-day counters are then brought up to date for today.
func (s *HabitService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *HabitService) loadLocked(ctx context.Context) error {
	log, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrCorruptedState):
		s.logger.Warn("Discarding unreadable habit log", zap.Error(err))
		log = nil
	case err != nil:
		return fmt.Errorf("failed to load habit log: %w", err)
	}
	if log == nil {
		log = domain.NewHabitLog()
	}
	s.log = log

	before := s.log.PerfectDays
	out := s.log.Refresh(s.Today())
	if out.Changed {
		if err := s.saveLocked(ctx); err != nil {
			return err
		}
	}
	s.notifyIfPerfect(before)
	return nil
}

func (s *HabitService) ensureLoaded(ctx context.Context) error {
	if s.log != nil {
		return nil
	}
	return s.loadLocked(ctx)
}

func (s *HabitService) saveLocked(ctx context.Context) error {
	if err := s.store.Save(ctx, s.log); err != nil {
		return fmt.Errorf("failed to save habit log: %w", err)
	}
	return nil
}

// mutate runs fn against the log and persists the result. Rejected
// mutations leave the stored record untouched.
func (s *HabitService) mutate(ctx context.Context, op string, fn func(log *domain.HabitLog, today domain.DayKey) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}

	before := s.log.PerfectDays
	if err := fn(s.log, s.Today()); err != nil {
		if domain.IsNoop(err) {
			s.logger.Debug("Mutation ignored", zap.String("op", op), zap.Error(err))
		}
		return err
	}

	if err := s.saveLocked(ctx); err != nil {
		return err
	}
	s.notifyIfPerfect(before)
	return nil
}

func (s *HabitService) notifyIfPerfect(perfectDaysBefore int) {
	if s.log.PerfectDays <= perfectDaysBefore {
		return
	}
	s.logger.Info("Perfect day",
		zap.String("day", string(s.log.LastPerfectDate)),
		zap.Int("streak", s.log.Streak),
		zap.Int("perfect_days", s.log.PerfectDays))
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyPerfectDay(s.log.Streak, s.log.PerfectDays); err != nil {
		s.logger.Warn("Failed to send notification", zap.Error(err))
	}
}

// AddHabit creates a habit with a unique name.
func (s *HabitService) AddHabit(ctx context.Context, name string) (*domain.Habit, error) {
	var added *domain.Habit
	err := s.mutate(ctx, "add_habit", func(log *domain.HabitLog, today domain.DayKey) error {
		h, err := log.AddHabit(name, today)
		if err != nil {
			return err
		}
		added = h.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return added, nil
}

// RemoveHabit deletes a habit and its completion history.
func (s *HabitService) RemoveHabit(ctx context.Context, id string) error {
	return s.mutate(ctx, "remove_habit", func(log *domain.HabitLog, today domain.DayKey) error {
		return log.RemoveHabit(id, today)
	})
}

// ToggleHabit flips a habit's completion on day and returns the new value.
func (s *HabitService) ToggleHabit(ctx context.Context, id string, day domain.DayKey) (bool, error) {
	var done bool
	err := s.mutate(ctx, "toggle_habit", func(log *domain.HabitLog, today domain.DayKey) error {
		var err error
		done, err = log.ToggleHabit(id, day, today)
		return err
	})
	return done, err
}

// AddChallenge creates a challenge.
func (s *HabitService) AddChallenge(ctx context.Context, name string) (domain.Challenge, error) {
	var added domain.Challenge
	err := s.mutate(ctx, "add_challenge", func(log *domain.HabitLog, _ domain.DayKey) error {
		var err error
		added, err = log.AddChallenge(name)
		return err
	})
	return added, err
}

// RemoveChallenge deletes a challenge.
func (s *HabitService) RemoveChallenge(ctx context.Context, id string) error {
	return s.mutate(ctx, "remove_challenge", func(log *domain.HabitLog, _ domain.DayKey) error {
		return log.RemoveChallenge(id)
	})
}

// Snapshot returns a copy of the current log.
func (s *HabitService) Snapshot(ctx context.Context) (*domain.HabitLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return s.log.Clone(), nil
}

// Habits returns copies of all habits in display order.
func (s *HabitService) Habits(ctx context.Context) ([]*domain.Habit, error) {
	log, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return log.Habits, nil
}

// Challenges returns all challenges.
func (s *HabitService) Challenges(ctx context.Context) ([]domain.Challenge, error) {
	log, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return log.Challenges, nil
}

// Summary returns the analytics roll-up for today.
func (s *HabitService) Summary(ctx context.Context) (domain.Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return domain.Summary{}, err
	}
	return domain.Summarize(s.log, s.Today()), nil
}

// Dashboard builds the dashboard view for now.
func (s *HabitService) Dashboard(ctx context.Context, greeting string) (*domain.Dashboard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return domain.BuildDashboard(s.log, s.clock.Now(), s.weekStart, greeting), nil
}

// Import replaces the current log with log and persists it.
func (s *HabitService) Import(ctx context.Context, log *domain.HabitLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log = log.Clone()
	s.log.Refresh(s.Today())
	return s.saveLocked(ctx)
}

// Reset wipes the stored log and starts over with an empty one.
func (s *HabitService) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear habit log: %w", err)
	}
	s.log = domain.NewHabitLog()
	s.logger.Info("Habit log reset")
	return nil
}
