package services

import (
	"context"

	"github.com/xvierd/habit-cli/internal/domain"
	"github.com/xvierd/habit-cli/internal/ports"
)

// StateService implements the MCPStateProvider interface.
type StateService struct {
	habits   *HabitService
	profiles *ProfileService
}

// NewStateService creates a new state service. profiles may be nil.
func NewStateService(habits *HabitService, profiles *ProfileService) *StateService {
	return &StateService{habits: habits, profiles: profiles}
}

// GetDashboard implements ports.MCPStateProvider.
func (s *StateService) GetDashboard(ctx context.Context) (*domain.Dashboard, error) {
	greeting := domain.DefaultGreeting
	if s.profiles != nil {
		greeting = s.profiles.Greeting(ctx)
	}
	return s.habits.Dashboard(ctx, greeting)
}

// AddHabit implements ports.MCPStateProvider.
func (s *StateService) AddHabit(ctx context.Context, name string) (*domain.Habit, error) {
	return s.habits.AddHabit(ctx, name)
}

// RemoveHabit implements ports.MCPStateProvider.
func (s *StateService) RemoveHabit(ctx context.Context, id string) error {
	return s.habits.RemoveHabit(ctx, id)
}

// ToggleHabit implements ports.MCPStateProvider.
func (s *StateService) ToggleHabit(ctx context.Context, id string, day domain.DayKey) (bool, error) {
	return s.habits.ToggleHabit(ctx, id, day)
}

// AddChallenge implements ports.MCPStateProvider.
func (s *StateService) AddChallenge(ctx context.Context, name string) (domain.Challenge, error) {
	return s.habits.AddChallenge(ctx, name)
}

// RemoveChallenge implements ports.MCPStateProvider.
func (s *StateService) RemoveChallenge(ctx context.Context, id string) error {
	return s.habits.RemoveChallenge(ctx, id)
}

// Ensure StateService implements MCPStateProvider.
var _ ports.MCPStateProvider = (*StateService)(nil)
