package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/xvierd/habit-cli/internal/domain"
	"github.com/xvierd/habit-cli/internal/ports"
)

// ProfileService manages the cosmetic display-name profile.
type ProfileService struct {
	profiles ports.ProfileRepository
	habits   *HabitService
	logger   *zap.Logger
}

// NewProfileService creates a new profile service. habits is used by
// Logout to wipe the log and may be nil.
func NewProfileService(profiles ports.ProfileRepository, habits *HabitService, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{profiles: profiles, habits: habits, logger: logger}
}

// Login stores a new profile. Both fields are required.
func (s *ProfileService) Login(ctx context.Context, name, email string) (*domain.Profile, error) {
	profile, err := domain.NewProfile(name, email)
	if err != nil {
		return nil, err
	}
	if err := s.profiles.Put(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	s.logger.Info("Profile set", zap.String("name", profile.Name))
	return profile, nil
}

// Current returns the stored profile, or nil.
func (s *ProfileService) Current(ctx context.Context) (*domain.Profile, error) {
	return s.profiles.Get(ctx)
}

// Greeting returns the name the dashboard greets.
func (s *ProfileService) Greeting(ctx context.Context) string {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		s.logger.Warn("Failed to read profile", zap.Error(err))
	}
	return profile.Greeting()
}

// Logout clears the profile. With wipeAll the habit log is reset too.
func (s *ProfileService) Logout(ctx context.Context, wipeAll bool) error {
	if err := s.profiles.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if wipeAll && s.habits != nil {
		if err := s.habits.Reset(ctx); err != nil {
			return err
		}
	}
	return nil
}
