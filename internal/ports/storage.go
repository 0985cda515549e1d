// Package ports defines the interfaces (driven and driving ports)
// for the habit tracker following hexagonal architecture principles.
// These interfaces define the contracts between the domain layer and
// external infrastructure.
package ports

import (
	"context"

	"github.com/xvierd/habit-cli/internal/domain"
)

// SnapshotRepository persists the habit log as a single record.
// This is a driven port (implemented by adapters).
type SnapshotRepository interface {
	// Load returns the stored log. It returns (nil, nil) when nothing has
	// been saved yet and domain-independent corruption errors when the
	// record exists but cannot be decoded.
	Load(ctx context.Context) (*domain.HabitLog, error)

	// Save overwrites the stored record with the full log.
	Save(ctx context.Context, log *domain.HabitLog) error

	// Clear removes the stored record.
	Clear(ctx context.Context) error
}

// ProfileRepository persists the cosmetic display-name profile.
// This is a driven port (implemented by adapters).
type ProfileRepository interface {
	// Get returns the stored profile, or nil when none is set.
	Get(ctx context.Context) (*domain.Profile, error)

	// Put stores the profile, replacing any previous one.
	Put(ctx context.Context, profile *domain.Profile) error

	// Delete removes the stored profile.
	Delete(ctx context.Context) error
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Snapshots provides access to the habit log record.
	Snapshots() SnapshotRepository

	// Profiles provides access to the display-name profile.
	Profiles() ProfileRepository

	// Close releases the underlying resources.
	Close() error

	// Migrate prepares the backing store.
	Migrate() error
}
