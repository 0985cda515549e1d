package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/xvierd/habit-cli/internal/domain"
	"github.com/xvierd/habit-cli/internal/ports"
)

// profileRepository implements ports.ProfileRepository using SQLite.
type profileRepository struct {
	db *sql.DB
}

// newProfileRepository creates a new profile repository.
func newProfileRepository(db *sql.DB) ports.ProfileRepository {
	return &profileRepository{db: db}
}

// Get returns the stored profile, or nil when none is set.
func (r *profileRepository) Get(ctx context.Context) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.QueryRowContext(ctx, `SELECT name, email FROM profile WHERE id = 1`).Scan(&p.Name, &p.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}
	return &p, nil
}

// Put stores the profile.
func (r *profileRepository) Put(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profile (id, name, email, updated_at)
		VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, email = excluded.email, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, profile.Name, profile.Email, time.Now()); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// Delete removes the stored profile.
func (r *profileRepository) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM profile`); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
