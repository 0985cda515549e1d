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

// snapshotRepository implements ports.SnapshotRepository using SQLite.
type snapshotRepository struct {
	db *sql.DB
}

// newSnapshotRepository creates a new snapshot repository.
func newSnapshotRepository(db *sql.DB) ports.SnapshotRepository {
	return &snapshotRepository{db: db}
}

// Load retrieves and decodes the stored habit log.
func (r *snapshotRepository) Load(ctx context.Context) (*domain.HabitLog, error) {
	var data string
	err := r.db.QueryRowContext(ctx, `SELECT data FROM snapshots WHERE key = ?`, SnapshotKey).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	return DecodeSnapshot([]byte(data))
}

// Save overwrites the stored habit log.
func (r *snapshotRepository) Save(ctx context.Context, log *domain.HabitLog) error {
	data, err := EncodeSnapshot(log)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	query := `
		INSERT INTO snapshots (key, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, SnapshotKey, string(data), time.Now()); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}

	return nil
}

// Clear removes the stored habit log.
func (r *snapshotRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM snapshots WHERE key = ?`, SnapshotKey); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}
