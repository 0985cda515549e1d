package ports

import (
	"context"

	"github.com/xvierd/habit-cli/internal/domain"
)

// MCPHandler defines the interface for MCP server operations.
// This is a driving port (called by the application layer).
type MCPHandler interface {
	// Start begins serving MCP requests.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the server.
	Stop() error

	// IsRunning returns true if the server is active.
	IsRunning() bool
}

// MCPStateProvider provides habit state and commands to the MCP server.
// This is a driven port (implemented by the services layer).
type MCPStateProvider interface {
	// GetDashboard returns the current dashboard view.
	GetDashboard(ctx context.Context) (*domain.Dashboard, error)

	// AddHabit creates a habit.
	AddHabit(ctx context.Context, name string) (*domain.Habit, error)

	// RemoveHabit deletes the habit with the given id.
	RemoveHabit(ctx context.Context, id string) error

	// ToggleHabit flips a habit's completion on day and returns the new value.
	ToggleHabit(ctx context.Context, id string, day domain.DayKey) (bool, error)

	// AddChallenge creates a challenge.
	AddChallenge(ctx context.Context, name string) (domain.Challenge, error)

	// RemoveChallenge deletes the challenge with the given id.
	RemoveChallenge(ctx context.Context, id string) error
}
