package domain

import "github.com/google/uuid"

// generateID creates a new opaque identifier for habits and challenges.
func generateID() string {
	return uuid.NewString()
}
