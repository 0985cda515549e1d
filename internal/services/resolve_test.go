package services

import (
	"errors"
	"testing"

	"github.com/xvierd/habit-cli/internal/domain"
)

func TestResolveHabit(t *testing.T) {
	habits := []*domain.Habit{
		{ID: "a1b2c3d4-0000", Name: "Morning run"},
		{ID: "a1b2ffff-0000", Name: "Read"},
		{ID: "9f00aaaa-0000", Name: "Meditate"},
		{ID: "77770000-0000", Name: "Evening run"},
	}

	tests := []struct {
		name    string
		query   string
		wantID  string
		wantErr error
	}{
		{"exact id", "9f00aaaa-0000", "9f00aaaa-0000", nil},
		{"unique id prefix", "9f00", "9f00aaaa-0000", nil},
		{"exact name ignores case", "read", "a1b2ffff-0000", nil},
		{"fuzzy unique", "medit", "9f00aaaa-0000", nil},
		{"fuzzy ambiguous", "run", "", ErrAmbiguousHabit},
		{"no match", "swim", "", domain.ErrHabitNotFound},
		{"blank", "  ", "", domain.ErrHabitNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveHabit(habits, tt.query)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("resolveHabit(%q) error = %v, want %v", tt.query, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveHabit(%q) error = %v", tt.query, err)
			}
			if got.ID != tt.wantID {
				t.Errorf("resolveHabit(%q) = %s, want %s", tt.query, got.ID, tt.wantID)
			}
		})
	}
}
