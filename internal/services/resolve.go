package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/xvierd/habit-cli/internal/domain"
)

// ErrAmbiguousHabit is returned when a query matches more than one habit.
var ErrAmbiguousHabit = errors.New("more than one habit matches")

// minIDPrefix is the shortest id prefix accepted as a habit reference.
const minIDPrefix = 4

// ResolveHabit finds a habit by id, id prefix, name (ignoring case) or
// fuzzy name match, in that order.
func (s *HabitService) ResolveHabit(ctx context.Context, query string) (*domain.Habit, error) {
	habits, err := s.Habits(ctx)
	if err != nil {
		return nil, err
	}
	return resolveHabit(habits, query)
}

func resolveHabit(habits []*domain.Habit, query string) (*domain.Habit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrHabitNotFound
	}

	for _, h := range habits {
		if h.ID == query {
			return h, nil
		}
	}

	if len(query) >= minIDPrefix {
		var prefixed []*domain.Habit
		for _, h := range habits {
			if strings.HasPrefix(h.ID, query) {
				prefixed = append(prefixed, h)
			}
		}
		if len(prefixed) == 1 {
			return prefixed[0], nil
		}
	}

	for _, h := range habits {
		if h.SameName(query) {
			return h, nil
		}
	}

	names := make([]string, len(habits))
	for i, h := range habits {
		names[i] = h.Name
	}
	matches := fuzzy.Find(query, names)
	switch len(matches) {
	case 0:
		return nil, domain.ErrHabitNotFound
	case 1:
		return habits[matches[0].Index], nil
	}

	candidates := make([]string, len(matches))
	for i, m := range matches {
		candidates[i] = m.Str
	}
	return nil, fmt.Errorf("%w %q: %s", ErrAmbiguousHabit, query, strings.Join(candidates, ", "))
}
