package domain

import (
	"errors"
	"time"
)

// ErrSeriesLength is returned when a performance series does not cover a full week.
var ErrSeriesLength = errors.New("series length does not match the week")

// WeekDay is one column of the weekly completion grid.
type WeekDay struct {
	Key     DayKey
	Label   string
	IsToday bool
	// Locked days are in the past and cannot be toggled.
	Locked bool
}

// WeekOf returns the seven days of the week containing today, starting on start.
func WeekOf(today DayKey, start time.Weekday) []WeekDay {
	offset := (int(today.Weekday()) - int(start) + 7) % 7
	first := today.AddDays(-offset)

	days := make([]WeekDay, 7)
	for i := range days {
		key := first.AddDays(i)
		days[i] = WeekDay{
			Key:     key,
			Label:   key.Weekday().String()[:3],
			IsToday: key == today,
			Locked:  key.Before(today),
		}
	}
	return days
}

// PerformanceSeries counts, for each day of week, how many habits were completed.
func PerformanceSeries(log *HabitLog, week []WeekDay) []int {
	series := make([]int, len(week))
	for i, d := range week {
		for _, h := range log.Habits {
			if h.Completed(d.Key) {
				series[i]++
			}
		}
	}
	return series
}

// ValidateSeries checks that a series has one value per weekday.
func ValidateSeries(series []int) error {
	if len(series) != 7 {
		return ErrSeriesLength
	}
	return nil
}
