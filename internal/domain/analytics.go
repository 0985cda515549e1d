package domain

// HabitStats holds the derived statistics of one habit.
type HabitStats struct {
	CurrentStreak  int
	HighestStreak  int
	TotalCompleted int
}

// AnalyzeHabit computes streaks and totals from a completion mapping.
// A run only counts as the current streak when its last day is today.
func AnalyzeHabit(completion map[DayKey]bool, today DayKey) HabitStats {
	days := completedDays(completion)
	if len(days) == 0 {
		return HabitStats{}
	}

	current, highest := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i-1].DaysUntil(days[i]) == 1 {
			current++
			if current > highest {
				highest = current
			}
		} else {
			current = 1
		}
	}

	if days[len(days)-1] != today {
		current = 0
	}

	return HabitStats{
		CurrentStreak:  current,
		HighestStreak:  highest,
		TotalCompleted: len(days),
	}
}

// SkippedDays counts the missed days between completed days.
// Each gap of n days between consecutive completions contributes n-1.
// Days after the last completion never count.
func SkippedDays(completion map[DayKey]bool) int {
	days := completedDays(completion)
	skipped := 0
	for i := 1; i < len(days); i++ {
		if gap := days[i-1].DaysUntil(days[i]); gap > 1 {
			skipped += gap - 1
		}
	}
	return skipped
}

// CompletionRate returns the share of days in [from, to] on which the habit was done.
func CompletionRate(completion map[DayKey]bool, from, to DayKey) float64 {
	span := from.DaysUntil(to) + 1
	if span <= 0 {
		return 0
	}
	done := 0
	for day, ok := range completion {
		if ok && !day.Before(from) && !to.Before(day) {
			done++
		}
	}
	return float64(done) / float64(span)
}

// HabitSummary pairs a habit with its statistics.
type HabitSummary struct {
	ID          string
	Name        string
	Stats       HabitStats
	SkippedDays int
	DoneToday   bool
	// WeekRate is the share of the last seven days the habit was done.
	WeekRate float64
}

// Summary is the roll-up of all habit analytics plus the log's global counters.
type Summary struct {
	Today             DayKey
	Habits            []HabitSummary
	TotalCompleted    int
	SkippedDays       int
	HighestStreakEver int
	PerfectDays       int
	Streak            int
	LastPerfectDate   DayKey
	PerfectToday      bool
}

// Summarize recomputes every habit's analytics and aggregates them.
func Summarize(log *HabitLog, today DayKey) Summary {
	s := Summary{
		Today:           today,
		Habits:          make([]HabitSummary, 0, len(log.Habits)),
		PerfectDays:     log.PerfectDays,
		Streak:          log.Streak,
		LastPerfectDate: log.LastPerfectDate,
		PerfectToday:    log.IsPerfect(today),
	}

	for _, h := range log.Habits {
		stats := AnalyzeHabit(h.Completion, today)
		skipped := SkippedDays(h.Completion)

		s.TotalCompleted += stats.TotalCompleted
		s.SkippedDays += skipped
		if stats.HighestStreak > s.HighestStreakEver {
			s.HighestStreakEver = stats.HighestStreak
		}

		s.Habits = append(s.Habits, HabitSummary{
			ID:          h.ID,
			Name:        h.Name,
			Stats:       stats,
			SkippedDays: skipped,
			DoneToday:   h.Completed(today),
			WeekRate:    CompletionRate(h.Completion, today.AddDays(-6), today),
		})
	}

	return s
}
