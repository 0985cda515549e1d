package domain

import "time"

// Thoughts are the motivational lines shown on the dashboard.
var Thoughts = []string{
	"Small habits make big changes.",
	"Discipline beats motivation every time.",
	"Consistency creates confidence.",
	"Start where you are. Use what you have.",
	"Your future self will thank you.",
	"Progress, not perfection.",
	"Dreams don't work unless you do.",
	"One day or day one. You decide.",
	"Hard work compounds silently.",
	"Focus on growth, not comfort.",
}

// Dashboard is everything a presentation layer needs to draw the tracker.
type Dashboard struct {
	Now        time.Time
	Greeting   string
	Week       []WeekDay
	Habits     []*Habit
	Summary    Summary
	Series     []int
	Challenges []Challenge
}

// BuildDashboard assembles a dashboard view of log for the given moment.
func BuildDashboard(log *HabitLog, now time.Time, weekStart time.Weekday, greeting string) *Dashboard {
	today := DayOf(now)
	week := WeekOf(today, weekStart)

	habits := make([]*Habit, len(log.Habits))
	for i, h := range log.Habits {
		habits[i] = h.Clone()
	}
	challenges := make([]Challenge, len(log.Challenges))
	copy(challenges, log.Challenges)

	return &Dashboard{
		Now:        now,
		Greeting:   greeting,
		Week:       week,
		Habits:     habits,
		Summary:    Summarize(log, today),
		Series:     PerformanceSeries(log, week),
		Challenges: challenges,
	}
}

// Today returns the dashboard's day key.
func (d *Dashboard) Today() DayKey {
	return d.Summary.Today
}
