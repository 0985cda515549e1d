package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/xvierd/habit-cli/internal/adapters/tui"
	"github.com/xvierd/habit-cli/internal/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show streaks, perfect days and totals",
	Long:  `Display the perfect-day streak, global counters and per-habit statistics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := app.habits.Summary(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get stats: %w", err)
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), summaryData(summary))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out)
		fmt.Fprint(out, tui.RenderSummary(summary, &app.config.Theme, 80))
		fmt.Fprintln(out)
		fmt.Fprint(out, tui.RenderHabitStats(summary, &app.config.Theme))
		return nil
	},
}

var weekCmd = &cobra.Command{
	Use:   "week",
	Short: "Show this week's grid and performance chart",
	Long: `Print the dashboard for the current week: the completion grid,
today's progress, the counters and the weekly performance chart.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return printDashboardJSON(cmd, cmd.OutOrStdout())
		}

		d, err := app.state.GetDashboard(cmd.Context())
		if err != nil {
			return err
		}
		thought := ""
		if app.config.Dashboard.ShowThoughts {
			thought = tui.PickThought()
		}
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderDashboard(d, &app.config.Theme, tui.RenderOptions{
			Width:          80,
			Thought:        thought,
			ShowChallenges: len(d.Challenges) > 0,
		}))
		return nil
	},
}

func printDashboardJSON(cmd *cobra.Command, w io.Writer) error {
	d, err := app.state.GetDashboard(cmd.Context())
	if err != nil {
		return err
	}

	week := make([]map[string]interface{}, 0, len(d.Week))
	for i, day := range d.Week {
		done := make([]string, 0, len(d.Habits))
		for _, h := range d.Habits {
			if h.Completed(day.Key) {
				done = append(done, h.ID)
			}
		}
		week = append(week, map[string]interface{}{
			"day":       string(day.Key),
			"label":     day.Label,
			"today":     day.IsToday,
			"locked":    day.Locked,
			"completed": d.Series[i],
			"habit_ids": done,
		})
	}

	challenges := make([]map[string]interface{}, 0, len(d.Challenges))
	for _, c := range d.Challenges {
		challenges = append(challenges, map[string]interface{}{"id": c.ID, "name": c.Name})
	}

	return printJSON(w, map[string]interface{}{
		"greeting":   d.Greeting,
		"date":       d.Now.Format(tui.LongDateLayout),
		"week":       week,
		"summary":    summaryData(d.Summary),
		"challenges": challenges,
	})
}

func summaryData(s domain.Summary) map[string]interface{} {
	habits := make([]map[string]interface{}, 0, len(s.Habits))
	for _, h := range s.Habits {
		habits = append(habits, map[string]interface{}{
			"id":              h.ID,
			"name":            h.Name,
			"done_today":      h.DoneToday,
			"current_streak":  h.Stats.CurrentStreak,
			"highest_streak":  h.Stats.HighestStreak,
			"total_completed": h.Stats.TotalCompleted,
			"skipped_days":    h.SkippedDays,
			"week_rate":       h.WeekRate,
		})
	}

	data := map[string]interface{}{
		"today":               string(s.Today),
		"perfect_days":        s.PerfectDays,
		"streak":              s.Streak,
		"perfect_today":       s.PerfectToday,
		"highest_streak_ever": s.HighestStreakEver,
		"total_completed":     s.TotalCompleted,
		"skipped_days":        s.SkippedDays,
		"last_perfect_date":   nil,
		"habits":              habits,
	}
	if !s.LastPerfectDate.IsZero() {
		data["last_perfect_date"] = string(s.LastPerfectDate)
	}
	return data
}
