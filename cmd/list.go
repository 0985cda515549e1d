package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List habits",
	Long:    `List all habits with today's state and current streak.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := app.habits.Summary(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list habits: %w", err)
		}

		if jsonOutput {
			habitList := make([]map[string]interface{}, 0, len(summary.Habits))
			for _, h := range summary.Habits {
				habitList = append(habitList, map[string]interface{}{
					"id":             h.ID,
					"name":           h.Name,
					"done_today":     h.DoneToday,
					"current_streak": h.Stats.CurrentStreak,
					"highest_streak": h.Stats.HighestStreak,
				})
			}
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"habits": habitList,
				"count":  len(habitList),
			})
		}

		out := cmd.OutOrStdout()
		if len(summary.Habits) == 0 {
			fmt.Fprintln(out, "No habits yet. Add one with: habit add <name>")
			return nil
		}

		fmt.Fprintf(out, "📋 Habits (%d):\n\n", len(summary.Habits))
		for _, h := range summary.Habits {
			icon := "⏳"
			if h.DoneToday {
				icon = "✅"
			}
			fmt.Fprintf(out, "%s %s (ID: %s)", icon, h.Name, shortID(h.ID))
			if h.Stats.CurrentStreak > 0 {
				fmt.Fprintf(out, "  🔥%d", h.Stats.CurrentStreak)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}
