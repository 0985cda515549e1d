package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xvierd/habit-cli/internal/domain"
)

var toggleDay string

var toggleCmd = &cobra.Command{
	Use:     "toggle [habit]",
	Aliases: []string{"check", "done"},
	Short:   "Mark a habit done or not done",
	Long: `Flip a habit's completion for today, or for --day (YYYY-MM-DD).
Days before today are locked and cannot be changed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		habit, err := resolveHabitArg(cmd, args, "Toggle which habit?")
		if err != nil || habit == nil {
			return err
		}

		day := app.habits.Today()
		if toggleDay != "" {
			day, err = domain.ParseDayKey(toggleDay)
			if err != nil {
				return err
			}
		}

		before, err := app.habits.Summary(cmd.Context())
		if err != nil {
			return err
		}

		done, err := app.habits.ToggleHabit(cmd.Context(), habit.ID, day)
		if ok, err := reportMutation(cmd, err); !ok {
			return err
		}

		after, err := app.habits.Summary(cmd.Context())
		if err != nil {
			return err
		}
		perfect := after.PerfectDays > before.PerfectDays

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"changed":      true,
				"id":           habit.ID,
				"name":         habit.Name,
				"day":          string(day),
				"done":         done,
				"perfect_day":  perfect,
				"streak":       after.Streak,
				"perfect_days": after.PerfectDays,
			})
		}

		out := cmd.OutOrStdout()
		if done {
			fmt.Fprintf(out, "✔ %s done on %s\n", habit.Name, day)
		} else {
			fmt.Fprintf(out, "· %s not done on %s\n", habit.Name, day)
		}
		if perfect {
			fmt.Fprintf(out, "%s Perfect day! Streak: %d\n", app.config.Theme.IconStreak, after.Streak)
		}
		return nil
	},
}

func init() {
	toggleCmd.Flags().StringVar(&toggleDay, "day", "", "Day to toggle (YYYY-MM-DD), default today")
}
