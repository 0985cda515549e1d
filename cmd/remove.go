package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove [habit]",
	Aliases: []string{"rm", "delete"},
	Short:   "Remove a habit and its history",
	Long: `Remove a habit by id, id prefix or name. The habit's completion history
is deleted with it. Without an argument a picker is shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		habit, err := resolveHabitArg(cmd, args, "Remove which habit?")
		if err != nil || habit == nil {
			return err
		}

		err = app.habits.RemoveHabit(cmd.Context(), habit.ID)
		if ok, err := reportMutation(cmd, err); !ok {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"changed": true,
				"id":      habit.ID,
				"name":    habit.Name,
			})
		}

		fmt.Fprintf(cmd.OutOrStdout(), "🗑  Habit removed: %s\n", habit.Name)
		return nil
	},
}
