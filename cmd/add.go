package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [name]",
	Short: "Add a new habit",
	Long:  `Add a new habit. Names are unique, ignoring case.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := strings.Join(args, " ")

		habit, err := app.habits.AddHabit(cmd.Context(), name)
		if ok, err := reportMutation(cmd, err); !ok {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"changed":    true,
				"id":         habit.ID,
				"name":       habit.Name,
				"created_at": habit.CreatedAt.Format("2006-01-02T15:04:05"),
			})
		}

		fmt.Fprintf(cmd.OutOrStdout(), "✅ Habit added: %s (ID: %s)\n", habit.Name, shortID(habit.ID))
		return nil
	},
}

// shortID returns the id prefix shown in listings.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
