package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/xvierd/habit-cli/internal/adapters/tui"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all habits, challenges and history",
	Long: `Permanently deletes the habit log, removing every habit, challenge and
completion, and zeroes the perfect-day counters. The stored name is kept.
This cannot be undone. Use --force to skip the confirmation prompt.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !confirmDestructive(cmd, "Delete all habits and history?", resetForce) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}

		if err := app.habits.Reset(cmd.Context()); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{"reset": true})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Habit log deleted. Fresh start.")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "Skip confirmation prompt")
}

// confirmDestructive asks before an irreversible action. On a terminal it
// shows a picker; otherwise it reads a typed "yes" from stdin.
func confirmDestructive(cmd *cobra.Command, question string, force bool) bool {
	if force {
		return true
	}
	if isTerminal(cmd.OutOrStdout()) {
		return tui.Confirm(question, &app.config.Theme)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Type 'yes' to confirm: ", question)
	reader := bufio.NewReader(cmd.InOrStdin())
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(strings.ToLower(input)) == "yes"
}
