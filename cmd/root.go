// Package cmd provides the CLI commands for the habit tracker.
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/xvierd/habit-cli/internal/adapters/tui"
	"github.com/xvierd/habit-cli/internal/domain"
)

var (
	// Version info (set at build time via ldflags)
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"

	// Global flags
	dbPath     string
	jsonOutput bool
	configPath string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "habit",
	Short: "Habit - a weekly habit tracker for the terminal",
	Long: `Habit tracks recurring habits day by day and keeps score of your
streaks, perfect days and totals.

Run "habit" with no arguments to open the interactive dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeServices()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return cleanupServices()
	},
	RunE: runDashboard,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the data file or directory (default: ~/.habit)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: ~/.habit/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Write logs to stderr")

	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("Habit CLI\nVersion: {{.Version}}\n")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(weekCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(resetCmd)
}

// runDashboard opens the interactive dashboard, or prints it when stdout
// is not a terminal.
func runDashboard(cmd *cobra.Command, args []string) error {
	ctx := setupSignalHandler()

	thought := ""
	if app.config.Dashboard.ShowThoughts {
		thought = tui.PickThought()
	}

	if jsonOutput {
		return printDashboardJSON(cmd, cmd.OutOrStdout())
	}

	if !isTerminal(cmd.OutOrStdout()) {
		d, err := app.state.GetDashboard(ctx)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), tui.RenderDashboard(d, &app.config.Theme, tui.RenderOptions{
			Width:   80,
			Thought: thought,
		}))
		return nil
	}

	return tui.Run(ctx, app.state, &app.config.Theme, thought)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(f.Fd())
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

var dimStyle = lipgloss.NewStyle().Faint(true)

// reportMutation turns a rejected mutation into CLI output. Silent no-ops
// print a dim note and succeed; user-visible rejections become errors.
// It returns true when the caller should print its success message.
func reportMutation(cmd *cobra.Command, err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if domain.IsUserVisible(err) {
		return false, err
	}
	if domain.IsNoop(err) {
		if jsonOutput {
			return false, printJSON(cmd.OutOrStdout(), map[string]interface{}{"changed": false})
		}
		fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render("nothing changed"))
		return false, nil
	}
	return false, err
}

// resolveHabitArg finds the habit named by args, or asks for one
// interactively when no argument was given.
func resolveHabitArg(cmd *cobra.Command, args []string, title string) (*domain.Habit, error) {
	ctx := cmd.Context()
	if len(args) == 0 {
		if !isTerminal(cmd.OutOrStdout()) {
			return nil, errors.New("a habit id or name is required")
		}
		habits, err := app.habits.Habits(ctx)
		if err != nil {
			return nil, err
		}
		h, ok := tui.PickHabit(title, habits, app.habits.Today(), &app.config.Theme)
		if !ok {
			return nil, nil
		}
		return h, nil
	}

	query := strings.Join(args, " ")
	h, err := app.habits.ResolveHabit(ctx, query)
	if errors.Is(err, domain.ErrHabitNotFound) {
		return nil, fmt.Errorf("no habit matches %q", query)
	}
	return h, err
}
