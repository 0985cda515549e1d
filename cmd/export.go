package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xvierd/habit-cli/internal/adapters/storage"
	"github.com/xvierd/habit-cli/internal/domain"
)

var (
	exportFormat string
	exportPeriod string
	importForce  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export habits and history",
	Long: `Export your habit history in markdown or CSV format, or the full
habit log as JSON that "habit import" can read back.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := app.habits.Snapshot(cmd.Context())
		if err != nil {
			return err
		}

		since, err := periodStart(exportPeriod, app.habits.Today())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch exportFormat {
		case "json":
			data, err := storage.EncodeSnapshot(log)
			if err != nil {
				return fmt.Errorf("failed to encode habit log: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		case "csv":
			return exportCSV(out, log, since)
		case "md", "markdown":
			return exportMarkdown(out, log, since, app.habits.Today())
		default:
			return fmt.Errorf("unsupported format %q (use md, csv or json)", exportFormat)
		}
	},
}

var importCmd = &cobra.Command{
	Use:   "import [file]",
	Short: "Replace the habit log with an exported JSON file",
	Long: `Load a habit log previously written by "habit export --format json"
(or saved by the browser dashboard) and make it the current log.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		log, err := storage.DecodeSnapshot(data)
		if errors.Is(err, domain.ErrCorruptedState) {
			return fmt.Errorf("%s is not a habit log export: %w", args[0], err)
		}
		if err != nil {
			return err
		}

		current, err := app.habits.Habits(cmd.Context())
		if err != nil {
			return err
		}
		if len(current) > 0 && !confirmDestructive(cmd, "Replace your current habits?", importForce) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}

		if err := app.habits.Import(cmd.Context(), log); err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{
				"habits":     len(log.Habits),
				"challenges": len(log.Challenges),
			})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "✅ Imported %d habits and %d challenges\n", len(log.Habits), len(log.Challenges))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "md", "Output format: md, csv or json")
	exportCmd.Flags().StringVar(&exportPeriod, "period", "all", "Time period for md and csv: week, month, or all")
	importCmd.Flags().BoolVarP(&importForce, "force", "f", false, "Replace existing habits without asking")
}

// periodStart returns the first day included by period; zero means no limit.
func periodStart(period string, today domain.DayKey) (domain.DayKey, error) {
	switch period {
	case "week":
		return today.AddDays(-6), nil
	case "month":
		return domain.DayOf(today.Time(time.Local).AddDate(0, -1, 0)), nil
	case "all", "":
		return "", nil
	default:
		return "", fmt.Errorf("unsupported period %q (use week, month or all)", period)
	}
}

func inPeriod(day, since domain.DayKey) bool {
	return since.IsZero() || !day.Before(since)
}

func exportMarkdown(w io.Writer, log *domain.HabitLog, since, today domain.DayKey) error {
	summary := domain.Summarize(log, today)

	fmt.Fprintf(w, "# Habit Export\n\n")
	fmt.Fprintf(w, "Generated: %s\n\n", time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "- Perfect days: %d\n", summary.PerfectDays)
	fmt.Fprintf(w, "- Streak: %d\n", summary.Streak)
	fmt.Fprintf(w, "- Highest streak: %d\n", summary.HighestStreakEver)
	fmt.Fprintf(w, "- Total completed: %d\n\n", summary.TotalCompleted)

	for i, h := range log.Habits {
		stats := summary.Habits[i].Stats
		fmt.Fprintf(w, "## %s\n", h.Name)
		fmt.Fprintf(w, "- Current streak: %d\n", stats.CurrentStreak)
		fmt.Fprintf(w, "- Highest streak: %d\n", stats.HighestStreak)
		fmt.Fprintf(w, "- Total completed: %d\n", stats.TotalCompleted)
		for _, day := range h.CompletedDays() {
			if inPeriod(day, since) {
				fmt.Fprintf(w, "- [x] %s\n", day)
			}
		}
		fmt.Fprintln(w)
	}

	if len(log.Challenges) > 0 {
		fmt.Fprintf(w, "## Challenges\n")
		for _, c := range log.Challenges {
			fmt.Fprintf(w, "- %s\n", c.Name)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func exportCSV(w io.Writer, log *domain.HabitLog, since domain.DayKey) error {
	cw := csv.NewWriter(w)

	_ = cw.Write([]string{"date", "habit_id", "habit", "done"})
	for _, h := range log.Habits {
		for _, day := range h.CompletedDays() {
			if !inPeriod(day, since) {
				continue
			}
			_ = cw.Write([]string{string(day), h.ID, h.Name, "true"})
		}
	}

	cw.Flush()
	return cw.Error()
}
