package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/xvierd/habit-cli/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit settings",
	Long: `Show the current settings or change one with "habit config set <key> <value>".
Settings live in ~/.habit/config.toml and can be overridden with HABIT_* environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return showConfig(cmd)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Example: `  habit config set dashboard.week_start monday
  habit config set storage.backend json
  habit config set theme.color_done "#22C55E"`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Set(args[0], args[1]); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), map[string]interface{}{args[0]: args[1]})
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  Saved: %s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func showConfig(cmd *cobra.Command) error {
	cfg := app.config
	values := map[string]interface{}{
		"storage.backend":         cfg.Storage.Backend,
		"storage.data_dir":        cfg.Storage.DataDir,
		"dashboard.week_start":    cfg.Dashboard.WeekStart,
		"dashboard.show_thoughts": cfg.Dashboard.ShowThoughts,
		"notifications.enabled":   cfg.Notifications.Enabled,
		"notifications.sound":     cfg.Notifications.Sound,
		"log.level":               cfg.Log.Level,
		"theme.color_done":        cfg.Theme.ColorDone,
		"theme.color_pending":     cfg.Theme.ColorPending,
		"theme.color_locked":      cfg.Theme.ColorLocked,
		"theme.color_title":       cfg.Theme.ColorTitle,
		"theme.color_accent":      cfg.Theme.ColorAccent,
		"theme.color_help":        cfg.Theme.ColorHelp,
		"theme.color_error":       cfg.Theme.ColorError,
		"theme.icon_app":          cfg.Theme.IconApp,
		"theme.icon_streak":       cfg.Theme.IconStreak,
		"theme.icon_stats":        cfg.Theme.IconStats,
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), values)
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := cmd.OutOrStdout()
	if path, err := config.GetConfigPath(); err == nil {
		fmt.Fprintf(out, "\n  %s\n\n", dimStyle.Render(path))
	}
	for _, k := range keys {
		fmt.Fprintf(out, "  %-24s %v\n", k, values[k])
	}
	fmt.Fprintln(out)
	return nil
}
