// Package tui provides the terminal user interface implementation
// using the Bubbletea framework.
package tui

import (
	"os"
	"reflect"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/term"

	"github.com/xvierd/habit-cli/internal/config"
)

// resolveTheme fills any empty string fields in the given ThemeConfig with defaults.
// If theme is nil, returns the full default theme.
func resolveTheme(theme *config.ThemeConfig) config.ThemeConfig {
	defaults := config.DefaultThemeConfig()
	if theme == nil {
		return defaults
	}
	resolved := *theme
	rv := reflect.ValueOf(&resolved).Elem()
	dv := reflect.ValueOf(defaults)
	for i := 0; i < rv.NumField(); i++ {
		f := rv.Field(i)
		if f.Kind() == reflect.String && f.String() == "" {
			f.SetString(dv.Field(i).String())
		}
	}
	return resolved
}

// styles are the lipgloss styles derived from a theme.
type styles struct {
	title   lipgloss.Style
	dim     lipgloss.Style
	value   lipgloss.Style
	done    lipgloss.Style
	pending lipgloss.Style
	locked  lipgloss.Style
	accent  lipgloss.Style
	err     lipgloss.Style
	cursor  lipgloss.Style
}

func newStyles(theme config.ThemeConfig) styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorTitle)),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorHelp)),
		value:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorAccent)),
		done:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorDone)),
		pending: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorPending)),
		locked:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorLocked)),
		accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ColorAccent)),
		err:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.ColorError)),
		cursor:  lipgloss.NewStyle().Reverse(true),
	}
}

// getTerminalWidth returns the current terminal width, defaulting to 80.
func getTerminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil || w < 40 {
		return 80
	}
	return w
}
