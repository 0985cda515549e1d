package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const glyphRows = 5

// glyphs holds a block-letter rendering of each decimal digit, indexed by value.
var glyphs = [10][glyphRows]string{
	{"████", "█  █", "█  █", "█  █", "████"},
	{" █ ", "██ ", " █ ", " █ ", "███"},
	{"████", "   █", "████", "█   ", "████"},
	{"████", "   █", "████", "   █", "████"},
	{"█  █", "█  █", "████", "   █", "   █"},
	{"████", "█   ", "████", "   █", "████"},
	{"████", "█   ", "████", "█  █", "████"},
	{"████", "   █", "  █ ", " █  ", " █  "},
	{"████", "█  █", "████", "█  █", "████"},
	{"████", "█  █", "████", "   █", "████"},
}

// renderBigNumber draws the streak counter in block digits. Terminals
// narrower than 40 columns get the plain number.
func renderBigNumber(n int, color lipgloss.Color, width int) string {
	style := lipgloss.NewStyle().Bold(true).Foreground(color)
	digits := strconv.Itoa(n)
	if width < 40 || n < 0 {
		return style.Render(digits)
	}

	rows := make([]string, glyphRows)
	for r := range rows {
		parts := make([]string, len(digits))
		for i := range digits {
			parts[i] = glyphs[digits[i]-'0'][r]
		}
		rows[r] = style.Render(strings.Join(parts, " "))
	}
	return strings.Join(rows, "\n")
}
