package tui

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/xvierd/habit-cli/internal/config"
	"github.com/xvierd/habit-cli/internal/domain"
)

// LongDateLayout formats the dashboard date, e.g. "Thursday, 15 Oct 2026".
const LongDateLayout = "Monday, 02 Jan 2006"

const (
	nameColumn  = 18
	chartHeight = 5
)

// RenderOptions controls static dashboard rendering.
type RenderOptions struct {
	Width int
	// Thought is shown under the date; empty hides it.
	Thought string
	// ShowChallenges adds the challenges pane.
	ShowChallenges bool
}

// PickThought returns a random motivational line.
func PickThought() string {
	return domain.Thoughts[rand.IntN(len(domain.Thoughts))]
}

// RenderDashboard draws the full dashboard as plain terminal output.
func RenderDashboard(d *domain.Dashboard, theme *config.ThemeConfig, opts RenderOptions) string {
	st := newStyles(resolveTheme(theme))
	if opts.Width <= 0 {
		opts.Width = 80
	}

	var b strings.Builder
	b.WriteString(renderHeader(d, st, resolveTheme(theme), opts.Thought))
	b.WriteString("\n")
	b.WriteString(renderWeekGrid(d, st, -1, -1))
	b.WriteString("\n")
	b.WriteString(renderTodayProgress(d, resolveTheme(theme), st, opts.Width))
	b.WriteString("\n")
	b.WriteString(RenderSummary(d.Summary, theme, opts.Width))
	if chart, err := RenderChart(d.Series, d.Week, theme); err == nil {
		b.WriteString("\n")
		b.WriteString(chart)
	}
	if opts.ShowChallenges {
		b.WriteString("\n")
		b.WriteString(renderChallenges(d.Challenges, st))
	}
	return b.String()
}

func renderHeader(d *domain.Dashboard, st styles, theme config.ThemeConfig, thought string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s\n", theme.IconApp, st.title.Render("Hello, "+d.Greeting))
	fmt.Fprintf(&b, "  %s\n", st.dim.Render(d.Now.Format(LongDateLayout)))
	if thought != "" {
		fmt.Fprintf(&b, "  %s\n", st.accent.Italic(true).Render("“"+thought+"”"))
	}
	return b.String()
}

// renderWeekGrid draws one row per habit with a cell per weekday. selHabit
// and selDay mark the cursor cell; pass -1 for none.
func renderWeekGrid(d *domain.Dashboard, st styles, selHabit, selDay int) string {
	var b strings.Builder

	b.WriteString("  " + strings.Repeat(" ", nameColumn))
	for _, day := range d.Week {
		label := fmt.Sprintf(" %-3s ", day.Label)
		if day.IsToday {
			label = st.value.Render(label)
		} else {
			label = st.dim.Render(label)
		}
		b.WriteString(label)
	}
	b.WriteString("\n")

	if len(d.Habits) == 0 {
		fmt.Fprintf(&b, "  %s\n", st.dim.Render("No habits yet. Add one to get started."))
		return b.String()
	}

	for i, h := range d.Habits {
		name := truncate(h.Name, nameColumn-1)
		fmt.Fprintf(&b, "  %-*s", nameColumn, name)
		for j, day := range d.Week {
			cell := renderCell(h.Completed(day.Key), day.Locked, st)
			if i == selHabit && j == selDay {
				cell = st.cursor.Render(fmt.Sprintf("[ %s ]", cellMark(h.Completed(day.Key))))
			}
			b.WriteString(cell)
		}
		if h.Analytics.CurrentStreak > 0 {
			b.WriteString(st.accent.Render(fmt.Sprintf("  🔥%d", h.Analytics.CurrentStreak)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func cellMark(done bool) string {
	if done {
		return "✔"
	}
	return "·"
}

func renderCell(done, locked bool, st styles) string {
	cell := fmt.Sprintf("  %s  ", cellMark(done))
	switch {
	case locked:
		return st.locked.Render(cell)
	case done:
		return st.done.Render(cell)
	default:
		return st.pending.Render(cell)
	}
}

func renderTodayProgress(d *domain.Dashboard, theme config.ThemeConfig, st styles, width int) string {
	total := len(d.Habits)
	if total == 0 {
		return ""
	}
	done := 0
	for _, h := range d.Habits {
		if h.Completed(d.Today()) {
			done++
		}
	}

	bar := progress.New(progress.WithGradient(theme.ColorAccent, theme.ColorDone))
	bar.Width = min(max(width-30, 10), 40)
	return fmt.Sprintf("  %s %s %s\n",
		st.dim.Render("Today"),
		bar.ViewAs(float64(done)/float64(total)),
		st.value.Render(fmt.Sprintf("%d/%d", done, total)),
	)
}

// RenderSummary draws the global counters and habit totals.
func RenderSummary(s domain.Summary, theme *config.ThemeConfig, width int) string {
	resolved := resolveTheme(theme)
	st := newStyles(resolved)

	var b strings.Builder
	fmt.Fprintf(&b, "  %s %s\n", resolved.IconStreak, st.dim.Render("Perfect-day streak"))
	for _, line := range strings.Split(renderBigNumber(s.Streak, lipgloss.Color(resolved.ColorAccent), width), "\n") {
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")

	rows := []struct {
		label string
		value int
	}{
		{"Perfect days", s.PerfectDays},
		{"Highest streak", s.HighestStreakEver},
		{"Total completed", s.TotalCompleted},
		{"Skipped days", s.SkippedDays},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "  %s %s\n",
			st.dim.Render(fmt.Sprintf("%-16s", r.label)),
			st.value.Render(fmt.Sprintf("%d", r.value)),
		)
	}
	if !s.LastPerfectDate.IsZero() {
		fmt.Fprintf(&b, "  %s %s\n",
			st.dim.Render(fmt.Sprintf("%-16s", "Last perfect day")),
			st.value.Render(string(s.LastPerfectDate)),
		)
	}
	return b.String()
}

// RenderHabitStats draws a per-habit table of streaks, totals and skipped days.
func RenderHabitStats(s domain.Summary, theme *config.ThemeConfig) string {
	st := newStyles(resolveTheme(theme))

	var b strings.Builder
	fmt.Fprintf(&b, "  %s\n", st.title.Render("Habits"))
	fmt.Fprintf(&b, "  %s\n", st.dim.Render(strings.Repeat("─", 62)))
	if len(s.Habits) == 0 {
		fmt.Fprintf(&b, "  %s\n", st.dim.Render("No habits yet."))
		return b.String()
	}
	fmt.Fprintf(&b, "  %s\n", st.dim.Render(fmt.Sprintf("%-*s %7s %7s %7s %7s %5s", nameColumn, "", "current", "best", "total", "skipped", "7d")))
	for _, h := range s.Habits {
		mark := st.pending.Render("·")
		if h.DoneToday {
			mark = st.done.Render("✔")
		}
		fmt.Fprintf(&b, "  %s %-*s%s %7d %7d %7d %4.0f%%\n",
			mark,
			nameColumn-2, truncate(h.Name, nameColumn-3),
			st.value.Render(fmt.Sprintf("%7d", h.Stats.CurrentStreak)),
			h.Stats.HighestStreak,
			h.Stats.TotalCompleted,
			h.SkippedDays,
			h.WeekRate*100,
		)
	}
	return b.String()
}

// RenderChart draws the weekly performance series as vertical bars. The
// series must have exactly one value per weekday.
func RenderChart(series []int, week []domain.WeekDay, theme *config.ThemeConfig) (string, error) {
	if err := domain.ValidateSeries(series); err != nil {
		return "", err
	}
	if len(week) != len(series) {
		return "", domain.ErrSeriesLength
	}
	st := newStyles(resolveTheme(theme))

	peak := 0
	for _, v := range series {
		peak = max(peak, v)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "  %s\n", st.dim.Render("This week"))
	for row := chartHeight; row >= 1; row-- {
		b.WriteString("  ")
		for _, v := range series {
			height := 0
			if peak > 0 {
				height = int(math.Round(float64(v) / float64(peak) * chartHeight))
			}
			if v > 0 && height < 1 {
				height = 1
			}
			if height >= row {
				b.WriteString(st.accent.Render(" " + buildBar(3) + " "))
			} else {
				b.WriteString("     ")
			}
		}
		b.WriteString("\n")
	}
	b.WriteString("  ")
	for _, day := range week {
		b.WriteString(st.dim.Render(fmt.Sprintf(" %-3s ", day.Label)))
	}
	b.WriteString("\n  ")
	for _, v := range series {
		b.WriteString(st.value.Render(fmt.Sprintf(" %3d ", v)))
	}
	b.WriteString("\n")
	return b.String(), nil
}

func renderChallenges(challenges []domain.Challenge, st styles) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %s\n", st.title.Render("Challenges"))
	if len(challenges) == 0 {
		fmt.Fprintf(&b, "  %s\n", st.dim.Render("No challenges yet."))
		return b.String()
	}
	for _, c := range challenges {
		fmt.Fprintf(&b, "  %s %s\n", st.accent.Render("◆"), c.Name)
	}
	return b.String()
}

// buildBar creates a horizontal bar using block characters.
func buildBar(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat("█", width)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
