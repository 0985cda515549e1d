package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/habit-cli/internal/config"
	"github.com/xvierd/habit-cli/internal/domain"
	"github.com/xvierd/habit-cli/internal/ports"
)

type inputMode int

const (
	modeBrowse inputMode = iota
	modeAdd
	modeConfirmRemove
)

// Model is the interactive dashboard.
type Model struct {
	ctx      context.Context
	provider ports.MCPStateProvider

	dash    *domain.Dashboard
	theme   config.ThemeConfig
	width   int
	thought string

	habit int
	day   int

	mode           inputMode
	input          textinput.Model
	showChallenges bool

	// status is a one-line message under the grid, cleared on the next key.
	status string
	err    error
}

// NewModel creates the interactive dashboard over provider.
func NewModel(ctx context.Context, provider ports.MCPStateProvider, theme *config.ThemeConfig, thought string) (Model, error) {
	ti := textinput.New()
	ti.Placeholder = "Habit name"
	ti.CharLimit = 80
	ti.Width = 40

	m := Model{
		ctx:      ctx,
		provider: provider,
		theme:    resolveTheme(theme),
		width:    getTerminalWidth(),
		thought:  thought,
		input:    ti,
	}
	if err := m.refresh(); err != nil {
		return m, err
	}
	m.day = m.todayIndex()
	return m, nil
}

// Err returns the error that stopped the dashboard, if any.
func (m Model) Err() error {
	return m.err
}

func (m *Model) refresh() error {
	d, err := m.provider.GetDashboard(m.ctx)
	if err != nil {
		return fmt.Errorf("failed to load dashboard: %w", err)
	}
	m.dash = d
	if m.habit >= len(d.Habits) {
		m.habit = max(len(d.Habits)-1, 0)
	}
	return nil
}

func (m Model) todayIndex() int {
	for i, day := range m.dash.Week {
		if day.IsToday {
			return i
		}
	}
	return 0
}

func (m Model) selectedHabit() *domain.Habit {
	if m.habit < 0 || m.habit >= len(m.dash.Habits) {
		return nil
	}
	return m.dash.Habits[m.habit]
}

// Init initializes the TUI.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeAdd:
			return m.updateAdd(msg)
		case modeConfirmRemove:
			return m.updateConfirmRemove(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		if m.habit > 0 {
			m.habit--
		}
	case "down", "j":
		if m.habit < len(m.dash.Habits)-1 {
			m.habit++
		}
	case "left", "h":
		if m.day > 0 {
			m.day--
		}
	case "right", "l":
		if m.day < len(m.dash.Week)-1 {
			m.day++
		}
	case " ", "space", "enter":
		return m.toggleSelected()
	case "a":
		m.mode = modeAdd
		m.input.Reset()
		m.input.Focus()
		return m, textinput.Blink
	case "d":
		if m.selectedHabit() != nil {
			m.mode = modeConfirmRemove
		}
	case "c":
		m.showChallenges = !m.showChallenges
	}
	return m, nil
}

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	h := m.selectedHabit()
	if h == nil {
		return m, nil
	}
	day := m.dash.Week[m.day]
	if day.Locked {
		return m, nil
	}
	_, err := m.provider.ToggleHabit(m.ctx, h.ID, day.Key)
	return m.afterMutation(err)
}

func (m Model) updateAdd(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		name := m.input.Value()
		m.mode = modeBrowse
		m.input.Blur()
		_, err := m.provider.AddHabit(m.ctx, name)
		next, cmd := m.afterMutation(err)
		nm := next.(Model)
		if err == nil {
			nm.habit = len(nm.dash.Habits) - 1
		}
		return nm, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirmRemove(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.mode = modeBrowse
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "y", "Y":
		h := m.selectedHabit()
		if h == nil {
			return m, nil
		}
		return m.afterMutation(m.provider.RemoveHabit(m.ctx, h.ID))
	}
	return m, nil
}

// afterMutation reloads the dashboard and surfaces user-visible errors.
// Rejected no-ops change nothing on screen.
func (m Model) afterMutation(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		if domain.IsUserVisible(err) {
			m.status = err.Error()
			return m, nil
		}
		if domain.IsNoop(err) {
			return m, nil
		}
		m.err = err
		return m, tea.Quit
	}

	if err := m.refresh(); err != nil {
		m.err = err
		return m, tea.Quit
	}
	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	st := newStyles(m.theme)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(renderHeader(m.dash, st, m.theme, m.thought))
	b.WriteString("\n")

	b.WriteString(renderWeekGrid(m.dash, st, m.habit, m.day))
	b.WriteString("\n")

	switch m.mode {
	case modeAdd:
		b.WriteString(st.title.Render("  New habit:") + " " + m.input.View() + "\n")
	case modeConfirmRemove:
		if h := m.selectedHabit(); h != nil {
			b.WriteString(st.err.Render(fmt.Sprintf("  Remove %q and its history? (y/n)", h.Name)) + "\n")
		}
	default:
		if m.status != "" {
			b.WriteString(st.err.Render("  "+m.status) + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(renderTodayProgress(m.dash, m.theme, st, m.width))
	b.WriteString("\n")
	b.WriteString(RenderSummary(m.dash.Summary, &m.theme, m.width))

	if chart, err := RenderChart(m.dash.Series, m.dash.Week, &m.theme); err == nil {
		b.WriteString("\n")
		b.WriteString(chart)
	}

	if m.showChallenges {
		b.WriteString("\n")
		b.WriteString(renderChallenges(m.dash.Challenges, st))
	}

	b.WriteString("\n")
	b.WriteString(st.dim.Render("  ↑/↓ habit · ←/→ day · space toggle · a add · d remove · c challenges · q quit") + "\n")

	return b.String()
}

// Run starts the interactive dashboard and blocks until the user quits.
func Run(ctx context.Context, provider ports.MCPStateProvider, theme *config.ThemeConfig, thought string) error {
	m, err := NewModel(ctx, provider, theme, thought)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("dashboard failed: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
