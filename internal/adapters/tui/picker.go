package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/xvierd/habit-cli/internal/config"
	"github.com/xvierd/habit-cli/internal/domain"
)

// choice is one option of a choiceModel.
type choice struct {
	label string
	note  string
}

// choiceModel picks one option, either from a vertical list or from a
// single inline row. Digits jump straight to an option.
type choiceModel struct {
	prompt  string
	options []choice
	inline  bool
	cursor  int
	aborted bool
	st      styles
}

func (m choiceModel) Init() tea.Cmd { return nil }

func (m choiceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	prev, next := "up", "down"
	if m.inline {
		prev, next = "left", "right"
	}

	switch s := key.String(); s {
	case prev, "k", "h":
		m.cursor = max(m.cursor-1, 0)
	case next, "j", "l":
		m.cursor = min(m.cursor+1, len(m.options)-1)
	case "enter":
		return m, tea.Quit
	case "ctrl+c", "esc", "q":
		m.aborted = true
		return m, tea.Quit
	default:
		if len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.options) {
				m.cursor = i
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m choiceModel) View() string {
	var b strings.Builder

	if m.inline {
		b.WriteString(m.st.title.Render("  "+m.prompt) + "  ")
		for i, o := range m.options {
			text := fmt.Sprintf("%d %s", i+1, o.label)
			if i == m.cursor {
				b.WriteString(m.st.accent.Bold(true).Render(" ▸ " + text + " "))
			} else {
				b.WriteString(m.st.dim.Render("   " + text + " "))
			}
		}
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString("\n" + m.st.title.Render("  "+m.prompt) + "\n\n")
	for i, o := range m.options {
		line := fmt.Sprintf(" %-*s %s", nameColumn+2, o.label, o.note)
		if i == m.cursor {
			b.WriteString("  " + m.st.accent.Bold(true).Render("▸"+line) + "\n")
		} else {
			b.WriteString(m.st.dim.Render("   "+line) + "\n")
		}
	}
	b.WriteString("\n" + m.st.dim.Render("  ↑/↓ move · enter choose · esc cancel") + "\n")
	return b.String()
}

func runChoice(m choiceModel) (int, bool) {
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return 0, false
	}
	fm := final.(choiceModel)
	if fm.aborted {
		return 0, false
	}
	return fm.cursor, true
}

// PickHabit lets the user choose one of habits. ok is false when aborted.
func PickHabit(title string, habits []*domain.Habit, today domain.DayKey, theme *config.ThemeConfig) (h *domain.Habit, ok bool) {
	if len(habits) == 0 {
		return nil, false
	}
	i, ok := runChoice(newHabitChoice(title, habits, today, resolveTheme(theme)))
	if !ok {
		return nil, false
	}
	return habits[i], true
}

func newHabitChoice(title string, habits []*domain.Habit, today domain.DayKey, theme config.ThemeConfig) choiceModel {
	options := make([]choice, len(habits))
	for i, h := range habits {
		note := cellMark(h.Completed(today))
		if h.Completed(today) {
			note += " done today"
		}
		if h.Analytics.CurrentStreak > 0 {
			note += fmt.Sprintf("  🔥%d", h.Analytics.CurrentStreak)
		}
		options[i] = choice{label: truncate(h.Name, nameColumn), note: note}
	}
	return choiceModel{prompt: title, options: options, st: newStyles(theme)}
}

// Confirm asks a yes/no question; anything but an explicit yes is a no.
func Confirm(question string, theme *config.ThemeConfig) bool {
	i, ok := runChoice(newConfirm(question, resolveTheme(theme)))
	return ok && i == 1
}

func newConfirm(question string, theme config.ThemeConfig) choiceModel {
	return choiceModel{
		prompt:  question,
		options: []choice{{label: "No"}, {label: "Yes"}},
		inline:  true,
		st:      newStyles(theme),
	}
}

// TextPromptResult holds the outcome of a text prompt.
type TextPromptResult struct {
	Value   string
	Aborted bool
}

type textPromptModel struct {
	prompt  string
	input   textinput.Model
	aborted bool
	st      styles
}

func newTextPrompt(prompt, placeholder string, theme config.ThemeConfig) textPromptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 120
	ti.Width = 50
	ti.Focus()
	return textPromptModel{prompt: prompt, input: ti, st: newStyles(theme)}
}

func (m textPromptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textPromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m textPromptModel) View() string {
	return "\n" + m.st.title.Render("  "+m.prompt) + " " + m.input.View() + "\n\n" +
		m.st.dim.Render("  enter confirm · esc cancel") + "\n"
}

// RunTextPrompt reads one line of text. The value is trimmed.
func RunTextPrompt(prompt, placeholder string, theme *config.ThemeConfig) TextPromptResult {
	final, err := tea.NewProgram(newTextPrompt(prompt, placeholder, resolveTheme(theme))).Run()
	if err != nil {
		return TextPromptResult{Aborted: true}
	}
	fm := final.(textPromptModel)
	if fm.aborted {
		return TextPromptResult{Aborted: true}
	}
	return TextPromptResult{Value: strings.TrimSpace(fm.input.Value())}
}
