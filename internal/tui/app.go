// Package tui implements the interactive theme picker.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/opencode-ai/mdtheme/internal/themes"
	"github.com/opencode-ai/mdtheme/internal/tui/styles"
)

// Pick runs the picker program and returns the chosen key.
// The second result is false when the user cancels.
func Pick(registry *themes.Registry, current string, opts ...tea.ProgramOption) (string, bool, error) {
	program := tea.NewProgram(NewPicker(registry, current), opts...)
	final, err := program.Run()
	if err != nil {
		return "", false, err
	}

	picker, ok := final.(Picker)
	if !ok {
		return "", false, fmt.Errorf("unexpected picker model %T", final)
	}
	key, chosen := picker.Selected()
	return key, chosen, nil
}

// Picker is a bubbletea model that lists themes and lets the user choose one.
type Picker struct {
	registry  *themes.Registry
	summaries []themes.Summary
	cursor    int
	chosen    bool
	canceled  bool
	width     int
}

// NewPicker builds a picker with the cursor on current. A stale or unknown
// key lands on the fallback theme.
func NewPicker(registry *themes.Registry, current string) Picker {
	summaries := registry.List()
	start := registry.Get(current).Value

	cursor := 0
	for i, summary := range summaries {
		if summary.Value == start {
			cursor = i
			break
		}
	}

	return Picker{
		registry:  registry,
		summaries: summaries,
		cursor:    cursor,
	}
}

func (m Picker) Init() tea.Cmd {
	return nil
}

func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.summaries)-1 {
				m.cursor++
			}
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.summaries) - 1
		case "enter":
			m.chosen = true
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			m.canceled = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	}
	return m, nil
}

func (m Picker) View() string {
	if m.chosen || m.canceled {
		return ""
	}

	lines := make([]string, 0, len(m.summaries)+4)
	lines = append(lines, "Choose a theme", "")
	for i, summary := range m.summaries {
		lines = append(lines, styles.RenderRow(summary, i == m.cursor))
	}
	lines = append(lines, "")
	lines = append(lines, styles.RenderCardWidth(m.registry.Get(m.Current()), m.width))
	lines = append(lines, "↑/↓ move • enter select • q quit")

	return strings.Join(lines, "\n") + "\n"
}

// Current returns the key under the cursor.
func (m Picker) Current() string {
	if len(m.summaries) == 0 {
		return ""
	}
	return m.summaries[m.cursor].Value
}

// Selected returns the chosen key and whether a choice was made.
func (m Picker) Selected() (string, bool) {
	if !m.chosen {
		return "", false
	}
	return m.Current(), true
}
