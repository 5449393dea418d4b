package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/mdtheme/internal/themes"
)

// Styles contains lipgloss styles derived from palette tokens.
type Styles struct {
	Palette  Palette
	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Badge    lipgloss.Style
	Warning  lipgloss.Style
}

// StylesFor builds styles for the palette matching a theme's color mode.
func StylesFor(theme themes.Theme) Styles {
	return BuildStyles(ForMode(theme.ColorMode))
}

// BuildStyles converts palette tokens into lipgloss styles.
func BuildStyles(palette Palette) Styles {
	tokens := palette.Tokens

	return Styles{
		Palette:  palette,
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Bold(true),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.TextMuted)),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Accent)),
		Card:     lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Text)).Background(lipgloss.Color(tokens.Panel)).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(tokens.Border)).Padding(0, 1),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Focus)).Bold(true),
		Badge:    lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Background)).Background(lipgloss.Color(tokens.Accent)).Padding(0, 1),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color(tokens.Warning)),
	}
}

// RenderCard renders a multi-line preview of a theme.
func RenderCard(theme themes.Theme) string {
	return RenderCardWidth(theme, 0)
}

// RenderCardWidth renders the preview wrapped to fit width columns,
// borders included. A width of zero or less disables wrapping.
func RenderCardWidth(theme themes.Theme, width int) string {
	s := StylesFor(theme)
	card := s.Card
	if width > 2 {
		card = card.Width(width - 2)
	}

	lines := []string{
		fmt.Sprintf("%s %s  %s", theme.Icon, s.Title.Render(theme.Label), s.Badge.Render(string(theme.ColorMode))),
		s.Muted.Render(theme.Value),
		s.Text.Render(theme.Description),
	}
	if theme.Source != "" && theme.Source != "builtin" {
		lines = append(lines, s.Warning.Render("source: "+theme.Source))
	}

	return card.Render(strings.Join(lines, "\n"))
}

// RenderRow renders a single picker line for a theme summary.
func RenderRow(summary themes.Summary, selected bool) string {
	s := BuildStyles(ForMode(summary.ColorMode))

	cursor := "  "
	label := s.Text.Render(summary.Label)
	if selected {
		cursor = s.Selected.Render("> ")
		label = s.Selected.Render(summary.Label)
	}

	return fmt.Sprintf("%s%s %s %s", cursor, summary.Icon, label, s.Muted.Render(summary.Description))
}
