package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/mdtheme/internal/themes"
)

func TestForMode(t *testing.T) {
	if got := ForMode(themes.ColorModeDark); got.Mode != themes.ColorModeDark {
		t.Fatalf("ForMode(dark) = %q", got.Mode)
	}
	if got := ForMode("sepia"); got.Mode != themes.ColorModeLight {
		t.Fatalf("ForMode(sepia) = %q, want light", got.Mode)
	}
}

func TestRenderCardIncludesDescriptor(t *testing.T) {
	theme := themes.Get("dracula")
	card := RenderCard(theme)

	for _, want := range []string{theme.Label, theme.Icon, theme.Value, theme.Description, "dark"} {
		if !strings.Contains(card, want) {
			t.Fatalf("card missing %q:\n%s", want, card)
		}
	}
	if strings.Contains(card, "source:") {
		t.Fatalf("builtin card should not show source:\n%s", card)
	}
}

func TestRenderCardShowsUserSource(t *testing.T) {
	theme := themes.Theme{Label: "Ink", Value: "ink", ColorMode: themes.ColorModeDark, Icon: "i", Description: "d", Source: "/tmp/ink.yaml"}
	if card := RenderCard(theme); !strings.Contains(card, "/tmp/ink.yaml") {
		t.Fatalf("card missing source:\n%s", card)
	}
}

func TestRenderCardWidthWraps(t *testing.T) {
	theme := themes.Theme{
		Label:       "Long",
		Value:       "long",
		ColorMode:   themes.ColorModeLight,
		Icon:        "L",
		Description: strings.Repeat("wrapped words ", 12),
	}

	const width = 32
	card := RenderCardWidth(theme, width)
	for _, line := range strings.Split(card, "\n") {
		if got := lipgloss.Width(line); got > width {
			t.Fatalf("line wider than %d (%d): %q", width, got, line)
		}
	}
	if unwrapped := RenderCard(theme); lipgloss.Width(unwrapped) <= width {
		t.Fatalf("unwrapped card unexpectedly narrow: %d", lipgloss.Width(unwrapped))
	}
}

func TestRenderRowMarksSelection(t *testing.T) {
	summary := themes.Get("github").Summary()

	selected := RenderRow(summary, true)
	if !strings.Contains(selected, ">") || !strings.Contains(selected, "GitHub") {
		t.Fatalf("unexpected selected row: %q", selected)
	}

	plain := RenderRow(summary, false)
	if strings.Contains(plain, ">") {
		t.Fatalf("unselected row should not have cursor: %q", plain)
	}
}
