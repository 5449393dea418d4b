// Package themes provides the registry of article theme presets.
package themes

import (
	"fmt"
	"strings"
)

// ColorMode reports whether a theme is designed for light or dark backgrounds.
type ColorMode string

const (
	ColorModeLight ColorMode = "light"
	ColorModeDark  ColorMode = "dark"
)

// ParseColorMode normalizes a color mode string.
func ParseColorMode(value string) (ColorMode, error) {
	mode := ColorMode(strings.ToLower(strings.TrimSpace(value)))
	switch mode {
	case ColorModeLight, ColorModeDark:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown color mode %q", value)
	}
}

// Theme describes one selectable visual style.
type Theme struct {
	Label       string    `yaml:"label" json:"label"`
	Value       string    `yaml:"value" json:"value"`
	ColorMode   ColorMode `yaml:"type" json:"type"`
	Icon        string    `yaml:"icon" json:"icon"`
	Description string    `yaml:"description" json:"description"`
	Source      string    `yaml:"-" json:"source,omitempty"` // file path or "builtin"
}

// Summary is the display shape returned by List.
type Summary struct {
	Label       string    `json:"label"`
	Value       string    `json:"value"`
	Icon        string    `json:"icon"`
	ColorMode   ColorMode `json:"type"`
	Description string    `json:"description"`
}

// Summary returns the display shape of the theme.
func (t Theme) Summary() Summary {
	return Summary{
		Label:       t.Label,
		Value:       t.Value,
		Icon:        t.Icon,
		ColorMode:   t.ColorMode,
		Description: t.Description,
	}
}

// IsDark reports whether the theme targets dark backgrounds.
func (t Theme) IsDark() bool {
	return t.ColorMode == ColorModeDark
}
