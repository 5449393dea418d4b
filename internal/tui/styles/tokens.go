// Package styles maps theme color modes to terminal styles.
package styles

import "github.com/opencode-ai/mdtheme/internal/themes"

// PaletteTokens defines the semantic color roles used to preview a theme.
type PaletteTokens struct {
	Background string
	Panel      string
	Text       string
	TextMuted  string
	Border     string
	Accent     string
	Focus      string
	Warning    string
}

// Palette bundles tokens with the color mode they serve.
type Palette struct {
	Mode   themes.ColorMode
	Tokens PaletteTokens
}

// Palettes lists available palettes by color mode.
var Palettes = map[themes.ColorMode]Palette{
	themes.ColorModeLight: LightPalette,
	themes.ColorModeDark:  DarkPalette,
}

// ForMode returns the palette for a color mode, defaulting to light.
func ForMode(mode themes.ColorMode) Palette {
	if palette, ok := Palettes[mode]; ok {
		return palette
	}
	return LightPalette
}
