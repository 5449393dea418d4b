package styles

import "github.com/opencode-ai/mdtheme/internal/themes"

// DarkPalette previews themes designed for dark backgrounds.
var DarkPalette = Palette{
	Mode: themes.ColorModeDark,
	Tokens: PaletteTokens{
		Background: "#0B0F14",
		Panel:      "#121821",
		Text:       "#E6EDF3",
		TextMuted:  "#8B9AAE",
		Border:     "#223043",
		Accent:     "#BD93F9",
		Focus:      "#7AA2F7",
		Warning:    "#D29922",
	},
}
