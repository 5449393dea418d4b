package styles

import "github.com/opencode-ai/mdtheme/internal/themes"

// LightPalette previews themes designed for light backgrounds.
var LightPalette = Palette{
	Mode: themes.ColorModeLight,
	Tokens: PaletteTokens{
		Background: "#FFFFFF",
		Panel:      "#F6F8FA",
		Text:       "#1F2328",
		TextMuted:  "#656D76",
		Border:     "#D0D7DE",
		Accent:     "#07C160",
		Focus:      "#0969DA",
		Warning:    "#9A6700",
	},
}
