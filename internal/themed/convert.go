package themed

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/opencode-ai/mdtheme/internal/themes"
)

func summaryFields(summary themes.Summary) map[string]any {
	return map[string]any{
		"label":       summary.Label,
		"value":       summary.Value,
		"icon":        summary.Icon,
		"type":        string(summary.ColorMode),
		"description": summary.Description,
	}
}

func themeFields(theme themes.Theme) map[string]any {
	fields := summaryFields(theme.Summary())
	if theme.Source != "" {
		fields["source"] = theme.Source
	}
	return fields
}

func stringField(st *structpb.Struct, name string) string {
	return st.GetFields()[name].GetStringValue()
}

func themeFromStruct(st *structpb.Struct) (themes.Theme, error) {
	if st == nil {
		return themes.Theme{}, fmt.Errorf("empty theme payload")
	}
	mode, err := themes.ParseColorMode(stringField(st, "type"))
	if err != nil {
		return themes.Theme{}, fmt.Errorf("decode theme %q: %w", stringField(st, "value"), err)
	}
	return themes.Theme{
		Label:       stringField(st, "label"),
		Value:       stringField(st, "value"),
		ColorMode:   mode,
		Icon:        stringField(st, "icon"),
		Description: stringField(st, "description"),
		Source:      stringField(st, "source"),
	}, nil
}
