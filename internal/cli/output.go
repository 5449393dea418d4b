package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// IsJSONOutput reports whether --json was requested.
func IsJSONOutput() bool {
	return jsonOutput
}

// IsJSONLOutput reports whether --jsonl was requested.
func IsJSONLOutput() bool {
	return jsonlOutput
}

// WriteOutput writes v as indented JSON, or as one JSON object per line for
// slices when --jsonl is set.
func WriteOutput(out io.Writer, v any) error {
	if IsJSONLOutput() {
		return writeJSONL(out, v)
	}

	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

func writeJSONL(out io.Writer, v any) error {
	encoder := json.NewEncoder(out)
	encoder.SetEscapeHTML(false)

	value := reflect.ValueOf(v)
	if value.Kind() != reflect.Slice {
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
		return nil
	}

	for i := 0; i < value.Len(); i++ {
		if err := encoder.Encode(value.Index(i).Interface()); err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
	}
	return nil
}

func disableColor() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
