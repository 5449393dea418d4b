package themes

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

// FallbackKey is the builtin theme served for unknown keys.
const FallbackKey = "wechat"

//go:embed builtin/themes.yaml
var builtinData []byte

var builtin = mustLoadBuiltin()

type builtinFile struct {
	Themes []Theme `yaml:"themes"`
}

func mustLoadBuiltin() *Registry {
	r, err := parseBuiltin(builtinData)
	if err != nil {
		panic(fmt.Sprintf("themes: load builtin themes: %v", err))
	}
	if r.Fallback().Value != FallbackKey {
		panic(fmt.Sprintf("themes: builtin fallback is %q, want %q", r.Fallback().Value, FallbackKey))
	}
	return r
}

func parseBuiltin(data []byte) (*Registry, error) {
	var file builtinFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse builtin themes: %w", err)
	}
	for i := range file.Themes {
		file.Themes[i].Source = "builtin"
	}
	return NewRegistry(file.Themes)
}

// Builtin returns the process-wide registry of themes bundled with mdtheme.
func Builtin() *Registry {
	return builtin
}

// List returns summaries of the builtin themes in declaration order.
func List() []Summary {
	return builtin.List()
}

// Get returns the builtin theme registered under key, or the fallback theme.
func Get(key string) Theme {
	return builtin.Get(key)
}
