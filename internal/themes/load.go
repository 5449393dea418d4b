package themes

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadTheme reads a single user theme from disk.
func LoadTheme(path string) (*Theme, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("theme path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", path, err)
	}

	theme, err := parseTheme(data)
	if err != nil {
		return nil, fmt.Errorf("parse theme %s: %w", path, err)
	}
	theme.Source = path
	return theme, nil
}

// LoadThemesFromDir loads all themes from a directory, sorted by value.
// A missing directory yields no themes.
func LoadThemesFromDir(dir string) ([]*Theme, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Theme{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []*Theme{}, nil
		}
		return nil, fmt.Errorf("read themes dir %s: %w", dir, err)
	}

	themes := make([]*Theme, 0)
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		path := filepath.Join(dir, name)
		theme, err := LoadTheme(path)
		if err != nil {
			return nil, err
		}
		if prev, exists := seen[theme.Value]; exists {
			return nil, fmt.Errorf("%w %q in %s and %s", ErrDuplicateTheme, theme.Value, prev, path)
		}
		seen[theme.Value] = path
		themes = append(themes, theme)
	}

	sort.Slice(themes, func(i, j int) bool {
		return themes[i].Value < themes[j].Value
	})

	return themes, nil
}

func parseTheme(data []byte) (*Theme, error) {
	var theme Theme
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return nil, err
	}

	theme.Value = strings.TrimSpace(theme.Value)
	if theme.Value == "" {
		return nil, fmt.Errorf("theme value is required")
	}
	theme.Label = strings.TrimSpace(theme.Label)
	theme.Icon = strings.TrimSpace(theme.Icon)
	theme.Description = strings.TrimSpace(theme.Description)

	mode, err := ParseColorMode(string(theme.ColorMode))
	if err != nil {
		return nil, err
	}
	theme.ColorMode = mode

	if err := validateTheme(theme); err != nil {
		return nil, err
	}

	return &theme, nil
}
