package themes

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var (
	// ErrInvalidTheme is returned when a descriptor fails validation.
	ErrInvalidTheme = errors.New("invalid theme")
	// ErrDuplicateTheme is returned when two descriptors share a key.
	ErrDuplicateTheme = errors.New("duplicate theme")
)

// Registry is an immutable, ordered set of themes keyed by value.
// Unknown keys resolve to the fallback theme, which is the first declared entry.
type Registry struct {
	themes   []Theme
	index    map[string]int
	fallback string
}

// NewRegistry validates themes and builds a registry in the given order.
func NewRegistry(themes []Theme) (*Registry, error) {
	if len(themes) == 0 {
		return nil, fmt.Errorf("%w: registry requires at least one theme", ErrInvalidTheme)
	}

	r := &Registry{
		themes: make([]Theme, 0, len(themes)),
		index:  make(map[string]int, len(themes)),
	}
	for i, theme := range themes {
		if err := validateTheme(theme); err != nil {
			return nil, fmt.Errorf("theme %d: %w", i+1, err)
		}
		if _, exists := r.index[theme.Value]; exists {
			return nil, fmt.Errorf("%w %q", ErrDuplicateTheme, theme.Value)
		}
		r.index[theme.Value] = len(r.themes)
		r.themes = append(r.themes, theme)
	}
	r.fallback = r.themes[0].Value

	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on invalid input.
func MustNewRegistry(themes []Theme) *Registry {
	r, err := NewRegistry(themes)
	if err != nil {
		panic(fmt.Sprintf("themes: %v", err))
	}
	return r
}

func validateTheme(theme Theme) error {
	if strings.TrimSpace(theme.Value) == "" {
		return fmt.Errorf("%w: value is required", ErrInvalidTheme)
	}
	if theme.Value != strings.TrimSpace(theme.Value) {
		return fmt.Errorf("%w %q: value has surrounding whitespace", ErrInvalidTheme, theme.Value)
	}
	if !validKey(theme.Value) {
		return fmt.Errorf("%w %q: value must not contain path separators or \"..\"", ErrInvalidTheme, theme.Value)
	}
	if strings.TrimSpace(theme.Label) == "" {
		return fmt.Errorf("%w %q: label is required", ErrInvalidTheme, theme.Value)
	}
	if strings.TrimSpace(theme.Icon) == "" {
		return fmt.Errorf("%w %q: icon is required", ErrInvalidTheme, theme.Value)
	}
	if strings.TrimSpace(theme.Description) == "" {
		return fmt.Errorf("%w %q: description is required", ErrInvalidTheme, theme.Value)
	}
	if theme.ColorMode != ColorModeLight && theme.ColorMode != ColorModeDark {
		return fmt.Errorf("%w %q: unknown color mode %q", ErrInvalidTheme, theme.Value, theme.ColorMode)
	}
	return nil
}

// validKey reports whether value is safe to use as a file name.
func validKey(value string) bool {
	if strings.ContainsAny(value, `/\`) || strings.Contains(value, "..") {
		return false
	}
	return value != "." && value == filepath.Base(value)
}

// List returns the display summaries in declaration order.
// The returned slice is freshly allocated on each call.
func (r *Registry) List() []Summary {
	summaries := make([]Summary, 0, len(r.themes))
	for _, theme := range r.themes {
		summaries = append(summaries, theme.Summary())
	}
	return summaries
}

// Get returns the theme registered under key, or the fallback theme.
func (r *Registry) Get(key string) Theme {
	if theme, ok := r.Lookup(key); ok {
		return theme
	}
	return r.themes[r.index[r.fallback]]
}

// Lookup returns the theme registered under key and whether it exists.
func (r *Registry) Lookup(key string) (Theme, bool) {
	i, ok := r.index[key]
	if !ok {
		return Theme{}, false
	}
	return r.themes[i], true
}

// Has reports whether key is registered.
func (r *Registry) Has(key string) bool {
	_, ok := r.index[key]
	return ok
}

// Fallback returns the theme served for unknown keys.
func (r *Registry) Fallback() Theme {
	return r.themes[r.index[r.fallback]]
}

// Keys returns registered keys in declaration order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.themes))
	for _, theme := range r.themes {
		keys = append(keys, theme.Value)
	}
	return keys
}

// Themes returns a copy of the registered descriptors in declaration order.
func (r *Registry) Themes() []Theme {
	out := make([]Theme, len(r.themes))
	copy(out, r.themes)
	return out
}

// Len returns the number of registered themes.
func (r *Registry) Len() int {
	return len(r.themes)
}

// Extend returns a new registry with overrides applied. An override whose key
// already exists replaces that entry in place; new keys are appended in order.
// The fallback key is kept.
func (r *Registry) Extend(overrides []Theme) (*Registry, error) {
	merged := r.Themes()
	positions := make(map[string]int, len(r.index))
	for key, i := range r.index {
		positions[key] = i
	}

	seen := make(map[string]struct{}, len(overrides))
	for _, theme := range overrides {
		if _, dup := seen[theme.Value]; dup {
			return nil, fmt.Errorf("%w %q", ErrDuplicateTheme, theme.Value)
		}
		seen[theme.Value] = struct{}{}

		if i, exists := positions[theme.Value]; exists {
			merged[i] = theme
			continue
		}
		positions[theme.Value] = len(merged)
		merged = append(merged, theme)
	}

	return NewRegistry(merged)
}
