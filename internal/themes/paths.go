package themes

import (
	"os"
	"path/filepath"
)

// ThemeSearchPaths returns theme search directories in precedence order.
// Extra directories are searched after the project directory and before the
// user and system directories.
func ThemeSearchPaths(projectDir string, extra ...string) []string {
	paths := make([]string, 0, 3+len(extra))
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, ".mdtheme", "themes"))
	}

	for _, dir := range extra {
		if dir != "" {
			paths = append(paths, dir)
		}
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "mdtheme", "themes"))
	}

	paths = append(paths, filepath.Join(string(filepath.Separator), "usr", "share", "mdtheme", "themes"))
	return paths
}

// LoadFromSearchPaths loads user themes with first-hit precedence and layers
// them over the builtin registry.
func LoadFromSearchPaths(projectDir string, extra ...string) (*Registry, error) {
	return loadFromDirs(ThemeSearchPaths(projectDir, extra...))
}

func loadFromDirs(dirs []string) (*Registry, error) {
	seen := make(map[string]struct{})
	overrides := make([]Theme, 0)

	for _, dir := range dirs {
		themes, err := LoadThemesFromDir(dir)
		if err != nil {
			return nil, err
		}
		for _, theme := range themes {
			if _, exists := seen[theme.Value]; exists {
				continue
			}
			seen[theme.Value] = struct{}{}
			overrides = append(overrides, *theme)
		}
	}

	return Builtin().Extend(overrides)
}
