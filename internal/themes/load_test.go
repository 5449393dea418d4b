package themes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeThemeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}
	return path
}

func TestLoadTheme(t *testing.T) {
	dir := t.TempDir()
	path := writeThemeFile(t, dir, "solar.yaml", `value: solar
label: "  Solar "
type: Light
icon: 🌞
description: Warm light theme
`)

	theme, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme: %v", err)
	}

	if theme.Value != "solar" {
		t.Fatalf("expected value solar, got %q", theme.Value)
	}
	if theme.Label != "Solar" {
		t.Fatalf("expected trimmed label, got %q", theme.Label)
	}
	if theme.ColorMode != ColorModeLight {
		t.Fatalf("expected light mode, got %q", theme.ColorMode)
	}
	if theme.Source != path {
		t.Fatalf("expected source %q, got %q", path, theme.Source)
	}
}

func TestLoadThemeErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadTheme("")
	require.Error(t, err)

	_, err = LoadTheme(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	noValue := writeThemeFile(t, dir, "novalue.yaml", "label: X\ntype: light\nicon: x\ndescription: d\n")
	_, err = LoadTheme(noValue)
	require.ErrorContains(t, err, "value is required")

	badMode := writeThemeFile(t, dir, "badmode.yaml", "value: x\nlabel: X\ntype: sepia\nicon: x\ndescription: d\n")
	_, err = LoadTheme(badMode)
	require.ErrorContains(t, err, "unknown color mode")

	noIcon := writeThemeFile(t, dir, "noicon.yaml", "value: x\nlabel: X\ntype: dark\ndescription: d\n")
	_, err = LoadTheme(noIcon)
	require.ErrorIs(t, err, ErrInvalidTheme)
}

func TestLoadThemesFromDir(t *testing.T) {
	dir := t.TempDir()
	writeThemeFile(t, dir, "b.yaml", "value: zeta\nlabel: Z\ntype: dark\nicon: z\ndescription: d\n")
	writeThemeFile(t, dir, "a.yml", "value: alpha\nlabel: A\ntype: light\nicon: a\ndescription: d\n")
	writeThemeFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.yaml"), 0o755))

	loaded, err := LoadThemesFromDir(dir)
	require.NoError(t, err)
	require.Len(t, loaded, 2)
	require.Equal(t, "alpha", loaded[0].Value)
	require.Equal(t, "zeta", loaded[1].Value)

	missing, err := LoadThemesFromDir(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	require.Empty(t, missing)

	empty, err := LoadThemesFromDir("")
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestLoadThemesFromDirRejectsDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeThemeFile(t, dir, "one.yaml", "value: same\nlabel: A\ntype: light\nicon: a\ndescription: d\n")
	writeThemeFile(t, dir, "two.yaml", "value: same\nlabel: B\ntype: light\nicon: b\ndescription: d\n")

	_, err := LoadThemesFromDir(dir)
	require.ErrorIs(t, err, ErrDuplicateTheme)
}

func TestThemeSearchPaths(t *testing.T) {
	project := t.TempDir()
	paths := ThemeSearchPaths(project, "/opt/themes", "")

	require.Equal(t, filepath.Join(project, ".mdtheme", "themes"), paths[0])
	require.Equal(t, "/opt/themes", paths[1])
	require.Equal(t, filepath.Join(string(filepath.Separator), "usr", "share", "mdtheme", "themes"), paths[len(paths)-1])

	withoutProject := ThemeSearchPaths("")
	require.NotContains(t, withoutProject, filepath.Join("", ".mdtheme", "themes"))
}

func TestLoadFromDirsPrecedence(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	writeThemeFile(t, first, "wechat.yaml", "value: wechat\nlabel: WeChat Custom\ntype: light\nicon: 💬\ndescription: project override\n")
	writeThemeFile(t, second, "wechat.yaml", "value: wechat\nlabel: Ignored\ntype: dark\nicon: x\ndescription: shadowed\n")
	writeThemeFile(t, second, "solar.yaml", "value: solar\nlabel: Solar\ntype: light\nicon: 🌞\ndescription: user theme\n")

	registry, err := loadFromDirs([]string{first, second, filepath.Join(first, "missing")})
	require.NoError(t, err)

	require.Equal(t, "WeChat Custom", registry.Get("wechat").Label)
	require.Equal(t, filepath.Join(first, "wechat.yaml"), registry.Get("wechat").Source)
	require.Equal(t, "WeChat Custom", registry.Get("unknown").Label)
	require.True(t, registry.Has("solar"))
	require.Equal(t, Builtin().Len()+1, registry.Len())
	require.Equal(t, "wechat", registry.Keys()[0])
}

func TestLoadFromSearchPathsProject(t *testing.T) {
	project := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	writeThemeFile(t, filepath.Join(project, ".mdtheme", "themes"), "ink.yaml",
		"value: ink\nlabel: Ink\ntype: dark\nicon: 🖋\ndescription: project theme\n")

	registry, err := LoadFromSearchPaths(project)
	require.NoError(t, err)
	require.Equal(t, "Ink", registry.Get("ink").Label)
	require.Equal(t, FallbackKey, registry.Fallback().Value)
}

func TestParseBuiltinRejectsMalformedData(t *testing.T) {
	_, err := parseBuiltin([]byte("themes:\n  - value: a\n    label: A\n    type: light\n    icon: a\n    description: d\n  - value: a\n    label: B\n    type: light\n    icon: b\n    description: d\n"))
	require.ErrorIs(t, err, ErrDuplicateTheme)

	_, err = parseBuiltin([]byte("themes: ["))
	require.Error(t, err)
}
