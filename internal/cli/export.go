package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/opencode-ai/mdtheme/internal/themes"
)

var (
	exportDir   string
	exportForce bool
)

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportDir, "dir", "d", "", "output directory (default <project>/.mdtheme/themes)")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "overwrite existing files")
}

var exportCmd = &cobra.Command{
	Use:   "export [theme...]",
	Short: "Export themes as editable files",
	Long:  "Write themes as YAML files that can be edited and placed on the theme search path. With no arguments every theme is exported.",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := exportDir
		if dir == "" {
			base := projectDir
			if base == "" {
				base, _ = os.Getwd()
			}
			dir = filepath.Join(base, ".mdtheme", "themes")
		}

		selected, err := selectThemes(GetRegistry(), args)
		if err != nil {
			return err
		}

		written, err := exportThemes(dir, selected, exportForce)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, written)
		}
		for _, path := range written {
			fmt.Fprintln(out, path)
		}
		return nil
	},
}

// selectThemes resolves keys strictly; export never substitutes the fallback.
func selectThemes(registry *themes.Registry, keys []string) ([]themes.Theme, error) {
	if len(keys) == 0 {
		return registry.Themes(), nil
	}

	selected := make([]themes.Theme, 0, len(keys))
	var missing []string
	for _, key := range keys {
		theme, ok := registry.Lookup(key)
		if !ok {
			missing = append(missing, key)
			continue
		}
		selected = append(selected, theme)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("unknown theme(s): %s", strings.Join(missing, ", "))
	}
	return selected, nil
}

func exportThemes(dir string, selected []themes.Theme, force bool) ([]string, error) {
	paths := make([]string, 0, len(selected))
	for _, theme := range selected {
		path := filepath.Join(dir, theme.Value+".yaml")
		if filepath.Dir(path) != filepath.Clean(dir) {
			return nil, fmt.Errorf("theme %q does not map to a file in %s", theme.Value, dir)
		}
		if !force {
			if _, err := os.Stat(path); err == nil {
				return nil, fmt.Errorf("%s already exists (use --force to overwrite)", path)
			} else if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("stat %s: %w", path, err)
			}
		}
		paths = append(paths, path)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	written := make([]string, 0, len(selected))
	for i, theme := range selected {
		data, err := yaml.Marshal(theme)
		if err != nil {
			return written, fmt.Errorf("encode theme %q: %w", theme.Value, err)
		}
		if err := os.WriteFile(paths[i], data, 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", paths[i], err)
		}
		written = append(written, paths[i])
	}
	return written, nil
}
