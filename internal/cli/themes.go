package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/mdtheme/internal/logging"
	"github.com/opencode-ai/mdtheme/internal/themed"
	"github.com/opencode-ai/mdtheme/internal/themes"
	"github.com/opencode-ai/mdtheme/internal/tui/styles"
)

const remoteTimeout = 5 * time.Second

var (
	listMode   string
	listRemote string
	showRemote string
)

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(pathsCmd)

	listCmd.Flags().StringVar(&listMode, "mode", "", "only show themes for a color mode (light, dark)")
	listCmd.Flags().StringVar(&listRemote, "remote", "", "query a running daemon at host:port instead of the local registry")
	showCmd.Flags().StringVar(&showRemote, "remote", "", "query a running daemon at host:port instead of the local registry")
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List available themes",
	Long:    "List available themes in display order. Builtin themes come first, followed by user themes.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var summaries []themes.Summary
		if listRemote != "" {
			ctx, cancel := context.WithTimeout(cmd.Context(), remoteTimeout)
			defer cancel()

			client, err := themed.Dial(listRemote)
			if err != nil {
				return err
			}
			defer client.Close()

			summaries, err = client.ListThemes(ctx)
			if err != nil {
				return err
			}
		} else {
			summaries = GetRegistry().List()
		}

		filtered, err := filterByMode(summaries, listMode)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, filtered)
		}
		return writeThemeList(out, filtered)
	},
}

var showCmd = &cobra.Command{
	Use:   "show <theme>",
	Short: "Show a theme",
	Long:  "Show a theme by key. Unknown keys resolve to the fallback theme.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.TrimSpace(args[0])

		var theme themes.Theme
		if showRemote != "" {
			ctx, cancel := context.WithTimeout(cmd.Context(), remoteTimeout)
			defer cancel()

			client, err := themed.Dial(showRemote)
			if err != nil {
				return err
			}
			defer client.Close()

			theme, err = client.GetTheme(ctx, key)
			if err != nil {
				return err
			}
		} else {
			theme = GetRegistry().Get(key)
		}

		if theme.Value != key {
			logger := logging.Component("cli")
			logger.Warn().
				Str("key", key).
				Str("fallback", theme.Value).
				Msg("theme not found, showing fallback")
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, theme)
		}
		_, err := fmt.Fprintln(out, styles.RenderCard(theme))
		return err
	},
}

var pathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show theme search paths",
	Long:  "Show the directories searched for user theme files, in precedence order.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := projectDir
		if dir == "" {
			dir, _ = os.Getwd()
		}
		var extra []string
		if cfg := GetConfig(); cfg != nil {
			extra = cfg.Themes.Paths
		}

		entries := searchPathEntries(themes.ThemeSearchPaths(dir, extra...))
		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, entries)
		}

		rows := make([][]string, 0, len(entries))
		for _, entry := range entries {
			rows = append(rows, []string{entry.Path, formatYesNo(entry.Exists)})
		}
		return writeTable(out, []string{"PATH", "EXISTS"}, rows)
	},
}

// SearchPathEntry is one row of `mdtheme paths`.
type SearchPathEntry struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

func searchPathEntries(paths []string) []SearchPathEntry {
	entries := make([]SearchPathEntry, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		entries = append(entries, SearchPathEntry{Path: path, Exists: err == nil && info.IsDir()})
	}
	return entries
}

func filterByMode(summaries []themes.Summary, mode string) ([]themes.Summary, error) {
	if strings.TrimSpace(mode) == "" {
		return summaries, nil
	}
	want, err := themes.ParseColorMode(mode)
	if err != nil {
		return nil, err
	}

	filtered := make([]themes.Summary, 0, len(summaries))
	for _, summary := range summaries {
		if summary.ColorMode == want {
			filtered = append(filtered, summary)
		}
	}
	return filtered, nil
}

func writeThemeList(out io.Writer, summaries []themes.Summary) error {
	if len(summaries) == 0 {
		_, err := fmt.Fprintln(out, "No themes found.")
		return err
	}

	rows := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, []string{
			summary.Value,
			summary.Icon,
			summary.Label,
			string(summary.ColorMode),
			summary.Description,
		})
	}
	return writeTable(out, []string{"KEY", "ICON", "LABEL", "MODE", "DESCRIPTION"}, rows)
}
