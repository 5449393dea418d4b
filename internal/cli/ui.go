package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/opencode-ai/mdtheme/internal/tui"
)

var pickCurrent string

func init() {
	rootCmd.AddCommand(pickCmd)
	pickCmd.Flags().StringVar(&pickCurrent, "current", "", "theme to preselect (default from config)")
}

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Choose a theme interactively",
	Long:  "Open an interactive picker and print the chosen theme key.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if IsNonInteractive() {
			return &PreflightError{
				Message:  "theme picker requires an interactive terminal",
				Hint:     "Run without --non-interactive and with a TTY, or pass a key to `mdtheme show`",
				NextStep: "mdtheme list",
			}
		}

		current := pickCurrent
		if current == "" {
			if cfg := GetConfig(); cfg != nil {
				current = cfg.Themes.Default
			}
		}

		key, chosen, err := tui.Pick(GetRegistry(), current,
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(cmd.ErrOrStderr()),
		)
		if err != nil {
			return fmt.Errorf("run picker: %w", err)
		}
		if !chosen {
			return nil
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, GetRegistry().Get(key))
		}
		_, err = fmt.Fprintln(out, key)
		return err
	},
}
