// Package cli implements the mdtheme command line.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/mdtheme/internal/config"
	"github.com/opencode-ai/mdtheme/internal/logging"
	"github.com/opencode-ai/mdtheme/internal/themes"
)

// Version is set at build time.
var Version = "dev"

var (
	cfgFile        string
	projectDir     string
	jsonOutput     bool
	jsonlOutput    bool
	nonInteractive bool
	noColor        bool

	appConfig   *config.Config
	appRegistry *themes.Registry
	v           = config.New()
)

var rootCmd = &cobra.Command{
	Use:           "mdtheme",
	Short:         "Browse article theme presets",
	Long:          "mdtheme lists and resolves the theme presets used to style markdown articles.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp(cmd)
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ~/.config/mdtheme/config.yaml)")
	flags.StringVar(&projectDir, "project", "", "project directory searched for .mdtheme/themes (default current directory)")
	flags.BoolVar(&jsonOutput, "json", false, "output JSON")
	flags.BoolVar(&jsonlOutput, "jsonl", false, "output JSON lines")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "never prompt; fail instead")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.String("log-level", "", "log level (debug, info, warn, error)")
	flags.String("log-format", "", "log format (console, json)")

	bindFlags()
}

func bindFlags() {
	flags := rootCmd.PersistentFlags()
	_ = v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = v.BindPFlag("logging.format", flags.Lookup("log-format"))
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initApp(cmd *cobra.Command) error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	if err := logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cmd.ErrOrStderr(),
	}); err != nil {
		return err
	}

	if noColor || os.Getenv("NO_COLOR") != "" {
		disableColor()
	}

	dir := projectDir
	if dir == "" {
		dir, _ = os.Getwd()
	}

	registry, err := themes.LoadFromSearchPaths(dir, cfg.Themes.Paths...)
	if err != nil {
		return &PreflightError{
			Message:  fmt.Sprintf("failed to load user themes: %v", err),
			Hint:     "Fix or remove the theme file named above",
			NextStep: "mdtheme paths",
		}
	}

	logger := logging.Component("cli")
	logger.Debug().
		Int("themes", registry.Len()).
		Int("user_themes", registry.Len()-themes.Builtin().Len()).
		Str("project", dir).
		Msg("theme registry loaded")

	if def := strings.TrimSpace(cfg.Themes.Default); def != "" && !registry.Has(def) {
		logger.Warn().
			Str("key", def).
			Str("fallback", registry.Fallback().Value).
			Msg("configured default theme not found")
	}

	appConfig = cfg
	appRegistry = registry
	return nil
}

// GetConfig returns the loaded configuration, or nil before initialization.
func GetConfig() *config.Config {
	return appConfig
}

// GetRegistry returns the loaded registry, defaulting to the builtin one.
func GetRegistry() *themes.Registry {
	if appRegistry == nil {
		return themes.Builtin()
	}
	return appRegistry
}
