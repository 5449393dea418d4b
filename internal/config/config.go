// Package config loads mdtheme configuration from file, environment and flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DefaultDaemonPort is the default gRPC port for `mdtheme serve`.
const DefaultDaemonPort = 50071

// EnvPrefix prefixes every environment override, e.g. MDTHEME_LOG_LEVEL.
const EnvPrefix = "MDTHEME"

// Config is the top-level configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Themes  ThemesConfig  `mapstructure:"themes"`
	Daemon  DaemonConfig  `mapstructure:"daemon"`
}

// LoggingConfig controls zerolog output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// ThemesConfig controls where user themes are found and which theme is
// preselected by consumers.
type ThemesConfig struct {
	Default string   `mapstructure:"default"`
	Paths   []string `mapstructure:"paths"`
}

// DaemonConfig controls the gRPC theme service.
type DaemonConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	// RequestsPerSecond and Burst set a global rate limit when both are positive.
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Themes: ThemesConfig{
			Default: "wechat",
		},
		Daemon: DaemonConfig{
			Host: "127.0.0.1",
			Port: DefaultDaemonPort,
		},
	}
}

// New returns a viper instance seeded with defaults and env bindings.
func New() *viper.Viper {
	v := viper.New()
	def := DefaultConfig()

	v.SetDefault("logging.level", def.Logging.Level)
	v.SetDefault("logging.format", def.Logging.Format)
	v.SetDefault("themes.default", def.Themes.Default)
	v.SetDefault("themes.paths", []string{})
	v.SetDefault("daemon.host", def.Daemon.Host)
	v.SetDefault("daemon.port", def.Daemon.Port)
	v.SetDefault("daemon.requests_per_second", def.Daemon.RequestsPerSecond)
	v.SetDefault("daemon.burst", def.Daemon.Burst)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("logging.level", EnvPrefix+"_LOG_LEVEL", EnvPrefix+"_LOGGING_LEVEL")
	_ = v.BindEnv("logging.format", EnvPrefix+"_LOG_FORMAT", EnvPrefix+"_LOGGING_FORMAT")

	return v
}

// DefaultConfigDir returns ~/.config/mdtheme.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".config", "mdtheme")
}

// Load reads configuration through v. An explicit path must exist; otherwise
// config.yaml in the default config directory is used when present.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir := DefaultConfigDir(); dir != "" {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks values that cannot be defaulted.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Logging.Format) {
	case "console", "json":
	default:
		return fmt.Errorf("invalid logging.format %q (want console or json)", c.Logging.Format)
	}
	if c.Daemon.Port < 0 || c.Daemon.Port > 65535 {
		return fmt.Errorf("invalid daemon.port %d", c.Daemon.Port)
	}
	if c.Daemon.RequestsPerSecond < 0 || c.Daemon.Burst < 0 {
		return fmt.Errorf("daemon rate limit must not be negative")
	}
	return nil
}
