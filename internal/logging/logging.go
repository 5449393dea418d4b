// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu   sync.RWMutex
	base = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// Config controls logger output.
type Config struct {
	Level  string
	Format string // console or json
	Output io.Writer
}

// Init configures the global level and base logger.
func Init(cfg Config) error {
	level := zerolog.InfoLevel
	if strings.TrimSpace(cfg.Level) != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level)))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var writer io.Writer
	switch strings.ToLower(cfg.Format) {
	case "", "console":
		writer = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case "json":
		writer = out
	default:
		return fmt.Errorf("invalid log format %q", cfg.Format)
	}

	zerolog.SetGlobalLevel(level)

	mu.Lock()
	base = zerolog.New(writer).With().Timestamp().Logger()
	mu.Unlock()
	return nil
}

// Logger returns the base logger.
func Logger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Component returns a child logger tagged with the component name.
func Component(name string) zerolog.Logger {
	return Logger().With().Str("component", name).Logger()
}
