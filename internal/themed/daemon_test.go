package themed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/mdtheme/internal/config"
)

func TestNewDefaultsBindAddr(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Daemon.Host = ""
	cfg.Daemon.Port = 0

	daemon, err := New(cfg, zerolog.Nop(), Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := fmt.Sprintf("127.0.0.1:%d", config.DefaultDaemonPort)
	if got := daemon.bindAddr(); got != want {
		t.Fatalf("bindAddr() = %q, want %q", got, want)
	}
}

func TestNewUsesConfigAndOptions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Daemon.Host = "0.0.0.0"
	cfg.Daemon.Port = 6100

	daemon, err := New(cfg, zerolog.Nop(), Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := daemon.bindAddr(); got != "0.0.0.0:6100" {
		t.Fatalf("bindAddr() = %q", got)
	}

	daemon, err = New(cfg, zerolog.Nop(), Options{Hostname: "localhost", Port: 6200})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := daemon.bindAddr(); got != "localhost:6200" {
		t.Fatalf("bindAddr() = %q", got)
	}
}

func TestNewRequiresConfig(t *testing.T) {
	if _, err := New(nil, zerolog.Nop(), Options{}); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestNewAppliesGlobalRateLimit(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Daemon.RequestsPerSecond = 5
	cfg.Daemon.Burst = 10

	daemon, err := New(cfg, zerolog.Nop(), Options{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	stats := daemon.RateLimiter().GlobalStats()
	if stats == nil || stats.BurstSize != 10 {
		t.Fatalf("unexpected global stats: %+v", stats)
	}
}

func TestRunReturnsOnCanceledContext(t *testing.T) {
	cfg := config.DefaultConfig()
	// High ephemeral port to avoid clashing with a running daemon.
	daemon, err := New(cfg, zerolog.Nop(), Options{Port: 50099})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- daemon.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after context cancellation")
	}
}
