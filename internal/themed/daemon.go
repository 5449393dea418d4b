package themed

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"

	"github.com/opencode-ai/mdtheme/internal/config"
	"github.com/opencode-ai/mdtheme/internal/themes"
)

// Options configure the daemon runtime. Zero values fall back to config.
type Options struct {
	Hostname string
	Port     int
	Version  string
	Registry *themes.Registry
}

// Daemon serves the theme registry until its context is canceled.
type Daemon struct {
	cfg    *config.Config
	logger zerolog.Logger
	opts   Options

	server     *Server
	limiter    *RateLimiter
	grpcServer *grpc.Server
}

// New constructs a daemon with the provided configuration.
func New(cfg *config.Config, logger zerolog.Logger, opts Options) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if opts.Hostname == "" {
		opts.Hostname = cfg.Daemon.Host
	}
	if opts.Hostname == "" {
		opts.Hostname = "127.0.0.1"
	}
	if opts.Port == 0 {
		opts.Port = cfg.Daemon.Port
	}
	if opts.Port == 0 {
		opts.Port = config.DefaultDaemonPort
	}

	server := NewServer(logger, WithVersion(opts.Version), WithRegistry(opts.Registry))

	limiterOpts := []RateLimiterOption{}
	if cfg.Daemon.RequestsPerSecond > 0 && cfg.Daemon.Burst > 0 {
		limiterOpts = append(limiterOpts, WithGlobalLimit(RateLimitConfig{
			RequestsPerSecond: cfg.Daemon.RequestsPerSecond,
			BurstSize:         cfg.Daemon.Burst,
		}))
	}
	limiter := NewRateLimiter(limiterOpts...)

	grpcServer := grpc.NewServer(grpc.ChainUnaryInterceptor(
		requestLogger(logger),
		limiter.UnaryServerInterceptor(),
	))
	RegisterThemeServiceServer(grpcServer, server)

	return &Daemon{
		cfg:        cfg,
		logger:     logger,
		opts:       opts,
		server:     server,
		limiter:    limiter,
		grpcServer: grpcServer,
	}, nil
}

// Run listens on the configured address and serves until ctx is canceled.
func (d *Daemon) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("context is required")
	}

	bindAddr := d.bindAddr()
	listener, err := net.Listen("tcp", bindAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", bindAddr, err)
	}
	return d.Serve(ctx, listener)
}

// Serve serves on an existing listener until ctx is canceled.
func (d *Daemon) Serve(ctx context.Context, listener net.Listener) error {
	d.logger.Info().
		Str("bind", listener.Addr().String()).
		Str("version", d.opts.Version).
		Int("themes", d.server.registry.Len()).
		Msg("mdtheme gRPC server starting")

	errCh := make(chan error, 1)
	go func() {
		if err := d.grpcServer.Serve(listener); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		d.logger.Info().Msg("mdtheme server shutting down...")
		d.grpcServer.GracefulStop()
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("gRPC server error: %w", err)
		}
	}

	d.logger.Info().Msg("mdtheme server shutdown complete")
	return nil
}

func (d *Daemon) bindAddr() string {
	return net.JoinHostPort(d.opts.Hostname, strconv.Itoa(d.opts.Port))
}

// Server returns the underlying service implementation.
func (d *Daemon) Server() *Server {
	return d.server
}

// RateLimiter returns the limiter applied to incoming calls.
func (d *Daemon) RateLimiter() *RateLimiter {
	return d.limiter
}
