package themed

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/opencode-ai/mdtheme/internal/themes"
)

// Server implements ThemeServiceServer over a read-only registry.
type Server struct {
	registry  *themes.Registry
	logger    zerolog.Logger
	startedAt time.Time
	hostname  string
	version   string
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithVersion sets the version reported by Ping.
func WithVersion(version string) ServerOption {
	return func(s *Server) {
		s.version = version
	}
}

// WithRegistry serves a registry other than the builtin one.
func WithRegistry(registry *themes.Registry) ServerOption {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// NewServer creates the theme service implementation.
func NewServer(logger zerolog.Logger, opts ...ServerOption) *Server {
	hostname, _ := os.Hostname()

	s := &Server{
		registry:  themes.Builtin(),
		logger:    logger,
		startedAt: time.Now(),
		hostname:  hostname,
		version:   "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListThemes returns every theme summary in declaration order.
func (s *Server) ListThemes(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	summaries := s.registry.List()
	values := make([]any, 0, len(summaries))
	for _, summary := range summaries {
		values = append(values, summaryFields(summary))
	}

	list, err := structpb.NewList(values)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode themes: %v", err)
	}
	return list, nil
}

// GetTheme resolves a key; unknown keys return the fallback theme.
func (s *Server) GetTheme(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	key := req.GetValue()
	theme, ok := s.registry.Lookup(key)
	if !ok {
		theme = s.registry.Fallback()
		s.logger.Debug().
			Str("key", key).
			Str("fallback", theme.Value).
			Msg("theme not found, serving fallback")
	}

	out, err := structpb.NewStruct(themeFields(theme))
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode theme %q: %v", theme.Value, err)
	}
	return out, nil
}

// Ping reports daemon identity and registry size.
func (s *Server) Ping(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(map[string]any{
		"version":        s.version,
		"hostname":       s.hostname,
		"started_at":     s.startedAt.UTC().Format(time.RFC3339),
		"uptime_seconds": time.Since(s.startedAt).Seconds(),
		"theme_count":    s.registry.Len(),
		"fallback":       s.registry.Fallback().Value,
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode status: %v", err)
	}
	return out, nil
}
