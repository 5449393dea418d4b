package themed

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/opencode-ai/mdtheme/internal/themes"
)

// Client calls a remote ThemeService.
type Client struct {
	cc   grpc.ClientConnInterface
	conn *grpc.ClientConn
}

// Dial connects to a theme daemon at target (host:port) without TLS.
func Dial(target string, opts ...grpc.DialOption) (*Client, error) {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", target, err)
	}
	return &Client{cc: conn, conn: conn}, nil
}

// NewClient wraps an existing connection.
func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

// Close releases the connection opened by Dial.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// ListThemes fetches theme summaries in declaration order.
func (c *Client) ListThemes(ctx context.Context) ([]themes.Summary, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ListThemesMethod, &emptypb.Empty{}, out); err != nil {
		return nil, fmt.Errorf("list themes: %w", err)
	}

	summaries := make([]themes.Summary, 0, len(out.GetValues()))
	for i, value := range out.GetValues() {
		theme, err := themeFromStruct(value.GetStructValue())
		if err != nil {
			return nil, fmt.Errorf("list themes: entry %d: %w", i, err)
		}
		summaries = append(summaries, theme.Summary())
	}
	return summaries, nil
}

// GetTheme resolves key on the daemon; unknown keys yield the fallback theme.
func (c *Client) GetTheme(ctx context.Context, key string) (themes.Theme, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetThemeMethod, wrapperspb.String(key), out); err != nil {
		return themes.Theme{}, fmt.Errorf("get theme %q: %w", key, err)
	}
	return themeFromStruct(out)
}

// Status is the daemon identity returned by Ping.
type Status struct {
	Version    string        `json:"version"`
	Hostname   string        `json:"hostname"`
	StartedAt  time.Time     `json:"started_at"`
	Uptime     time.Duration `json:"uptime"`
	ThemeCount int           `json:"theme_count"`
	Fallback   string        `json:"fallback"`
}

// Ping checks that the daemon is reachable.
func (c *Client) Ping(ctx context.Context) (Status, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PingMethod, &emptypb.Empty{}, out); err != nil {
		return Status{}, fmt.Errorf("ping: %w", err)
	}

	fields := out.GetFields()
	startedAt, _ := time.Parse(time.RFC3339, fields["started_at"].GetStringValue())
	return Status{
		Version:    fields["version"].GetStringValue(),
		Hostname:   fields["hostname"].GetStringValue(),
		StartedAt:  startedAt,
		Uptime:     time.Duration(fields["uptime_seconds"].GetNumberValue() * float64(time.Second)),
		ThemeCount: int(fields["theme_count"].GetNumberValue()),
		Fallback:   fields["fallback"].GetStringValue(),
	}, nil
}
