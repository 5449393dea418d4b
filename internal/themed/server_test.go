package themed

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/opencode-ai/mdtheme/internal/config"
	"github.com/opencode-ai/mdtheme/internal/themes"
)

func TestServerGetThemeFallback(t *testing.T) {
	server := NewServer(zerolog.Nop())

	known, err := server.GetTheme(context.Background(), wrapperspb.String("dracula"))
	require.NoError(t, err)
	require.Equal(t, "dracula", known.GetFields()["value"].GetStringValue())
	require.Equal(t, "dark", known.GetFields()["type"].GetStringValue())

	unknown, err := server.GetTheme(context.Background(), wrapperspb.String("does-not-exist"))
	require.NoError(t, err)
	require.Equal(t, themes.FallbackKey, unknown.GetFields()["value"].GetStringValue())

	nilReq, err := server.GetTheme(context.Background(), nil)
	require.NoError(t, err)
	require.Equal(t, themes.FallbackKey, nilReq.GetFields()["value"].GetStringValue())
}

func TestServerListThemesOrder(t *testing.T) {
	server := NewServer(zerolog.Nop())

	list, err := server.ListThemes(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	require.Len(t, list.GetValues(), themes.Builtin().Len())

	for i, key := range themes.Builtin().Keys() {
		fields := list.GetValues()[i].GetStructValue().GetFields()
		require.Equal(t, key, fields["value"].GetStringValue())
		_, hasSource := fields["source"]
		require.False(t, hasSource, "summaries carry no source")
	}
}

func TestServerPing(t *testing.T) {
	server := NewServer(zerolog.Nop(), WithVersion("test-version"))

	resp, err := server.Ping(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	require.Equal(t, "test-version", resp.GetFields()["version"].GetStringValue())
	require.Equal(t, float64(themes.Builtin().Len()), resp.GetFields()["theme_count"].GetNumberValue())
}

func startBufconn(t *testing.T, cfg *config.Config, opts Options) *Client {
	t.Helper()

	daemon, err := New(cfg, zerolog.Nop(), opts)
	require.NoError(t, err)

	listener := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- daemon.Serve(ctx, listener) }()

	client, err := Dial("passthrough:///bufnet", grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
		return listener.DialContext(ctx)
	}))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = client.Close()
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("daemon did not stop")
		}
	})
	return client
}

func TestClientRoundTrip(t *testing.T) {
	client := startBufconn(t, config.DefaultConfig(), Options{Version: "1.2.3"})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	summaries, err := client.ListThemes(ctx)
	require.NoError(t, err)
	require.Equal(t, themes.List(), summaries)

	wechat, err := client.GetTheme(ctx, "wechat")
	require.NoError(t, err)
	require.Equal(t, themes.Get("wechat"), wechat)

	missing, err := client.GetTheme(ctx, "")
	require.NoError(t, err)
	require.Equal(t, wechat, missing)

	st, err := client.Ping(ctx)
	require.NoError(t, err)
	require.Equal(t, "1.2.3", st.Version)
	require.Equal(t, themes.Builtin().Len(), st.ThemeCount)
	require.Equal(t, themes.FallbackKey, st.Fallback)
	require.False(t, st.StartedAt.IsZero())
}

func TestClientServesCustomRegistry(t *testing.T) {
	registry, err := themes.Builtin().Extend([]themes.Theme{
		{Label: "Ink", Value: "ink", ColorMode: themes.ColorModeDark, Icon: "i", Description: "user theme", Source: "/tmp/ink.yaml"},
	})
	require.NoError(t, err)

	client := startBufconn(t, config.DefaultConfig(), Options{Registry: registry})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	raw := NewClient(client.conn)
	ink, err := raw.GetTheme(ctx, "ink")
	require.NoError(t, err)
	require.Equal(t, "/tmp/ink.yaml", ink.Source)
	require.NoError(t, raw.Close())

	summaries, err := client.ListThemes(ctx)
	require.NoError(t, err)
	require.Equal(t, "ink", summaries[len(summaries)-1].Value)
}

func TestRequestIDHeader(t *testing.T) {
	client := startBufconn(t, config.DefaultConfig(), Options{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var echoed metadata.MD
	tagged := metadata.AppendToOutgoingContext(ctx, RequestIDHeader, "req-42")
	err := client.conn.Invoke(tagged, PingMethod, &emptypb.Empty{}, new(structpb.Struct), grpc.Header(&echoed))
	require.NoError(t, err)
	require.Equal(t, []string{"req-42"}, echoed.Get(RequestIDHeader))

	var generated metadata.MD
	err = client.conn.Invoke(ctx, PingMethod, &emptypb.Empty{}, new(structpb.Struct), grpc.Header(&generated))
	require.NoError(t, err)
	require.Len(t, generated.Get(RequestIDHeader), 1)
	require.NotEqual(t, "req-42", generated.Get(RequestIDHeader)[0])
}

func TestGlobalRateLimitRejects(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Daemon.RequestsPerSecond = 0.001
	cfg.Daemon.Burst = 1

	client := startBufconn(t, cfg, Options{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.GetTheme(ctx, "wechat")
	require.NoError(t, err)

	_, err = client.GetTheme(ctx, "wechat")
	require.Error(t, err)
	require.Equal(t, codes.ResourceExhausted, status.Code(err))
}
