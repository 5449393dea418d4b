package cli

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/mdtheme/internal/config"
	"github.com/opencode-ai/mdtheme/internal/logging"
	"github.com/opencode-ai/mdtheme/internal/themed"
)

var (
	serveHost string
	servePort int
	pingAddr  string
)

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(pingCmd)
	pingCmd.Flags().StringVar(&pingAddr, "addr", "", "daemon address host:port (default from config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "bind host (default from config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "bind port (default from config)")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve themes over gRPC",
	Long:  "Run a read-only gRPC service exposing ListThemes and GetTheme until interrupted.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			cfg = config.DefaultConfig()
		}

		daemon, err := themed.New(cfg, logging.Component("themed"), themed.Options{
			Hostname: serveHost,
			Port:     servePort,
			Version:  Version,
			Registry: GetRegistry(),
		})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return daemon.Run(ctx)
	},
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check a running theme daemon",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := pingAddr
		if addr == "" {
			cfg := GetConfig()
			if cfg == nil {
				cfg = config.DefaultConfig()
			}
			addr = net.JoinHostPort(cfg.Daemon.Host, strconv.Itoa(cfg.Daemon.Port))
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), remoteTimeout)
		defer cancel()

		client, err := themed.Dial(addr)
		if err != nil {
			return err
		}
		defer client.Close()

		st, err := client.Ping(ctx)
		if err != nil {
			return &PreflightError{
				Message:  fmt.Sprintf("theme daemon at %s is not reachable: %v", addr, err),
				Hint:     "Start it with `mdtheme serve`",
				NextStep: "mdtheme serve",
			}
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, st)
		}
		return writeTable(out, []string{"ADDR", "VERSION", "HOST", "UPTIME", "THEMES", "FALLBACK"}, [][]string{{
			addr,
			st.Version,
			st.Hostname,
			st.Uptime.Truncate(time.Second).String(),
			strconv.Itoa(st.ThemeCount),
			st.Fallback,
		}})
	},
}
