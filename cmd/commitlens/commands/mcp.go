package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/commitlens/pkg/mcp"
	"github.com/Sumatoshi-tech/commitlens/pkg/observability"
)

const metricsReadHeaderTimeout = 5 * time.Second

// NewMCPCommand creates the MCP server command.
func NewMCPCommand() *cobra.Command {
	var metricsAddr string

	cmd := &cobra.Command{
		Use:   "mcp [change-log.csv|url]",
		Short: "Start MCP server for AI agent integration",
		Long: `Start a Model Context Protocol (MCP) server on stdio transport.

The server loads the change log into one session and exposes it as tools:
  - commitlens_summary: summary statistics of the log
  - commitlens_window: move the time window by progress or bound
  - commitlens_brush: brush the hour x weekday scatter
  - commitlens_focus: focus a narrative step
  - commitlens_snapshot: current session snapshot

--metrics-addr additionally serves Prometheus metrics at /metrics.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd, args, envOptions{mode: observability.ModeMCP, prometheus: metricsAddr != ""})
			if err != nil {
				return err
			}
			defer e.close()

			ctx := cmd.Context()

			if metricsAddr != "" {
				stop, serveErr := serveMetrics(ctx, metricsAddr, e.providers.MetricsHandler, e.providers.Logger)
				if serveErr != nil {
					return serveErr
				}
				defer stop()

				e.providers.Logger.InfoContext(ctx, "serving metrics", "addr", metricsAddr)
			}

			srv := mcp.NewServer(mcp.ServerDeps{
				Session: e.session,
				Logger:  e.providers.Logger,
				Metrics: e.metrics,
				Tracer:  e.providers.Tracer,
			})

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9464)")

	return cmd
}

// serveMetrics starts the /metrics endpoint and returns a function that
// stops it.
func serveMetrics(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) (func(), error) {
	var lc net.ListenConfig

	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen metrics: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)

	server := &http.Server{Handler: mux, ReadHeaderTimeout: metricsReadHeaderTimeout}

	go func() {
		serveErr := server.Serve(ln)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Warn("metrics server stopped", "error", serveErr)
		}
	}()

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsReadHeaderTimeout)
		defer cancel()

		_ = server.Shutdown(shutdownCtx)
	}, nil
}
