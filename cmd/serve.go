package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/teemow/calctl/internal/instrumentation"
	"github.com/teemow/calctl/internal/server"
	"github.com/teemow/calctl/internal/tools/account_tools"
	"github.com/teemow/calctl/internal/tools/calendar_tools"
)

func newServeCmd() *cobra.Command {
	var (
		debugMode      bool
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server to provide Google
Calendar tools for AI assistants over stdio.

Every tool selects one of the stored accounts by email; authorize
accounts with 'calctl account add' before starting the server.

Metrics:
  A Prometheus /metrics endpoint is served on a dedicated port
  (default :9090). Disable it with --metrics-enabled=false or adjust
  the address with --metrics-addr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(debugMode, metricsEnabled, metricsAddr)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Serve Prometheus metrics")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", server.DefaultMetricsAddr, "Address for the metrics server")

	return cmd
}

func runServe(debugMode, metricsEnabled bool, metricsAddr string) error {
	// Stdout carries the MCP transport; logs go to stderr.
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	if !metricsEnabled {
		instrConfig.Enabled = false
	}
	if err := instrConfig.Validate(); err != nil {
		return fmt.Errorf("invalid instrumentation config: %w", err)
	}

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize instrumentation: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			slog.Error("instrumentation shutdown failed", "error", err)
		}
	}()

	var metricsServer *server.MetricsServer
	if metricsEnabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsAddr,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				slog.Error("metrics server failed", "error", err)
			}
		}()
	}

	st, err := openStore()
	if err != nil {
		return err
	}

	serverContext := server.NewServerContext(shutdownCtx, st, provider)
	defer func() {
		if metricsServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(ctx); err != nil {
				slog.Error("metrics server shutdown failed", "error", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			slog.Error("server context shutdown failed", "error", err)
		}
	}()

	mcpSrv := mcpserver.NewMCPServer("calctl", version,
		mcpserver.WithToolCapabilities(true),
	)

	if err := registerAllTools(mcpSrv, serverContext); err != nil {
		return err
	}

	return runStdioServer(mcpSrv)
}

func registerAllTools(mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext) error {
	if err := account_tools.RegisterAccountTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register account tools: %w", err)
	}

	if err := calendar_tools.RegisterCalendarTools(mcpSrv, serverContext); err != nil {
		return fmt.Errorf("failed to register calendar tools: %w", err)
	}

	return nil
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}
