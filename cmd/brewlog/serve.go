package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/brewlog/internal/app"
	"github.com/rpggio/brewlog/internal/config"
	"github.com/rpggio/brewlog/internal/httpapi"
	"github.com/rpggio/brewlog/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		transport string
		host      string
		port      int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the MCP server",
		Long: "Serves the brew log as an MCP server over stdio, or over HTTP together " +
			"with the JSON API and a health check.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			if transport != "" {
				cfg.Server.Transport = transport
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if port != 0 {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runServe(cmd, cfg)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "", "transport: stdio or http (default from BREWLOG_TRANSPORT, else stdio)")
	cmd.Flags().StringVar(&host, "host", "", "HTTP listen host")
	cmd.Flags().IntVar(&port, "port", 0, "HTTP listen port")
	return cmd
}

func runServe(cmd *cobra.Command, cfg config.Config) error {
	logger, cleanup, err := newServeLogger(cfg.Log.Level, cfg.Server.Transport, cfg.Log.Path, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("log file: %w", err)
	}
	defer cleanup()

	ctx, cancel := shutdownContext(cmd.Context(), logger)
	defer cancel()

	a, err := app.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DB.Path, "error", err)
		return err
	}
	defer a.Close()

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Beans:    a.Beans,
			Brews:    a.Brews,
			Stats:    a.Stats,
			Confirm:  a.Confirm,
			Sessions: a.Sessions,
		},
		Logger:  logger,
		Version: Version,
	})

	if cfg.Server.Transport == config.TransportStdio {
		return runStdioMode(ctx, logger, mcpServer)
	}
	return httpapi.Start(ctx, cfg.Addr(), httpapi.Options{App: a, MCP: mcpServer, Logger: logger})
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	// Run blocks until stdin closes or ctx is cancelled.
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("stdio server error", "error", err)
		return err
	}
	return nil
}

// shutdownContext is cancelled on SIGINT or SIGTERM.
func shutdownContext(parent context.Context, logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		defer signal.Stop(stop)
		select {
		case <-stop:
			logger.Info("shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
