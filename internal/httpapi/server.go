// Package httpapi serves the brew log over HTTP: a health check, the
// streamable MCP endpoint and a read-only JSON API.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/brewlog/internal/app"
)

const shutdownTimeout = 5 * time.Second

// Options holds what the router needs.
type Options struct {
	App    *app.App
	MCP    *sdkmcp.Server
	Logger *slog.Logger
}

// NewRouter builds the gin engine with every route registered. A nil MCP
// server leaves /mcp unmounted.
func NewRouter(opts Options) (*gin.Engine, error) {
	if opts.App == nil {
		return nil, fmt.Errorf("httpapi: app is required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(opts.Logger))

	registerRoutes(router, opts.App)

	if opts.MCP != nil {
		server := opts.MCP
		mcpHandler := sdkmcp.NewStreamableHTTPHandler(
			func(r *http.Request) *sdkmcp.Server { return server },
			&sdkmcp.StreamableHTTPOptions{
				Stateless:      false,
				SessionTimeout: 30 * time.Minute,
			},
		)
		router.Any("/mcp", gin.WrapH(mcpHandler))
	}

	return router, nil
}

// Start listens on addr until ctx is cancelled, then shuts down gracefully.
func Start(ctx context.Context, addr string, opts Options) error {
	router, err := NewRouter(opts)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil && opts.Logger != nil {
			opts.Logger.Error("shutdown error", "error", err)
		}
	}()

	if opts.Logger != nil {
		opts.Logger.Info("server listening", "addr", addr)
	}
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpapi: %w", err)
	}
	return nil
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		if logger == nil {
			return
		}
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
