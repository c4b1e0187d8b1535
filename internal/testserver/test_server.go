// Package testserver runs the complete HTTP surface against an in-memory
// database for end-to-end tests.
package testserver

import (
	"context"
	"net/http/httptest"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/brewlog/internal/app"
	"github.com/rpggio/brewlog/internal/config"
	"github.com/rpggio/brewlog/internal/httpapi"
	"github.com/rpggio/brewlog/internal/mcp"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server *httptest.Server
	App    *app.App
}

// New starts the router with MCP mounted and closes everything on cleanup.
func New(t *testing.T) *TestServer {
	t.Helper()

	cfg := config.Default()
	cfg.DB.Path = ":memory:"

	a, err := app.Open(context.Background(), cfg, nil)
	require.NoError(t, err)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Beans:    a.Beans,
			Brews:    a.Brews,
			Stats:    a.Stats,
			Confirm:  a.Confirm,
			Sessions: a.Sessions,
		},
		Version: "test",
	})

	router, err := httpapi.NewRouter(httpapi.Options{App: a, MCP: mcpServer})
	require.NoError(t, err)
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		_ = a.Close()
	})

	return &TestServer{Server: server, App: a}
}

// Connect opens an MCP client session over streamable HTTP.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	cs, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{
		Endpoint: ts.Server.URL + "/mcp",
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}
