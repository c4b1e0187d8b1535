package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BREWLOG_CONFIG_PATH", "BREWLOG_SERVER_HOST", "BREWLOG_SERVER_PORT",
		"BREWLOG_TRANSPORT", "BREWLOG_DB_PATH", "BREWLOG_LOG_LEVEL",
		"BREWLOG_LOG_PATH", "BREWLOG_CONFIRM_TTL", "BREWLOG_SESSION_TTL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, "127.0.0.1:8080", cfg.Addr())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "brewlog.yaml")
	yaml := `
server:
  port: 9000
  transport: http
db:
  path: /tmp/file.db
confirm:
  ttl: 30s
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("BREWLOG_CONFIG_PATH", path)
	t.Setenv("BREWLOG_DB_PATH", "/tmp/env.db")
	t.Setenv("BREWLOG_SESSION_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, TransportHTTP, cfg.Server.Transport)
	require.Equal(t, "/tmp/env.db", cfg.DB.Path)
	require.Equal(t, 30*time.Second, cfg.Confirm.TTL)
	require.Equal(t, time.Hour, cfg.Session.TTL)
	require.Equal(t, "info", cfg.Log.Level)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"BREWLOG_SERVER_PORT": "eighty",
		"BREWLOG_CONFIRM_TTL": "soon",
		"BREWLOG_TRANSPORT":   "carrier-pigeon",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			require.Error(t, err)
		})
	}
}
