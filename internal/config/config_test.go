package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "games.json", cfg.Capture.Output)
	require.Equal(t, 30, cfg.Capture.IdleTimeoutSeconds)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadFile(t *testing.T) {
	content := `
server {
  addr = ":9090"
}

render {
  room = "Winamax"
}

capture {
  url    = "wss://example.com/feed"
  output = "captured.json"
}

currency "CHF" {
  symbol = "Fr"
}
`
	path := filepath.Join(t.TempDir(), "handscribe.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, "Winamax", cfg.Render.Room)
	require.Equal(t, "wss://example.com/feed", cfg.Capture.URL)
	require.Equal(t, "captured.json", cfg.Capture.Output)
	// Omitted value falls back to the default.
	require.Equal(t, 30, cfg.Capture.IdleTimeoutSeconds)

	require.Len(t, cfg.Currencies, 1)
	require.Equal(t, "CHF", cfg.Currencies[0].Code)
	require.Equal(t, "Fr", cfg.Currencies[0].Symbol)
}

func TestLoadRejectsBadHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.hcl")
	require.NoError(t, os.WriteFile(path, []byte("server {"), 0644))
	_, err := Load(path)
	require.Error(t, err)
}
