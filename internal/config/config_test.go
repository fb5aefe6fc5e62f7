package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CATALOGEDIT_CONFIG", "")

	c, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080", c.API.BaseURL)
	require.Equal(t, 10*time.Second, c.API.Timeout)
	require.True(t, c.UI.ConfirmDelete)
	require.Equal(t, 3*time.Second, c.UI.NoticeTimeout)
	require.Equal(t, "info", c.Log.Level)
	require.Equal(t, ":8080", c.Server.Addr)
	require.Contains(t, c.Session.Path, filepath.Join(".config", "catalogedit", "session.json"))
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[api]
base_url = "https://catalog.example/"
timeout = "2s"

[ui]
confirm_delete = false
`), 0o600))
	t.Setenv("CATALOGEDIT_LOG_LEVEL", "debug")

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://catalog.example", c.API.BaseURL)
	require.Equal(t, 2*time.Second, c.API.Timeout)
	require.False(t, c.UI.ConfirmDelete)
	require.Equal(t, "debug", c.Log.Level)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}
