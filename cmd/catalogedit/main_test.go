package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf("[session]\npath = %q\n\n[log]\npath = %q\n", filepath.Join(dir, "session.json"), filepath.Join(dir, "app.log"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestSessionCommands(t *testing.T) {
	cfg := writeConfig(t)
	var out bytes.Buffer

	require.Error(t, run([]string{"--config", cfg, "whoami"}, &out))

	require.NoError(t, run([]string{"--config", cfg, "signin", "v9"}, &out))
	require.Contains(t, out.String(), "signed in as v9")

	out.Reset()
	require.NoError(t, run([]string{"--config", cfg, "whoami"}, &out))
	require.Equal(t, "v9\n", out.String())

	require.NoError(t, run([]string{"--config", cfg, "signout"}, &out))
	require.Error(t, run([]string{"--config", cfg, "whoami"}, &out))
}

func TestUsageErrors(t *testing.T) {
	cfg := writeConfig(t)
	var out bytes.Buffer
	require.ErrorIs(t, run(nil, &out), errUsage)
	require.ErrorIs(t, run([]string{"--config", cfg, "edit"}, &out), errUsage)
	require.ErrorIs(t, run([]string{"--config", cfg, "frobnicate"}, &out), errUsage)
	require.Error(t, run([]string{"--bogus"}, &out))
}

func TestHelp(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run([]string{"--help"}, &out))
	require.Contains(t, out.String(), "--config")
}
