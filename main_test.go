package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/phillip-england/dinos/internal/dinos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeData(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dinosaurs.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"DINOS_ADDR", "PORT", "DINOS_DATA_PATH", "DINOS_LOG_LEVEL", "DINOS_LOG_FORMAT", "DINOS_LIVE_RELOAD"} {
		t.Setenv(k, "")
	}
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	path := writeData(t, `[{"name":"Rex","description":"big"},{"name":"Amy","description":"small"}]`)

	out, err := run(t, "list", "--data", path)
	require.NoError(t, err)
	assert.Equal(t, "Rex\nAmy\n", out)
}

func TestListCommandBadData(t *testing.T) {
	path := writeData(t, `{"name":"Rex"}`)

	_, err := run(t, "list", "--data", path)
	require.Error(t, err)
	assert.Equal(t, dinos.KindDataFormat, dinos.KindOf(err))
}

func TestShowCommand(t *testing.T) {
	path := writeData(t, `[{"name":"Rex","description":"big"}]`)

	out, err := run(t, "show", "rex", "--data", path)
	require.NoError(t, err)
	assert.Equal(t, "Rex\n\nbig\n", out)

	_, err = run(t, "show", "zzz", "--data", path)
	require.Error(t, err)
	assert.True(t, dinos.IsNotFound(err))
}

func TestShowRequiresName(t *testing.T) {
	_, err := run(t, "show")
	require.Error(t, err)
}

func TestConfigFlag(t *testing.T) {
	data := writeData(t, `[{"name":"Amy","description":"small"}]`)
	cfg := filepath.Join(t.TempDir(), "dinos.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("data_path: "+data+"\nlog:\n  level: warn\n"), 0o644))

	out, err := run(t, "list", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "Amy\n", out)

	_, err = run(t, "list", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
