package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"DINOS_ADDR", "PORT", "DINOS_DATA_PATH", "DINOS_LOG_LEVEL", "DINOS_LOG_FORMAT", "DINOS_LIVE_RELOAD"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "data/dinosaurs.json", cfg.DataPath)
	assert.False(t, cfg.StrictStatus)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "dinos.yaml")
	body := `
addr: ":9000"
data_path: fixtures/dinos.json
log:
  level: debug
  format: json
live_reload: true
strict_status: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "fixtures/dinos.json", cfg.DataPath)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.LiveReload)
	assert.True(t, cfg.StrictStatus)
	assert.False(t, cfg.MarkdownDescriptions)
}

func TestLoadErrors(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "could not read config")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("addr: [unterminated"), 0o644))
	_, err = Load(bad)
	assert.ErrorContains(t, err, "could not parse config")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("log:\n  format: xml\n"), 0o644))
	_, err = Load(invalid)
	assert.ErrorContains(t, err, "log.format")
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "out.yaml")

	cfg := DefaultConfig()
	cfg.Addr = ":7000"
	cfg.MarkdownDescriptions = true
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
