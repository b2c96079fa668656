package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvOverrides(t *testing.T) {
	t.Run("DINOS_ADDR wins over PORT", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DINOS_ADDR", "127.0.0.1:8123")
		t.Setenv("PORT", "9999")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, "127.0.0.1:8123", cfg.Addr)
	})

	t.Run("PORT becomes a listen address", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("PORT", "3000")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, ":3000", cfg.Addr)
	})

	t.Run("data path and logging", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DINOS_DATA_PATH", "/srv/dinos.json")
		t.Setenv("DINOS_LOG_LEVEL", "warn")
		t.Setenv("DINOS_LOG_FORMAT", "json")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.Equal(t, "/srv/dinos.json", cfg.DataPath)
		assert.Equal(t, "warn", cfg.Log.Level)
		assert.Equal(t, "json", cfg.Log.Format)
	})

	t.Run("live reload flag", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DINOS_LIVE_RELOAD", "true")

		cfg := DefaultConfig()
		require.NoError(t, cfg.applyEnvOverrides())
		assert.True(t, cfg.LiveReload)

		t.Setenv("DINOS_LIVE_RELOAD", "sometimes")
		assert.Error(t, cfg.applyEnvOverrides())
	})

	t.Run("env beats file", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DINOS_LOG_LEVEL", "error")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "error", cfg.Log.Level)
	})

	t.Run("invalid level from env fails validation", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("DINOS_LOG_LEVEL", "shouty")

		_, err := Load("")
		assert.Error(t, err)
	})
}
