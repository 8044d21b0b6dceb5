package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 64*1024, cfg.MaxInputBytes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoadNoFileUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 64*1024, cfg.MaxInputBytes)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("HOGQL_MAX_INPUT_BYTES", "1024")
	t.Setenv("HOGQL_LOG_LEVEL", "debug")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.MaxInputBytes)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load("/nonexistent/path/to/config.json")
	require.NoError(t, err)
	assert.Equal(t, Default().MaxInputBytes, cfg.MaxInputBytes)
}

func TestLoadFromFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "hogql-config-*.json")
	require.NoError(t, err)
	_, err = f.WriteString(`{"max_input_bytes": 2048, "listen_addr": ":9090"}`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	cfg, err := Load(f.Name())
	require.NoError(t, err)
	assert.Equal(t, 2048, cfg.MaxInputBytes)
	assert.Equal(t, ":9090", cfg.ListenAddr)
}

func TestEnvToKey(t *testing.T) {
	assert.Equal(t, "max_input_bytes", envToKey("MAX_INPUT_BYTES"))
	assert.Equal(t, "log_level", envToKey("LOG_LEVEL"))
}
