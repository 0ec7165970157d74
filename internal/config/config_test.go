package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoyapp/hoygo/internal/config"
)

func newConfig(t *testing.T) (*config.Config, error) {
	t.Helper()

	return config.New(
		config.WithDisableFlagsParsing(true),
		config.WithDisableDotEnv(true),
	)
}

func TestDefaults(t *testing.T) {
	cfg, err := newConfig(t)
	require.NoError(t, err)

	assert.Equal(t, "https://api.hoyapp.dev", cfg.APIBaseURL)
	assert.Equal(t, "wss://api.hoyapp.dev/ws", cfg.SocketURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "hoy_store.json", cfg.StoragePath)
	assert.Equal(t, 3, cfg.RetryCount)
	assert.Equal(t, 30*time.Second, cfg.PollInterval)
	assert.Equal(t, 30*time.Second, cfg.RefreshLeeway)
}

func TestEnvOverridesDefaults(t *testing.T) {
	t.Setenv("HOY_API_BASE_URL", "https://staging.hoyapp.dev")
	t.Setenv("HOY_LOG_LEVEL", "debug")
	t.Setenv("HOY_POLL_INTERVAL", "5s")

	cfg, err := newConfig(t)
	require.NoError(t, err)

	assert.Equal(t, "https://staging.hoyapp.dev", cfg.APIBaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)

	// Untouched fields keep their defaults.
	assert.Equal(t, "wss://api.hoyapp.dev/ws", cfg.SocketURL)
}

func TestRejectsInvalidLogLevel(t *testing.T) {
	t.Setenv("HOY_LOG_LEVEL", "loud")

	_, err := newConfig(t)
	assert.Error(t, err)
}

func TestRejectsInvalidBaseURL(t *testing.T) {
	t.Setenv("HOY_API_BASE_URL", "not a url")

	_, err := newConfig(t)
	assert.Error(t, err)
}
