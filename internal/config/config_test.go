package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "http://localhost:5000/api", cfg.BackendAPIURL)
	assert.Equal(t, "http://localhost:5001/api", cfg.MLAPIURL)
	assert.Equal(t, cfg.BackendAPIURL, cfg.PredictionAPIURL)
	assert.Equal(t, 4, cfg.ItemsPerPage)
	assert.Equal(t, 15*time.Second, cfg.HTTPClientTimeout)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Empty(t, cfg.RedisAddress)
	assert.Empty(t, cfg.NATSURL)
	assert.Equal(t, ":3000", cfg.Addr())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("BACKEND_API_URL", "http://backend:5000/api/")
	t.Setenv("ML_API_URL", "http://ml:5001/api")
	t.Setenv("ITEMS_PER_PAGE", "10")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "2s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://backend:5000/api", cfg.BackendAPIURL)
	assert.Equal(t, "http://backend:5000/api", cfg.PredictionAPIURL)
	assert.Equal(t, "http://ml:5001/api", cfg.MLAPIURL)
	assert.Equal(t, 10, cfg.ItemsPerPage)
	assert.Equal(t, 2*time.Second, cfg.HTTPClientTimeout)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	t.Run("RelativeURL", func(t *testing.T) {
		t.Setenv("BACKEND_API_URL", "/api")
		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("ZeroPageSize", func(t *testing.T) {
		t.Setenv("ITEMS_PER_PAGE", "0")
		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
