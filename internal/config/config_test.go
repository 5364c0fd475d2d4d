package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laiito/weatherApi/internal/config"
)

func TestLoad(t *testing.T) {
	t.Setenv("WEATHERBIT_API_KEY", "wb-key")
	t.Setenv("VISUALCROSSING_API_KEY", "vc-key")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "wb-key", cfg.WeatherbitAPIKey)
	assert.Equal(t, "vc-key", cfg.VisualCrossingAPIKey)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "development", cfg.Environment)
}

func TestLoad_MissingAPIKeys(t *testing.T) {
	t.Setenv("WEATHERBIT_API_KEY", "")
	t.Setenv("VISUALCROSSING_API_KEY", "vc-key")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "WEATHERBIT_API_KEY")
}
