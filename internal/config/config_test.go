package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 15*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 14, cfg.HistoryDays)
	assert.Equal(t, "pruitt", cfg.DefaultGauge)
	assert.Equal(t, "data/float-alert.db", cfg.DBPath)
	assert.Equal(t, "https://waterservices.usgs.gov/nwis/iv", cfg.USGSBaseURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Empty(t, cfg.WeatherAPIKey)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("REFRESH_INTERVAL", "5m")
	t.Setenv("HISTORY_DAYS", "7")
	t.Setenv("DEFAULT_GAUGE", "gilbert")
	t.Setenv("DB_PATH", "/tmp/test.db")
	t.Setenv("USGS_BASE_URL", "http://localhost:9999/iv")
	t.Setenv("OPENWEATHER_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 7, cfg.HistoryDays)
	assert.Equal(t, "gilbert", cfg.DefaultGauge)
	assert.Equal(t, "/tmp/test.db", cfg.DBPath)
	assert.Equal(t, "http://localhost:9999/iv", cfg.USGSBaseURL)
	assert.Equal(t, "test-key", cfg.WeatherAPIKey)
}

func TestLoad_InvalidRefreshInterval(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestLoad_RefreshIntervalTooShort(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "5s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 1m")
}

func TestLoad_InvalidHistoryDays(t *testing.T) {
	t.Setenv("HISTORY_DAYS", "120")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HISTORY_DAYS")
}
