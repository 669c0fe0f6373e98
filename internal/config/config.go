package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	RefreshInterval time.Duration
	HistoryDays     int
	DefaultGauge    string

	DBPath string

	// Upstream data sources. Base URLs are overridable for tests.
	USGSBaseURL    string
	FetchTimeout   time.Duration
	WeatherAPIKey  string
	WeatherBaseURL string
	NWSAlertsURL   string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	refreshInterval, err := parseDuration("REFRESH_INTERVAL", "15m")
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	historyDays, err := parseInt("HISTORY_DAYS", 14)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		RefreshInterval: refreshInterval,
		HistoryDays:     historyDays,
		DefaultGauge:    envOrDefault("DEFAULT_GAUGE", "pruitt"),
		DBPath:          envOrDefault("DB_PATH", "data/float-alert.db"),
		USGSBaseURL:     envOrDefault("USGS_BASE_URL", "https://waterservices.usgs.gov/nwis/iv"),
		FetchTimeout:    fetchTimeout,
		WeatherAPIKey:   os.Getenv("OPENWEATHER_API_KEY"),
		WeatherBaseURL:  envOrDefault("WEATHER_BASE_URL", "https://api.openweathermap.org/data/2.5"),
		NWSAlertsURL:    envOrDefault("NWS_ALERTS_URL", "https://api.weather.gov/alerts/active"),
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}
	if cfg.RefreshInterval < time.Minute {
		return nil, errors.New("REFRESH_INTERVAL must be at least 1m")
	}
	if cfg.HistoryDays < 1 || cfg.HistoryDays > 90 {
		return nil, errors.New("HISTORY_DAYS must be between 1 and 90")
	}
	if cfg.DBPath == "" {
		return nil, errors.New("DB_PATH is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	s := envOrDefault(key, def)
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}
