package config

import (
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// BackendConfig describes the diary REST backend this client talks to.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type Config struct {
	Backend     BackendConfig
	ServerPort  string
	MetricsPort string
	PprofPort   string
	// ImageCacheTTL bounds how long proxied entry images are kept in memory.
	ImageCacheTTL time.Duration
}

func Load() (*Config, error) {
	cfg := &Config{
		Backend: BackendConfig{
			BaseURL: getEnvOrDefault("BACKEND_BASE_URL", "http://localhost:5000"),
			Timeout: getDurationOrDefault("BACKEND_TIMEOUT", 30*time.Second),
		},
		ServerPort:    getEnvOrDefault("SERVER_PORT", "8090"),
		MetricsPort:   getEnvOrDefault("METRICS_PORT", "9092"),
		PprofPort:     getEnvOrDefault("PPROF_PORT", "6060"),
		ImageCacheTTL: getDurationOrDefault("IMAGE_CACHE_TTL", 5*time.Minute),
	}

	u, err := url.Parse(cfg.Backend.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("BACKEND_BASE_URL %q is not an absolute URL", cfg.Backend.BaseURL)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	// Plain integers are read as seconds.
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}
