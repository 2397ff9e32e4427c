package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents gateway configuration loaded from environment variables.
type Config struct {
	AppEnv              string
	Port                string
	UpstreamBaseURL     string
	UpstreamTimeout     time.Duration
	UpstreamFetchAllMax int
	AuthJWTSecret       string
	GeoIPDBPath         string
	DefaultLocale       string
	CORSAllowedOrigins  []string
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPIdleTimeout     time.Duration
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		Port:                getEnv("PORT", "8080"),
		UpstreamBaseURL:     os.Getenv("UPSTREAM_BASE_URL"),
		UpstreamTimeout:     time.Second * time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 15)),
		UpstreamFetchAllMax: getEnvInt("UPSTREAM_FETCH_ALL_LIMIT", 1000),
		AuthJWTSecret:       os.Getenv("AUTH_JWT_SECRET"),
		GeoIPDBPath:         os.Getenv("GEOIP_DB_PATH"),
		DefaultLocale:       getEnv("DEFAULT_LOCALE", "en"),
		CORSAllowedOrigins:  splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.UpstreamBaseURL == "" {
		return nil, fmt.Errorf("UPSTREAM_BASE_URL is required")
	}
	if cfg.AuthJWTSecret == "" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
