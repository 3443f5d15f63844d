// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// ServerConfig is the settlement server's environment. An empty
// DATABASE_URL selects the in-memory store; REDIS_URL is only used with
// PostgreSQL.
type ServerConfig struct {
	HTTPAddr    string        `env:"HTTP_ADDR" envDefault:":8080"`
	DatabaseURL string        `env:"DATABASE_URL"`
	RedisURL    string        `env:"REDIS_URL"`
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"30s"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`

	MaxStakeCents    int64 `env:"MAX_STAKE_CENTS" envDefault:"100000"`
	MaxExposureCents int64 `env:"MAX_EXPOSURE_CENTS" envDefault:"500000"`
}

// LoadServer parses the environment, applying defaults, and rejects an
// unknown LOG_LEVEL.
func LoadServer() (ServerConfig, error) {
	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, err
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

// ParseLevel maps LOG_LEVEL values onto slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("config: unknown log level %q", s)
	}
}
