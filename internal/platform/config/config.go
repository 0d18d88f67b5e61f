// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`

	// Feed tuning. The attempt factor bounds distinct-sampling retries at
	// limit * factor; it is a tunable, not a load-bearing constant.
	FeedAttemptFactor int           `env:"FEED_ATTEMPT_FACTOR" default:"5"`
	FeedCacheTTL      time.Duration `env:"FEED_CACHE_TTL" default:"30s"`
	FeedDefaultLimit  int           `env:"FEED_DEFAULT_LIMIT" default:"20"`
}

// Load reads .env (if present) and the environment, then validates.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.FeedAttemptFactor < 1 {
		return fmt.Errorf("FEED_ATTEMPT_FACTOR must be >= 1, got %d", cfg.FeedAttemptFactor)
	}
	if cfg.FeedDefaultLimit < 1 {
		return fmt.Errorf("FEED_DEFAULT_LIMIT must be >= 1, got %d", cfg.FeedDefaultLimit)
	}
	if cfg.FeedCacheTTL <= 0 {
		return fmt.Errorf("FEED_CACHE_TTL must be positive, got %s", cfg.FeedCacheTTL)
	}
	return nil
}
