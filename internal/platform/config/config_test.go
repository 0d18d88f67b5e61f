package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsApplied(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/localys")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5, cfg.FeedAttemptFactor)
	assert.Equal(t, 30*time.Second, cfg.FeedCacheTTL)
	assert.Equal(t, 20, cfg.FeedDefaultLimit)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://db:5432/localys")
	t.Setenv("PORT", "9090")
	t.Setenv("FEED_ATTEMPT_FACTOR", "3")
	t.Setenv("FEED_CACHE_TTL", "2m")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 3, cfg.FeedAttemptFactor)
	assert.Equal(t, 2*time.Minute, cfg.FeedCacheTTL)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()

	assert.ErrorContains(t, err, "DATABASE_URL is required")
}

func TestValidate_RejectsBadFeedTuning(t *testing.T) {
	base := Config{
		DatabaseURL:       "postgres://db:5432/localys",
		FeedAttemptFactor: 5,
		FeedCacheTTL:      30 * time.Second,
		FeedDefaultLimit:  20,
	}

	cfg := base
	cfg.FeedAttemptFactor = 0
	assert.ErrorContains(t, validate(&cfg), "FEED_ATTEMPT_FACTOR")

	cfg = base
	cfg.FeedDefaultLimit = 0
	assert.ErrorContains(t, validate(&cfg), "FEED_DEFAULT_LIMIT")

	cfg = base
	cfg.FeedCacheTTL = 0
	assert.ErrorContains(t, validate(&cfg), "FEED_CACHE_TTL")
}
