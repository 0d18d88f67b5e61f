package redis

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/KadenLi6741/Localys-sub000/internal/domain"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	rediscontainer "github.com/testcontainers/testcontainers-go/modules/redis"
)

var testRedisURL string

func TestMain(m *testing.M) {
	flag.Parse()

	// Skip container setup in short mode
	if testing.Short() {
		os.Exit(m.Run())
	}

	ctx := context.Background()
	container, err := rediscontainer.Run(ctx, "redis:7-alpine")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start redis container: %v\n", err)
		os.Exit(1)
	}
	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to get redis endpoint: %v\n", err)
		os.Exit(1)
	}
	testRedisURL = "redis://" + endpoint

	defer func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "failed to terminate redis container: %v\n", err)
		}
	}()
	os.Exit(m.Run())
}

func setupTestClient(t *testing.T) *goredis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	client, err := NewClient(ctx, testRedisURL)
	require.NoError(t, err)

	require.NoError(t, client.FlushAll(ctx).Err())

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func TestRankingCache_MissOnEmpty(t *testing.T) {
	cache := NewRankingCache(setupTestClient(t), time.Minute)

	entries, hit, err := cache.GetCandidates(context.Background())

	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, entries)
}

func TestRankingCache_SetThenGetRoundTrip(t *testing.T) {
	cache := NewRankingCache(setupTestClient(t), time.Minute)
	ctx := context.Background()

	want := []domain.RankingEntry{
		{ID: uuid.New(), Boost: 1},
		{ID: uuid.New(), Boost: 42.5},
	}
	require.NoError(t, cache.SetCandidates(ctx, want))

	got, hit, err := cache.GetCandidates(ctx)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, got)
}

func TestRankingCache_Invalidate(t *testing.T) {
	cache := NewRankingCache(setupTestClient(t), time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.SetCandidates(ctx, []domain.RankingEntry{{ID: uuid.New(), Boost: 2}}))
	require.NoError(t, cache.Invalidate(ctx))

	_, hit, err := cache.GetCandidates(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRankingCache_CorruptBlobIsAMiss(t *testing.T) {
	client := setupTestClient(t)
	cache := NewRankingCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, client.Set(ctx, rankingCacheKey, "{not json", time.Minute).Err())

	entries, hit, err := cache.GetCandidates(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, entries)
}

func TestRankingCache_EntriesExpire(t *testing.T) {
	cache := NewRankingCache(setupTestClient(t), 100*time.Millisecond)
	ctx := context.Background()

	require.NoError(t, cache.SetCandidates(ctx, []domain.RankingEntry{{ID: uuid.New(), Boost: 1}}))
	time.Sleep(200 * time.Millisecond)

	_, hit, err := cache.GetCandidates(ctx)
	require.NoError(t, err)
	assert.False(t, hit)
}
