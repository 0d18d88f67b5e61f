package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KadenLi6741/Localys-sub000/internal/domain"
	goredis "github.com/redis/go-redis/v9"
)

const rankingCacheKey = "feed:candidates"

// RankingCache implements domain.RankingCache on Redis. Entries are stored as
// one JSON blob under a short TTL; a missing or unreadable blob is a miss.
type RankingCache struct {
	rdb *goredis.Client
	ttl time.Duration
}

// NewRankingCache creates the cache with the given TTL.
func NewRankingCache(rdb *goredis.Client, ttl time.Duration) *RankingCache {
	return &RankingCache{rdb: rdb, ttl: ttl}
}

func (c *RankingCache) GetCandidates(ctx context.Context) ([]domain.RankingEntry, bool, error) {
	data, err := c.rdb.Get(ctx, rankingCacheKey).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read ranking cache: %w", err)
	}

	var entries []domain.RankingEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		// Corrupt blob: treat as a miss, the next Set overwrites it.
		return nil, false, nil
	}
	return entries, true, nil
}

func (c *RankingCache) SetCandidates(ctx context.Context, entries []domain.RankingEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode ranking entries: %w", err)
	}
	if err := c.rdb.Set(ctx, rankingCacheKey, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write ranking cache: %w", err)
	}
	return nil
}

func (c *RankingCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, rankingCacheKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate ranking cache: %w", err)
	}
	return nil
}
