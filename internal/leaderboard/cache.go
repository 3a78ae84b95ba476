package leaderboard

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/brewsterlabs/brewtrack/internal/domain"
)

const (
	cacheKey = "leaderboard:top"
	cacheTTL = 30 * time.Second
)

// Cache is an optional Redis-backed snapshot of the ranked view. A nil
// *Cache is valid and behaves as a permanent miss, so wiring stays the same
// whether or not Redis is configured.
type Cache struct {
	rdb *redis.Client
}

func NewCache(addr string) *Cache {
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (c *Cache) Get(ctx context.Context) ([]domain.LeaderboardEntry, bool) {
	if c == nil {
		return nil, false
	}

	val, err := c.rdb.Get(ctx, cacheKey).Result()
	if err != nil {
		return nil, false
	}

	var entries []domain.LeaderboardEntry
	if err := json.Unmarshal([]byte(val), &entries); err != nil {
		return nil, false
	}

	return entries, true
}

func (c *Cache) Set(ctx context.Context, entries []domain.LeaderboardEntry) error {
	if c == nil {
		return nil
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, cacheKey, data, cacheTTL).Err()
}

func (c *Cache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Del(ctx, cacheKey).Err()
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
