package nba

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores raw endpoint responses so repeated runs within a window do not
// hammer the upstream API. Failures are treated as misses; caching is a
// best-effort optimization, never a correctness concern.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

type nopCache struct{}

func (nopCache) Get(context.Context, string) ([]byte, bool)          { return nil, false }
func (nopCache) Set(context.Context, string, []byte, time.Duration) {}

// NopCache returns a Cache that caches nothing.
func NopCache() Cache { return nopCache{} }

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache wraps a Redis client as a response cache.
func NewRedisCache(rdb *redis.Client) Cache {
	return &redisCache{rdb: rdb, prefix: "nba:response:"}
}

func (c *redisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		// An unreachable cache reads as a miss.
		return nil, false
	}
	return val, true
}

func (c *redisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	c.rdb.Set(ctx, c.prefix+key, value, ttl)
}
