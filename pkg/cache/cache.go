package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON encoded values under string keys.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

type RedisCache struct {
	rdb    redis.Cmdable
	prefix string
	ttl    time.Duration
}

// New returns a Redis backed cache, or a no-op cache when rdb is nil so
// callers can run without Redis.
func New(rdb *redis.Client, prefix string, ttl time.Duration) Cache {
	if rdb == nil {
		return Noop{}
	}
	return NewRedisCache(rdb, prefix, ttl)
}

func NewRedisCache(rdb redis.Cmdable, prefix string, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) key(k string) string {
	if c.prefix == "" {
		return k
	}
	return c.prefix + ":" + k
}

// Get decodes the cached value into dest. A miss returns false with no error.
func (c *RedisCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	bs, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(bs, dest); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value any) error {
	bs, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, c.key(key), bs, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	if err := c.rdb.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Noop) Set(context.Context, string, any) error         { return nil }
func (Noop) Delete(context.Context, ...string) error        { return nil }
