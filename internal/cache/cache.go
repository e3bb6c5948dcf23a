package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/neuromancers/session-scheduler/internal/config"
)

// Cache wraps redis for the two things this service caches: computed
// availability slots (short TTL) and reminder idempotency markers.
type Cache struct {
	rdb *redis.Client
}

func New(cfg *config.Config) *Cache {
	return &Cache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}),
	}
}

func (c *Cache) Get(ctx context.Context, key string) (string, bool) {
	v, err := c.rdb.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return v, true
}

func (c *Cache) Set(ctx context.Context, key, value string, ttl time.Duration) {
	// Cache failures are invisible; the caller recomputes.
	_ = c.rdb.Set(ctx, key, value, ttl).Err()
}

// SetNX marks a key once. Returns true when this call created it, which
// is how reminder sends stay idempotent across runs.
func (c *Cache) SetNX(ctx context.Context, key string, ttl time.Duration) bool {
	ok, err := c.rdb.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false
	}
	return ok
}

func (c *Cache) Delete(ctx context.Context, keys ...string) {
	if len(keys) > 0 {
		_ = c.rdb.Del(ctx, keys...).Err()
	}
}
