package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"foodmarket-be/internal/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// catalog:{pincode}:{query}
	keyAvailability   = "catalog:%s:availability"
	keyTopRestaurants = "catalog:%s:top:%d"
	keyFoodsIn30Min   = "catalog:%s:foods30"
	keySearch         = "catalog:%s:search"

	keyPincodePattern = "catalog:%s:*"
)

func NewRedisClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        addr,
		DialTimeout: 2 * time.Second,
		ReadTimeout: 2 * time.Second,
	})
}

// Cache stores catalog query results as JSON. A nil *Cache is valid and
// caches nothing. Redis failures are logged and treated as misses.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) get(ctx context.Context, key string, dest any) bool {
	if c == nil {
		return false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.FromCtx(ctx).Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		logger.FromCtx(ctx).Warn("catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *Cache) set(ctx context.Context, key string, v any) {
	if c == nil {
		return
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.FromCtx(ctx).Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidatePincode removes every cached query for the pincode.
func (c *Cache) InvalidatePincode(ctx context.Context, pincode string) {
	if c == nil {
		return
	}

	log := logger.FromCtx(ctx).With(zap.String("pincode", pincode))

	var keys []string
	iter := c.client.Scan(ctx, 0, fmt.Sprintf(keyPincodePattern, pincode), 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Warn("catalog cache scan failed", zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Warn("catalog cache invalidation failed", zap.Error(err))
		return
	}
	log.Debug("catalog cache invalidated", zap.Int("keys", len(keys)))
}

// cached serves key from the cache or loads, checks and stores it.
// Empty results are reported as ErrNotFound and never cached.
func cached[T any](ctx context.Context, c *Cache, key string, load func() ([]T, error)) ([]T, error) {
	var out []T
	if c.get(ctx, key, &out) && len(out) > 0 {
		return out, nil
	}

	out, err := load()
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrNotFound
	}

	c.set(ctx, key, out)
	return out, nil
}
