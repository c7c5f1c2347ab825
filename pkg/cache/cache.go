// Package cache stores JSON documents in Redis under a versioned key namespace.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const ns = "confbooking:v1"

// KeyHotels is the cache key of the hotel listing.
func KeyHotels() string {
	return ns + ":hotels"
}

type Cache struct {
	rdb *redis.Client
	sf  singleflight.Group
}

func New(client *redis.Client) *Cache {
	return &Cache{rdb: client}
}

// GetJSON decodes the value at key into dst. It reports false, nil on a miss.
func (c *Cache) GetJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (c *Cache) SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return c.rdb.Set(ctx, key, raw, ttl).Err()
}

// GetOrSetJSON returns the cached value at key, or runs loader once for all
// concurrent callers on a miss and stores its result for ttl. A failed store
// does not fail the call.
func GetOrSetJSON[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, loader func(ctx context.Context) (T, error)) (T, error) {
	var out T
	if ok, err := c.GetJSON(ctx, key, &out); err != nil || ok {
		return out, err
	}

	v, err, _ := c.sf.Do(key, func() (any, error) {
		var cached T
		if ok, err := c.GetJSON(ctx, key, &cached); err != nil || ok {
			return cached, err
		}

		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		_ = c.SetJSON(ctx, key, loaded, ttl)
		return loaded, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	out, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("get %s: unexpected %T", key, v)
	}
	return out, nil
}
