package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// KV is the cache-store boundary: get, set-with-ttl, clear. The redis
// implementation lives here; tests plug in an in-memory one.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, val string, ttl time.Duration) error
	Clear(ctx context.Context) error
}

type redisKV struct {
	rdb *redis.Client
}

func NewKV(client *redis.Client) KV {
	return &redisKV{rdb: client}
}

func (kv *redisKV) Get(ctx context.Context, key string) (string, bool, error) {
	s, err := kv.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return s, true, nil
}

func (kv *redisKV) Set(ctx context.Context, key, val string, ttl time.Duration) error {
	return kv.rdb.Set(ctx, key, val, ttl).Err()
}

// Clear drops every key in the cache namespace. Coarse clear-all keeps
// invalidation correct without tracking per-key dependency graphs; the
// hit-rate cost is accepted.
func (kv *redisKV) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := kv.rdb.Scan(ctx, cursor, ns+":lots:*", 100).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := kv.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Cache is a best-effort read-through cache. A KV failure never blocks a
// read: the loader runs directly and the result is returned uncached.
type Cache struct {
	kv KV
	sf singleflight.Group
}

func New(kv KV) *Cache {
	return &Cache{kv: kv}
}

// InvalidateAll discards every cached aggregate. Mutating operations call it
// from their after-commit hooks.
func (c *Cache) InvalidateAll(ctx context.Context) error {
	return c.kv.Clear(ctx)
}

func GetJSON[T any](ctx context.Context, c *Cache, key string) (T, bool, error) {
	var zero T

	s, ok, err := c.kv.Get(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}

	var out T
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return zero, false, err
	}

	return out, true, nil
}

func SetJSON(ctx context.Context, c *Cache, key string, val any, ttl time.Duration) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}

	return c.kv.Set(ctx, key, string(b), ttl)
}

// GetOrSetJSON returns the cached value under key if present and unexpired;
// otherwise it runs loader (deduplicated via singleflight), stores the
// result with ttl, and returns it. Store errors on either side degrade to a
// direct loader call.
func GetOrSetJSON[T any](
	ctx context.Context,
	c *Cache,
	key string,
	ttl time.Duration,
	loader func(ctx context.Context) (T, error),
) (T, error) {
	if v, ok, err := GetJSON[T](ctx, c, key); err == nil && ok {
		return v, nil
	}

	vAny, err, _ := c.sf.Do(key, func() (any, error) {
		if v2, ok2, err2 := GetJSON[T](ctx, c, key); err2 == nil && ok2 {
			return v2, nil
		}
		v3, err3 := loader(ctx)
		if err3 != nil {
			return nil, err3
		}
		_ = SetJSON(ctx, c, key, v3, ttl)
		return v3, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	v, ok := vAny.(T)
	if !ok {
		var zero T
		return zero, errors.New("type assertion failed")
	}

	return v, nil
}
