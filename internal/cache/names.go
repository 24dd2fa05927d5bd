package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type nameLookup interface {
	GetNames(ctx context.Context, ids []int64) (map[int64]string, error)
}

// NameCache is a cache-aside decorator over the catalog's batched movie
// name lookup. Misses fall through to the inner lookup and are written
// back with a TTL. Redis failures degrade to the inner lookup.
type NameCache struct {
	inner  nameLookup
	client *redis.Client
	ttl    time.Duration
}

func NewNameCache(inner nameLookup, redisAddr, password string, ttl time.Duration) (*NameCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         redisAddr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &NameCache{inner: inner, client: rdb, ttl: ttl}, nil
}

func nameKey(id int64) string {
	return fmt.Sprintf("movie:name:%d", id)
}

func (c *NameCache) GetNames(ctx context.Context, ids []int64) (map[int64]string, error) {
	names := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = nameKey(id)
	}

	var missing []int64
	cached, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		// Cache unavailable; serve everything from storage.
		missing = ids
	} else {
		for i, v := range cached {
			if s, ok := v.(string); ok {
				names[ids[i]] = s
			} else {
				missing = append(missing, ids[i])
			}
		}
	}
	if len(missing) == 0 {
		return names, nil
	}

	fetched, err := c.inner.GetNames(ctx, missing)
	if err != nil {
		return nil, err
	}
	pipe := c.client.Pipeline()
	for id, name := range fetched {
		names[id] = name
		pipe.Set(ctx, nameKey(id), name, c.ttl)
	}
	// Best-effort write-back.
	_, _ = pipe.Exec(ctx)

	return names, nil
}

func (c *NameCache) Close() error {
	return c.client.Close()
}
