package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache backs the memo cache with a shared Redis instance, letting a
// fleet of `dxd serve` replicas (or worker processes) reuse column-state
// counts across process boundaries. Solver-local structures (the DAG node
// table, splay trees) never touch it: only the plain uint64/scientific
// count payload keyed by state hash is ever serialized here.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache dials addr and returns a Cache backed by it. It does not
// verify connectivity eagerly; the first Get/Set surfaces dial errors.
func NewRedisCache(addr string) *RedisCache {
	return &RedisCache{client: redis.NewClient(&redis.Options{Addr: addr})}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, Retryable(err)
	}
	return data, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return Retryable(err)
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return Retryable(err)
	}
	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

var _ Cache = (*RedisCache)(nil)
