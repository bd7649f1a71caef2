package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the cache with Redis for deployments that want entries
// shared across instances. Envelope timestamps still drive expiry on read;
// the hard Redis TTL below only bounds how long dead entries linger.
type RedisStore struct {
	client  *redis.Client
	hardTTL time.Duration
}

func NewRedisStore(client *redis.Client, hardTTL time.Duration) *RedisStore {
	if hardTTL <= 0 {
		hardTTL = 24 * time.Hour
	}
	return &RedisStore{client: client, hardTTL: hardTTL}
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, r.hardTTL).Err()
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
