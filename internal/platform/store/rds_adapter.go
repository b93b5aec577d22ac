package store

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisClient is the slice of *redis.Client the cache needs
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

type redisAdapter struct{ c redisClient }

var _ Cache = (*redisAdapter)(nil)

func newRedisAdapter(c redisClient) Cache { return &redisAdapter{c: c} }

func (a *redisAdapter) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := a.c.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", false, nil
	case err != nil:
		return "", false, err
	}
	return v, true, nil
}

// Set with ttl 0 keeps the key forever
func (a *redisAdapter) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return a.c.Set(ctx, key, value, ttl).Err()
}

func (a *redisAdapter) Ping(ctx context.Context) error { return a.c.Ping(ctx).Err() }

func (a *redisAdapter) Close() error { return a.c.Close() }
