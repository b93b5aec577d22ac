//go:build integration_redis

package rds

import (
	"context"
	"testing"
	"time"

	"muzzle/internal/platform/testkit/containers"
)

func TestOpen_Integration(t *testing.T) {
	url := containers.Redis(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	c, err := Open(ctx, Config{URL: url, PoolSize: 2})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if err := c.Set(ctx, "muzzle:clean:sample", "이런 ***", time.Minute).Err(); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := c.Get(ctx, "muzzle:clean:sample").Result()
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "이런 ***" {
		t.Fatalf("got %q", got)
	}
	ttl, err := c.TTL(ctx, "muzzle:clean:sample").Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Fatalf("ttl = %v err = %v", ttl, err)
	}
}
