//go:build integration

package cache

import (
	"context"
	"os"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/sportzone/backend/internal/domain/providers"
	redisclient "github.com/sportzone/backend/internal/infrastructure/clients/redis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisAdapter_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("redis not reachable at %s: %v", addr, err)
	}
	defer rdb.Close()

	ctx := context.Background()
	c := NewRedisAdapter(redisclient.NewClientFromRedis(rdb), "sportzone:test:")
	defer c.Delete(ctx, "k")

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)

	ok, err := c.SetNX(ctx, "k", []byte("v1"), 30)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.SetNX(ctx, "k", []byte("v2"), 30)
	require.NoError(t, err)
	assert.False(t, ok)

	value, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", string(value))
}
