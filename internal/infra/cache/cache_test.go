//go:build unit

package cache_test

import (
	"context"
	"testing"
	"time"

	"kilo-share/internal/infra/cache"
	"kilo-share/internal/pkg/clock"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr, client := newClient(t)
	c := cache.New(client)

	_, ok, err := c.Get(ctx, "tracking:KG-AAAA0000")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "tracking:KG-AAAA0000", []byte(`{"status":"in_transit"}`), 30*time.Second))
	b, ok, err := c.Get(ctx, "tracking:KG-AAAA0000")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"status":"in_transit"}`, string(b))
	assert.Equal(t, 30*time.Second, mr.TTL("tracking:KG-AAAA0000"))

	mr.FastForward(31 * time.Second)
	_, ok, err = c.Get(ctx, "tracking:KG-AAAA0000")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, c.Set(ctx, "b", []byte("2"), time.Minute))
	require.NoError(t, c.Delete(ctx, "a", "b", "missing"))
	assert.False(t, mr.Exists("a"))
	assert.False(t, mr.Exists("b"))
	require.NoError(t, c.Delete(ctx))
}

func TestRedisCache_Unavailable(t *testing.T) {
	ctx := context.Background()
	mr, client := newClient(t)
	c := cache.New(client)
	mr.Close()

	_, _, err := c.Get(ctx, "k")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis get")
	assert.ErrorContains(t, c.Set(ctx, "k", nil, time.Minute), "redis set")
}

func TestRateLimiter_Allow(t *testing.T) {
	ctx := context.Background()
	_, client := newClient(t)
	clk := clock.NewMockClock(time.Date(2026, 11, 2, 8, 0, 0, 0, time.UTC))
	rl := cache.NewRateLimiter(client, clk)

	ok, n, err := rl.Allow(ctx, "198.51.100.7", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1), n)

	ok, n, _ = rl.Allow(ctx, "198.51.100.7", 2, time.Minute)
	assert.True(t, ok)
	assert.Equal(t, int64(2), n)

	ok, n, _ = rl.Allow(ctx, "198.51.100.7", 2, time.Minute)
	assert.False(t, ok)
	assert.Equal(t, int64(3), n)

	ok, _, _ = rl.Allow(ctx, "203.0.113.9", 2, time.Minute)
	assert.True(t, ok, "clients are counted separately")

	clk.Add(time.Minute)
	ok, n, _ = rl.Allow(ctx, "198.51.100.7", 2, time.Minute)
	assert.True(t, ok, "next window starts over")
	assert.Equal(t, int64(1), n)
}
