package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewCache(client, time.Minute)
	ctx := context.Background()

	var miss []string
	ok, err := cache.GetJSON(ctx, "catalog:test", &miss)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, cache.SetJSON(ctx, "catalog:test", []string{"a", "b"}))

	var hit []string
	ok, err = cache.GetJSON(ctx, "catalog:test", &hit)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []string{"a", "b"}, hit)
}

func TestCacheExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := NewCache(client, time.Second)
	ctx := context.Background()

	require.NoError(t, cache.SetJSON(ctx, "catalog:ttl", "value"))
	mr.FastForward(2 * time.Second)

	var out string
	ok, err := cache.GetJSON(ctx, "catalog:ttl", &out)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCacheNilClientNoOps(t *testing.T) {
	var cache *Cache
	ctx := context.Background()

	require.NoError(t, cache.SetJSON(ctx, "key", "value"))
	ok, err := cache.GetJSON(ctx, "key", new(string))
	require.NoError(t, err)
	require.False(t, ok)
}
