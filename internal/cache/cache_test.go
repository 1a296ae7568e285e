package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quochao170402/ecommerce-platform/internal/cache"
)

func TestRedisCache_SetGetExpire(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	c, err := cache.NewRedis("redis://"+mr.Addr()+"/0", "shop:search", time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()

	_, ok, err := c.Get(ctx, "Shoes")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "Shoes", []byte(`[1,2]`)))
	assert.True(t, mr.Exists("shop:search:shoes"))

	got, ok, err := c.Get(ctx, "shoes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[1,2]`, string(got))

	mr.FastForward(2 * time.Minute)
	_, ok, err = c.Get(ctx, "shoes")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCache_DeletePrefix(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	c, err := cache.NewRedis("redis://"+mr.Addr(), "shop", time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	for i := 0; i < 250; i++ {
		require.NoError(t, c.Set(ctx, fmt.Sprintf("%skeyword-%d", cache.SearchPrefix, i), []byte(`[]`)))
	}
	require.NoError(t, c.Set(ctx, "session:abc", []byte(`{}`)))
	require.NoError(t, mr.Set("admin:search:shoes", "[]"))

	n, err := c.DeletePrefix(ctx, cache.SearchPrefix)
	require.NoError(t, err)
	assert.Equal(t, 250, n)

	_, ok, err := c.Get(ctx, cache.SearchPrefix+"keyword-7")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, mr.Exists("shop:session:abc"))
	assert.True(t, mr.Exists("admin:search:shoes"))

	n, err = c.DeletePrefix(ctx, cache.SearchPrefix)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestNewRedis_BadURL(t *testing.T) {
	t.Parallel()

	_, err := cache.NewRedis("not-a-url", "x", time.Minute)
	assert.Error(t, err)
}

func TestNoop_AlwaysMisses(t *testing.T) {
	t.Parallel()

	var c cache.Cache = cache.Noop{}
	require.NoError(t, c.Set(context.Background(), "k", []byte("v")))
	_, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := c.DeletePrefix(context.Background(), "k")
	require.NoError(t, err)
	assert.Zero(t, n)
}
