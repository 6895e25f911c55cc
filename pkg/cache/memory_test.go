package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	require.NoError(t, c.Set(ctx, "k", []string{"a", "b"}, time.Minute))

	var got []string
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"a", "b"}, got)

	require.NoError(t, c.Delete(ctx, "k"))
	found, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Now()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(ctx, "k", 1, time.Second))
	now = now.Add(2 * time.Second)

	var v int
	found, err := c.Get(ctx, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheCounter(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()

	for i := 1; i <= 3; i++ {
		n, err := c.Increment(ctx, "attempts")
		require.NoError(t, err)
		assert.EqualValues(t, i, n)
	}

	ttl, err := c.TTL(ctx, "attempts")
	require.NoError(t, err)
	assert.EqualValues(t, -1, ttl)

	require.NoError(t, c.Expire(ctx, "attempts", time.Minute))
	ttl, err = c.TTL(ctx, "attempts")
	require.NoError(t, err)
	assert.True(t, ttl > 0)

	ttl, err = c.TTL(ctx, "missing")
	require.NoError(t, err)
	assert.EqualValues(t, -2, ttl)
}
