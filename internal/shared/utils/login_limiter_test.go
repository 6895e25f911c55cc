package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fashionmag-backend/pkg/cache"
)

func TestLoginLimiterLocksAfterMaxAttempts(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemoryCache()
	limiter := NewLoginLimiter(c, "talent", 3, time.Minute)

	for i := 0; i < 2; i++ {
		require.NoError(t, limiter.Fail(ctx, "ava@example.com"))
		locked, err := limiter.Locked(ctx, "ava@example.com")
		require.NoError(t, err)
		assert.False(t, locked)
	}

	require.NoError(t, limiter.Fail(ctx, "ava@example.com"))
	locked, err := limiter.Locked(ctx, "ava@example.com")
	require.NoError(t, err)
	assert.True(t, locked)

	ttl, err := c.TTL(ctx, "talent:login_failed:ava@example.com")
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	other, err := limiter.Locked(ctx, "bea@example.com")
	require.NoError(t, err)
	assert.False(t, other)
}

func TestLoginLimiterReset(t *testing.T) {
	ctx := context.Background()
	limiter := NewLoginLimiter(cache.NewMemoryCache(), "admin", 1, 0)

	require.NoError(t, limiter.Fail(ctx, "root"))
	locked, err := limiter.Locked(ctx, "root")
	require.NoError(t, err)
	assert.True(t, locked)

	require.NoError(t, limiter.Reset(ctx, "root"))
	locked, err = limiter.Locked(ctx, "root")
	require.NoError(t, err)
	assert.False(t, locked)
}
