package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer so the Redis implementation
// can be swapped for the in-process one in tests.
type Cache interface {
	// Get reads key and unmarshals it into dest.
	// found=false means a cache miss and dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value with a TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error

	// Counters for failed login tracking
	Increment(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}
