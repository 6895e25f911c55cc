package utils

import (
	"context"
	"fmt"
	"time"

	"fashionmag-backend/pkg/cache"
)

const (
	DefaultMaxLoginAttempts = 5
	DefaultLoginLockout     = 15 * time.Minute
)

// LoginLimiter counts failed logins per key in the cache and locks the key
// once maxAttempts is reached. The lock lifts when the counter expires.
type LoginLimiter struct {
	cache       cache.Cache
	prefix      string
	maxAttempts int64
	lockout     time.Duration
}

func NewLoginLimiter(c cache.Cache, prefix string, maxAttempts int, lockout time.Duration) *LoginLimiter {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxLoginAttempts
	}
	if lockout <= 0 {
		lockout = DefaultLoginLockout
	}
	return &LoginLimiter{
		cache:       c,
		prefix:      prefix,
		maxAttempts: int64(maxAttempts),
		lockout:     lockout,
	}
}

func (l *LoginLimiter) key(subject string) string {
	return fmt.Sprintf("%s:login_failed:%s", l.prefix, subject)
}

// Locked reports whether subject has used up its attempts.
func (l *LoginLimiter) Locked(ctx context.Context, subject string) (bool, error) {
	var attempts int64
	found, err := l.cache.Get(ctx, l.key(subject), &attempts)
	if err != nil {
		return false, fmt.Errorf("read login attempts: %w", err)
	}
	return found && attempts >= l.maxAttempts, nil
}

// Fail records one failed attempt. The window restarts on the first failure
// and again when the lock engages.
func (l *LoginLimiter) Fail(ctx context.Context, subject string) error {
	key := l.key(subject)
	attempts, err := l.cache.Increment(ctx, key)
	if err != nil {
		return fmt.Errorf("record login attempt: %w", err)
	}
	if attempts == 1 || attempts >= l.maxAttempts {
		if err := l.cache.Expire(ctx, key, l.lockout); err != nil {
			return fmt.Errorf("expire login attempts: %w", err)
		}
	}
	return nil
}

func (l *LoginLimiter) Reset(ctx context.Context, subject string) error {
	return l.cache.Delete(ctx, l.key(subject))
}
