package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/mohdchalhoub/hamoudiWebsite-sub001/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// LoginLimiter applies a sliding-window rate limit to admin login attempts.
// It is constructed with its client so tests can point it at their own
// instance and reset state between runs.
type LoginLimiter struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

func NewLoginLimiter(client *redis.Client, maxAttempts int64, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Allow records one attempt for the username and reports whether the attempt
// is within the limit, along with the attempts remaining.
func (l *LoginLimiter) Allow(ctx context.Context, username string) (bool, int64, error) {
	key := fmt.Sprintf("login_attempts:%s", username)

	now := time.Now().UnixNano()
	windowStart := now - l.window.Nanoseconds()

	pipe := l.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", windowStart))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	count := pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, l.window)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.Error("Failed to execute rate limit pipeline", err, map[string]interface{}{
			"username": username,
		})
		return false, 0, err
	}

	attempts := count.Val()
	remaining := l.maxAttempts - attempts
	if remaining < 0 {
		remaining = 0
	}

	if attempts > l.maxAttempts {
		logger.Warn("Login rate limit exceeded", map[string]interface{}{
			"username": username,
			"attempts": attempts,
		})
		return false, remaining, nil
	}

	return true, remaining, nil
}

// Reset clears recorded attempts for the username, used after a successful login
func (l *LoginLimiter) Reset(ctx context.Context, username string) error {
	key := fmt.Sprintf("login_attempts:%s", username)
	return l.client.Del(ctx, key).Err()
}
