// Package ratelimit provides the fixed-window login attempt limiter.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Limiter reports whether another attempt is allowed for a key (client IP).
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
	Close() error
}

type Config struct {
	RedisURL string
	Attempts int
	Window   time.Duration
}

type redisLimiter struct {
	client   *redis.Client
	attempts int
	window   time.Duration
}

func NewRedisLimiter(ctx context.Context, config Config) (Limiter, error) {
	opts, err := redis.ParseURL(config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &redisLimiter{
		client:   client,
		attempts: config.Attempts,
		window:   config.Window,
	}, nil
}

// Allow counts the attempt in the current window. The first attempt of a
// window starts its expiry clock.
func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := "ratelimit:login:" + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}
	return count <= int64(l.attempts), nil
}

func (l *redisLimiter) Close() error {
	return l.client.Close()
}

type noopLimiter struct{}

// NewNoopLimiter returns a limiter that allows everything; used when rate
// limiting is disabled by config.
func NewNoopLimiter() Limiter {
	return noopLimiter{}
}

func (noopLimiter) Allow(context.Context, string) (bool, error) { return true, nil }
func (noopLimiter) Close() error                                { return nil }
