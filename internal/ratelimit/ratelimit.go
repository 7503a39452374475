// Package ratelimit counts attempts per key inside a fixed window. The admin
// login uses it to slow down password guessing.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Limiter interface {
	// Allow records one attempt for key and reports whether it is within
	// the limit.
	Allow(ctx context.Context, key string) (bool, error)
	// Reset forgets the attempts of key.
	Reset(ctx context.Context, key string) error
}

// RedisLimiter keeps one counter per key that expires with the window, so
// every instance behind the load balancer shares the same budget.
type RedisLimiter struct {
	client      *redis.Client
	prefix      string
	maxAttempts int
	window      time.Duration
}

func NewRedisLimiter(client *redis.Client, maxAttempts int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client:      client,
		prefix:      "futsal:login:",
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// NewRedisClient parses a redis:// URL and checks the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := l.prefix + key
	count, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment attempts: %w", err)
	}
	if count == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set attempts window: %w", err)
		}
	}
	return count <= int64(l.maxAttempts), nil
}

func (l *RedisLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.prefix+key).Err()
}

type MemoryLimiter struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	now         func() time.Time
	buckets     map[string]*bucket
}

type bucket struct {
	count   int
	expires time.Time
}

func NewMemoryLimiter(maxAttempts int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		maxAttempts: maxAttempts,
		window:      window,
		now:         time.Now,
		buckets:     make(map[string]*bucket),
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok || !now.Before(b.expires) {
		b = &bucket{expires: now.Add(l.window)}
		l.buckets[key] = b
	}
	b.count++
	return b.count <= l.maxAttempts, nil
}

func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.buckets, key)
	return nil
}
