package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps windows as Redis counters with a TTL, so multiple server
// processes share the same caps. Expiry replaces the memory store's janitor.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis-backed counter store. The prefix namespaces
// this limiter's keys within the shared database.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Incr implements CounterStore.
func (s *RedisStore) Incr(ctx context.Context, key string, windowLen time.Duration) (int, time.Time, error) {
	rkey := s.prefix + ":" + key

	count, err := s.client.Incr(ctx, rkey).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to increment counter: %w", err)
	}
	if count == 1 {
		if err := s.client.PExpire(ctx, rkey, windowLen).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("failed to set counter expiry: %w", err)
		}
		return int(count), time.Now().Add(windowLen), nil
	}

	ttl, err := s.client.PTTL(ctx, rkey).Result()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("failed to read counter ttl: %w", err)
	}
	if ttl < 0 {
		// The key lost its expiry (e.g. a crash between INCR and PEXPIRE).
		// Re-arm it rather than leaking a counter that never resets.
		if err := s.client.PExpire(ctx, rkey, windowLen).Err(); err != nil {
			return 0, time.Time{}, fmt.Errorf("failed to re-arm counter expiry: %w", err)
		}
		ttl = windowLen
	}
	return int(count), time.Now().Add(ttl), nil
}
