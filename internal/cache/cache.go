// Package cache provides the Redis-backed cache for derived debt reports.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Stats caches serialized statistics payloads with a TTL. It satisfies
// debt.StatsCache. Every error degrades to a miss: the caller recomputes
// and the application keeps working without Redis.
type Stats struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to Redis at addr. The connection is verified eagerly so a
// misconfigured address fails at startup rather than on first request.
func New(ctx context.Context, addr string, ttl time.Duration) (*Stats, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &Stats{client: client, ttl: ttl}, nil
}

func (s *Stats) Get(ctx context.Context, key string) ([]byte, bool) {
	raw, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	return raw, true
}

func (s *Stats) Set(ctx context.Context, key string, value []byte) {
	if err := s.client.Set(ctx, key, value, s.ttl).Err(); err != nil {
		slog.Warn("failed to cache stats", "key", key, "error", err)
	}
}

// Invalidate deletes every key under the prefix. Entries are keyed per
// income value, so invalidation scans rather than deleting a single key.
func (s *Stats) Invalidate(ctx context.Context, prefix string) error {
	iter := s.client.Scan(ctx, 0, prefix+"*", 100).Iterator()

	var keys []string

	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("scanning cache keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("deleting cache keys: %w", err)
	}

	return nil
}

func (s *Stats) Close() error {
	return s.client.Close()
}
