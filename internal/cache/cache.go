package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss indicates the key is absent or expired.
var ErrMiss = errors.New("cache: miss")

// Member is one leaderboard entry.
type Member struct {
	Member string
	Score  float64
}

// Cache is a key-value store with per-key TTL, atomic counters and one
// ordered-score structure per key. Backends must provide atomic per-key
// operations; no cross-key transactionality is assumed.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error

	// IncrBy atomically adds delta to a counter and returns the new value.
	// A delta of 0 reads the current value; a missing counter starts at 0.
	IncrBy(ctx context.Context, key string, delta int64) (int64, error)

	// ZIncrBy atomically adds delta to member's score in the sorted set at
	// key, creating both as needed, and returns the new score.
	ZIncrBy(ctx context.Context, key, member string, delta float64) (float64, error)

	// TopByScore returns the members ranked [start, stop] (inclusive,
	// zero-based) by descending score.
	TopByScore(ctx context.Context, key string, start, stop int64) ([]Member, error)
}
