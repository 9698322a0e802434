package cache

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/viccon/sturdyc"
)

// MemoryCache is an in-process Cache backend. Key-value entries live in a
// sturdyc client (sharded, TTL'd, capacity-bound); counters and sorted sets
// are plain mutex-guarded maps since they must not expire.
type MemoryCache struct {
	kv *sturdyc.Client[[]byte]

	mu       sync.RWMutex
	counters map[string]int64
	zsets    map[string]map[string]float64
}

const evictionPercentage = 10

// NewMemoryCache creates a memory backend. The TTL applies to all key-value
// entries; the per-call ttl passed to Set is ignored since sturdyc expires
// per client, not per key. Callers use one fixed TTL anyway.
func NewMemoryCache(capacity, numShards int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		kv:       sturdyc.New[[]byte](capacity, numShards, ttl, evictionPercentage),
		counters: make(map[string]int64),
		zsets:    make(map[string]map[string]float64),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := c.kv.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return value, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.kv.Set(key, value)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		c.kv.Delete(key)
	}
	return nil
}

func (c *MemoryCache) IncrBy(_ context.Context, key string, delta int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counters[key] += delta
	return c.counters[key], nil
}

func (c *MemoryCache) ZIncrBy(_ context.Context, key, member string, delta float64) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	zset, ok := c.zsets[key]
	if !ok {
		zset = make(map[string]float64)
		c.zsets[key] = zset
	}
	zset[member] += delta
	return zset[member], nil
}

// TopByScore ranks by descending score, ties broken by ascending member.
func (c *MemoryCache) TopByScore(_ context.Context, key string, start, stop int64) ([]Member, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	zset := c.zsets[key]
	members := make([]Member, 0, len(zset))
	for member, score := range zset {
		members = append(members, Member{Member: member, Score: score})
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].Score != members[j].Score {
			return members[i].Score > members[j].Score
		}
		return members[i].Member < members[j].Member
	})

	if start < 0 {
		start = 0
	}
	if start >= int64(len(members)) || stop < start {
		return []Member{}, nil
	}
	if stop >= int64(len(members)) {
		stop = int64(len(members)) - 1
	}
	return members[start : stop+1], nil
}
