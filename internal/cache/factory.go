package cache

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/bassista/bookpop/internal/config"
)

const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// NewCacheFromConfig creates a Cache for the configured backend.
// "redis" connects to the configured server; "memory" keeps everything
// in process, which is what tests and cache-less deployments use.
func NewCacheFromConfig(cfg config.CacheConfig) (Cache, error) {
	switch cfg.Backend {
	case BackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		return NewRedisCache(rdb), nil
	case BackendMemory, "":
		return NewMemoryCache(cfg.Capacity, cfg.NumShards, cfg.TTL), nil
	default:
		return nil, fmt.Errorf("unknown cache backend: %s (supported: %s, %s)",
			cfg.Backend, BackendRedis, BackendMemory)
	}
}
