package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir()) // no config file present

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Misc.LogLevel)
	assert.Equal(t, "release", cfg.Misc.GinMode)
	assert.Greater(t, cfg.Misc.ViewQueueLen, 0)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())
	t.Setenv("BOOKPOP_SERVER_PORT", "9090")
	t.Setenv("BOOKPOP_CACHE_BACKEND", "redis")
	t.Setenv("BOOKPOP_CACHE_ADDR", "redis:6379")
	t.Setenv("BOOKPOP_STORE_DRIVER", "memory")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.Cache.Backend)
	assert.Equal(t, "redis:6379", cfg.Cache.Addr)
	assert.Equal(t, "memory", cfg.Store.Driver)
}

func TestLoadConfig_InvalidTTL(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())
	t.Setenv("BOOKPOP_CACHE_TTL", "0s")

	_, err := LoadConfig()
	assert.Error(t, err)
}
