package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// envKeyReplacer maps nested keys to env names, e.g. server.port -> SERVER_PORT.
var envKeyReplacer = strings.NewReplacer(".", "_")

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutDownTimeout time.Duration
	RequestTimeout  time.Duration
	AllowedOrigins  string
}

// StoreConfig selects and configures the book store backend.
type StoreConfig struct {
	Driver string // sqlite, postgres or memory
	DSN    string
}

// CacheConfig selects and configures the cache backend.
type CacheConfig struct {
	Backend   string // redis or memory
	Addr      string
	Password  string
	DB        int
	TTL       time.Duration
	Capacity  int
	NumShards int
}

// MiscConfig holds everything that doesn't fit elsewhere.
type MiscConfig struct {
	LogLevel     string
	GinMode      string
	ViewQueueLen int
}

// Config is the root configuration document.
type Config struct {
	Server ServerConfig
	Store  StoreConfig
	Cache  CacheConfig
	Misc   MiscConfig
}

// LoadConfig reads config.yaml from the working directory (or ./config),
// applying defaults and BOOKPOP_* environment overrides so the service can
// run without any config file at all.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Defaults to allow running without config file
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "10s")
	viper.SetDefault("server.write_timeout", "10s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "15s")
	viper.SetDefault("server.request_timeout", "5s")
	viper.SetDefault("server.allowed_origins", "*")
	viper.SetDefault("store.driver", "sqlite")
	viper.SetDefault("store.dsn", "file:bookpop.db?_fk=1")
	viper.SetDefault("cache.backend", "memory")
	viper.SetDefault("cache.addr", "localhost:6379")
	viper.SetDefault("cache.password", "")
	viper.SetDefault("cache.db", 0)
	viper.SetDefault("cache.ttl", "5m")
	viper.SetDefault("cache.capacity", 10000)
	viper.SetDefault("cache.num_shards", 64)
	viper.SetDefault("misc.log_level", "info")
	viper.SetDefault("misc.gin_mode", "release")
	viper.SetDefault("misc.view_queue_len", 256)

	// Environment variables like BOOKPOP_SERVER_PORT override everything
	viper.AutomaticEnv()
	viper.SetEnvPrefix("BOOKPOP")
	viper.SetEnvKeyReplacer(envKeyReplacer)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config file error: %w", err)
		}
		// No config file found, defaults and env vars apply
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            viper.GetInt("server.port"),
			ReadTimeout:     viper.GetDuration("server.read_timeout"),
			WriteTimeout:    viper.GetDuration("server.write_timeout"),
			IdleTimeout:     viper.GetDuration("server.idle_timeout"),
			ShutDownTimeout: viper.GetDuration("server.shutdown_timeout"),
			RequestTimeout:  viper.GetDuration("server.request_timeout"),
			AllowedOrigins:  viper.GetString("server.allowed_origins"),
		},
		Store: StoreConfig{
			Driver: viper.GetString("store.driver"),
			DSN:    viper.GetString("store.dsn"),
		},
		Cache: CacheConfig{
			Backend:   viper.GetString("cache.backend"),
			Addr:      viper.GetString("cache.addr"),
			Password:  viper.GetString("cache.password"),
			DB:        viper.GetInt("cache.db"),
			TTL:       viper.GetDuration("cache.ttl"),
			Capacity:  viper.GetInt("cache.capacity"),
			NumShards: viper.GetInt("cache.num_shards"),
		},
		Misc: MiscConfig{
			LogLevel:     viper.GetString("misc.log_level"),
			GinMode:      viper.GetString("misc.gin_mode"),
			ViewQueueLen: viper.GetInt("misc.view_queue_len"),
		},
	}

	if cfg.Cache.TTL <= 0 {
		return nil, fmt.Errorf("cache.ttl must be positive, got %v", cfg.Cache.TTL)
	}

	return cfg, nil
}
