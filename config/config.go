// Package config reads runtime configuration from CLIENTES_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/goliatone/go-clientes-sync/cache"
	"github.com/goliatone/go-clientes-sync/internal/logging"
)

// Prefix is prepended to every variable name, e.g. CLIENTES_API_BASE_URL.
const Prefix = "CLIENTES"

// Config holds runtime configuration for the client.
type Config struct {
	APIBaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:8000/api"`
	APITimeout time.Duration `envconfig:"API_TIMEOUT" default:"30s"`

	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	CacheCapacity int           `envconfig:"CACHE_CAPACITY" default:"1000"`
	CacheShards   int           `envconfig:"CACHE_SHARDS" default:"16"`

	NotifyDuration time.Duration `envconfig:"NOTIFY_DURATION" default:"3s"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values envconfig can not.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid API base url %q", c.APIBaseURL)
	}
	if c.APITimeout < 0 {
		return errors.New("api timeout must not be negative")
	}
	if c.NotifyDuration <= 0 {
		return errors.New("notify duration must be positive")
	}
	return c.Cache().Validate()
}

// Cache returns the cache configuration derived from c.
func (c *Config) Cache() cache.Config {
	cfg := cache.DefaultConfig()
	cfg.TTL = c.CacheTTL
	cfg.Capacity = c.CacheCapacity
	cfg.NumShards = c.CacheShards
	return cfg
}

// Logging returns the logger configuration derived from c.
func (c *Config) Logging() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.LogLevel)
	cfg.Format = logging.ParseFormat(c.LogFormat)
	return cfg
}
