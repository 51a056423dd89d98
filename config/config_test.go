package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-clientes-sync/internal/logging"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/api", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.APITimeout)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 1000, cfg.CacheCapacity)
	assert.Equal(t, 16, cfg.CacheShards)
	assert.Equal(t, 3*time.Second, cfg.NotifyDuration)

	cacheCfg := cfg.Cache()
	assert.Equal(t, 5*time.Minute, cacheCfg.TTL)
	assert.Equal(t, 10, cacheCfg.EvictionPercentage)

	logCfg := cfg.Logging()
	assert.Equal(t, logging.LevelInfo, logCfg.Level)
	assert.Equal(t, logging.FormatText, logCfg.Format)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("CLIENTES_API_BASE_URL", "https://erp.example.com/api")
	t.Setenv("CLIENTES_API_TIMEOUT", "5s")
	t.Setenv("CLIENTES_CACHE_TTL", "1m")
	t.Setenv("CLIENTES_NOTIFY_DURATION", "1500ms")
	t.Setenv("CLIENTES_LOG_LEVEL", "debug")
	t.Setenv("CLIENTES_LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://erp.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, time.Minute, cfg.Cache().TTL)
	assert.Equal(t, 1500*time.Millisecond, cfg.NotifyDuration)
	assert.Equal(t, logging.LevelDebug, cfg.Logging().Level)
	assert.Equal(t, logging.FormatJSON, cfg.Logging().Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"CLIENTES_API_BASE_URL":    "not a url",
		"CLIENTES_CACHE_CAPACITY":  "0",
		"CLIENTES_CACHE_SHARDS":    "5000",
		"CLIENTES_NOTIFY_DURATION": "0s",
		"CLIENTES_API_TIMEOUT":     "soon",
	}

	for name, value := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(name, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
