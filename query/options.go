package query

import (
	"log/slog"

	"github.com/goliatone/go-clientes-sync/cache"
	"github.com/goliatone/go-clientes-sync/internal/metrics"
)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used for fetch and invalidation events.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records fetches and invalidations on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Coordinator) {
		c.metrics = m
	}
}

// WithKeySerializer replaces the storage key scheme.
func WithKeySerializer(s cache.KeySerializer) Option {
	return func(c *Coordinator) {
		if s != nil {
			c.serializer = s
		}
	}
}
