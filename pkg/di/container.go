package di

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-clientes-sync/cache"
	"github.com/goliatone/go-clientes-sync/config"
	"github.com/goliatone/go-clientes-sync/dashboard"
	"github.com/goliatone/go-clientes-sync/internal/logging"
	"github.com/goliatone/go-clientes-sync/internal/metrics"
	"github.com/goliatone/go-clientes-sync/internal/transport"
	"github.com/goliatone/go-clientes-sync/listview"
	"github.com/goliatone/go-clientes-sync/mutation"
	"github.com/goliatone/go-clientes-sync/notify"
	"github.com/goliatone/go-clientes-sync/query"
	"github.com/goliatone/go-clientes-sync/records"
	"github.com/goliatone/go-clientes-sync/repositorycache"
)

// Container wires one operator session: a single coordinator shared by the
// cached repositories, the mutation controller and the views built from it.
type Container struct {
	config     config.Config
	logger     *slog.Logger
	registry   prometheus.Registerer
	httpClient *http.Client

	metrics      *metrics.Metrics
	client       transport.Client
	cacheService cache.CacheService
	coordinator  *query.Coordinator
	clients      *repositorycache.CachedRepository
	stats        *dashboard.CachedRepository
	notifier     *notify.Center
	controller   *mutation.Controller
}

// Option customizes a Container.
type Option func(*Container)

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Container) {
		c.logger = logger
	}
}

// WithRegisterer registers the metrics with reg instead of a private registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *Container) {
		c.registry = reg
	}
}

// WithHTTPClient sets the HTTP client used by the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Container) {
		c.httpClient = hc
	}
}

// NewContainer validates cfg and builds every component.
func NewContainer(cfg config.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{config: cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = logging.New(cfg.Logging())
	}
	if c.registry == nil {
		c.registry = prometheus.NewRegistry()
	}

	cacheService, err := cache.NewCacheService(cfg.Cache())
	if err != nil {
		return nil, err
	}

	transportOpts := []transport.Option{
		transport.WithTimeout(cfg.APITimeout),
		transport.WithLogger(c.logger),
	}
	if c.httpClient != nil {
		transportOpts = append(transportOpts, transport.WithHTTPClient(c.httpClient))
	}

	c.metrics = metrics.New(c.registry)
	c.client = transport.New(cfg.APIBaseURL, transportOpts...)
	c.cacheService = cacheService
	c.coordinator = query.New(cacheService,
		query.WithLogger(c.logger),
		query.WithMetrics(c.metrics),
	)
	c.clients = repositorycache.New(records.NewRepository(c.client), c.coordinator)
	c.stats = dashboard.NewCached(dashboard.NewRepository(c.client), c.coordinator)
	c.notifier = notify.NewCenter(cfg.NotifyDuration, notify.WithLogger(c.logger))
	c.controller = mutation.NewController(c.clients, c.notifier,
		mutation.WithLogger(c.logger),
		mutation.WithMetrics(c.metrics),
		mutation.WithRelatedKeys(dashboard.StatsKey),
	)

	return c, nil
}

// NewContainerWithDefaults builds a container from the environment.
func NewContainerWithDefaults(opts ...Option) (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return NewContainer(*cfg, opts...)
}

// Config returns the configuration the container was built from.
func (c *Container) Config() config.Config { return c.config }

// Logger returns the shared logger.
func (c *Container) Logger() *slog.Logger { return c.logger }

// Metrics returns the collectors registered by the container.
func (c *Container) Metrics() *metrics.Metrics { return c.metrics }

// CacheService returns the sturdyc-backed value store.
func (c *Container) CacheService() cache.CacheService { return c.cacheService }

// Coordinator returns the query coordinator shared by every cached repository.
func (c *Container) Coordinator() *query.Coordinator { return c.coordinator }

// Clients returns the cached client repository.
func (c *Container) Clients() *repositorycache.CachedRepository { return c.clients }

// Stats returns the cached dashboard repository.
func (c *Container) Stats() *dashboard.CachedRepository { return c.stats }

// Notifier returns the notification center.
func (c *Container) Notifier() *notify.Center { return c.notifier }

// Controller returns the mutation controller.
func (c *Container) Controller() *mutation.Controller { return c.controller }

// NewListView returns a list view bound to the container's repository and controller.
func (c *Container) NewListView() *listview.View {
	return listview.New(c.clients, c.controller)
}

// Close stops pending notification timers.
func (c *Container) Close() {
	c.notifier.Close()
}
