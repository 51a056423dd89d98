package mutation

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-clientes-sync/cache"
	"github.com/goliatone/go-clientes-sync/internal/logging"
	"github.com/goliatone/go-clientes-sync/internal/metrics"
	"github.com/goliatone/go-clientes-sync/notify"
	"github.com/goliatone/go-clientes-sync/pkg/apperrors"
	"github.com/goliatone/go-clientes-sync/records"
	"github.com/goliatone/go-clientes-sync/repositorycache"
)

// Notification texts.
const (
	MsgCreated       = "Cliente creado exitosamente"
	MsgUpdated       = "Cliente actualizado exitosamente"
	MsgDeleted       = "Cliente eliminado exitosamente"
	MsgSaveFailed    = "Error al guardar el cliente"
	MsgDeleteFailed  = "Error al eliminar el cliente"
	MsgLoadFailed    = "Error al cargar el cliente"
	MsgFixFormErrors = "Por favor corrige los errores en el formulario"
)

// Controller dispatches create, update and delete requests for forms and
// delete confirmations. Repo is expected to be the cached repository so
// successful writes invalidate the coordinator.
type Controller struct {
	repo     records.Repository
	notifier *notify.Center
	logger   *slog.Logger
	metrics  *metrics.Metrics
	related  []cache.Key

	// pending holds the ids of forms and confirmations with a request in flight.
	pending *xsync.MapOf[uuid.UUID, struct{}]
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for failed mutations.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics records mutation outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithRelatedKeys adds keys invalidated by every successful mutation, on
// top of the list and item keys the repository invalidates itself.
func WithRelatedKeys(keys ...cache.Key) Option {
	return func(c *Controller) {
		c.related = append(c.related, keys...)
	}
}

// NewController returns a controller writing through repo and reporting
// outcomes on notifier.
func NewController(repo records.Repository, notifier *notify.Center, opts ...Option) *Controller {
	c := &Controller{
		repo:     repo,
		notifier: notifier,
		logger:   logging.Nop(),
		pending:  xsync.NewMapOf[uuid.UUID, struct{}](),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Pending returns how many forms and confirmations have a request in flight.
func (c *Controller) Pending() int {
	return c.pending.Size()
}

// acquire sets the pending flag of id, failing with AlreadyPending when it
// is already set.
func (c *Controller) acquire(id uuid.UUID) (release func(), err error) {
	if _, loaded := c.pending.LoadOrStore(id, struct{}{}); loaded {
		return nil, apperrors.New(apperrors.CodeAlreadyPending, "a request for this form is already in flight")
	}
	return func() { c.pending.Delete(id) }, nil
}

func (c *Controller) isPending(id uuid.UUID) bool {
	_, ok := c.pending.Load(id)
	return ok
}

func (c *Controller) writeContext(ctx context.Context) context.Context {
	return repositorycache.WithInvalidationKeys(ctx, c.related...)
}

func (c *Controller) succeeded(operation, text string) {
	c.metrics.IncMutation(operation, "success")
	c.notifier.Success(text)
}

func (c *Controller) failed(operation, text string, err error) {
	c.metrics.IncMutation(operation, "failure")
	c.logger.Error("mutation failed", "operation", operation, "error", err)
	c.notifier.Error(text)
}
