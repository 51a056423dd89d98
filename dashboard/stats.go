// Package dashboard reads the aggregate counters served by
// GET /dashboard/stats. The counters are read-only here; client mutations
// invalidate StatsKey because total_clientes depends on them.
package dashboard

import (
	"context"

	"github.com/goliatone/go-clientes-sync/cache"
	"github.com/goliatone/go-clientes-sync/internal/transport"
	"github.com/goliatone/go-clientes-sync/query"
)

// StatsKey is the coordinator key of the dashboard counters.
var StatsKey = cache.ListKey("dashboard-stats")

const statsPath = "/dashboard/stats"

// Stats are the counters shown on the dashboard. Missing fields decode as zero.
type Stats struct {
	TotalClientes     int     `json:"total_clientes"`
	TotalCotizaciones int     `json:"total_cotizaciones"`
	CotizacionesMes   int     `json:"cotizaciones_mes"`
	MontoTotalMes     float64 `json:"monto_total_mes"`
}

// Repository fetches the counters from the server.
type Repository interface {
	Stats(ctx context.Context) (Stats, error)
}

type httpRepository struct {
	client transport.Client
}

// NewRepository returns a Repository backed by the given transport.
func NewRepository(client transport.Client) Repository {
	return &httpRepository{client: client}
}

func (r *httpRepository) Stats(ctx context.Context) (Stats, error) {
	resp, err := r.client.Get(ctx, statsPath)
	if err != nil {
		return Stats{}, err
	}
	var out Stats
	if err := resp.Decode(&out); err != nil {
		return Stats{}, err
	}
	return out, nil
}

// CachedRepository serves the counters through the coordinator.
type CachedRepository struct {
	base  Repository
	coord *query.Coordinator
}

var _ Repository = (*CachedRepository)(nil)

// NewCached wraps base with coord.
func NewCached(base Repository, coord *query.Coordinator) *CachedRepository {
	return &CachedRepository{base: base, coord: coord}
}

// Stats returns the counters, served from the coordinator when ready.
func (c *CachedRepository) Stats(ctx context.Context) (Stats, error) {
	return query.Fetch(ctx, c.coord, StatsKey, c.base.Stats)
}
