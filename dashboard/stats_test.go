package dashboard_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-clientes-sync/cache"
	"github.com/goliatone/go-clientes-sync/dashboard"
	"github.com/goliatone/go-clientes-sync/internal/transport"
	"github.com/goliatone/go-clientes-sync/pkg/apperrors"
	"github.com/goliatone/go-clientes-sync/pkg/testsupport"
	"github.com/goliatone/go-clientes-sync/query"
)

func TestRepository_Stats(t *testing.T) {
	backend := testsupport.NewFakeBackend(t, testsupport.SampleClients()...)
	backend.SetStat("total_cotizaciones", 7)
	backend.SetStat("cotizaciones_mes", 2)
	backend.SetStat("monto_total_mes", 125000.5)

	repo := dashboard.NewRepository(transport.New(backend.URL()))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dashboard.Stats{
		TotalClientes:     len(testsupport.SampleClients()),
		TotalCotizaciones: 7,
		CotizacionesMes:   2,
		MontoTotalMes:     125000.5,
	}, stats)
}

func TestRepository_StatsTransportError(t *testing.T) {
	backend := testsupport.NewFakeBackend(t)
	backend.FailNext(testsupport.RouteStats, http.StatusInternalServerError)

	_, err := dashboard.NewRepository(transport.New(backend.URL())).Stats(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTransport)
	assert.Equal(t, http.StatusInternalServerError, apperrors.StatusOf(err))
}

func TestCachedRepository_Stats(t *testing.T) {
	backend := testsupport.NewFakeBackend(t, testsupport.SampleClients()...)
	store, err := cache.NewCacheService(cache.DefaultConfig())
	require.NoError(t, err)
	coord := query.New(store)

	cached := dashboard.NewCached(dashboard.NewRepository(transport.New(backend.URL())), coord)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := cached.Stats(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, backend.Calls(testsupport.RouteStats))

	coord.Invalidate(ctx, dashboard.StatsKey)
	_, err = cached.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, backend.Calls(testsupport.RouteStats))
	assert.Equal(t, "dashboard_stats", dashboard.StatsKey.String())
}
