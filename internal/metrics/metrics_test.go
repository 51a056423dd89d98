package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(nil)

	m.IncFetchRequest("clientes")
	m.IncFetchRequest("clientes")
	m.IncCacheHit("clientes")
	m.IncInvalidation("dashboard_stats")
	m.IncMutation("create", "success")
	m.IncMutation("create", "failure")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.FetchRequests.WithLabelValues("clientes")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheHits.WithLabelValues("clientes")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Invalidations.WithLabelValues("dashboard_stats")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Mutations.WithLabelValues("create", "failure")))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncFetchRequest("clientes")
		m.IncMutation("delete", "success")
		m.ObserveFetchLatency("clientes", 0.1)
	})
}

func TestMetrics_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.IncStaleDiscard("clientes")

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["clientes_query_stale_discards_total"])
}
