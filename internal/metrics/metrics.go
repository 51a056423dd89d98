package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the sync layer.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	FetchRequests *prometheus.CounterVec
	CacheHits     *prometheus.CounterVec
	SharedFetches *prometheus.CounterVec
	FetchErrors   *prometheus.CounterVec
	Invalidations *prometheus.CounterVec
	StaleDiscards *prometheus.CounterVec
	Mutations     *prometheus.CounterVec
	FetchLatency  *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
// A nil reg creates unregistered collectors, which is what tests want.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		FetchRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clientes_query_fetch_requests_total",
			Help: "Requests issued to the source of truth, labeled by resource",
		}, []string{"resource"}),
		CacheHits: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clientes_query_cache_hits_total",
			Help: "Fetches served from a ready entry, labeled by resource",
		}, []string{"resource"}),
		SharedFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clientes_query_shared_fetches_total",
			Help: "Fetches that joined a request already in flight, labeled by resource",
		}, []string{"resource"}),
		FetchErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clientes_query_fetch_errors_total",
			Help: "Requests that left their entry errored, labeled by resource",
		}, []string{"resource"}),
		Invalidations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clientes_query_invalidations_total",
			Help: "Entries invalidated, labeled by resource",
		}, []string{"resource"}),
		StaleDiscards: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clientes_query_stale_discards_total",
			Help: "Responses dropped because their entry was invalidated while in flight",
		}, []string{"resource"}),
		Mutations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "clientes_mutations_total",
			Help: "Mutations dispatched, labeled by operation and outcome",
		}, []string{"operation", "outcome"}),
		FetchLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clientes_query_fetch_latency_seconds",
			Help:    "Latency of requests issued by the coordinator in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource"}),
	}
}

// IncFetchRequest counts a request issued to the server.
func (m *Metrics) IncFetchRequest(resource string) {
	if m == nil {
		return
	}
	m.FetchRequests.WithLabelValues(resource).Inc()
}

// IncCacheHit counts a fetch served from a ready entry.
func (m *Metrics) IncCacheHit(resource string) {
	if m == nil {
		return
	}
	m.CacheHits.WithLabelValues(resource).Inc()
}

// IncSharedFetch counts a caller that joined a request already in flight.
func (m *Metrics) IncSharedFetch(resource string) {
	if m == nil {
		return
	}
	m.SharedFetches.WithLabelValues(resource).Inc()
}

// IncFetchError counts a failed request.
func (m *Metrics) IncFetchError(resource string) {
	if m == nil {
		return
	}
	m.FetchErrors.WithLabelValues(resource).Inc()
}

// IncInvalidation counts an invalidated entry.
func (m *Metrics) IncInvalidation(resource string) {
	if m == nil {
		return
	}
	m.Invalidations.WithLabelValues(resource).Inc()
}

// IncStaleDiscard counts a response dropped because its entry was invalidated.
func (m *Metrics) IncStaleDiscard(resource string) {
	if m == nil {
		return
	}
	m.StaleDiscards.WithLabelValues(resource).Inc()
}

// IncMutation records a mutation; outcome is "success" or "failure".
func (m *Metrics) IncMutation(operation, outcome string) {
	if m == nil {
		return
	}
	m.Mutations.WithLabelValues(operation, outcome).Inc()
}

// ObserveFetchLatency records how long a request for resource took.
func (m *Metrics) ObserveFetchLatency(resource string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.FetchLatency.WithLabelValues(resource).Observe(durationSeconds)
}
