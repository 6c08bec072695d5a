package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// DatabaseQueryLatency records repository query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "commons_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// TranscriptionRequests counts speech-to-text calls by outcome.
	TranscriptionRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commons_transcription_requests_total",
		Help: "Total number of transcription requests by outcome",
	}, []string{"outcome"})

	// TranscriptionLatency records speech-to-text round-trip latency.
	TranscriptionLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "commons_transcription_latency_seconds",
		Help:    "Transcription provider latency in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
	})

	// IdentityLookups counts bearer token validations against the identity provider.
	IdentityLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "commons_identity_lookups_total",
		Help: "Total number of identity provider token lookups by outcome",
	}, []string{"outcome"})
)

// TrackQuery returns a func that records the query latency when called, e.g. with defer.
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}

// CircuitBreakerState reports each breaker's state: 0 closed, 1 half-open, 2 open.
var CircuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "commons_circuit_breaker_state",
	Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
}, []string{"name"})
