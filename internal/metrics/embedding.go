package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Embedding metrics are registered explicitly (no init()) so the dense
// strategy can run without them in tests.
var (
	// EmbeddingRequestsTotal counts embedding API requests by outcome.
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "snipdex",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding API requests",
		},
		[]string{"provider", "model", "status"},
	)

	// EmbeddingRequestDuration observes embedding API latency.
	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "snipdex",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	// EmbeddingCacheTotal counts embedding cache lookups by result (hit/miss).
	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "snipdex",
			Name:      "embedding_cache_total",
			Help:      "Total number of embedding cache lookups",
		},
		[]string{"result"},
	)
)

var registerEmbeddingOnce sync.Once

// RegisterEmbeddingMetrics registers embedding metrics with the default
// registry. Safe to call from multiple composition roots.
func RegisterEmbeddingMetrics() {
	registerEmbeddingOnce.Do(func() {
		prometheus.MustRegister(EmbeddingRequestsTotal)
		prometheus.MustRegister(EmbeddingRequestDuration)
		prometheus.MustRegister(EmbeddingCacheTotal)
	})
}
