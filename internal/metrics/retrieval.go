package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// QueriesTotal counts retrieval queries by outcome.
	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "snipdex",
			Name:      "queries_total",
			Help:      "Total number of retrieval queries",
		},
		[]string{"status"},
	)

	// QueryDuration observes end-to-end retrieval query latency.
	QueryDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "snipdex",
			Name:      "query_duration_seconds",
			Help:      "Retrieval query duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1},
		},
	)
)

var registerRetrievalOnce sync.Once

// RegisterRetrievalMetrics registers retrieval metrics with the default
// registry. Safe to call from multiple composition roots.
func RegisterRetrievalMetrics() {
	registerRetrievalOnce.Do(func() {
		prometheus.MustRegister(QueriesTotal)
		prometheus.MustRegister(QueryDuration)
	})
}
