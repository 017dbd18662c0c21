package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studysearch",
			Name:      "searches_total",
			Help:      "Total number of search requests",
		},
		[]string{"mode", "status"},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "studysearch",
			Name:      "search_duration_seconds",
			Help:      "Search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"mode"},
	)

	SearchChunksScanned = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studysearch",
			Name:      "search_chunks_scanned_total",
			Help:      "Total chunks scanned during searches",
		},
		[]string{"mode"},
	)

	SearchChunksSkipped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "studysearch",
			Name:      "search_chunks_skipped_total",
			Help:      "Chunks skipped due to embedding dimension mismatch",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchesTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchChunksScanned)
	prometheus.MustRegister(SearchChunksSkipped)
	searchMetricsRegistered = true
}
