// Package metrics defines the Prometheus instrumentation for the shop
// assistant: retrieval, scraping, snapshot and LLM-call metrics. All
// collectors are registered on the default registry, which the /metrics
// route exposes.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RetrievalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopassist",
			Name:      "retrievals_total",
			Help:      "Total number of retrieval queries",
		},
		[]string{"outcome"}, // "matched" / "fallback"
	)

	RetrievalDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "shopassist",
			Name:      "retrieval_duration_seconds",
			Help:      "Retrieval pipeline duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	ScrapesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopassist",
			Name:      "scrapes_total",
			Help:      "Total number of scrape operations",
		},
		[]string{"status"}, // "success" / "error" / "empty"
	)

	ScrapeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "shopassist",
			Name:      "scrape_duration_seconds",
			Help:      "Scrape operation duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
	)

	SnapshotProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "shopassist",
			Name:      "snapshot_products",
			Help:      "Number of products in the current snapshot",
		},
	)

	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shopassist",
			Name:      "llm_requests_total",
			Help:      "Total number of LLM backend requests",
		},
		[]string{"provider", "status"},
	)

	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shopassist",
			Name:      "llm_request_duration_seconds",
			Help:      "LLM backend request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider"},
	)

	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "shopassist",
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)
)

func init() {
	prometheus.MustRegister(RetrievalsTotal)
	prometheus.MustRegister(RetrievalDuration)
	prometheus.MustRegister(ScrapesTotal)
	prometheus.MustRegister(ScrapeDuration)
	prometheus.MustRegister(SnapshotProducts)
	prometheus.MustRegister(LLMRequestsTotal)
	prometheus.MustRegister(LLMRequestDuration)
	prometheus.MustRegister(CircuitBreakerState)
}
