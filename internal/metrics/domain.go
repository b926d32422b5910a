package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	LLMRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Total number of LLM requests",
		},
		[]string{"operation", "model", "status"},
	)

	LLMRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "LLM request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"operation", "model"},
	)

	// LLMDegradedTotal counts calls answered with a fallback value instead of model output.
	LLMDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_degraded_total",
			Help:      "LLM calls that fell back to a default result",
		},
		[]string{"operation", "reason"},
	)

	EnrichmentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichments_total",
			Help:      "Case summary enrichments by outcome",
		},
		[]string{"source", "outcome"},
	)

	ImportRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "import_rows_total",
			Help:      "Dataset rows processed by import outcome",
		},
		[]string{"outcome"},
	)

	SearchHistoryFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_history_failures_total",
			Help:      "Search history writes that failed and were dropped",
		},
	)
)

func init() {
	prometheus.MustRegister(
		LLMRequestsTotal,
		LLMRequestDuration,
		LLMDegradedTotal,
		EnrichmentsTotal,
		ImportRowsTotal,
		SearchHistoryFailuresTotal,
	)
}
