package metrics

import "github.com/prometheus/client_golang/prometheus"

// Match engine Prometheus metrics.
var (
	CascadeTierTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lawmatch",
			Name:      "cascade_tier_total",
			Help:      "Cascade tier attempts by outcome",
		},
		[]string{"tier", "outcome"}, // outcome: "hit" / "absent" / "error" / "refused"
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lawmatch",
			Name:      "search_duration_seconds",
			Help:      "End-to-end match search duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"policy", "tier"},
	)

	SecondaryPoolTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lawmatch",
			Name:      "secondary_pool_total",
			Help:      "Secondary pool fetches by source",
		},
		[]string{"source"}, // "advanced" / "listing" / "empty"
	)

	MatchPersistTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lawmatch",
			Name:      "match_persist_total",
			Help:      "Matched-lawyer persistence attempts by status",
		},
		[]string{"status"}, // "ok" / "error" / "skipped"
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers match engine metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(CascadeTierTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SecondaryPoolTotal)
	prometheus.MustRegister(MatchPersistTotal)
	searchMetricsRegistered = true
}
