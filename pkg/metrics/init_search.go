package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// modularityBuckets spans the useful range of Q for real graphs
var modularityBuckets = []float64{-0.5, -0.25, 0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}

func (r *Registry) initSearchMetrics() {
	r.SearchRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cluso_search_runs_total",
			Help: "Total number of completed local search runs",
		},
		[]string{"strategy", "halt_reason"},
	)

	r.SearchRunDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cluso_search_run_duration_seconds",
			Help:    "Local search run duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
		[]string{"strategy"},
	)

	r.SearchRunsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cluso_search_runs_in_flight",
			Help: "Number of local search runs currently executing",
		},
	)

	r.SearchProposalsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cluso_search_proposals_total",
			Help: "Total number of move proposals by outcome (noop, accepted, rejected)",
		},
		[]string{"outcome"},
	)

	r.SearchFinalModularity = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cluso_search_final_modularity",
			Help:    "Modularity reached when a search run halts",
			Buckets: modularityBuckets,
		},
		[]string{"strategy"},
	)

	r.SearchCommunities = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cluso_search_communities",
			Help:    "Number of communities in the final partition",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12),
		},
		[]string{"strategy"},
	)

	r.SearchTraceLength = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cluso_search_trace_length",
			Help:    "Number of accepted moves recorded in a search trace",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)
}
