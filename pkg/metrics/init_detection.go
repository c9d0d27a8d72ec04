package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initDetectionMetrics() {
	r.DetectionsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "cluso_detections_total",
			Help: "Total number of community detection requests by algorithm and status",
		},
		[]string{"algorithm", "status"},
	)

	r.DetectionRestarts = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cluso_detection_restarts",
			Help:    "Independent search runs per detection",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
		},
	)

	r.DetectionBestQuality = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cluso_detection_best_modularity",
			Help: "Modularity of the most recent detection result",
		},
	)
}

func (r *Registry) initGraphMetrics() {
	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cluso_graph_nodes",
			Help: "Node count of the most recently analysed graph",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cluso_graph_edges",
			Help: "Distinct edge count of the most recently analysed graph",
		},
	)

	r.GraphTotalWeight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "cluso_graph_total_weight",
			Help: "Total edge weight m of the most recently analysed graph",
		},
	)
}
