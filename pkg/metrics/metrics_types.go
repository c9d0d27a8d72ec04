package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for community detection
type Registry struct {
	// Search Metrics
	SearchRunsTotal       *prometheus.CounterVec
	SearchRunDuration     *prometheus.HistogramVec
	SearchRunsInFlight    prometheus.Gauge
	SearchProposalsTotal  *prometheus.CounterVec
	SearchFinalModularity *prometheus.HistogramVec
	SearchCommunities     *prometheus.HistogramVec
	SearchTraceLength     prometheus.Histogram

	// Detection Metrics (one detection may span several restarts)
	DetectionsTotal      *prometheus.CounterVec
	DetectionRestarts    prometheus.Histogram
	DetectionBestQuality prometheus.Gauge

	// Graph Metrics
	GraphNodes       prometheus.Gauge
	GraphEdges       prometheus.Gauge
	GraphTotalWeight prometheus.Gauge

	registry *prometheus.Registry
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
	}

	r.initSearchMetrics()
	r.initDetectionMetrics()
	r.initGraphMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
