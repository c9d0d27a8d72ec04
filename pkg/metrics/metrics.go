package metrics

import (
	"time"
)

// Proposal outcomes
const (
	OutcomeNoop     = "noop"
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// SearchRun summarises one finished local search for recording
type SearchRun struct {
	Strategy    string
	HaltReason  string
	Duration    time.Duration
	Modularity  float64
	Communities int
	Noops       int
	Accepted    int
	Rejected    int
}

// RecordSearchRun records a finished local search run
func (r *Registry) RecordSearchRun(run SearchRun) {
	r.SearchRunsTotal.WithLabelValues(run.Strategy, run.HaltReason).Inc()
	r.SearchRunDuration.WithLabelValues(run.Strategy).Observe(run.Duration.Seconds())
	r.SearchFinalModularity.WithLabelValues(run.Strategy).Observe(run.Modularity)
	r.SearchCommunities.WithLabelValues(run.Strategy).Observe(float64(run.Communities))
	r.SearchTraceLength.Observe(float64(run.Accepted + 1))

	r.SearchProposalsTotal.WithLabelValues(OutcomeNoop).Add(float64(run.Noops))
	r.SearchProposalsTotal.WithLabelValues(OutcomeAccepted).Add(float64(run.Accepted))
	r.SearchProposalsTotal.WithLabelValues(OutcomeRejected).Add(float64(run.Rejected))
}

// SearchStarted marks a run as in flight; call the returned func when it ends
func (r *Registry) SearchStarted() func() {
	r.SearchRunsInFlight.Inc()
	return r.SearchRunsInFlight.Dec
}

// RecordDetection records a detection request over one or more restarts
func (r *Registry) RecordDetection(algorithm, status string, restarts int, best float64) {
	r.DetectionsTotal.WithLabelValues(algorithm, status).Inc()
	if status != "success" {
		return
	}
	r.DetectionRestarts.Observe(float64(restarts))
	r.DetectionBestQuality.Set(best)
}

// UpdateGraphMetrics records the shape of the graph being analysed
func (r *Registry) UpdateGraphMetrics(nodes, edges int, totalWeight float64) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
	r.GraphTotalWeight.Set(totalWeight)
}
