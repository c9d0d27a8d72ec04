package algorithms

import (
	"time"

	"github.com/dd0wney/cluso-community/pkg/graph"
)

// Community represents a detected community
type Community struct {
	ID      int
	Nodes   []int // Node indices, ascending
	Size    int
	Density float64 // Internal edge weight over possible pairs
}

// CommunityDetectionResult contains detected communities
type CommunityDetectionResult struct {
	Communities   []*Community
	Modularity    float64     // Quality measure of the partitioning
	NodeCommunity []int       // Node index -> dense community ID
	Trace         []float64   // Modularity after each accepted move, local search only
	Stats         SearchStats // Zero for the non-search baselines
}

// SearchStats describes how a local search run went
type SearchStats struct {
	RunID      string
	Run        int // Index among restarts
	Seed       uint64
	Strategy   ProposalStrategy
	Proposals  int
	Noops      int
	Evaluated  int
	Accepted   int
	Rejected   int
	HaltReason HaltReason
	Duration   time.Duration
}

// CommunityCount returns the number of communities found
func (r *CommunityDetectionResult) CommunityCount() int {
	return len(r.Communities)
}

// NodeCommunityByID maps external node identifiers to community IDs
func (r *CommunityDetectionResult) NodeCommunityByID(g *graph.Graph) map[string]int {
	out := make(map[string]int, len(r.NodeCommunity))
	for i, c := range r.NodeCommunity {
		out[g.ID(i)] = c
	}
	return out
}

// newResult canonicalizes labels into a result with the given modularity
func newResult(g *graph.Graph, labels []int, modularity float64) *CommunityDetectionResult {
	dense, k := Canonicalize(labels)
	return &CommunityDetectionResult{
		Communities:   BuildCommunities(g, dense, k),
		Modularity:    modularity,
		NodeCommunity: dense,
	}
}
