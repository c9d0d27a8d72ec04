package algorithms

import (
	"fmt"

	"github.com/dd0wney/cluso-community/pkg/graph"
	"github.com/dd0wney/cluso-community/pkg/validation"
)

// DefaultLabelPropagationIterations is used when maxIterations is zero
const DefaultLabelPropagationIterations = 100

// LabelPropagation performs label propagation for community detection.
// Fast, scalable baseline for large graphs.
//
// Nodes are visited in index order and adopt the label with the largest
// total edge weight among their neighbors. Ties keep the current label when
// it is among the best, otherwise the smallest label wins, so the result is
// deterministic. The labeling can seed a local search as a warm start.
func LabelPropagation(g *graph.Graph, maxIterations int) (*CommunityDetectionResult, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil graph", graph.ErrInvalidGraph)
	}
	err := validation.NewConfigValidator("LabelPropagation").
		NonNegative("maxIterations", maxIterations).
		Validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if maxIterations == 0 {
		maxIterations = DefaultLabelPropagationIterations
	}

	// Initialize: each node in its own community
	n := g.NodeCount()
	labels := make([]int, n)
	for i := range labels {
		labels[i] = i
	}

	weight := make(map[int]float64)
	for iter := 0; iter < maxIterations; iter++ {
		changed := false

		for node := 0; node < n; node++ {
			clear(weight)
			for neighbor, w := range g.Neighbors(node) {
				weight[labels[neighbor]] += w
			}
			if len(weight) == 0 {
				continue
			}

			current := labels[node]
			best, bestWeight := current, weight[current]
			for label, w := range weight {
				if w > bestWeight || (w == bestWeight && best != current && label < best) {
					best, bestWeight = label, w
				}
			}

			if best != current {
				labels[node] = best
				changed = true
			}
		}

		if !changed {
			break // Converged
		}
	}

	return newResult(g, labels, FullModularity(g, labels)), nil
}
