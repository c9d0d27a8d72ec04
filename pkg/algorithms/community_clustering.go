package algorithms

import (
	"github.com/dd0wney/cluso-community/pkg/graph"
)

// ClusteringCoefficient computes the local clustering coefficient of every
// node: the fraction of pairs of neighbors that are themselves adjacent.
// Weights and self-loops are ignored.
func ClusteringCoefficient(g *graph.Graph) []float64 {
	n := g.NodeCount()
	coefficients := make([]float64, n)

	// mark[j] == i+1 when j is a neighbor of i
	mark := make([]int, n)
	for i := 0; i < n; i++ {
		k := g.NeighborCount(i)
		if k < 2 {
			continue
		}
		for j := range g.Neighbors(i) {
			mark[j] = i + 1
		}

		// Each triangle through i is seen from both of its other corners
		triangles := 0
		for j := range g.Neighbors(i) {
			for l := range g.Neighbors(j) {
				if l != i && mark[l] == i+1 {
					triangles++
				}
			}
		}

		possible := k * (k - 1)
		coefficients[i] = float64(triangles) / float64(possible)
	}
	return coefficients
}

// AverageClusteringCoefficient computes the average clustering coefficient
func AverageClusteringCoefficient(g *graph.Graph) float64 {
	coefficients := ClusteringCoefficient(g)
	if len(coefficients) == 0 {
		return 0.0
	}

	sum := 0.0
	for _, coef := range coefficients {
		sum += coef
	}
	return sum / float64(len(coefficients))
}
