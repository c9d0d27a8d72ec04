package algorithms

import (
	"github.com/dd0wney/cluso-community/pkg/graph"
)

// Canonicalize renumbers arbitrary labels to dense ids 0..k-1 and returns k.
// Grouping is preserved exactly. Ids are handed out in order of first
// appearance, but callers should only rely on the grouping.
func Canonicalize(labels []int) ([]int, int) {
	ids := make(map[int]int)
	dense := make([]int, len(labels))
	for i, l := range labels {
		id, ok := ids[l]
		if !ok {
			id = len(ids)
			ids[l] = id
		}
		dense[i] = id
	}
	return dense, len(ids)
}

// BuildCommunities groups nodes by dense community id and computes each
// community's internal edge density.
func BuildCommunities(g *graph.Graph, dense []int, k int) []*Community {
	communities := make([]*Community, k)
	internal := make([]float64, k)
	for c := range communities {
		communities[c] = &Community{ID: c, Nodes: make([]int, 0)}
	}

	for i, c := range dense {
		communities[c].Nodes = append(communities[c].Nodes, i)
		for j, w := range g.Neighbors(i) {
			if j > i && dense[j] == c {
				internal[c] += w
			}
		}
	}

	for c, community := range communities {
		community.Size = len(community.Nodes)
		if community.Size > 1 {
			possible := float64(community.Size*(community.Size-1)) / 2
			community.Density = internal[c] / possible
		}
	}
	return communities
}
