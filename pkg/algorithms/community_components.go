package algorithms

import (
	"container/list"
	"fmt"

	"github.com/dd0wney/cluso-community/pkg/graph"
)

// ConnectedComponents finds all connected components in the graph. Each
// component becomes one community; isolated nodes are singletons.
func ConnectedComponents(g *graph.Graph) (*CommunityDetectionResult, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil graph", graph.ErrInvalidGraph)
	}
	n := g.NodeCount()

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}
	componentID := 0

	// BFS to find each component
	for start := 0; start < n; start++ {
		if labels[start] >= 0 {
			continue
		}

		queue := list.New()
		queue.PushBack(start)
		labels[start] = componentID

		for queue.Len() > 0 {
			node, ok := queue.Remove(queue.Front()).(int)
			if !ok {
				continue
			}
			for neighbor := range g.Neighbors(node) {
				if labels[neighbor] < 0 {
					labels[neighbor] = componentID
					queue.PushBack(neighbor)
				}
			}
		}
		componentID++
	}

	return newResult(g, labels, FullModularity(g, labels)), nil
}
