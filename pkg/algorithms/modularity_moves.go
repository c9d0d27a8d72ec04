package algorithms

import (
	"math/rand/v2"

	"github.com/dd0wney/cluso-community/pkg/graph"
)

// Move is a candidate relabeling of one node
type Move struct {
	Node  int
	Label int
}

// MoveGenerator samples candidate moves. Generators hold no per-run state,
// so one generator may serve concurrent searches, each with its own rng.
//
// Proposed nodes and labels must lie in [0, view.NodeCount()). A search
// counts any other move as a no-op.
type MoveGenerator interface {
	// Propose returns a candidate, or false when none can be drawn
	// (fewer than two nodes).
	Propose(rng *rand.Rand, view LabelView) (Move, bool)
	Name() string
}

// Splitter is implemented by generators that can propose empty labels and
// so open new communities. A search over a single community keeps running
// only when its generator reports that it can split.
type Splitter interface {
	CanSplit() bool
}

// canSplit reports whether gen may open new communities
func canSplit(gen MoveGenerator) bool {
	s, ok := gen.(Splitter)
	return ok && s.CanSplit()
}

// NewMoveGenerator builds the generator for a strategy, wrapped with split
// proposals when splitProbability is positive.
func NewMoveGenerator(g *graph.Graph, strategy ProposalStrategy, splitProbability float64) MoveGenerator {
	var gen MoveGenerator
	switch strategy {
	case StrategyNeighbor:
		gen = NeighborMoves{Graph: g}
	default:
		gen = RandomNodeMoves{}
	}

	if splitProbability > 0 {
		gen = SplitMoves{Inner: gen, Probability: splitProbability}
	}
	return gen
}

// RandomNodeMoves draws two distinct nodes h and j uniformly and proposes
// giving h the label of j. It only ever reuses existing labels, so
// communities can merge or disappear but never appear.
type RandomNodeMoves struct{}

// Name returns the strategy name
func (RandomNodeMoves) Name() string { return string(StrategyRandomNode) }

// Propose implements MoveGenerator
func (RandomNodeMoves) Propose(rng *rand.Rand, view LabelView) (Move, bool) {
	n := view.NodeCount()
	if n < 2 {
		return Move{}, false
	}
	h := rng.IntN(n)
	return Move{Node: h, Label: view.Label(otherNode(rng, n, h))}, true
}

// otherNode draws uniformly from [0, n) \ {h}
func otherNode(rng *rand.Rand, n, h int) int {
	j := rng.IntN(n - 1)
	if j >= h {
		j++
	}
	return j
}

// NeighborMoves draws a node uniformly and proposes the label of one of its
// neighbors. Isolated nodes fall back to a random other node's label.
type NeighborMoves struct {
	Graph *graph.Graph
}

// Name returns the strategy name
func (NeighborMoves) Name() string { return string(StrategyNeighbor) }

// Propose implements MoveGenerator
func (m NeighborMoves) Propose(rng *rand.Rand, view LabelView) (Move, bool) {
	n := view.NodeCount()
	if n < 2 {
		return Move{}, false
	}
	h := rng.IntN(n)

	d := m.Graph.NeighborCount(h)
	if d == 0 {
		return Move{Node: h, Label: view.Label(otherNode(rng, n, h))}, true
	}
	j, _ := m.Graph.NeighborAt(h, rng.IntN(d))
	return Move{Node: h, Label: view.Label(j)}, true
}

// SplitMoves occasionally proposes moving a node into a fresh, empty
// community, which lets the search leave over-merged local optima.
// Otherwise it defers to Inner.
type SplitMoves struct {
	Inner       MoveGenerator
	Probability float64
}

// Name returns the inner strategy name with a split marker
func (m SplitMoves) Name() string { return m.Inner.Name() + "+split" }

// CanSplit implements Splitter
func (m SplitMoves) CanSplit() bool { return m.Probability > 0 }

// Propose implements MoveGenerator. A node that is already alone yields a
// no-op, since moving it to another empty label changes nothing.
func (m SplitMoves) Propose(rng *rand.Rand, view LabelView) (Move, bool) {
	n := view.NodeCount()
	if n < 2 {
		return Move{}, false
	}
	if rng.Float64() >= m.Probability {
		return m.Inner.Propose(rng, view)
	}

	h := rng.IntN(n)
	x := view.Label(h)
	if view.CommunitySize(x) <= 1 {
		return Move{Node: h, Label: x}, true
	}
	y, ok := view.FreeLabel()
	if !ok {
		return m.Inner.Propose(rng, view)
	}
	return Move{Node: h, Label: y}, true
}
