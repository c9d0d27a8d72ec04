// Package graph provides the immutable weighted, undirected graph that the
// community detection algorithms run on.
//
// Nodes are dense indices 0..n-1. Adjacency is stored in compressed sparse
// row form so that a Graph can be shared read-only by any number of
// concurrent searches.
package graph

import (
	"cmp"
	"iter"
	"math"
	"slices"
	"strconv"
)

// DefaultWeight is the weight assumed for edges given without one.
const DefaultWeight = 1.0

// Edge is an undirected edge between two node indices.
type Edge struct {
	From   int
	To     int
	Weight float64
}

// Graph is an immutable undirected weighted graph.
//
// Self-loops are kept out of the adjacency lists and reported through
// SelfLoop; they contribute twice their weight to the node's degree.
type Graph struct {
	ids   []string
	index map[string]int

	offsets []int // CSR row offsets, len n+1
	targets []int
	weights []float64

	loops   []float64
	degrees []float64

	totalWeight float64
	edgeCount   int
}

type pairKey struct {
	u, v int
}

// New builds a graph with n nodes from integer edges.
// Duplicate edges between the same pair are summed. Zero-weight edges are
// dropped. Fails with ErrInvalidGraph when n is zero, an endpoint is out of
// range, a weight is negative or not finite, or the total edge weight is zero.
func New(n int, edges []Edge) (*Graph, error) {
	return build("New", n, edges, nil)
}

// Unweighted builds a graph with n nodes and unit-weight edges.
func Unweighted(n int, pairs ...[2]int) (*Graph, error) {
	edges := make([]Edge, len(pairs))
	for i, p := range pairs {
		edges[i] = Edge{From: p[0], To: p[1], Weight: DefaultWeight}
	}
	return build("Unweighted", n, edges, nil)
}

func build(op string, n int, edges []Edge, ids []string) (*Graph, error) {
	if n <= 0 {
		return nil, invalid(op, "graph has no nodes")
	}

	pairs := make(map[pairKey]float64, len(edges))
	loops := make([]float64, n)

	for _, e := range edges {
		if e.From < 0 || e.From >= n {
			return nil, NewError(op).Node(e.From).Cause(ErrInvalidGraph).
				Context("endpoint out of range [0, %d)", n).Err()
		}
		if e.To < 0 || e.To >= n {
			return nil, NewError(op).Node(e.To).Cause(ErrInvalidGraph).
				Context("endpoint out of range [0, %d)", n).Err()
		}
		if math.IsNaN(e.Weight) || math.IsInf(e.Weight, 0) || e.Weight < 0 {
			return nil, invalid(op, "edge %d-%d has invalid weight %v", e.From, e.To, e.Weight)
		}
		if e.Weight == 0 {
			continue
		}
		if e.From == e.To {
			loops[e.From] += e.Weight
			continue
		}
		u, v := e.From, e.To
		if u > v {
			u, v = v, u
		}
		pairs[pairKey{u, v}] += e.Weight
	}

	g := &Graph{
		ids:     ids,
		offsets: make([]int, n+1),
		targets: make([]int, 2*len(pairs)),
		weights: make([]float64, 2*len(pairs)),
		loops:   loops,
		degrees: make([]float64, n),
	}

	// Count row sizes, then fill rows in sorted order so that iteration
	// order (and therefore seeded search output) is reproducible.
	keys := make([]pairKey, 0, len(pairs))
	for k := range pairs {
		keys = append(keys, k)
		g.offsets[k.u+1]++
		g.offsets[k.v+1]++
	}
	for i := 0; i < n; i++ {
		g.offsets[i+1] += g.offsets[i]
	}
	slices.SortFunc(keys, func(a, b pairKey) int {
		if c := cmp.Compare(a.u, b.u); c != 0 {
			return c
		}
		return cmp.Compare(a.v, b.v)
	})

	next := slices.Clone(g.offsets[:n])
	for _, k := range keys {
		w := pairs[k]
		g.targets[next[k.u]], g.weights[next[k.u]] = k.v, w
		next[k.u]++
		g.targets[next[k.v]], g.weights[next[k.v]] = k.u, w
		next[k.v]++
	}
	for i := 0; i < n; i++ {
		lo, hi := g.offsets[i], g.offsets[i+1]
		sortRow(g.targets[lo:hi], g.weights[lo:hi])
	}

	var degreeSum float64
	for i := 0; i < n; i++ {
		d := 2 * loops[i]
		for k := g.offsets[i]; k < g.offsets[i+1]; k++ {
			d += g.weights[k]
		}
		g.degrees[i] = d
		degreeSum += d
		if loops[i] > 0 {
			g.edgeCount++
		}
	}
	g.edgeCount += len(pairs)
	g.totalWeight = degreeSum / 2

	// Any overflowing pair, loop or degree makes the sum infinite
	if math.IsInf(degreeSum, 0) {
		return nil, invalid(op, "total edge weight overflows")
	}
	if g.totalWeight <= 0 {
		return nil, invalid(op, "total edge weight is zero")
	}

	if ids != nil {
		g.index = make(map[string]int, len(ids))
		for i, id := range ids {
			g.index[id] = i
		}
	}

	return g, nil
}

// sortRow orders one adjacency row by neighbor index, keeping weights aligned.
func sortRow(targets []int, weights []float64) {
	type entry struct {
		to int
		w  float64
	}
	row := make([]entry, len(targets))
	for i := range targets {
		row[i] = entry{targets[i], weights[i]}
	}
	slices.SortFunc(row, func(a, b entry) int { return cmp.Compare(a.to, b.to) })
	for i, e := range row {
		targets[i], weights[i] = e.to, e.w
	}
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.degrees)
}

// EdgeCount returns the number of distinct undirected edges, self-loops included.
func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

// Neighbors yields (neighbor, weight) for every non-loop edge incident to i.
func (g *Graph) Neighbors(i int) iter.Seq2[int, float64] {
	return func(yield func(int, float64) bool) {
		for k := g.offsets[i]; k < g.offsets[i+1]; k++ {
			if !yield(g.targets[k], g.weights[k]) {
				return
			}
		}
	}
}

// NeighborCount returns the number of distinct neighbors of i, excluding i itself.
func (g *Graph) NeighborCount(i int) int {
	return g.offsets[i+1] - g.offsets[i]
}

// NeighborAt returns the k-th neighbor of i in index order.
func (g *Graph) NeighborAt(i, k int) (int, float64) {
	idx := g.offsets[i] + k
	return g.targets[idx], g.weights[idx]
}

// Degree returns the weighted degree of i (self-loops counted twice).
func (g *Graph) Degree(i int) float64 {
	return g.degrees[i]
}

// SelfLoop returns the self-loop weight on i, or 0.
func (g *Graph) SelfLoop(i int) float64 {
	return g.loops[i]
}

// TotalWeight returns m, half the sum of all degrees.
func (g *Graph) TotalWeight() float64 {
	return g.totalWeight
}

// ID returns the external identifier of node i. Graphs built from integer
// edges report the decimal index.
func (g *Graph) ID(i int) string {
	if g.ids == nil {
		return strconv.Itoa(i)
	}
	return g.ids[i]
}

// Index returns the node index for an external identifier.
func (g *Graph) Index(id string) (int, error) {
	if g.index == nil {
		if i, err := strconv.Atoi(id); err == nil && i >= 0 && i < g.NodeCount() {
			return i, nil
		}
		return -1, NewError("Index").Cause(ErrNodeNotFound).Context("id %q", id).Err()
	}
	i, ok := g.index[id]
	if !ok {
		return -1, NewError("Index").Cause(ErrNodeNotFound).Context("id %q", id).Err()
	}
	return i, nil
}
