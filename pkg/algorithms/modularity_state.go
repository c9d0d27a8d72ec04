package algorithms

import (
	"fmt"

	"github.com/dd0wney/cluso-community/pkg/graph"
)

// LabelView is the read-only view of a partition handed to move generators.
type LabelView interface {
	NodeCount() int
	Label(node int) int
	CommunitySize(label int) int
	// FreeLabel returns an unoccupied label, if any.
	FreeLabel() (int, bool)
}

// PartitionState is the mutable community assignment of a search together
// with the per-community degree sums needed for O(deg) delta evaluation.
//
// Labels live in [0, n): a community can never need a label outside that
// range because there are at most n non-empty communities. Every slice is
// indexed by label.
type PartitionState struct {
	g *graph.Graph

	labels      []int
	sigma       []float64 // sum of member degrees per label
	sizes       []int     // member count per label
	free        []int     // stack of empty labels
	communities int
}

// NewSingletonState places every node in its own community.
func NewSingletonState(g *graph.Graph) *PartitionState {
	n := g.NodeCount()
	labels := make([]int, n)
	for i := range labels {
		labels[i] = i
	}
	return newPartitionState(g, labels)
}

// NewPartitionState starts from a caller-supplied labeling. Labels may be
// any integers; only the grouping they induce is kept.
func NewPartitionState(g *graph.Graph, initial []int) (*PartitionState, error) {
	if len(initial) != g.NodeCount() {
		return nil, fmt.Errorf("%w: %d labels for %d nodes", ErrInvalidWarmStart, len(initial), g.NodeCount())
	}
	dense, _ := Canonicalize(initial)
	return newPartitionState(g, dense), nil
}

func newPartitionState(g *graph.Graph, labels []int) *PartitionState {
	n := g.NodeCount()
	s := &PartitionState{
		g:      g,
		labels: labels,
		sigma:  make([]float64, n),
		sizes:  make([]int, n),
	}

	for i, c := range labels {
		s.sigma[c] += g.Degree(i)
		if s.sizes[c] == 0 {
			s.communities++
		}
		s.sizes[c]++
	}

	// Highest first so that pops hand out the lowest free label
	for c := n - 1; c >= 0; c-- {
		if s.sizes[c] == 0 {
			s.free = append(s.free, c)
		}
	}
	return s
}

// NodeCount returns the number of nodes in the partition
func (s *PartitionState) NodeCount() int {
	return len(s.labels)
}

// Label returns the current label of node
func (s *PartitionState) Label(node int) int {
	return s.labels[node]
}

// Labels returns a copy of the label vector
func (s *PartitionState) Labels() []int {
	out := make([]int, len(s.labels))
	copy(out, s.labels)
	return out
}

// Sigma returns the degree sum of the community with the given label
func (s *PartitionState) Sigma(label int) float64 {
	return s.sigma[label]
}

// SigmaTotal returns the sum of all community degree sums, which equals 2m.
func (s *PartitionState) SigmaTotal() float64 {
	var total float64
	for _, v := range s.sigma {
		total += v
	}
	return total
}

// CommunitySize returns the number of members carrying label
func (s *PartitionState) CommunitySize(label int) int {
	return s.sizes[label]
}

// CommunityCount returns the number of non-empty communities
func (s *PartitionState) CommunityCount() int {
	return s.communities
}

// FreeLabel returns the next unoccupied label without reserving it.
func (s *PartitionState) FreeLabel() (int, bool) {
	if len(s.free) == 0 {
		return -1, false
	}
	return s.free[len(s.free)-1], true
}

// Delta returns the exact modularity change of moving node h from its
// current community x to community y:
//
//	ΔQ = [ (e_hy - e_hx) - k_h/2m · (Σ_y - (Σ_x - k_h)) ] / m
//
// where e_hc is the edge weight from h to the other members of c. It scans
// h's adjacency once and is 0 when y is h's current label.
func (s *PartitionState) Delta(h, y int) float64 {
	x := s.labels[h]
	if x == y {
		return 0
	}

	var ehy, ehx float64
	for j, w := range s.g.Neighbors(h) {
		switch s.labels[j] {
		case y:
			ehy += w
		case x:
			ehx += w
		}
	}

	m := s.g.TotalWeight()
	kh := s.g.Degree(h)
	return ((ehy - ehx) - kh/(2*m)*(s.sigma[y]-(s.sigma[x]-kh))) / m
}

// Apply moves node h to label y, updating the two affected aggregates.
// y must be in [0, n); an empty label opens a new community.
func (s *PartitionState) Apply(h, y int) {
	x := s.labels[h]
	if x == y {
		return
	}
	kh := s.g.Degree(h)

	if s.sizes[y] == 0 {
		s.claim(y)
		s.communities++
	}
	s.sigma[y] += kh
	s.sizes[y]++

	s.sigma[x] -= kh
	s.sizes[x]--
	if s.sizes[x] == 0 {
		s.sigma[x] = 0
		s.free = append(s.free, x)
		s.communities--
	}

	s.labels[h] = y
}

// claim removes label y from the free stack
func (s *PartitionState) claim(y int) {
	last := len(s.free) - 1
	if last >= 0 && s.free[last] == y {
		s.free = s.free[:last]
		return
	}
	for i, c := range s.free {
		if c == y {
			s.free = append(s.free[:i], s.free[i+1:]...)
			return
		}
	}
}
