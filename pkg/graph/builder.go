package graph

// Builder assembles a Graph from opaque string identifiers. Nodes are
// numbered in first-seen order. A Builder is not safe for concurrent use.
type Builder struct {
	ids   []string
	index map[string]int
	edges []Edge
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		index: make(map[string]int),
	}
}

// AddNode registers id (a no-op if already present) and returns its index.
// Isolated nodes are allowed; they keep degree zero.
func (b *Builder) AddNode(id string) int {
	if i, ok := b.index[id]; ok {
		return i
	}
	i := len(b.ids)
	b.ids = append(b.ids, id)
	b.index[id] = i
	return i
}

// AddEdge adds an undirected weighted edge, registering both endpoints.
func (b *Builder) AddEdge(u, v string, weight float64) {
	b.edges = append(b.edges, Edge{
		From:   b.AddNode(u),
		To:     b.AddNode(v),
		Weight: weight,
	})
}

// AddUnweightedEdge adds an edge with DefaultWeight.
func (b *Builder) AddUnweightedEdge(u, v string) {
	b.AddEdge(u, v, DefaultWeight)
}

// NodeCount returns the number of nodes registered so far.
func (b *Builder) NodeCount() int {
	return len(b.ids)
}

// Build validates the accumulated edges and returns the immutable graph.
// The builder may keep being used afterwards; the graph does not share its slices.
func (b *Builder) Build() (*Graph, error) {
	ids := make([]string, len(b.ids))
	copy(ids, b.ids)
	return build("Build", len(ids), b.edges, ids)
}
