package algorithms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-community/pkg/graph"
)

func TestFullModularity_KnownPartitions(t *testing.T) {
	tests := []struct {
		name   string
		g      func(testing.TB) *graph.Graph
		labels []int
		want   float64
	}{
		{"two triangles split", twoTriangles, []int{0, 0, 0, 1, 1, 1}, 0.5},
		{"two triangles merged", twoTriangles, []int{0, 0, 0, 0, 0, 0}, 0},
		{"triangle together", triangle, []int{7, 7, 7}, 0},
		{"triangle singletons", triangle, []int{0, 1, 2}, -1.0 / 3},
		{"bowtie split", bowtie, []int{0, 0, 0, 1, 1, 1}, 5.0 / 14},
		{"bowtie bridge pulled left", bowtie, []int{0, 0, 0, 0, 1, 1}, 24.0 / 196},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FullModularity(tt.g(t), tt.labels)
			assert.InDelta(t, tt.want, got, tolerance)
		})
	}
}

func TestFullModularity_AllInOneIsZero(t *testing.T) {
	g := ringOfCliques(t, 4, 5)
	labels := make([]int, g.NodeCount())
	assert.InDelta(t, 0.0, FullModularity(g, labels), tolerance)
}

func TestFullModularity_Singletons(t *testing.T) {
	// Singleton modularity is -Σk²/(2m)² with no self-loops
	g := bowtie(t)
	labels := []int{0, 1, 2, 3, 4, 5}

	var sumSquares float64
	for i := 0; i < g.NodeCount(); i++ {
		sumSquares += g.Degree(i) * g.Degree(i)
	}
	twoM := 2 * g.TotalWeight()
	assert.InDelta(t, -sumSquares/(twoM*twoM), FullModularity(g, labels), tolerance)
}

func TestFullModularity_LabelValuesIrrelevant(t *testing.T) {
	g := bowtie(t)
	a := FullModularity(g, []int{0, 0, 0, 1, 1, 1})
	b := FullModularity(g, []int{-4, -4, -4, 99, 99, 99})
	assert.Equal(t, a, b)
}

func TestFullModularity_SelfLoops(t *testing.T) {
	g, err := graph.New(3, []graph.Edge{
		{From: 0, To: 0, Weight: 1},
		{From: 0, To: 1, Weight: 1},
		{From: 1, To: 2, Weight: 1},
	})
	require.NoError(t, err)

	// m = 3, degrees 3,2,1; {0,1},{2}: in = 2*1 + 2*1 = 4, Σ = 5 and 1
	want := 4.0/6 - (25.0+1.0)/36
	assert.InDelta(t, want, FullModularity(g, []int{0, 0, 1}), tolerance)
}

func TestModularity_LengthMismatch(t *testing.T) {
	_, err := Modularity(triangle(t), []int{0, 0})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidPartition))

	q, err := Modularity(triangle(t), []int{0, 0, 0})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, q, tolerance)
}

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name   string
		labels []int
		want   []int
		k      int
	}{
		{"empty", []int{}, []int{}, 0},
		{"already dense", []int{0, 1, 1, 2}, []int{0, 1, 1, 2}, 3},
		{"sparse", []int{5, 5, 9, 2, 9}, []int{0, 0, 1, 2, 1}, 3},
		{"negative", []int{-1, 3, -1}, []int{0, 1, 0}, 2},
		{"single", []int{42, 42, 42}, []int{0, 0, 0}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dense, k := Canonicalize(tt.labels)
			assert.Equal(t, tt.want, dense)
			assert.Equal(t, tt.k, k)
			assert.True(t, sameGrouping(tt.labels, dense))
		})
	}
}

func TestCanonicalize_DoesNotMutateInput(t *testing.T) {
	labels := []int{3, 1, 3}
	Canonicalize(labels)
	assert.Equal(t, []int{3, 1, 3}, labels)
}

func TestBuildCommunities(t *testing.T) {
	g := bowtie(t)
	dense, k := Canonicalize([]int{1, 1, 1, 0, 0, 0})
	communities := BuildCommunities(g, dense, k)

	require.Len(t, communities, 2)
	assert.Equal(t, []int{0, 1, 2}, communities[0].Nodes)
	assert.Equal(t, []int{3, 4, 5}, communities[1].Nodes)
	for _, c := range communities {
		assert.Equal(t, 3, c.Size)
		assert.InDelta(t, 1.0, c.Density, tolerance)
	}
}

func TestBuildCommunities_SingletonDensity(t *testing.T) {
	g := triangle(t)
	dense, k := Canonicalize([]int{0, 1, 2})
	for _, c := range BuildCommunities(g, dense, k) {
		assert.Equal(t, 1, c.Size)
		assert.Zero(t, c.Density)
	}
}
