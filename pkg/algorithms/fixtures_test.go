package algorithms

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-community/pkg/graph"
	"github.com/dd0wney/cluso-community/pkg/logging"
)

const tolerance = 1e-9

// twoTriangles returns two disconnected 3-cliques {0,1,2} and {3,4,5}
func twoTriangles(t testing.TB) *graph.Graph {
	t.Helper()
	g, err := graph.Unweighted(6,
		[2]int{0, 1}, [2]int{1, 2}, [2]int{0, 2},
		[2]int{3, 4}, [2]int{4, 5}, [2]int{3, 5},
	)
	require.NoError(t, err)
	return g
}

// triangle returns a single 3-clique
func triangle(t testing.TB) *graph.Graph {
	t.Helper()
	g, err := graph.Unweighted(3, [2]int{0, 1}, [2]int{1, 2}, [2]int{0, 2})
	require.NoError(t, err)
	return g
}

// bowtie returns two triangles joined by the bridge 2-3
func bowtie(t testing.TB) *graph.Graph {
	t.Helper()
	g, err := graph.Unweighted(6,
		[2]int{0, 1}, [2]int{1, 2}, [2]int{0, 2},
		[2]int{2, 3},
		[2]int{3, 4}, [2]int{4, 5}, [2]int{3, 5},
	)
	require.NoError(t, err)
	return g
}

// ringOfCliques returns k cliques of size s, consecutive cliques joined by
// a single edge, closing the ring.
func ringOfCliques(t testing.TB, k, s int) *graph.Graph {
	t.Helper()
	var pairs [][2]int
	for c := 0; c < k; c++ {
		base := c * s
		for i := 0; i < s; i++ {
			for j := i + 1; j < s; j++ {
				pairs = append(pairs, [2]int{base + i, base + j})
			}
		}
		next := ((c + 1) % k) * s
		pairs = append(pairs, [2]int{base, next + s - 1})
	}
	g, err := graph.Unweighted(k*s, pairs...)
	require.NoError(t, err)
	return g
}

func quietSearch(t testing.TB, g *graph.Graph, cfg SearchConfig, opts ...SearchOption) *Search {
	t.Helper()
	opts = append([]SearchOption{WithLogger(nopLogger)}, opts...)
	s, err := NewSearch(g, cfg, opts...)
	require.NoError(t, err)
	return s
}

// sameGrouping reports whether two labelings induce the same partition
func sameGrouping(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	fwd := make(map[int]int)
	rev := make(map[int]int)
	for i := range a {
		if l, ok := fwd[a[i]]; ok && l != b[i] {
			return false
		}
		if l, ok := rev[b[i]]; ok && l != a[i] {
			return false
		}
		fwd[a[i]] = b[i]
		rev[b[i]] = a[i]
	}
	return true
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

var nopLogger = logging.NewNopLogger()
