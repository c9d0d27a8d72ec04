package algorithms

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSingletonState(t *testing.T) {
	g := bowtie(t)
	s := NewSingletonState(g)

	assert.Equal(t, 6, s.NodeCount())
	assert.Equal(t, 6, s.CommunityCount())
	for i := 0; i < 6; i++ {
		assert.Equal(t, i, s.Label(i))
		assert.Equal(t, 1, s.CommunitySize(i))
		assert.Equal(t, g.Degree(i), s.Sigma(i))
	}
	_, ok := s.FreeLabel()
	assert.False(t, ok, "no label is free when every node is alone")
}

func TestNewPartitionState_WarmStart(t *testing.T) {
	g := bowtie(t)
	s, err := NewPartitionState(g, []int{10, 10, 10, -3, -3, -3})
	require.NoError(t, err)

	assert.Equal(t, 2, s.CommunityCount())
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, s.Labels())
	assert.Equal(t, 7.0, s.Sigma(0))
	assert.Equal(t, 7.0, s.Sigma(1))

	free, ok := s.FreeLabel()
	require.True(t, ok)
	assert.Equal(t, 2, free, "lowest free label is handed out first")
}

func TestNewPartitionState_WrongLength(t *testing.T) {
	for _, labels := range [][]int{nil, {0}, {0, 0, 0, 0, 0, 0, 0}} {
		_, err := NewPartitionState(bowtie(t), labels)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidWarmStart))
	}
}

func TestPartitionState_Labels_ReturnsCopy(t *testing.T) {
	s := NewSingletonState(triangle(t))
	labels := s.Labels()
	labels[0] = 2
	assert.Equal(t, 0, s.Label(0))
}

func TestPartitionState_DeltaMatchesFullModularity(t *testing.T) {
	g := bowtie(t)
	s, err := NewPartitionState(g, []int{0, 0, 1, 1, 2, 2})
	require.NoError(t, err)

	for h := 0; h < g.NodeCount(); h++ {
		for y := 0; y < g.NodeCount(); y++ {
			before := FullModularity(g, s.Labels())
			moved := s.Labels()
			moved[h] = y
			want := FullModularity(g, moved) - before
			assert.InDelta(t, want, s.Delta(h, y), tolerance, "move %d -> %d", h, y)
		}
	}
}

func TestPartitionState_DeltaSameLabelIsZero(t *testing.T) {
	s := NewSingletonState(bowtie(t))
	for h := 0; h < s.NodeCount(); h++ {
		assert.Zero(t, s.Delta(h, s.Label(h)))
	}
}

func TestPartitionState_Apply(t *testing.T) {
	g := triangle(t)
	s := NewSingletonState(g)

	s.Apply(0, 1)
	assert.Equal(t, 2, s.CommunityCount())
	assert.Equal(t, 2, s.CommunitySize(1))
	assert.Equal(t, 4.0, s.Sigma(1))
	assert.Zero(t, s.Sigma(0))
	free, ok := s.FreeLabel()
	require.True(t, ok)
	assert.Equal(t, 0, free)

	// Moving into a free label reopens it
	s.Apply(1, 0)
	assert.Equal(t, 3, s.CommunityCount())
	assert.Equal(t, 2.0, s.Sigma(0))
	_, ok = s.FreeLabel()
	assert.False(t, ok)

	// No-op
	s.Apply(2, 2)
	assert.Equal(t, 3, s.CommunityCount())
	assert.Equal(t, 2.0*g.TotalWeight(), s.SigmaTotal())
}

func TestPartitionState_AggregatesAfterRandomMoves(t *testing.T) {
	g := ringOfCliques(t, 5, 4)
	s := NewSingletonState(g)
	rng := rand.New(rand.NewPCG(7, 11))
	n := g.NodeCount()

	for step := 0; step < 2000; step++ {
		h := rng.IntN(n)
		var y int
		if free, ok := s.FreeLabel(); ok && rng.IntN(4) == 0 {
			y = free
		} else {
			y = s.Label(rng.IntN(n))
		}
		s.Apply(h, y)

		// Integer weights keep the sums exact
		require.Equal(t, 2*g.TotalWeight(), s.SigmaTotal(), "step %d", step)
	}

	sigma := make([]float64, n)
	sizes := make([]int, n)
	for i := 0; i < n; i++ {
		sigma[s.Label(i)] += g.Degree(i)
		sizes[s.Label(i)]++
	}
	communities := 0
	for c := 0; c < n; c++ {
		assert.Equal(t, sigma[c], s.Sigma(c), "sigma of %d", c)
		assert.Equal(t, sizes[c], s.CommunitySize(c), "size of %d", c)
		if sizes[c] > 0 {
			communities++
		}
	}
	assert.Equal(t, communities, s.CommunityCount())
}
