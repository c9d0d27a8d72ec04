package algorithms

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/dd0wney/cluso-community/pkg/graph"
)

// propertyGraph builds a small graph with integer weights from raw values.
// Consecutive triples become (u, v, weight); edge 0-1 guarantees m > 0.
func propertyGraph(n int, raw []int) *graph.Graph {
	edges := []graph.Edge{{From: 0, To: 1, Weight: 1}}
	for i := 0; i+2 < len(raw); i += 3 {
		edges = append(edges, graph.Edge{
			From:   raw[i] % n,
			To:     raw[i+1] % n,
			Weight: float64(raw[i+2]%3 + 1),
		})
	}
	g, err := graph.New(n, edges)
	if err != nil {
		panic(err)
	}
	return g
}

func randomLabels(rng *rand.Rand, n int) []int {
	labels := make([]int, n)
	k := rng.IntN(n) + 1
	for i := range labels {
		labels[i] = rng.IntN(k)
	}
	return labels
}

// TestModularityInvariants checks the evaluator and driver invariants on
// random graphs and partitions
func TestModularityInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)
	nodes := gen.IntRange(2, 14)
	raw := gen.SliceOfN(36, gen.IntRange(0, 1<<16))

	// Property 1: delta equals the difference of full evaluations
	properties.Property("delta matches full modularity difference", prop.ForAll(
		func(n int, raw []int, seed uint64) bool {
			g := propertyGraph(n, raw)
			rng := rand.New(rand.NewPCG(seed, 1))
			state, err := NewPartitionState(g, randomLabels(rng, n))
			if err != nil {
				return false
			}

			for i := 0; i < 20; i++ {
				h, y := rng.IntN(n), rng.IntN(n)
				before := FullModularity(g, state.Labels())
				delta := state.Delta(h, y)
				state.Apply(h, y)
				if !approxEqual(FullModularity(g, state.Labels())-before, delta) {
					return false
				}
			}
			return true
		},
		nodes, raw, gen.UInt64(),
	))

	// Property 2: community degree sums always add up to 2m
	properties.Property("aggregate invariant holds", prop.ForAll(
		func(n int, raw []int, seed uint64) bool {
			g := propertyGraph(n, raw)
			state := NewSingletonState(g)
			rng := rand.New(rand.NewPCG(seed, 2))

			for i := 0; i < 50; i++ {
				state.Apply(rng.IntN(n), rng.IntN(n))
				if state.SigmaTotal() != 2*g.TotalWeight() {
					return false
				}
			}
			return true
		},
		nodes, raw, gen.UInt64(),
	))

	// Property 3: modularity stays within [-1/2, 1]
	properties.Property("modularity is bounded", prop.ForAll(
		func(n int, raw []int, seed uint64) bool {
			g := propertyGraph(n, raw)
			q := FullModularity(g, randomLabels(rand.New(rand.NewPCG(seed, 3)), n))
			return q >= -0.5-tolerance && q <= 1+tolerance
		},
		nodes, raw, gen.UInt64(),
	))

	// Property 4: the trace increases and ends at the full modularity
	properties.Property("search trace is monotone and consistent", prop.ForAll(
		func(n int, raw []int, seed uint64, split bool) bool {
			g := propertyGraph(n, raw)
			cfg := DefaultSearchConfig().WithSeed(seed)
			cfg.MaxEvaluatedMoves = 2000
			if split {
				cfg.SplitProbability = 0.25
			}
			s, err := NewSearch(g, cfg, WithLogger(nopLogger))
			if err != nil {
				return false
			}
			res := s.Run(context.Background())

			for i := 1; i < len(res.Trace); i++ {
				if res.Trace[i]-res.Trace[i-1] <= DefaultEpsilon {
					return false
				}
			}
			return s.State() == SearchHalted &&
				approxEqual(FullModularity(g, res.NodeCommunity), res.Modularity) &&
				res.Stats.Accepted == len(res.Trace)-1
		},
		nodes, raw, gen.UInt64(), gen.Bool(),
	))

	// Property 5: canonical labels keep the grouping and are dense
	properties.Property("canonicalize preserves grouping", prop.ForAll(
		func(labels []int) bool {
			dense, k := Canonicalize(labels)
			seen := make([]bool, k)
			for _, c := range dense {
				if c < 0 || c >= k {
					return false
				}
				seen[c] = true
			}
			for _, ok := range seen {
				if !ok {
					return false
				}
			}
			return sameGrouping(labels, dense)
		},
		gen.SliceOf(gen.IntRange(-5, 5)),
	))

	properties.TestingRun(t)
}
