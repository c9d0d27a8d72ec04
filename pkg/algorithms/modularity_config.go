package algorithms

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/dd0wney/cluso-community/pkg/validation"
)

var (
	// ErrInvalidWarmStart is returned when a warm-start labeling does not
	// assign exactly one label to every node.
	ErrInvalidWarmStart = errors.New("invalid warm start")
	// ErrInvalidConfig is returned for out-of-range search settings.
	ErrInvalidConfig = errors.New("invalid search config")
	// ErrInvalidPartition is returned when a label vector does not match the graph.
	ErrInvalidPartition = errors.New("invalid partition")
)

// ProposalStrategy selects how candidate moves are drawn.
type ProposalStrategy string

const (
	// StrategyRandomNode relabels a uniformly drawn node to the label of
	// another uniformly drawn, distinct node.
	StrategyRandomNode ProposalStrategy = "random-node"
	// StrategyNeighbor relabels a uniformly drawn node to the label of one of
	// its neighbors.
	StrategyNeighbor ProposalStrategy = "neighbor"
)

// Search defaults
const (
	DefaultMaxEvaluatedMoves = 10_000
	DefaultProposalFactor    = 10 // max proposals = factor * max evaluated moves
	DefaultPatienceFactor    = 50 // patience = factor * n
	DefaultEpsilon           = 1e-12
)

// SearchConfig configures the local search. Zero values select defaults.
type SearchConfig struct {
	// Seed makes a run reproducible; nil draws a random seed.
	Seed *uint64 `yaml:"seed,omitempty"`
	// MaxEvaluatedMoves bounds the number of proposals whose delta is computed.
	MaxEvaluatedMoves int `yaml:"max_evaluated_moves" validate:"gte=0"`
	// MaxProposals bounds all proposals, no-ops included.
	MaxProposals int `yaml:"max_proposals" validate:"gte=0"`
	// Patience is the number of consecutive non-improving evaluations
	// tolerated before the search halts; nil means 50 per node. Zero halts
	// on the first non-improving evaluation.
	Patience *int    `yaml:"patience,omitempty" validate:"omitempty,gte=0"`
	Epsilon  float64 `yaml:"epsilon" validate:"gte=0"`

	Strategy ProposalStrategy `yaml:"strategy" validate:"omitempty,oneof=random-node neighbor"`
	// SplitProbability is the chance that a proposal moves a node into a
	// fresh, empty community instead of adopting an existing label.
	SplitProbability float64 `yaml:"split_probability" validate:"gte=0,lte=1"`

	// Restarts is the number of independent runs; the best one is kept.
	Restarts int `yaml:"restarts" validate:"gte=0"`
	Workers  int `yaml:"workers" validate:"gte=0"`

	// WarmStart is an initial label per node, used verbatim as the grouping.
	WarmStart []int `yaml:"-"`
}

// DefaultSearchConfig returns the default search configuration
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		MaxEvaluatedMoves: DefaultMaxEvaluatedMoves,
		Epsilon:           DefaultEpsilon,
		Strategy:          StrategyRandomNode,
		Restarts:          1,
	}
}

// WithSeed returns a copy of the config pinned to seed.
func (c SearchConfig) WithSeed(seed uint64) SearchConfig {
	c.Seed = &seed
	return c
}

// WithPatience returns a copy of the config with an explicit patience.
func (c SearchConfig) WithPatience(patience int) SearchConfig {
	c.Patience = &patience
	return c
}

// Validate checks field ranges. It does not know the graph, so the warm
// start length is checked when a search is created.
func (c SearchConfig) Validate() error {
	v := validation.NewConfigValidator("SearchConfig").
		Struct(c).
		NonNegativeFloat("Epsilon", c.Epsilon).
		RangeFloat("SplitProbability", c.SplitProbability, 0, 1)
	if !v.HasErrors() {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, v.Validate())
}

// resolvedConfig is a SearchConfig with defaults applied for a graph of n nodes
type resolvedConfig struct {
	seed         uint64
	maxEvaluated int
	maxProposals int
	patience     int
	epsilon      float64
	strategy     ProposalStrategy
	splitProb    float64
	restarts     int
	workers      int
	warmStart    []int
}

func (c SearchConfig) resolve(n int) resolvedConfig {
	r := resolvedConfig{
		maxEvaluated: validation.DefaultOrInt(c.MaxEvaluatedMoves, DefaultMaxEvaluatedMoves),
		patience:     DefaultPatienceFactor * n,
		epsilon:      validation.DefaultOr(c.Epsilon, DefaultEpsilon),
		strategy:     validation.DefaultOr(c.Strategy, StrategyRandomNode),
		splitProb:    c.SplitProbability,
		restarts:     validation.DefaultOrInt(c.Restarts, 1),
		workers:      c.Workers,
		warmStart:    c.WarmStart,
	}
	r.maxProposals = validation.DefaultOrInt(c.MaxProposals, DefaultProposalFactor*r.maxEvaluated)

	if c.Patience != nil {
		r.patience = *c.Patience
	}

	if c.Seed != nil {
		r.seed = *c.Seed
	} else {
		r.seed = rand.Uint64()
	}
	return r
}
