package algorithms

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-community/pkg/graph"
	"github.com/dd0wney/cluso-community/pkg/logging"
	"github.com/dd0wney/cluso-community/pkg/metrics"
)

// SearchState is the driver state
type SearchState int

const (
	SearchRunning SearchState = iota
	SearchHalted
)

func (s SearchState) String() string {
	if s == SearchHalted {
		return "halted"
	}
	return "running"
}

// HaltReason records why a search stopped
type HaltReason string

const (
	HaltNone            HaltReason = ""
	HaltMoveBudget      HaltReason = "move_budget"
	HaltProposalBudget  HaltReason = "proposal_budget"
	HaltPatience        HaltReason = "patience"
	HaltSingleCommunity HaltReason = "single_community"
	HaltNoCandidates    HaltReason = "no_candidates"
	HaltCancelled       HaltReason = "cancelled"
)

// StepOutcome is the result of a single Step
type StepOutcome int

const (
	StepHalted StepOutcome = iota
	StepNoop
	StepAccepted
	StepRejected
)

func (o StepOutcome) String() string {
	switch o {
	case StepNoop:
		return "noop"
	case StepAccepted:
		return "accepted"
	case StepRejected:
		return "rejected"
	default:
		return "halted"
	}
}

// cancelCheckInterval is how many steps Run takes between context checks
const cancelCheckInterval = 1024

// SearchOption customizes a Search
type SearchOption func(*searchEnv)

type searchEnv struct {
	logger    logging.Logger
	metrics   *metrics.Registry
	generator MoveGenerator
}

// WithLogger sets the logger; the default logger is used otherwise.
func WithLogger(logger logging.Logger) SearchOption {
	return func(e *searchEnv) { e.logger = logger }
}

// WithMetrics records run metrics into registry.
func WithMetrics(registry *metrics.Registry) SearchOption {
	return func(e *searchEnv) { e.metrics = registry }
}

// WithMoveGenerator replaces the generator derived from the config.
func WithMoveGenerator(gen MoveGenerator) SearchOption {
	return func(e *searchEnv) { e.generator = gen }
}

func newSearchEnv(opts []SearchOption) searchEnv {
	var env searchEnv
	for _, opt := range opts {
		opt(&env)
	}
	env.logger = logging.OrDefault(env.logger)
	return env
}

// Search is the randomized local-search driver. It exclusively owns its
// partition state; the graph is shared read-only. A Search is not safe for
// concurrent use; run independent searches for parallelism.
type Search struct {
	g     *graph.Graph
	cfg   resolvedConfig
	state *PartitionState
	gen   MoveGenerator
	rng   *rand.Rand
	env   searchEnv

	splits  bool // generator can open new communities
	status  SearchState
	trace   []float64
	streak  int
	stats   SearchStats
	started time.Time
}

// NewSearch validates cfg and prepares a search in the Running state with
// the initial modularity as the first trace entry.
func NewSearch(g *graph.Graph, cfg SearchConfig, opts ...SearchOption) (*Search, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil graph", graph.ErrInvalidGraph)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newSearch(g, cfg.resolve(g.NodeCount()), newSearchEnv(opts))
}

func newSearch(g *graph.Graph, cfg resolvedConfig, env searchEnv) (*Search, error) {
	var state *PartitionState
	if cfg.warmStart != nil {
		var err error
		if state, err = NewPartitionState(g, cfg.warmStart); err != nil {
			return nil, err
		}
	} else {
		state = NewSingletonState(g)
	}

	gen := env.generator
	if gen == nil {
		gen = NewMoveGenerator(g, cfg.strategy, cfg.splitProb)
	}

	runID := uuid.New().String()
	s := &Search{
		g:      g,
		cfg:    cfg,
		state:  state,
		gen:    gen,
		splits: canSplit(gen),
		rng:    rand.New(rand.NewPCG(cfg.seed, cfg.seed^0x9e3779b97f4a7c15)),
		env:    env,
		trace:  []float64{FullModularity(g, state.labels)},
		stats: SearchStats{
			RunID:    runID,
			Seed:     cfg.seed,
			Strategy: ProposalStrategy(gen.Name()),
		},
		started: time.Now(),
	}
	s.env.logger = env.logger.With(logging.Component("local_search"), logging.RunID(runID))
	return s, nil
}

// State returns Running or Halted
func (s *Search) State() SearchState {
	return s.status
}

// HaltReason returns why the search halted, or HaltNone while running
func (s *Search) HaltReason() HaltReason {
	return s.stats.HaltReason
}

// Modularity returns the current modularity (the last trace entry)
func (s *Search) Modularity() float64 {
	return s.trace[len(s.trace)-1]
}

// Trace returns a copy of the accepted-move modularity trace
func (s *Search) Trace() []float64 {
	out := make([]float64, len(s.trace))
	copy(out, s.trace)
	return out
}

// Labels returns a copy of the current (non-canonical) labels
func (s *Search) Labels() []int {
	return s.state.Labels()
}

// Partition exposes the partition state for inspection
func (s *Search) Partition() LabelView {
	return s.state
}

// Stats returns the counters so far
func (s *Search) Stats() SearchStats {
	return s.stats
}

// Step performs one proposal/evaluate/accept iteration.
func (s *Search) Step() StepOutcome {
	if s.status == SearchHalted {
		return StepHalted
	}

	switch {
	case s.stats.Evaluated >= s.cfg.maxEvaluated:
		return s.halt(HaltMoveBudget)
	case s.stats.Proposals >= s.cfg.maxProposals:
		return s.halt(HaltProposalBudget)
	case !s.splits && s.state.CommunityCount() == 1:
		// Every proposal would be a no-op
		return s.halt(HaltSingleCommunity)
	}

	mv, ok := s.gen.Propose(s.rng, s.state)
	if !ok {
		return s.halt(HaltNoCandidates)
	}
	s.stats.Proposals++

	n := s.state.NodeCount()
	if mv.Node < 0 || mv.Node >= n || mv.Label < 0 || mv.Label >= n || mv.Label == s.state.Label(mv.Node) {
		s.stats.Noops++
		return StepNoop
	}

	s.stats.Evaluated++
	dq := s.state.Delta(mv.Node, mv.Label)
	if dq > s.cfg.epsilon {
		s.state.Apply(mv.Node, mv.Label)
		s.trace = append(s.trace, s.Modularity()+dq)
		s.stats.Accepted++
		s.streak = 0
		return StepAccepted
	}

	s.stats.Rejected++
	s.streak++
	if s.streak > s.cfg.patience {
		s.halt(HaltPatience)
	}
	return StepRejected
}

func (s *Search) halt(reason HaltReason) StepOutcome {
	s.status = SearchHalted
	s.stats.HaltReason = reason
	s.stats.Duration = time.Since(s.started)

	s.env.logger.Debug("search halted",
		logging.HaltReason(string(reason)),
		logging.Modularity(s.Modularity()),
		logging.Communities(s.state.CommunityCount()),
		logging.Int("proposals", s.stats.Proposals),
		logging.Int("accepted", s.stats.Accepted),
		logging.Seed(s.stats.Seed),
		logging.Latency(s.stats.Duration),
	)

	if s.env.metrics != nil {
		s.env.metrics.RecordSearchRun(metrics.SearchRun{
			Strategy:    string(s.stats.Strategy),
			HaltReason:  string(reason),
			Duration:    s.stats.Duration,
			Modularity:  s.Modularity(),
			Communities: s.state.CommunityCount(),
			Noops:       s.stats.Noops,
			Accepted:    s.stats.Accepted,
			Rejected:    s.stats.Rejected,
		})
	}
	return StepHalted
}

// Run steps until the search halts and returns the canonical result.
// ctx is checked cooperatively every few proposals; a cancelled search
// halts with HaltCancelled and still returns its best partition so far.
func (s *Search) Run(ctx context.Context) *CommunityDetectionResult {
	if s.env.metrics != nil && s.status == SearchRunning {
		defer s.env.metrics.SearchStarted()()
	}

	for i := 0; s.status == SearchRunning; i++ {
		if i%cancelCheckInterval == 0 && ctx.Err() != nil {
			s.halt(HaltCancelled)
			break
		}
		s.Step()
	}
	return s.Result()
}

// Result canonicalizes the current partition. It may be called at any time;
// while running it reflects the partition so far.
func (s *Search) Result() *CommunityDetectionResult {
	result := newResult(s.g, s.state.labels, s.Modularity())
	result.Trace = s.Trace()
	result.Stats = s.stats
	return result
}
