package algorithms

import (
	"context"
	"errors"
	"fmt"

	"github.com/dd0wney/cluso-community/pkg/graph"
	"github.com/dd0wney/cluso-community/pkg/logging"
	"github.com/dd0wney/cluso-community/pkg/parallel"
)

// ErrRunFailed is returned when a restart did not produce a result.
var ErrRunFailed = errors.New("search run failed")

const algorithmLocalSearch = "local_search"

// DetectCommunities runs the local search cfg.Restarts times, with seeds
// seed, seed+1, ..., and returns the run with the highest final modularity.
// Ties go to the lowest run index, so a fixed seed gives a fixed answer
// regardless of worker scheduling. Restarts run on a worker pool; each run
// owns its own state and random source.
func DetectCommunities(ctx context.Context, g *graph.Graph, cfg SearchConfig, opts ...SearchOption) (*CommunityDetectionResult, error) {
	if g == nil {
		return nil, fmt.Errorf("%w: nil graph", graph.ErrInvalidGraph)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	env := newSearchEnv(opts)
	rc := cfg.resolve(g.NodeCount())

	timer := logging.StartTimer(env.logger, "community detection finished",
		logging.Component("detect"),
		logging.Nodes(g.NodeCount()),
		logging.Seed(rc.seed),
		logging.Int("restarts", rc.restarts),
	)

	searches := make([]*Search, rc.restarts)
	for i := range searches {
		run := rc
		run.seed = rc.seed + uint64(i)
		s, err := newSearch(g, run, env)
		if err != nil {
			env.recordDetection("error", rc.restarts, 0)
			timer.EndError(err)
			return nil, err
		}
		s.stats.Run = i
		searches[i] = s
	}

	results, err := runSearches(ctx, searches, rc.workers, env.logger)
	if err != nil {
		env.recordDetection("error", rc.restarts, 0)
		timer.EndError(err)
		return nil, err
	}

	best := results[0]
	for _, r := range results[1:] {
		if r.Modularity > best.Modularity {
			best = r
		}
	}

	status := "success"
	if best.Stats.HaltReason == HaltCancelled {
		status = "cancelled"
	}
	env.recordDetection(status, rc.restarts, best.Modularity)
	if env.metrics != nil {
		env.metrics.UpdateGraphMetrics(g.NodeCount(), g.EdgeCount(), g.TotalWeight())
	}

	timer.End(
		logging.Modularity(best.Modularity),
		logging.Communities(best.CommunityCount()),
		logging.Int("best_run", best.Stats.Run),
		logging.HaltReason(string(best.Stats.HaltReason)),
	)
	return best, nil
}

// runSearches runs every search to completion. A single search runs on the
// calling goroutine.
func runSearches(ctx context.Context, searches []*Search, workers int, logger logging.Logger) ([]*CommunityDetectionResult, error) {
	results := make([]*CommunityDetectionResult, len(searches))
	if len(searches) == 1 {
		results[0] = searches[0].Run(ctx)
		return results, nil
	}

	if workers <= 0 {
		workers = parallel.DefaultWorkers()
	}
	workers = min(workers, len(searches))
	pool, err := parallel.NewWorkerPool(workers, logger)
	if err != nil {
		return nil, err
	}

	for i, s := range searches {
		pool.Submit(func() {
			results[i] = s.Run(ctx)
		})
	}
	pool.Wait()

	for i, r := range results {
		if r == nil {
			return nil, fmt.Errorf("%w: run %d", ErrRunFailed, i)
		}
	}
	return results, nil
}

func (e searchEnv) recordDetection(status string, restarts int, best float64) {
	if e.metrics == nil {
		return
	}
	e.metrics.RecordDetection(algorithmLocalSearch, status, restarts, best)
}
