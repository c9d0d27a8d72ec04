// Command cluso-community partitions an edge-list graph into communities by
// randomized local search over modularity.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dd0wney/cluso-community/pkg/algorithms"
	"github.com/dd0wney/cluso-community/pkg/graph"
	"github.com/dd0wney/cluso-community/pkg/logging"
	"github.com/dd0wney/cluso-community/pkg/metrics"
)

const (
	baselineComponents       = "components"
	baselineLabelPropagation = "label-propagation"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			logging.ErrorLog("community detection failed", logging.Error(err))
		}
		stop()
		os.Exit(1)
	}
}

type options struct {
	input       string
	configPath  string
	output      string
	warmStart   string
	baseline    string
	logLevel    string
	metricsFile string
	trace       bool
	timeout     time.Duration

	seed     uint64
	restarts int
	strategy string
	split    float64
	workers  int
}

func parseFlags(args []string) (options, map[string]bool, error) {
	var opts options
	fs := flag.NewFlagSet("cluso-community", flag.ContinueOnError)
	fs.StringVar(&opts.input, "input", "", "Edge list file (\"u v [weight]\" per line, - for stdin)")
	fs.StringVar(&opts.configPath, "config", "", "YAML configuration file")
	fs.StringVar(&opts.output, "output", "-", "Result file; a .sz suffix writes snappy-compressed JSON")
	fs.StringVar(&opts.warmStart, "warm-start", "", "Initial labels file (\"id label\" per line)")
	fs.StringVar(&opts.baseline, "baseline", "", "Warm start from a baseline: components or label-propagation")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics in text format to this file")
	fs.BoolVar(&opts.trace, "trace", false, "Include the modularity trace in the result")
	fs.DurationVar(&opts.timeout, "timeout", 0, "Stop searching after this long (0 = no limit)")
	fs.Uint64Var(&opts.seed, "seed", 0, "Random seed (default: random)")
	fs.IntVar(&opts.restarts, "restarts", 1, "Independent runs; the best is kept")
	fs.StringVar(&opts.strategy, "strategy", string(algorithms.StrategyRandomNode), "Proposal strategy: random-node or neighbor")
	fs.Float64Var(&opts.split, "split", 0, "Probability of proposing a move into a new community")
	fs.IntVar(&opts.workers, "workers", 0, "Worker goroutines for restarts (default: GOMAXPROCS)")

	if err := fs.Parse(args); err != nil {
		return opts, nil, err
	}
	if opts.input == "" {
		fs.Usage()
		return opts, nil, fmt.Errorf("%w: -input is required", errUsage)
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return opts, set, nil
}

// applyFlags overrides file settings with explicitly set flags
func applyFlags(config *fileConfig, opts options, set map[string]bool) {
	if set["seed"] {
		config.Search = config.Search.WithSeed(opts.seed)
	}
	if set["restarts"] {
		config.Search.Restarts = opts.restarts
	}
	if set["strategy"] {
		config.Search.Strategy = algorithms.ProposalStrategy(opts.strategy)
	}
	if set["split"] {
		config.Search.SplitProbability = opts.split
	}
	if set["workers"] {
		config.Search.Workers = opts.workers
	}
	if set["baseline"] {
		config.Baseline = opts.baseline
	}
	if set["log-level"] {
		config.LogLevel = opts.logLevel
	}
}

func run(ctx context.Context, args []string) error {
	opts, set, err := parseFlags(args)
	if err != nil {
		return err
	}

	config, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	applyFlags(&config, opts, set)
	if err := config.validate(); err != nil {
		return err
	}

	logging.SetDefaultLogger(logging.NewJSONLogger(os.Stderr, logging.ParseLevel(config.LogLevel)))
	logger := logging.With(logging.Component("cli"))
	logging.Debug("config loaded",
		logging.String("config", opts.configPath),
		logging.Strategy(string(config.Search.Strategy)),
		logging.Int("restarts", config.Search.Restarts),
	)
	registry := metrics.NewRegistry()

	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	timer := logging.StartTimer(logger, "graph loaded", logging.String("input", opts.input))
	g, err := readGraphFile(opts.input)
	if err != nil {
		timer.EndError(err)
		return err
	}
	timer.End(logging.Nodes(g.NodeCount()), logging.Count(g.EdgeCount()))

	var baseline *BaselineReport
	switch {
	case opts.warmStart != "":
		if config.Search.WarmStart, err = readWarmStartFile(opts.warmStart, g); err != nil {
			return err
		}
	case config.Baseline != "":
		res, err := runBaseline(config.Baseline, g)
		if err != nil {
			return err
		}
		config.Search.WarmStart = res.NodeCommunity
		baseline = &BaselineReport{
			Algorithm:   config.Baseline,
			Modularity:  res.Modularity,
			Communities: res.CommunityCount(),
		}
		logger.Info("baseline computed",
			logging.String("algorithm", config.Baseline),
			logging.Modularity(res.Modularity),
			logging.Communities(res.CommunityCount()),
		)
	}

	res, err := algorithms.DetectCommunities(ctx, g, config.Search,
		algorithms.WithLogger(logger),
		algorithms.WithMetrics(registry),
	)
	if err != nil {
		return err
	}

	if res.Stats.HaltReason == algorithms.HaltCancelled {
		logging.Warn("search cancelled, writing the best partition so far",
			logging.Modularity(res.Modularity))
	}

	report := newReport(g, res, opts.trace)
	report.Baseline = baseline
	if err := writeReport(opts.output, report); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	logging.Info("result written",
		logging.String("output", opts.output),
		logging.Modularity(res.Modularity),
		logging.Communities(res.CommunityCount()),
	)

	if opts.metricsFile != "" {
		if err := prometheus.WriteToTextfile(opts.metricsFile, registry.GetPrometheusRegistry()); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	return nil
}

func runBaseline(name string, g *graph.Graph) (*algorithms.CommunityDetectionResult, error) {
	switch name {
	case baselineComponents:
		return algorithms.ConnectedComponents(g)
	case baselineLabelPropagation:
		return algorithms.LabelPropagation(g, 0)
	default:
		return nil, fmt.Errorf("%w: unknown baseline %q", algorithms.ErrInvalidConfig, name)
	}
}
