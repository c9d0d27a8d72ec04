package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-community/pkg/algorithms"
	"github.com/dd0wney/cluso-community/pkg/graph"
	"github.com/dd0wney/cluso-community/pkg/validation"
)

// fileConfig is the YAML configuration file
type fileConfig struct {
	LogLevel string                  `yaml:"log_level"`
	Baseline string                  `yaml:"baseline"` // "", "components" or "label-propagation"
	Search   algorithms.SearchConfig `yaml:"search"`
}

var (
	baselines = []string{baselineComponents, baselineLabelPropagation}
	logLevels = []string{"debug", "info", "warn", "warning", "error"}
)

// validate checks the file settings after flag overrides, before the graph
// is read.
func (c fileConfig) validate() error {
	err := validation.NewConfigValidator("config").
		When(c.Baseline != "", func(v *validation.ConfigValidator) {
			v.OneOf("Baseline", c.Baseline, baselines)
		}).
		When(c.LogLevel != "", func(v *validation.ConfigValidator) {
			v.OneOf("LogLevel", strings.ToLower(c.LogLevel), logLevels)
		}).
		Custom("Search", c.Search.Validate).
		Validate()
	if err != nil {
		return fmt.Errorf("%w: %w", algorithms.ErrInvalidConfig, err)
	}
	return nil
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		LogLevel: "info",
		Search:   algorithms.DefaultSearchConfig(),
	}
}

func loadConfig(path string) (fileConfig, error) {
	config := defaultFileConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse %s: %w", path, err)
	}
	return config, nil
}

// readWarmStart parses "id label" lines into one label per graph node.
// Every node must appear exactly once.
func readWarmStart(r io.Reader, g *graph.Graph) ([]int, error) {
	labels := make([]int, g.NodeCount())
	assigned := make([]bool, g.NodeCount())
	count := 0

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: want \"id label\"", algorithms.ErrInvalidWarmStart, lineNo)
		}
		node, err := g.Index(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", algorithms.ErrInvalidWarmStart, lineNo, err)
		}
		label, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: bad label %q", algorithms.ErrInvalidWarmStart, lineNo, fields[1])
		}
		if assigned[node] {
			return nil, fmt.Errorf("%w: line %d: node %s labeled twice", algorithms.ErrInvalidWarmStart, lineNo, fields[0])
		}

		labels[node] = label
		assigned[node] = true
		count++
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if count != g.NodeCount() {
		return nil, fmt.Errorf("%w: %d of %d nodes labeled", algorithms.ErrInvalidWarmStart, count, g.NodeCount())
	}
	return labels, nil
}

func readWarmStartFile(path string, g *graph.Graph) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readWarmStart(f, g)
}

func readGraphFile(path string) (*graph.Graph, error) {
	if path == "-" {
		return graph.ReadEdgeList(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return graph.ReadEdgeList(f)
}
