package main

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/golang/snappy"

	"github.com/dd0wney/cluso-community/pkg/algorithms"
	"github.com/dd0wney/cluso-community/pkg/graph"
)

// Report is the JSON document written for a detection
type Report struct {
	RunID       string            `json:"run_id"`
	Run         int               `json:"run"`
	Seed        uint64            `json:"seed"`
	Strategy    string            `json:"strategy"`
	HaltReason  string            `json:"halt_reason"`
	Modularity  float64           `json:"modularity"`
	Nodes       int               `json:"nodes"`
	Edges       int               `json:"edges"`
	Clustering  float64           `json:"average_clustering"`
	Communities []CommunityReport `json:"communities"`
	Assignment  map[string]int    `json:"assignment"`
	Baseline    *BaselineReport   `json:"baseline,omitempty"`
	Stats       StatsReport       `json:"stats"`
	Trace       []float64         `json:"trace,omitempty"`
}

// CommunityReport describes one community by external node ids
type CommunityReport struct {
	ID      int      `json:"id"`
	Size    int      `json:"size"`
	Density float64  `json:"density"`
	Members []string `json:"members"`
}

// BaselineReport summarises the baseline used as a warm start
type BaselineReport struct {
	Algorithm   string  `json:"algorithm"`
	Modularity  float64 `json:"modularity"`
	Communities int     `json:"communities"`
}

// StatsReport carries the search counters
type StatsReport struct {
	Proposals  int     `json:"proposals"`
	Noops      int     `json:"noops"`
	Evaluated  int     `json:"evaluated"`
	Accepted   int     `json:"accepted"`
	Rejected   int     `json:"rejected"`
	DurationMs float64 `json:"duration_ms"`
}

func newReport(g *graph.Graph, res *algorithms.CommunityDetectionResult, withTrace bool) *Report {
	report := &Report{
		RunID:      res.Stats.RunID,
		Run:        res.Stats.Run,
		Seed:       res.Stats.Seed,
		Strategy:   string(res.Stats.Strategy),
		HaltReason: string(res.Stats.HaltReason),
		Modularity: res.Modularity,
		Nodes:      g.NodeCount(),
		Edges:      g.EdgeCount(),
		Clustering: algorithms.AverageClusteringCoefficient(g),
		Assignment: res.NodeCommunityByID(g),
		Stats: StatsReport{
			Proposals:  res.Stats.Proposals,
			Noops:      res.Stats.Noops,
			Evaluated:  res.Stats.Evaluated,
			Accepted:   res.Stats.Accepted,
			Rejected:   res.Stats.Rejected,
			DurationMs: float64(res.Stats.Duration) / float64(time.Millisecond),
		},
	}

	for _, c := range res.Communities {
		members := make([]string, len(c.Nodes))
		for i, node := range c.Nodes {
			members[i] = g.ID(node)
		}
		report.Communities = append(report.Communities, CommunityReport{
			ID:      c.ID,
			Size:    c.Size,
			Density: c.Density,
			Members: members,
		})
	}

	if withTrace {
		report.Trace = res.Trace
	}
	return report
}

// writeReport encodes the report as indented JSON. A path ending in ".sz"
// is written as a snappy framed stream; "-" is stdout.
func writeReport(path string, report *Report) (err error) {
	var w io.Writer = os.Stdout
	if path != "-" {
		f, createErr := os.Create(path)
		if createErr != nil {
			return createErr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	if strings.HasSuffix(path, ".sz") {
		sw := snappy.NewBufferedWriter(w)
		if err := encodeReport(sw, report); err != nil {
			return err
		}
		return sw.Close()
	}
	return encodeReport(w, report)
}

func encodeReport(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
