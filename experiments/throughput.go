package experiments

import (
	"fmt"

	"explore/experiments/metrics"
	"explore/searcher"

	"github.com/rs/zerolog/log"
)

// Variant is a search strategy with or without cycle avoidance.
type Variant struct {
	Strategy       searcher.Strategy
	CycleAvoidance bool
}

func (v Variant) String() string {
	if v.CycleAvoidance {
		return string(v.Strategy) + "-nocycles"
	}
	return string(v.Strategy)
}

// CycleFree lists every strategy with cycle avoidance on. These terminate on
// any finite state space.
var CycleFree = []Variant{
	{Strategy: searcher.DepthFirst, CycleAvoidance: true},
	{Strategy: searcher.BreadthFirst, CycleAvoidance: true},
	{Strategy: searcher.AStar, CycleAvoidance: true},
}

// PathProblem runs one search strategy on a problem and reports what it cost.
type PathProblem struct {
	Name  string
	Solve func(strategy searcher.Strategy, cycleAvoidance bool) (pathLen int, metric metrics.SearchMetric, err error)
}

// NewPathProblem wraps a problem of any state type for RunThroughput.
func NewPathProblem[S comparable](name string, problem searcher.Problem[S]) PathProblem {
	return PathProblem{
		Name: name,
		Solve: func(strategy searcher.Strategy, cycleAvoidance bool) (int, metrics.SearchMetric, error) {
			collector := metrics.NewCollector()
			opts := []searcher.Option{searcher.WithMetrics(collector)}
			if cycleAvoidance {
				opts = append(opts, searcher.WithCycleAvoidance())
			}
			path, err := searcher.New(problem, strategy, opts...).Search()
			metric := collector.Complete()
			if err != nil {
				return 0, metric, err
			}
			if path == nil {
				return -1, metric, nil
			}
			return path.Len(), metric, nil
		},
	}
}

// RunThroughput solves every problem with every variant and writes one search
// record per run. A path length of -1 records an exhausted search.
func RunThroughput(dir string, variants []Variant, problems []PathProblem) (string, error) {
	var records []metrics.SearchRecord

	log.Info().Msg("starting throughput experiment...")

	for _, problem := range problems {
		for _, variant := range variants {
			pathLen, metric, err := problem.Solve(variant.Strategy, variant.CycleAvoidance)
			if err != nil {
				return "", fmt.Errorf("%s with %v: %w", problem.Name, variant, err)
			}
			metric.Strategy = variant.String()
			records = append(records, metrics.SearchRecord{
				ID:           len(records) + 1,
				Problem:      problem.Name,
				PathLen:      pathLen,
				SearchMetric: metric,
			})
			log.Info().
				Str("problem", problem.Name).
				Str("strategy", metric.Strategy).
				Int("expanded", metric.Expanded).
				Dur("took", metric.Duration).
				Msg("search complete")
		}
	}

	writer, err := metrics.NewWriter(dir, "throughput")
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteSearchRecords(records); err != nil {
		return "", err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored search records")
	return writer.Dir(), nil
}
