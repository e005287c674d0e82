package engine

import (
	"errors"
	"fmt"
	"time"

	"explore/experiments/metrics"
	"explore/game"

	"golang.org/x/exp/rand"
)

var (
	ErrNoMove       = errors.New("engine: agent found no move")
	ErrUnknownAgent = errors.New("engine: unknown agent kind")
)

const (
	AlphaBetaKind = "alphabeta"
	RandomKind    = "random"
)

// Agent picks the child of node to move to.
type Agent interface {
	FindMove(node game.Node) (game.Node, metrics.SearchMetric, error)
}

// NewAgent builds an agent by kind name. depth only applies to alpha-beta,
// seed only to the random agent.
func NewAgent(kind string, depth int, seed uint64) (Agent, error) {
	switch kind {
	case AlphaBetaKind:
		if depth < 1 {
			return nil, fmt.Errorf("%w: depth %d", game.ErrZeroDepth, depth)
		}
		return NewAlphaBetaAgent(depth), nil
	case RandomKind:
		return NewRandomAgent(seed), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAgent, kind)
}

type AlphaBetaAgent struct {
	search    *game.AlphaBeta
	collector metrics.Collector
}

// NewAlphaBetaAgent searches depth plies per move. opts are passed on to the
// searcher; the agent always installs its own metrics collector.
func NewAlphaBetaAgent(depth int, opts ...game.Option) *AlphaBetaAgent {
	collector := metrics.NewCollector()
	return &AlphaBetaAgent{
		search:    game.NewAlphaBeta(depth, append(opts, game.WithMetrics(collector))...),
		collector: collector,
	}
}

func (a *AlphaBetaAgent) FindMove(node game.Node) (game.Node, metrics.SearchMetric, error) {
	d := a.search.FindNextMove(node)
	m := a.collector.Complete()
	if d.Move == nil {
		return nil, m, fmt.Errorf("%w at %s", ErrNoMove, node.Name())
	}
	return d.Move, m, nil
}

// RandomAgent moves to a uniformly random child.
type RandomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *RandomAgent) FindMove(node game.Node) (game.Node, metrics.SearchMetric, error) {
	start := time.Now()
	var children []game.Node
	for child := range node.Children() {
		children = append(children, child)
	}
	m := metrics.SearchMetric{Strategy: RandomKind, StartTime: start, Expanded: 1}
	if len(children) == 0 {
		m.Duration = time.Since(start)
		return nil, m, fmt.Errorf("%w at %s", ErrNoMove, node.Name())
	}
	child := children[a.rng.Intn(len(children))]
	m.Duration = time.Since(start)
	return child, m, nil
}
