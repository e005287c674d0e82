package searcher

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"explore/experiments/metrics"

	"github.com/rs/zerolog/log"
)

var (
	ErrNegativeCost     = errors.New("searcher: arc cost must be a non-negative number")
	ErrInvalidHeuristic = errors.New("searcher: heuristic must be a non-negative number")
)

type Strategy string

const (
	DepthFirst   Strategy = "dfs"
	BreadthFirst Strategy = "bfs"
	AStar        Strategy = "astar"
)

// ParseStrategy accepts the short names used on the command line.
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case DepthFirst, BreadthFirst, AStar:
		return Strategy(name), nil
	}
	return "", fmt.Errorf("unknown search strategy %q", name)
}

type Status int

const (
	Ready Status = iota
	Running
	SolutionFound
	Exhausted
)

func (s Status) String() string {
	switch s {
	case Ready:
		return "ready"
	case Running:
		return "running"
	case SolutionFound:
		return "solution found"
	case Exhausted:
		return "exhausted"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Searcher finds paths from a problem's start state to its goals. Each call to
// Search returns the next solution; the frontier survives between calls.
type Searcher[S comparable] struct {
	problem   Problem[S]
	strategy  Strategy
	frontier  Frontier[S]
	priority  *Priority[S] // set for A*
	visited   *CostTable[S]
	heuristic func(S) float64

	status        Status
	solution      *Path[S]
	expanded      int
	err           error
	progressEvery int
	metrics       metrics.Collector
}

func NewDepthFirst[S comparable](problem Problem[S], opts ...Option) *Searcher[S] {
	return New(problem, DepthFirst, opts...)
}

func NewBreadthFirst[S comparable](problem Problem[S], opts ...Option) *Searcher[S] {
	return New(problem, BreadthFirst, opts...)
}

// NewAStar orders the frontier by path cost plus the problem's heuristic. A
// problem that does not implement Heuristic is searched with a zero estimate.
func NewAStar[S comparable](problem Problem[S], opts ...Option) *Searcher[S] {
	return New(problem, AStar, opts...)
}

func New[S comparable](problem Problem[S], strategy Strategy, opts ...Option) *Searcher[S] {
	if problem == nil {
		panic("searcher needs a problem")
	}
	o := options{ // Default values
		progressEvery: DefaultProgressEvery,
		metrics:       metrics.NewDummyCollector(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Searcher[S]{
		problem:       problem,
		strategy:      strategy,
		heuristic:     heuristicOf(problem),
		progressEvery: o.progressEvery,
		metrics:       o.metrics,
	}
	switch strategy {
	case DepthFirst:
		s.frontier = NewStack[S]()
	case BreadthFirst:
		s.frontier = NewQueue[S]()
	case AStar:
		s.priority = NewPriority(func(p *Path[S]) float64 {
			return p.Cost() + s.heuristic(p.End())
		})
		s.frontier = s.priority
	default:
		panic(fmt.Sprintf("unknown search strategy %q", strategy))
	}
	if o.cycleAvoidance {
		s.visited = NewCostTable[S]()
	}

	s.metrics.Start(string(strategy), 0)
	start := NewPath(problem.Start())
	if s.visited != nil {
		s.visited.Admit(start.End(), 0)
	}
	if err := s.insert(start); err != nil {
		s.err = err
	}
	return s
}

// Search returns the next path to a goal. It returns a nil path and a nil
// error once no further solutions exist. An error means the problem broke its
// contract; the searcher keeps returning that error afterwards.
func (s *Searcher[S]) Search() (*Path[S], error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.status == Exhausted {
		return nil, nil
	}

	s.status = Running
	for !s.frontier.Empty() {
		path, _ := s.frontier.Extract()
		s.expanded++
		s.metrics.AddExpansion()
		if s.progressEvery > 0 && s.expanded%s.progressEvery == 0 {
			log.Debug().Str("strategy", string(s.strategy)).Int("expanded", s.expanded).Int("frontier", s.frontier.Len()).Msg("expanding")
		}

		if s.stale(path) {
			continue
		}

		if s.problem.IsGoal(path.End()) {
			s.solution = path
			s.status = SolutionFound
			s.metrics.AddSolution(path.Cost())
			log.Debug().
				Str("strategy", string(s.strategy)).
				Float64("cost", path.Cost()).
				Int("expanded", s.expanded).
				Int("frontier", s.frontier.Len()).
				Msgf("solution: %v", path)
			return path, nil
		}

		if err := s.expand(path); err != nil {
			s.err = err
			return nil, err
		}
		s.metrics.ObserveFrontier(s.frontier.Len())
	}

	s.status = Exhausted
	log.Debug().Str("strategy", string(s.strategy)).Int("expanded", s.expanded).Msg("no more solutions")
	return nil, nil
}

// Solutions yields the remaining solutions in the order Search finds them.
func (s *Searcher[S]) Solutions() iter.Seq2[*Path[S], error] {
	return func(yield func(*Path[S], error) bool) {
		for {
			path, err := s.Search()
			if err != nil {
				yield(nil, err)
				return
			}
			if path == nil {
				return
			}
			if !yield(path, nil) {
				return
			}
		}
	}
}

// stale reports whether a cheaper path to the same state was enqueued after
// this one, in which case this path is dropped rather than expanded.
func (s *Searcher[S]) stale(path *Path[S]) bool {
	if s.visited == nil {
		return false
	}
	best, ok := s.visited.Cost(path.End())
	return ok && path.Cost() > best
}

func (s *Searcher[S]) expand(path *Path[S]) error {
	var extended []*Path[S]
	for arc := range s.problem.Neighbors(path.End()) {
		if arc.Cost < 0 || math.IsNaN(arc.Cost) {
			return fmt.Errorf("%w: %v has cost %v", ErrNegativeCost, arc, arc.Cost)
		}
		next := path.Extend(arc)
		if s.visited != nil && !s.visited.Admit(next.End(), next.Cost()) {
			continue
		}
		extended = append(extended, next)
	}

	if s.strategy == DepthFirst {
		// The first neighbor ends up on top of the stack
		for i := len(extended) - 1; i >= 0; i-- {
			if err := s.insert(extended[i]); err != nil {
				return err
			}
		}
		return nil
	}
	for _, next := range extended {
		if err := s.insert(next); err != nil {
			return err
		}
	}
	return nil
}

func (s *Searcher[S]) insert(path *Path[S]) error {
	if s.priority == nil {
		s.frontier.Insert(path)
		return nil
	}
	h := s.heuristic(path.End())
	if h < 0 || math.IsNaN(h) {
		return fmt.Errorf("%w: h(%v) = %v", ErrInvalidHeuristic, path.End(), h)
	}
	s.priority.Push(path, path.Cost()+h)
	return nil
}

func (s *Searcher[S]) Strategy() Strategy {
	return s.strategy
}

func (s *Searcher[S]) Status() Status {
	return s.status
}

// Solution returns the path most recently returned by Search.
func (s *Searcher[S]) Solution() *Path[S] {
	return s.solution
}

// Expanded counts the paths removed from the frontier so far.
func (s *Searcher[S]) Expanded() int {
	return s.expanded
}

func (s *Searcher[S]) Frontier() Frontier[S] {
	return s.frontier
}

// Visited returns the cost table, or nil when cycle avoidance is off.
func (s *Searcher[S]) Visited() *CostTable[S] {
	return s.visited
}

func (s *Searcher[S]) Metrics() metrics.SearchMetric {
	return s.metrics.Complete()
}
