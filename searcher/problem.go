package searcher

import "iter"

// Problem is a single-agent search problem over an implicit state graph.
// States must be usable as map keys.
type Problem[S comparable] interface {
	Start() S
	IsGoal(state S) bool
	// Neighbors lazily yields the arcs leaving state. The sequence must be
	// finite for each call.
	Neighbors(state S) iter.Seq[Arc[S]]
}

// Heuristic is implemented by problems that can estimate the remaining cost to
// a goal. A* only returns optimal paths when the estimate is admissible, and
// with cycle avoidance it must also be consistent. Neither is checked.
type Heuristic[S comparable] interface {
	Heuristic(state S) float64
}

func heuristicOf[S comparable](problem Problem[S]) func(S) float64 {
	if h, ok := problem.(Heuristic[S]); ok {
		return h.Heuristic
	}
	return func(S) float64 { return 0 }
}
