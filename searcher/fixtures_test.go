package searcher

import (
	"iter"
	"strconv"

	"golang.org/x/exp/rand"
)

// graph is an explicit search problem used by the tests.
type graph struct {
	start      string
	goals      map[string]bool
	arcs       map[string][]Arc[string]
	h          map[string]float64
	goalChecks map[string]int
}

func newGraph(start string, goals ...string) *graph {
	g := &graph{
		start:      start,
		goals:      map[string]bool{},
		arcs:       map[string][]Arc[string]{},
		h:          map[string]float64{},
		goalChecks: map[string]int{},
	}
	for _, goal := range goals {
		g.goals[goal] = true
	}
	return g
}

func (g *graph) arc(from, to string, cost float64) *graph {
	g.arcs[from] = append(g.arcs[from], Arc[string]{From: from, To: to, Cost: cost, Action: from + to})
	return g
}

func (g *graph) Start() string { return g.start }

func (g *graph) IsGoal(state string) bool {
	g.goalChecks[state]++
	return g.goals[state]
}

func (g *graph) Neighbors(state string) iter.Seq[Arc[string]] {
	return func(yield func(Arc[string]) bool) {
		for _, arc := range g.arcs[state] {
			if !yield(arc) {
				return
			}
		}
	}
}

// informed wraps a graph with its heuristic table.
type informed struct {
	*graph
}

func (i informed) Heuristic(state string) float64 { return i.h[state] }

// example is the classic five-node problem whose cheapest path is A-C-B-D-G with cost 4.
func example() *graph {
	g := newGraph("A", "G").
		arc("A", "B", 3).
		arc("A", "C", 1).
		arc("B", "D", 1).
		arc("B", "G", 3).
		arc("C", "B", 1).
		arc("C", "D", 3).
		arc("D", "G", 1)
	g.h = map[string]float64{"A": 3, "B": 1, "C": 2, "D": 1, "G": 0}
	return g
}

// randomDAG builds a layered acyclic graph over n nodes where the last node is the goal.
// Its heuristic is the cheapest outgoing arc, which is consistent.
func randomDAG(seed uint64, n int) *graph {
	r := rand.New(rand.NewSource(seed))
	name := func(i int) string { return "n" + strconv.Itoa(i) }
	g := newGraph(name(0), name(n-1))
	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			if j == i+1 || r.Float64() < 0.35 {
				g.arc(name(i), name(j), float64(1+r.Intn(9)))
			}
		}
	}
	for i := 0; i < n-1; i++ {
		cheapest := -1.0
		for _, arc := range g.arcs[name(i)] {
			if cheapest < 0 || arc.Cost < cheapest {
				cheapest = arc.Cost
			}
		}
		g.h[name(i)] = cheapest
	}
	return g
}
