package searcher

// CostTable remembers the cheapest cost at which each state has been put on
// the frontier. Recorded costs only ever decrease.
type CostTable[S comparable] struct {
	costs map[S]float64
}

func NewCostTable[S comparable]() *CostTable[S] {
	return &CostTable[S]{costs: make(map[S]float64)}
}

// Admit reports whether a path reaching state at cost should be enqueued and,
// if so, records cost as the new best.
func (t *CostTable[S]) Admit(state S, cost float64) bool {
	if best, ok := t.costs[state]; ok && cost >= best {
		return false
	}
	t.costs[state] = cost
	return true
}

func (t *CostTable[S]) Cost(state S) (float64, bool) {
	cost, ok := t.costs[state]
	return cost, ok
}

func (t *CostTable[S]) Len() int {
	return len(t.costs)
}
