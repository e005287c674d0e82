package searcher

import (
	"fmt"
	"strings"
)

// Arc is a labeled transition between two states.
type Arc[S comparable] struct {
	From   S
	To     S
	Cost   float64
	Action string
}

func (a Arc[S]) String() string {
	if a.Action != "" {
		return fmt.Sprintf("%v --%s--> %v", a.From, a.Action, a.To)
	}
	return fmt.Sprintf("%v --> %v", a.From, a.To)
}

// Path is either a single start state or a prefix path extended by one arc.
// Paths never change once built and may be shared between frontier entries.
type Path[S comparable] struct {
	start  S
	prefix *Path[S]
	arc    *Arc[S]
	cost   float64
	length int
}

// NewPath returns the zero-cost path consisting only of start.
func NewPath[S comparable](start S) *Path[S] {
	return &Path[S]{start: start}
}

// Extend returns a new path that follows p with arc. The arc must leave p's end state.
func (p *Path[S]) Extend(arc Arc[S]) *Path[S] {
	if arc.From != p.End() {
		panic(fmt.Sprintf("arc leaves %v but path ends at %v", arc.From, p.End()))
	}
	return &Path[S]{
		start:  p.start,
		prefix: p,
		arc:    &arc,
		cost:   p.cost + arc.Cost,
		length: p.length + 1,
	}
}

func (p *Path[S]) Start() S {
	return p.start
}

func (p *Path[S]) End() S {
	if p.arc == nil {
		return p.start
	}
	return p.arc.To
}

func (p *Path[S]) Cost() float64 {
	return p.cost
}

// Len is the number of arcs in the path.
func (p *Path[S]) Len() int {
	return p.length
}

func (p *Path[S]) Prefix() *Path[S] {
	return p.prefix
}

// Arcs returns the arcs from start to end.
func (p *Path[S]) Arcs() []Arc[S] {
	arcs := make([]Arc[S], p.length)
	i := p.length - 1
	for node := p; node.arc != nil; node = node.prefix {
		arcs[i] = *node.arc
		i--
	}
	return arcs
}

// States returns every state visited, start first.
func (p *Path[S]) States() []S {
	states := make([]S, p.length+1)
	i := p.length
	node := p
	for ; node.arc != nil; node = node.prefix {
		states[i] = node.arc.To
		i--
	}
	states[0] = node.start
	return states
}

// Actions returns the arc labels from start to end.
func (p *Path[S]) Actions() []string {
	actions := make([]string, p.length)
	i := p.length - 1
	for node := p; node.arc != nil; node = node.prefix {
		actions[i] = node.arc.Action
		i--
	}
	return actions
}

func (p *Path[S]) String() string {
	var b strings.Builder
	for i, arc := range p.Arcs() {
		if i == 0 {
			fmt.Fprintf(&b, "%v", arc.From)
		}
		if arc.Action != "" {
			fmt.Fprintf(&b, " --%s--> %v", arc.Action, arc.To)
		} else {
			fmt.Fprintf(&b, " --> %v", arc.To)
		}
	}
	if p.length == 0 {
		fmt.Fprintf(&b, "%v", p.start)
	}
	return b.String()
}
