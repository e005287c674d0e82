package searcher

import (
	"container/heap"
	"iter"
)

// Frontier holds the paths that are still to be expanded. The discipline
// decides which path Extract returns next.
type Frontier[S comparable] interface {
	Len() int
	Empty() bool
	Insert(path *Path[S])
	Extract() (*Path[S], bool)
	// All yields the stored paths without removing them, in no particular order.
	All() iter.Seq[*Path[S]]
}

// Stack extracts the most recently inserted path first (depth-first).
type Stack[S comparable] struct {
	paths []*Path[S]
}

func NewStack[S comparable]() *Stack[S] {
	return &Stack[S]{}
}

func (s *Stack[S]) Len() int    { return len(s.paths) }
func (s *Stack[S]) Empty() bool { return len(s.paths) == 0 }

func (s *Stack[S]) Insert(path *Path[S]) {
	s.paths = append(s.paths, path)
}

func (s *Stack[S]) Extract() (*Path[S], bool) {
	n := len(s.paths)
	if n == 0 {
		return nil, false
	}
	path := s.paths[n-1]
	s.paths[n-1] = nil
	s.paths = s.paths[:n-1]
	return path, true
}

func (s *Stack[S]) All() iter.Seq[*Path[S]] {
	return sliceSeq(s.paths)
}

// Queue extracts the earliest inserted path first (breadth-first).
type Queue[S comparable] struct {
	paths []*Path[S]
	head  int
}

func NewQueue[S comparable]() *Queue[S] {
	return &Queue[S]{}
}

func (q *Queue[S]) Len() int    { return len(q.paths) - q.head }
func (q *Queue[S]) Empty() bool { return q.Len() == 0 }

func (q *Queue[S]) Insert(path *Path[S]) {
	q.paths = append(q.paths, path)
}

func (q *Queue[S]) Extract() (*Path[S], bool) {
	if q.Empty() {
		return nil, false
	}
	path := q.paths[q.head]
	q.paths[q.head] = nil
	q.head++
	// Reclaim the consumed prefix once it dominates the backing array
	if q.head > 32 && q.head*2 >= len(q.paths) {
		n := copy(q.paths, q.paths[q.head:])
		clear(q.paths[n:])
		q.paths = q.paths[:n]
		q.head = 0
	}
	return path, true
}

func (q *Queue[S]) All() iter.Seq[*Path[S]] {
	return sliceSeq(q.paths[q.head:])
}

// Priority extracts the path with the smallest score. Equal scores are
// extracted in insertion order.
type Priority[S comparable] struct {
	score func(*Path[S]) float64
	items priorityItems[S]
	index int
}

func NewPriority[S comparable](score func(*Path[S]) float64) *Priority[S] {
	if score == nil {
		panic("priority frontier needs a score function")
	}
	return &Priority[S]{score: score}
}

func (p *Priority[S]) Len() int    { return len(p.items) }
func (p *Priority[S]) Empty() bool { return len(p.items) == 0 }

func (p *Priority[S]) Insert(path *Path[S]) {
	p.Push(path, p.score(path))
}

// Push inserts path with a precomputed score.
func (p *Priority[S]) Push(path *Path[S], value float64) {
	p.index++
	heap.Push(&p.items, priorityItem[S]{path: path, value: value, index: p.index})
}

func (p *Priority[S]) Extract() (*Path[S], bool) {
	if len(p.items) == 0 {
		return nil, false
	}
	item := heap.Pop(&p.items).(priorityItem[S])
	return item.path, true
}

func (p *Priority[S]) All() iter.Seq[*Path[S]] {
	return func(yield func(*Path[S]) bool) {
		for _, item := range p.items {
			if !yield(item.path) {
				return
			}
		}
	}
}

// CountValue returns how many stored paths have exactly the given score.
func (p *Priority[S]) CountValue(value float64) int {
	count := 0
	for _, item := range p.items {
		if item.value == value {
			count++
		}
	}
	return count
}

type priorityItem[S comparable] struct {
	path  *Path[S]
	value float64
	index int
}

type priorityItems[S comparable] []priorityItem[S]

func (h priorityItems[S]) Len() int { return len(h) }
func (h priorityItems[S]) Less(i, j int) bool {
	if h[i].value != h[j].value {
		return h[i].value < h[j].value
	}
	return h[i].index < h[j].index
}
func (h priorityItems[S]) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *priorityItems[S]) Push(x any) {
	*h = append(*h, x.(priorityItem[S]))
}

func (h *priorityItems[S]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = priorityItem[S]{}
	*h = old[:n-1]
	return item
}

func sliceSeq[S comparable](paths []*Path[S]) iter.Seq[*Path[S]] {
	return func(yield func(*Path[S]) bool) {
		for _, path := range paths {
			if !yield(path) {
				return
			}
		}
	}
}
