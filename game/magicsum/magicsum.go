// Package magicsum implements the magic-sum game: players alternately take a
// number from a shared pool and the first to hold three numbers adding up to
// the target wins. With the numbers 1 to 9 and target 15 it is tic-tac-toe on
// a magic square.
package magicsum

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"explore/game"
	"explore/utils"
)

var (
	ErrBadConfig   = errors.New("magicsum: invalid configuration")
	ErrUnavailable = errors.New("magicsum: number is not available")
)

type Config struct {
	Numbers []int `yaml:"numbers"`
	Target  int   `yaml:"target"`
}

func DefaultConfig() Config {
	return Config{Numbers: []int{1, 2, 3, 4, 5, 6, 7, 8, 9}, Target: 15}
}

func (c Config) Validate() error {
	if len(c.Numbers) == 0 {
		return fmt.Errorf("%w: no numbers", ErrBadConfig)
	}
	for i, n := range c.Numbers {
		if utils.FindIndex(c.Numbers[i+1:], n) >= 0 {
			return fmt.Errorf("%w: %d appears twice", ErrBadConfig, n)
		}
	}
	return nil
}

// Node is a magic-sum position. X moves first and maximizes.
type Node struct {
	target    int
	available []int
	x         []int
	o         []int
	last      int
	moved     bool
	xToMove   bool
}

var _ game.Node = Node{}

func New(cfg Config) (Node, error) {
	if err := cfg.Validate(); err != nil {
		return Node{}, err
	}
	return Node{target: cfg.Target, available: slices.Clone(cfg.Numbers), xToMove: true}, nil
}

func (n Node) Available() []int {
	return slices.Clone(n.available)
}

// Held returns the numbers taken so far by X and by O.
func (n Node) Held() (x, o []int) {
	return slices.Clone(n.x), slices.Clone(n.o)
}

// Name is "start" at the root, otherwise the last pick, e.g. "x=5".
func (n Node) Name() string {
	switch {
	case !n.moved:
		return "start"
	case n.xToMove:
		return fmt.Sprintf("o=%d", n.last)
	}
	return fmt.Sprintf("x=%d", n.last)
}

func (n Node) IsMax() bool {
	return n.xToMove
}

// Take returns the node reached when the player to move picks number.
func (n Node) Take(number int) (Node, error) {
	i := utils.FindIndex(n.available, number)
	if i < 0 {
		return Node{}, fmt.Errorf("%w: %d", ErrUnavailable, number)
	}
	if n.IsLeaf() {
		return Node{}, fmt.Errorf("%w: game is over", ErrUnavailable)
	}
	return n.take(i), nil
}

func (n Node) take(i int) Node {
	number := n.available[i]
	next := Node{
		target:    n.target,
		available: slices.Delete(slices.Clone(n.available), i, i+1),
		x:         n.x,
		o:         n.o,
		last:      number,
		moved:     true,
		xToMove:   !n.xToMove,
	}
	if n.xToMove {
		next.x = append(slices.Clone(n.x), number)
	} else {
		next.o = append(slices.Clone(n.o), number)
	}
	return next
}

func (n Node) Children() iter.Seq[game.Node] {
	return func(yield func(game.Node) bool) {
		if n.IsLeaf() {
			return
		}
		for i := range n.available {
			if !yield(n.take(i)) {
				return
			}
		}
	}
}

// won reports whether the player who just moved completed a triple with the
// number they picked. Earlier picks cannot complete one, or the game would
// already be over.
func (n Node) won() bool {
	if !n.moved {
		return false
	}
	held := n.x
	if n.xToMove {
		held = n.o
	}
	return completes(n.last, held, n.target)
}

// completes reports whether last and two other numbers of held sum to target.
func completes(last int, held []int, target int) bool {
	for i, a := range held {
		if a == last {
			continue
		}
		for _, b := range held[i+1:] {
			if b != last && last+a+b == target {
				return true
			}
		}
	}
	return false
}

func (n Node) IsLeaf() bool {
	return len(n.available) == 0 || n.won()
}

func (n Node) Evaluate() float64 {
	if !n.won() {
		return 0
	}
	if n.xToMove {
		return -1
	}
	return 1
}

func (n Node) String() string {
	return fmt.Sprintf("x=%v o=%v available=%v", n.x, n.o, n.available)
}
