package game

import (
	"errors"
	"math"

	"explore/experiments/metrics"

	"github.com/rs/zerolog/log"
)

var ErrZeroDepth = errors.New("game: cannot choose a move with a search depth below one ply")

// Decision is the outcome of a search from some root node. Move is the child
// the root should move to, or nil when the root has no legal move (the game
// is over, or the player to move must pass).
type Decision struct {
	Value float64
	Move  Node
}

type Option func(a *AlphaBeta)

// WithEvaluation scores nodes where the depth limit cuts the search off.
// Finished games are always scored by their own Evaluate.
func WithEvaluation(fn Evaluate) Option {
	return func(a *AlphaBeta) {
		if fn != nil {
			a.evaluate = fn
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(a *AlphaBeta) {
		if collector != nil {
			a.metrics = collector
		}
	}
}

// AlphaBeta is a depth-limited minimax searcher with alpha-beta pruning.
//
// Among moves of equal value the first one enumerated by Children wins. A
// node without children that is not a leaf passes if it implements Passer;
// the pass consumes one ply of the depth budget. Otherwise it is evaluated
// as if it were a leaf.
type AlphaBeta struct {
	depth    int
	evaluate Evaluate
	metrics  metrics.Collector
}

func NewAlphaBeta(depth int, options ...Option) *AlphaBeta {
	if depth < 1 {
		panic(ErrZeroDepth)
	}
	a := &AlphaBeta{ // Default values
		depth:    depth,
		evaluate: Node.Evaluate,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(a)
	}
	return a
}

// BestMove searches maxDepth plies below node and returns the minimax value
// together with the move (child node) achieving it.
func BestMove(node Node, maxDepth int) (float64, Node, error) {
	if maxDepth <= 0 {
		return node.Evaluate(), nil, ErrZeroDepth
	}
	d := NewAlphaBeta(maxDepth).FindNextMove(node)
	return d.Value, d.Move, nil
}

func (a *AlphaBeta) Depth() int {
	return a.depth
}

func (a *AlphaBeta) FindNextMove(node Node) Decision {
	a.metrics.Start("alphabeta", a.depth)
	value, move := a.search(node, a.depth, math.Inf(-1), math.Inf(1))
	a.metrics.SetValue(value)

	name := "none"
	if move != nil {
		name = move.Name()
	}
	log.Debug().Str("player", Player(node)).Int("depth", a.depth).Float64("value", value).Str("move", name).Msg("alphabeta")
	return Decision{Value: value, Move: move}
}

func (a *AlphaBeta) search(node Node, depth int, alpha, beta float64) (float64, Node) {
	a.metrics.AddExpansion()
	if node.IsLeaf() {
		a.metrics.AddEvaluation()
		return node.Evaluate(), nil
	}
	if depth == 0 {
		a.metrics.AddEvaluation()
		return a.evaluate(node), nil
	}

	isMax := node.IsMax()
	var best float64
	var bestChild Node
	for child := range node.Children() {
		value, _ := a.search(child, depth-1, alpha, beta)
		if bestChild == nil || improves(isMax, value, best) {
			best, bestChild = value, child
		}
		if isMax {
			alpha = max(alpha, best)
		} else {
			beta = min(beta, best)
		}
		if alpha >= beta {
			a.metrics.AddCutoff()
			break
		}
	}
	if bestChild != nil {
		return best, bestChild
	}

	passer, ok := node.(Passer)
	if !ok {
		log.Warn().Str("node", node.Name()).Msg("non-leaf node has no moves and cannot pass, evaluating it as a leaf")
		a.metrics.AddEvaluation()
		return node.Evaluate(), nil
	}
	value, _ := a.search(passer.Pass(), depth-1, alpha, beta)
	return value, nil
}

// improves reports whether value is strictly better than best for the player
// to move. Strictness keeps the first enumerated move on ties.
func improves(isMax bool, value, best float64) bool {
	if isMax {
		return value > best
	}
	return value < best
}
