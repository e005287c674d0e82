package game

import "iter"

// Node is a position in a two-player zero-sum game tree.
//
// Nodes should be immutable - Children always builds new nodes and never
// changes the receiver. Nodes keep no reference to their parent; a node that
// needs its history carries the list of prior moves itself.
type Node interface {
	// Name labels the node for diagnostics, usually the move that produced it.
	Name() string
	// IsMax reports whether the maximizing player moves at this node.
	IsMax() bool
	// Children lazily yields one node per legal move, in a fixed order.
	Children() iter.Seq[Node]
	// IsLeaf reports whether the game is over at this node.
	IsLeaf() bool
	// Evaluate scores the node from the maximizing player's point of view. It
	// is exact at leaves and a heuristic estimate elsewhere.
	Evaluate() float64
}

// Passer is implemented by games in which a player without a legal move
// passes the turn to the opponent. Pass returns the same position with the
// other player to move.
type Passer interface {
	Pass() Node
}

// Evaluates a node to a score, positive when the maximizing player is ahead.
type Evaluate func(Node) float64

// Player names the side to move at node: "X" for the maximizer, "O" otherwise.
func Player(node Node) string {
	if node.IsMax() {
		return "X"
	}
	return "O"
}

// HasChildren reports whether node has at least one legal move.
func HasChildren(node Node) bool {
	for range node.Children() {
		return true
	}
	return false
}
