// Package tictactoe implements the game tree of 3x3 tic-tac-toe. X moves
// first and maximizes; a win for X evaluates to 1, a win for O to -1.
package tictactoe

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"explore/game"
)

var ErrIllegalMove = errors.New("tictactoe: illegal move")

type Mark int8

const (
	Empty Mark = iota
	X
	O
)

func (m Mark) String() string {
	switch m {
	case X:
		return "X"
	case O:
		return "O"
	}
	return " "
}

const Size = 3

// Board is indexed [row][col].
type Board [Size][Size]Mark

func (b Board) Full() bool {
	for _, row := range b {
		for _, mark := range row {
			if mark == Empty {
				return false
			}
		}
	}
	return true
}

var lines = [8][3][2]int{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Winner returns the mark holding three in a row, or Empty.
func (b Board) Winner() Mark {
	for _, line := range lines {
		first := b[line[0][0]][line[0][1]]
		if first != Empty && first == b[line[1][0]][line[1][1]] && first == b[line[2][0]][line[2][1]] {
			return first
		}
	}
	return Empty
}

func (b Board) String() string {
	var sb strings.Builder
	for r, row := range b {
		if r > 0 {
			sb.WriteString("-----\n")
		}
		fmt.Fprintf(&sb, "%v|%v|%v\n", row[0], row[1], row[2])
	}
	return sb.String()
}

// Move is a (column, row) coordinate.
type Move struct {
	Col int
	Row int
}

func (m Move) String() string {
	return fmt.Sprintf("(%d, %d)", m.Col, m.Row)
}

// Node is a tic-tac-toe position together with the moves that led to it.
type Node struct {
	board   Board
	xToMove bool
	prior   []Move
}

var _ game.Node = Node{}

// New returns the empty board with X to move.
func New() Node {
	return Node{xToMove: true}
}

// FromBoard starts a game tree from an arbitrary position.
func FromBoard(board Board, xToMove bool) Node {
	return Node{board: board, xToMove: xToMove}
}

func (n Node) Board() Board {
	return n.board
}

func (n Node) Turn() Mark {
	if n.xToMove {
		return X
	}
	return O
}

// History returns the moves played since the tree's root, oldest first.
func (n Node) History() []Move {
	return append([]Move(nil), n.prior...)
}

// LastMove returns the move that produced this node.
func (n Node) LastMove() (Move, bool) {
	if len(n.prior) == 0 {
		return Move{}, false
	}
	return n.prior[len(n.prior)-1], true
}

func (n Node) Name() string {
	if m, ok := n.LastMove(); ok {
		return m.String()
	}
	return "start"
}

func (n Node) IsMax() bool {
	return n.xToMove
}

// LegalMoves lists the empty cells in row-major order.
func (n Node) LegalMoves() []Move {
	if n.board.Winner() != Empty {
		return nil
	}
	var moves []Move
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if n.board[r][c] == Empty {
				moves = append(moves, Move{Col: c, Row: r})
			}
		}
	}
	return moves
}

// Play returns the node reached by placing the mover's mark at m.
func (n Node) Play(m Move) (Node, error) {
	if m.Col < 0 || m.Col >= Size || m.Row < 0 || m.Row >= Size {
		return Node{}, fmt.Errorf("%w: %v is off the board", ErrIllegalMove, m)
	}
	if n.board[m.Row][m.Col] != Empty {
		return Node{}, fmt.Errorf("%w: %v is occupied", ErrIllegalMove, m)
	}
	if n.IsLeaf() {
		return Node{}, fmt.Errorf("%w: game is over", ErrIllegalMove)
	}
	return n.play(m), nil
}

func (n Node) play(m Move) Node {
	board := n.board
	board[m.Row][m.Col] = n.Turn()
	prior := make([]Move, len(n.prior)+1)
	copy(prior, n.prior)
	prior[len(n.prior)] = m
	return Node{board: board, xToMove: !n.xToMove, prior: prior}
}

func (n Node) Children() iter.Seq[game.Node] {
	return func(yield func(game.Node) bool) {
		for _, m := range n.LegalMoves() {
			if !yield(n.play(m)) {
				return
			}
		}
	}
}

// IsLeaf is true once a player has three in a row or the board is full.
func (n Node) IsLeaf() bool {
	return n.board.Winner() != Empty || n.board.Full()
}

func (n Node) Evaluate() float64 {
	switch n.board.Winner() {
	case X:
		return 1
	case O:
		return -1
	}
	return 0
}

func (n Node) String() string {
	return n.board.String()
}
