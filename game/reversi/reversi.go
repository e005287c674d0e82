// Package reversi implements the game tree of 8x8 reversi (othello).
//
// X moves first and maximizes. A move must flank at least one line of
// opposing discs, and every flanked line flips. A player without a legal move
// passes; the game ends when neither player can move.
package reversi

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"explore/game"
)

var (
	ErrIllegalMove = errors.New("reversi: illegal move")
	ErrBadBoard    = errors.New("reversi: malformed board")
)

const Size = 8

// Win is added to the disc difference of a finished game so that any win
// outranks any heuristic estimate.
const Win = 1000.0

type Disc int8

const (
	Empty Disc = iota
	X
	O
)

func (d Disc) Opponent() Disc {
	switch d {
	case X:
		return O
	case O:
		return X
	}
	return Empty
}

func (d Disc) String() string {
	switch d {
	case X:
		return "X"
	case O:
		return "O"
	}
	return "."
}

// Board is indexed [row][col].
type Board [Size][Size]Disc

// Initial is the standard starting position.
func Initial() Board {
	var b Board
	b[3][3], b[3][4] = X, O
	b[4][3], b[4][4] = O, X
	return b
}

// Parse reads Size lines of Size characters: '.' for empty, 'X' and 'O' for discs.
func Parse(text string) (Board, error) {
	var b Board
	rows := strings.Split(strings.TrimSpace(text), "\n")
	if len(rows) != Size {
		return b, fmt.Errorf("%w: %d rows, want %d", ErrBadBoard, len(rows), Size)
	}
	for r, row := range rows {
		row = strings.TrimSpace(row)
		if len(row) != Size {
			return b, fmt.Errorf("%w: row %d has %d cells, want %d", ErrBadBoard, r, len(row), Size)
		}
		for c, ch := range row {
			switch ch {
			case '.':
			case 'X', 'x':
				b[r][c] = X
			case 'O', 'o':
				b[r][c] = O
			default:
				return b, fmt.Errorf("%w: unexpected %q at row %d col %d", ErrBadBoard, ch, r, c)
			}
		}
	}
	return b, nil
}

func (b Board) Count(d Disc) int {
	n := 0
	for _, row := range b {
		for _, cell := range row {
			if cell == d {
				n++
			}
		}
	}
	return n
}

func (b Board) String() string {
	var sb strings.Builder
	for _, row := range b {
		for _, cell := range row {
			sb.WriteString(cell.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

var directions = [8][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}

func onBoard(r, c int) bool {
	return r >= 0 && r < Size && c >= 0 && c < Size
}

// flips returns the cells that placing d at (r, c) would turn over.
func (b Board) flips(r, c int, d Disc) [][2]int {
	if b[r][c] != Empty {
		return nil
	}
	var flipped [][2]int
	for _, dir := range directions {
		var line [][2]int
		rr, cc := r+dir[0], c+dir[1]
		for onBoard(rr, cc) && b[rr][cc] == d.Opponent() {
			line = append(line, [2]int{rr, cc})
			rr, cc = rr+dir[0], cc+dir[1]
		}
		if len(line) > 0 && onBoard(rr, cc) && b[rr][cc] == d {
			flipped = append(flipped, line...)
		}
	}
	return flipped
}

// LegalMoves lists the moves available to d in row-major order.
func (b Board) LegalMoves(d Disc) []Move {
	var moves []Move
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if len(b.flips(r, c, d)) > 0 {
				moves = append(moves, Move{Col: c, Row: r})
			}
		}
	}
	return moves
}

func (b Board) hasMove(d Disc) bool {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if len(b.flips(r, c, d)) > 0 {
				return true
			}
		}
	}
	return false
}

// Move is a (column, row) coordinate. PassMove marks a forced pass in a history.
type Move struct {
	Col int
	Row int
}

var PassMove = Move{Col: -1, Row: -1}

func (m Move) String() string {
	if m == PassMove {
		return "pass"
	}
	return fmt.Sprintf("(%d, %d)", m.Col, m.Row)
}

// weights favours corners and edges and penalises the cells next to corners.
var weights = [Size][Size]float64{
	{100, -20, 10, 5, 5, 10, -20, 100},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{10, -2, -1, -1, -1, -1, -2, 10},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{5, -2, -1, -1, -1, -1, -2, 5},
	{10, -2, -1, -1, -1, -1, -2, 10},
	{-20, -50, -2, -2, -2, -2, -50, -20},
	{100, -20, 10, 5, 5, 10, -20, 100},
}

// MobilityWeight scales the difference in legal move counts in the heuristic.
const MobilityWeight = 5.0

type Node struct {
	board   Board
	xToMove bool
	prior   []Move
}

var _ game.Node = Node{}
var _ game.Passer = Node{}

// New returns the standard opening with X to move.
func New() Node {
	return Node{board: Initial(), xToMove: true}
}

func FromBoard(board Board, xToMove bool) Node {
	return Node{board: board, xToMove: xToMove}
}

func (n Node) Board() Board {
	return n.board
}

func (n Node) Turn() Disc {
	if n.xToMove {
		return X
	}
	return O
}

func (n Node) History() []Move {
	return append([]Move(nil), n.prior...)
}

func (n Node) Name() string {
	if len(n.prior) == 0 {
		return "start"
	}
	return n.prior[len(n.prior)-1].String()
}

func (n Node) IsMax() bool {
	return n.xToMove
}

func (n Node) LegalMoves() []Move {
	return n.board.LegalMoves(n.Turn())
}

func (n Node) Play(m Move) (Node, error) {
	if !onBoard(m.Row, m.Col) {
		return Node{}, fmt.Errorf("%w: %v is off the board", ErrIllegalMove, m)
	}
	flipped := n.board.flips(m.Row, m.Col, n.Turn())
	if len(flipped) == 0 {
		return Node{}, fmt.Errorf("%w: %v flanks nothing for %v", ErrIllegalMove, m, n.Turn())
	}
	return n.play(m, flipped), nil
}

func (n Node) play(m Move, flipped [][2]int) Node {
	board := n.board
	board[m.Row][m.Col] = n.Turn()
	for _, cell := range flipped {
		board[cell[0]][cell[1]] = n.Turn()
	}
	return Node{board: board, xToMove: !n.xToMove, prior: n.extend(m)}
}

func (n Node) extend(m Move) []Move {
	prior := make([]Move, len(n.prior)+1)
	copy(prior, n.prior)
	prior[len(n.prior)] = m
	return prior
}

func (n Node) Children() iter.Seq[game.Node] {
	return func(yield func(game.Node) bool) {
		for r := 0; r < Size; r++ {
			for c := 0; c < Size; c++ {
				flipped := n.board.flips(r, c, n.Turn())
				if len(flipped) == 0 {
					continue
				}
				if !yield(n.play(Move{Col: c, Row: r}, flipped)) {
					return
				}
			}
		}
	}
}

// Pass hands the turn to the opponent without changing the board.
func (n Node) Pass() game.Node {
	return Node{board: n.board, xToMove: !n.xToMove, prior: n.extend(PassMove)}
}

// IsLeaf is true when neither player has a legal move.
func (n Node) IsLeaf() bool {
	return !n.board.hasMove(X) && !n.board.hasMove(O)
}

// Evaluate scores finished games by the winner and disc difference. Unfinished
// positions use the positional weights plus a mobility term.
func (n Node) Evaluate() float64 {
	if n.IsLeaf() {
		return final(n.board)
	}
	return positional(n.board) + MobilityWeight*mobility(n.board)
}

// DiscDifference is an alternative evaluation counting X's discs minus O's.
func DiscDifference(node game.Node) float64 {
	n := node.(Node)
	if n.IsLeaf() {
		return final(n.board)
	}
	return float64(n.board.Count(X) - n.board.Count(O))
}

// Mobility is an alternative evaluation counting X's legal moves minus O's.
func Mobility(node game.Node) float64 {
	n := node.(Node)
	if n.IsLeaf() {
		return final(n.board)
	}
	return mobility(n.board)
}

// Evaluations names the evaluation functions that can replace Evaluate at the
// depth limit.
var Evaluations = map[string]game.Evaluate{
	"positional": game.Node.Evaluate,
	"discs":      DiscDifference,
	"mobility":   Mobility,
}

func final(b Board) float64 {
	diff := float64(b.Count(X) - b.Count(O))
	switch {
	case diff > 0:
		return Win + diff
	case diff < 0:
		return -Win + diff
	}
	return 0
}

func positional(b Board) float64 {
	score := 0.0
	for r, row := range b {
		for c, cell := range row {
			switch cell {
			case X:
				score += weights[r][c]
			case O:
				score -= weights[r][c]
			}
		}
	}
	return score
}

func mobility(b Board) float64 {
	return float64(len(b.LegalMoves(X)) - len(b.LegalMoves(O)))
}

func (n Node) String() string {
	return n.board.String()
}
