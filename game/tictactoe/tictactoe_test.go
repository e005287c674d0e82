package tictactoe

import (
	"testing"

	"explore/game"

	"github.com/stretchr/testify/require"
)

func TestBoard(t *testing.T) {
	t.Run("winner on each kind of line", func(t *testing.T) {
		row := Board{{X, X, X}}
		col := Board{{O}, {O}, {O}}
		diag := Board{{X}, {Empty, X}, {Empty, Empty, X}}
		anti := Board{{Empty, Empty, O}, {Empty, O}, {O}}

		require.Equal(t, X, row.Winner())
		require.Equal(t, O, col.Winner())
		require.Equal(t, X, diag.Winner())
		require.Equal(t, O, anti.Winner())
		require.Equal(t, Empty, Board{}.Winner())
	})

	t.Run("full board", func(t *testing.T) {
		draw := Board{{X, O, X}, {X, O, O}, {O, X, X}}

		require.True(t, draw.Full())
		require.Equal(t, Empty, draw.Winner())
		require.False(t, Board{}.Full())
	})

	t.Run("renders rows", func(t *testing.T) {
		b := Board{{X, Empty, O}}
		require.Equal(t, "X| |O\n-----\n | | \n-----\n | | \n", b.String())
	})
}

func TestNode(t *testing.T) {
	t.Run("empty board", func(t *testing.T) {
		n := New()

		require.True(t, n.IsMax(), "X moves first and maximizes")
		require.Equal(t, "start", n.Name())
		require.Len(t, n.LegalMoves(), 9)
		require.False(t, n.IsLeaf())
		require.Zero(t, n.Evaluate())
	})

	t.Run("children follow row-major order and alternate turns", func(t *testing.T) {
		var names []string
		for child := range New().Children() {
			require.False(t, child.IsMax(), "O moves after X")
			names = append(names, child.Name())
		}

		require.Equal(t, []string{"(0, 0)", "(1, 0)", "(2, 0)", "(0, 1)", "(1, 1)", "(2, 1)", "(0, 2)", "(1, 2)", "(2, 2)"}, names)
	})

	t.Run("play places the mover's mark and records history", func(t *testing.T) {
		n, err := New().Play(Move{Col: 1, Row: 2})
		require.NoError(t, err)
		n, err = n.Play(Move{Col: 0, Row: 0})
		require.NoError(t, err)

		require.Equal(t, X, n.Board()[2][1])
		require.Equal(t, O, n.Board()[0][0])
		require.Equal(t, X, n.Turn())
		require.Equal(t, []Move{{1, 2}, {0, 0}}, n.History())
		require.Equal(t, "(0, 0)", n.Name())
	})

	t.Run("children do not share history", func(t *testing.T) {
		root, _ := New().Play(Move{Col: 1, Row: 1})
		var kids []Node
		for child := range root.Children() {
			kids = append(kids, child.(Node))
		}

		require.Equal(t, []Move{{1, 1}, {0, 0}}, kids[0].History())
		require.Equal(t, []Move{{1, 1}, {1, 0}}, kids[1].History())
		require.Equal(t, []Move{{1, 1}}, root.History(), "Parent history should be unchanged")
	})

	t.Run("illegal moves", func(t *testing.T) {
		n, _ := New().Play(Move{Col: 0, Row: 0})

		_, err := n.Play(Move{Col: 0, Row: 0})
		require.ErrorIs(t, err, ErrIllegalMove)
		_, err = n.Play(Move{Col: 3, Row: 0})
		require.ErrorIs(t, err, ErrIllegalMove)

		won := FromBoard(Board{{X, X, X}, {O, O}}, false)
		_, err = won.Play(Move{Col: 2, Row: 2})
		require.ErrorIs(t, err, ErrIllegalMove, "No moves after a win")
		require.Empty(t, won.LegalMoves())
	})

	t.Run("leaves", func(t *testing.T) {
		xWins := FromBoard(Board{{X, X, X}, {O, O}}, false)
		oWins := FromBoard(Board{{O, O, O}, {X, X}, {X}}, true)
		draw := FromBoard(Board{{X, O, X}, {X, O, O}, {O, X, X}}, false)

		require.True(t, xWins.IsLeaf())
		require.Equal(t, 1.0, xWins.Evaluate())
		require.True(t, oWins.IsLeaf())
		require.Equal(t, -1.0, oWins.Evaluate())
		require.True(t, draw.IsLeaf())
		require.Zero(t, draw.Evaluate())
	})
}

func TestOptimalPlay(t *testing.T) {
	t.Run("empty board is a draw", func(t *testing.T) {
		value, move, err := game.BestMove(New(), 9)

		require.NoError(t, err)
		require.Zero(t, value, "Perfect play from the empty board should draw")
		require.NotNil(t, move)
	})

	t.Run("every opening keeps the draw", func(t *testing.T) {
		for child := range New().Children() {
			value, _, err := game.BestMove(child, 8)
			require.NoError(t, err)
			require.Zero(t, value, "Opening %s should still draw", child.Name())
		}
	})

	t.Run("takes an immediate win", func(t *testing.T) {
		n := FromBoard(Board{{X, X, Empty}, {O, O, Empty}}, true)

		value, move, err := game.BestMove(n, 3)

		require.NoError(t, err)
		require.Equal(t, 1.0, value)
		require.Equal(t, "(2, 0)", move.Name())
	})

	t.Run("blocks an immediate loss", func(t *testing.T) {
		n := FromBoard(Board{{X, Empty, Empty}, {X, Empty, Empty}, {O, O, Empty}}, true)

		// X cannot win at once and only (2, 2) stops O
		value, move, err := game.BestMove(n, 2)

		require.NoError(t, err)
		require.Equal(t, "(2, 2)", move.Name())
		require.GreaterOrEqual(t, value, 0.0)
	})

	t.Run("agrees with plain minimax", func(t *testing.T) {
		n, _ := New().Play(Move{Col: 0, Row: 0})
		n, _ = n.Play(Move{Col: 1, Row: 1})

		wantValue, wantMove := game.Minimax(n, 7)
		gotValue, gotMove, err := game.BestMove(n, 7)

		require.NoError(t, err)
		require.Equal(t, wantValue, gotValue)
		require.Equal(t, wantMove.Name(), gotMove.Name())
	})
}
