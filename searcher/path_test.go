package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPath(t *testing.T) {
	t.Run("singleton path", func(t *testing.T) {
		p := NewPath("A")

		require.Equal(t, "A", p.End())
		require.Equal(t, "A", p.Start())
		require.Zero(t, p.Cost(), "Singleton path should cost nothing")
		require.Zero(t, p.Len())
		require.Equal(t, []string{"A"}, p.States())
		require.Empty(t, p.Actions())
		require.Equal(t, "A", p.String())
	})

	t.Run("extended path", func(t *testing.T) {
		p := NewPath("A").
			Extend(Arc[string]{From: "A", To: "C", Cost: 1, Action: "ac"}).
			Extend(Arc[string]{From: "C", To: "B", Cost: 1.5, Action: "cb"})

		require.Equal(t, "B", p.End())
		require.Equal(t, "A", p.Start())
		require.Equal(t, 2.5, p.Cost(), "Cost should be the prefix cost plus the arc cost")
		require.Equal(t, 2, p.Len())
		require.Equal(t, []string{"A", "C", "B"}, p.States())
		require.Equal(t, []string{"ac", "cb"}, p.Actions())
		require.Equal(t, "C", p.Prefix().End())
		require.Equal(t, "A --ac--> C --cb--> B", p.String())
	})

	t.Run("extending shares the prefix without changing it", func(t *testing.T) {
		prefix := NewPath("A").Extend(Arc[string]{From: "A", To: "B", Cost: 1})
		left := prefix.Extend(Arc[string]{From: "B", To: "C", Cost: 1})
		right := prefix.Extend(Arc[string]{From: "B", To: "D", Cost: 5})

		require.Equal(t, 1.0, prefix.Cost())
		require.Equal(t, "B", prefix.End())
		require.Same(t, left.Prefix(), right.Prefix())
		require.Equal(t, []string{"A", "B", "C"}, left.States())
		require.Equal(t, []string{"A", "B", "D"}, right.States())
	})

	t.Run("arc must leave the path end", func(t *testing.T) {
		require.Panics(t, func() {
			NewPath("A").Extend(Arc[string]{From: "B", To: "C"})
		}, "Should panic when the arc does not start at the end state")
	})
}

func TestPathCostIsSumOfArcs(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		g := randomDAG(seed, 8)
		s := NewBreadthFirst[string](g)
		for path, err := range s.Solutions() {
			require.NoError(t, err)
			sum := 0.0
			for _, arc := range path.Arcs() {
				sum += arc.Cost
			}
			require.Equal(t, sum, path.Cost(), "Path cost should equal the sum of its arc costs")
			require.Len(t, path.States(), path.Len()+1)
		}
	}
}
