package delivery

import (
	"iter"
	"testing"

	"explore/searcher"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	m.Run()
}

const portalMap = `
*....
.###.
.#!#.
.....
....@`

// blind hides the map's heuristic so A* runs as uniform-cost search.
type blind struct {
	m *Map
}

func (b blind) Start() Coord                                    { return b.m.Start() }
func (b blind) IsGoal(c Coord) bool                             { return b.m.IsGoal(c) }
func (b blind) Neighbors(c Coord) iter.Seq[searcher.Arc[Coord]] { return b.m.Neighbors(c) }

func mustParse(t *testing.T, text string, opts ...Option) *Map {
	t.Helper()
	m, err := Parse(text, opts...)
	require.NoError(t, err)
	return m
}

func TestParse(t *testing.T) {
	t.Run("simple map", func(t *testing.T) {
		m := mustParse(t, SimpleMap)

		require.Equal(t, Coord{Row: 2, Col: 3}, m.Start())
		require.Equal(t, Coord{Row: 0, Col: 0}, m.Destination())
		tile, ok := m.Tile(Coord{Row: 1, Col: 0})
		require.True(t, ok)
		require.Equal(t, Hazardous, tile)
		_, ok = m.Tile(Coord{Row: 3, Col: 0})
		require.False(t, ok)
	})

	t.Run("errors", func(t *testing.T) {
		cases := map[string]struct {
			text string
			opts []Option
			want error
		}{
			"empty":          {"\n", nil, ErrEmptyMap},
			"ragged":         {"*..\n.@", nil, ErrRaggedMap},
			"unknown tile":   {"*x@", nil, ErrBadTile},
			"no start":       {"..@", nil, ErrMissingStart},
			"two starts":     {"*.*@", nil, ErrMissingStart},
			"no destination": {"*..", nil, ErrMissingDestination},
			"two portals":    {"*..@", []Option{WithPortals(Portal{A: Coord{Row: 0, Col: 1}, B: Coord{Row: 0, Col: 2}}, Portal{A: Coord{Row: 0, Col: 1}, B: Coord{Row: 0, Col: 0}})}, ErrBadPortal},
			"portal on wall": {"*.#@", []Option{WithPortals(Portal{A: Coord{Row: 0, Col: 1}, B: Coord{Row: 0, Col: 2}})}, ErrBadPortal},
			"portal outside": {"*..@", []Option{WithPortals(Portal{A: Coord{Row: 0, Col: 1}, B: Coord{Row: 5, Col: 5}})}, ErrBadPortal},
			"portal on goal": {"*..@", []Option{WithPortals(Portal{A: Coord{Row: 0, Col: 1}, B: Coord{Row: 0, Col: 3}})}, ErrBadPortal},
			"portal to self": {"*..@", []Option{WithPortals(Portal{A: Coord{Row: 0, Col: 1}, B: Coord{Row: 0, Col: 1}})}, ErrBadPortal},
			"free hazards":   {"*!@", []Option{WithHazardCost(0.5)}, ErrBadHazardCost},
		}
		for name, tc := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := Parse(tc.text, tc.opts...)
				require.ErrorIs(t, err, tc.want)
			})
		}
	})

	t.Run("portal flags", func(t *testing.T) {
		p, err := ParsePortal("0,1:2,3")
		require.NoError(t, err)
		require.Equal(t, Portal{A: Coord{Row: 0, Col: 1}, B: Coord{Row: 2, Col: 3}}, p)

		_, err = ParsePortal("0,1")
		require.ErrorIs(t, err, ErrBadPortal)
		_, err = ParsePortal("0,1:x")
		require.ErrorIs(t, err, ErrBadPortal)
	})
}

func TestNeighbors(t *testing.T) {
	m := mustParse(t, SimpleMap, WithPortals(Portal{A: Coord{Row: 2, Col: 2}, B: Coord{Row: 0, Col: 2}}))

	var arcs []searcher.Arc[Coord]
	for arc := range m.Neighbors(Coord{Row: 2, Col: 1}) {
		arcs = append(arcs, arc)
	}

	require.Equal(t, []searcher.Arc[Coord]{
		{From: Coord{Row: 2, Col: 1}, To: Coord{Row: 2, Col: 0}, Cost: 1, Action: "west"},
		{From: Coord{Row: 2, Col: 1}, To: Coord{Row: 0, Col: 2}, Cost: 1, Action: "east"},
	}, arcs, "North is a wall and east steps onto a portal")

	var hazard []searcher.Arc[Coord]
	for arc := range m.Neighbors(Coord{Row: 2, Col: 0}) {
		hazard = append(hazard, arc)
	}
	require.Equal(t, Coord{Row: 1, Col: 0}, hazard[0].To)
	require.Equal(t, DefaultHazardCost, hazard[0].Cost)
}

func TestHeuristic(t *testing.T) {
	t.Run("manhattan without portals", func(t *testing.T) {
		m := mustParse(t, SimpleMap)

		require.Equal(t, 5.0, m.Heuristic(m.Start()))
		require.Equal(t, 0.0, m.Heuristic(m.Destination()))
	})

	t.Run("portal shortcut", func(t *testing.T) {
		m := mustParse(t, portalMap, WithPortals(Portal{A: Coord{Row: 0, Col: 1}, B: Coord{Row: 4, Col: 3}}))

		require.Equal(t, 2.0, m.Heuristic(m.Start()), "Step onto the portal, then step east")
		require.Equal(t, 1.0, m.Heuristic(Coord{Row: 4, Col: 3}))
		require.Equal(t, 3.0, m.Heuristic(Coord{Row: 0, Col: 1}), "Step off and back on, then east")
	})

	t.Run("consistent on every arc", func(t *testing.T) {
		maps := []*Map{
			mustParse(t, SimpleMap),
			mustParse(t, portalMap, WithPortals(
				Portal{A: Coord{Row: 0, Col: 1}, B: Coord{Row: 4, Col: 3}},
				Portal{A: Coord{Row: 2, Col: 2}, B: Coord{Row: 3, Col: 0}},
			)),
			mustParse(t, portalMap, WithHazardCost(5), WithPortals(Portal{A: Coord{Row: 0, Col: 4}, B: Coord{Row: 2, Col: 0}})),
		}
		for _, m := range maps {
			for r, row := range m.tiles {
				for c, tile := range row {
					if tile == Impassable {
						continue
					}
					from := Coord{Row: r, Col: c}
					for arc := range m.Neighbors(from) {
						require.LessOrEqual(t, m.Heuristic(from), arc.Cost+m.Heuristic(arc.To), "%v", arc)
					}
				}
			}
		}
	})
}

func TestSearch(t *testing.T) {
	t.Run("hazard detour costs more", func(t *testing.T) {
		path, err := searcher.NewAStar[Coord](mustParse(t, SimpleMap), searcher.WithCycleAvoidance()).Search()

		require.NoError(t, err)
		require.Equal(t, 5.0, path.Cost())
		require.Equal(t, []string{"north", "north", "west", "west", "west"}, path.Actions())
	})

	t.Run("cheap hazards tie", func(t *testing.T) {
		path, err := searcher.NewAStar[Coord](mustParse(t, SimpleMap, WithHazardCost(1)), searcher.WithCycleAvoidance()).Search()

		require.NoError(t, err)
		require.Equal(t, 5.0, path.Cost())
	})

	t.Run("fewest moves", func(t *testing.T) {
		path, err := searcher.NewBreadthFirst[Coord](mustParse(t, SimpleMap), searcher.WithCycleAvoidance()).Search()

		require.NoError(t, err)
		require.Equal(t, 5, path.Len())
	})

	t.Run("portal", func(t *testing.T) {
		m := mustParse(t, portalMap, WithPortals(Portal{A: Coord{Row: 0, Col: 1}, B: Coord{Row: 4, Col: 3}}))

		path, err := searcher.NewAStar[Coord](m, searcher.WithCycleAvoidance()).Search()

		require.NoError(t, err)
		require.Equal(t, 2.0, path.Cost())
		require.Equal(t, []Coord{{Row: 0, Col: 0}, {Row: 4, Col: 3}, {Row: 4, Col: 4}}, path.States())
	})

	t.Run("matches uniform cost search", func(t *testing.T) {
		opts := [][]Option{
			nil,
			{WithHazardCost(3)},
			{WithPortals(Portal{A: Coord{Row: 3, Col: 2}, B: Coord{Row: 0, Col: 4}})},
			{WithHazardCost(4), WithPortals(Portal{A: Coord{Row: 2, Col: 2}, B: Coord{Row: 1, Col: 0}})},
		}
		for i, o := range opts {
			m := mustParse(t, portalMap, o...)

			informed, err := searcher.NewAStar[Coord](m, searcher.WithCycleAvoidance()).Search()
			require.NoError(t, err)
			uniform, err := searcher.NewAStar[Coord](blind{m}, searcher.WithCycleAvoidance()).Search()
			require.NoError(t, err)

			require.Equal(t, uniform.Cost(), informed.Cost(), "map %d", i)
		}
	})

	t.Run("unreachable destination", func(t *testing.T) {
		s := searcher.NewAStar[Coord](mustParse(t, "*#@"), searcher.WithCycleAvoidance())

		path, err := s.Search()

		require.NoError(t, err)
		require.Nil(t, path)
	})
}

func TestRender(t *testing.T) {
	m := mustParse(t, SimpleMap)
	path, err := searcher.NewAStar[Coord](m).Search()
	require.NoError(t, err)

	require.Equal(t, "@ooo\n!##o\n...*\n", m.Render(path))
}
