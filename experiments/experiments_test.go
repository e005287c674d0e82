package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"explore/delivery"
	"explore/engine"
	"explore/experiments/metrics"
	"explore/game/magicsum"
	"explore/maze"
	"explore/searcher"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	m.Run()
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestRoot(t *testing.T) {
	for _, name := range Games {
		root, err := Root(name, magicsum.DefaultConfig())
		require.NoError(t, err, name)
		require.True(t, root.IsMax(), "%s should start with the maximizer", name)
		require.Equal(t, "start", root.Name())
	}

	_, err := Root("chess", magicsum.DefaultConfig())
	require.ErrorIs(t, err, ErrUnknownGame)
	_, err = Root("magicsum", magicsum.Config{})
	require.ErrorIs(t, err, magicsum.ErrBadConfig)
}

func TestRun(t *testing.T) {
	t.Run("depth arena", func(t *testing.T) {
		a := DepthArena("tictactoe", 2)
		a.Games = 2
		a.Dir = t.TempDir()

		dir, err := Run(a)

		require.NoError(t, err)
		require.Equal(t, []metrics.AgentConfig{
			{ID: 0, Kind: engine.RandomKind, Seed: 1},
			{ID: 1, Kind: engine.AlphaBetaKind, Depth: 1},
			{ID: 2, Kind: engine.AlphaBetaKind, Depth: 2},
		}, a.Configs)

		configs := readCSV(t, filepath.Join(dir, "agent_configs.csv"))
		require.Len(t, configs, 4)

		games := readCSV(t, filepath.Join(dir, "game_records.csv"))
		require.Len(t, games, 5, "Two match ups of two games plus a header")
		require.Equal(t, []string{"1", "tictactoe", "1", "0"}, games[1][:4])
		require.Equal(t, []string{"2", "tictactoe", "0", "1"}, games[2][:4], "Sides swap every game")

		moves := readCSV(t, filepath.Join(dir, "move_records.csv"))
		require.Greater(t, len(moves), 4*5, "Every tic-tac-toe game lasts at least five moves")
	})

	t.Run("magic sum", func(t *testing.T) {
		a := DepthArena("magicsum", 1)
		a.Games = 1
		a.Dir = t.TempDir()

		_, err := Run(a)

		require.NoError(t, err)
	})

	t.Run("bad configs", func(t *testing.T) {
		a := DepthArena("go", 1)
		a.Dir = t.TempDir()
		_, err := Run(a)
		require.ErrorIs(t, err, ErrUnknownGame)

		a = DepthArena("tictactoe", 1)
		a.Dir = t.TempDir()
		a.MatchUps[0][0].Kind = "oracle"
		_, err = Run(a)
		require.ErrorIs(t, err, engine.ErrUnknownAgent)
	})
}

func TestRunThroughput(t *testing.T) {
	walls, err := delivery.Parse("*#@")
	require.NoError(t, err)
	grid, err := maze.NewGrid(3, 4, maze.Coord{Row: 0, Col: 0}, maze.Coord{Row: 2, Col: 3}, maze.Coord{Row: 1, Col: 1})
	require.NoError(t, err)
	problems := []PathProblem{
		NewPathProblem[maze.Coord]("maze", grid),
		NewPathProblem[delivery.Coord]("walled", walls),
	}
	variants := []Variant{
		{Strategy: searcher.BreadthFirst},
		{Strategy: searcher.BreadthFirst, CycleAvoidance: true},
		{Strategy: searcher.AStar},
		{Strategy: searcher.AStar, CycleAvoidance: true},
	}

	dir, err := RunThroughput(t.TempDir(), variants, problems)

	require.NoError(t, err)
	rows := readCSV(t, filepath.Join(dir, "search_records.csv"))
	require.Len(t, rows, 1+2*2*2)
	require.Equal(t, []string{"id", "problem", "strategy", "duration", "expanded", "max_frontier", "solutions", "path_len", "cost"}, rows[0])

	byStrategy := map[string][]string{}
	for _, row := range rows[1:] {
		byStrategy[row[1]+"/"+row[2]] = row
	}
	require.Equal(t, "5", byStrategy["maze/bfs"][7])
	require.Equal(t, "5", byStrategy["maze/bfs-nocycles"][7])
	require.Equal(t, "5", byStrategy["maze/astar-nocycles"][8])
	require.Equal(t, "1", byStrategy["maze/astar"][6])
	require.Equal(t, "-1", byStrategy["walled/bfs"][7], "Exhausted searches have no path")
}
