package main

import (
	"fmt"
	"io"
	"os"

	"explore/config"
	"explore/delivery"
	"explore/engine"
	"explore/experiments"
	"explore/game"
	"explore/game/reversi"
	"explore/maze"
	"explore/searcher"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	cfg        config.Config

	// path
	problemKind string
	mapFile     string
	startCoord  string
	goalCoord   string
	algorithm   string
	noCycles    bool
	allPaths    bool
	portals     []string
	hazardCost  float64

	// play and arena
	gameName string
	xAgent   string
	oAgent   string
	depth    int
	seed     uint64
	maxMoves int
	evalName string
	games    int
	maxDepth int
	outDir   string

	rootCmd = &cobra.Command{
		Use:           "explore",
		Short:         "Path search and game-tree search playground",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			level, err := zerolog.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			zerolog.SetGlobalLevel(level)
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			return nil
		},
	}

	pathCmd = &cobra.Command{
		Use:   "path",
		Short: "Solve a maze or delivery map with dfs, bfs or astar",
		RunE:  runPath,
	}

	playCmd = &cobra.Command{
		Use:   "play",
		Short: "Play one game between two agents",
		RunE:  runPlay,
	}

	arenaCmd = &cobra.Command{
		Use:   "arena",
		Short: "Play alpha-beta agents of increasing depth against a random agent and record the results",
		RunE:  runArena,
	}

	throughputCmd = &cobra.Command{
		Use:   "throughput",
		Short: "Time every search strategy on the built-in problems and record the results",
		RunE:  runThroughput,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "trace, debug, info, warn or error")

	pathCmd.Flags().StringVar(&problemKind, "problem", "maze", "maze or delivery")
	pathCmd.Flags().StringVar(&mapFile, "file", "", "map file (built-in map when empty)")
	pathCmd.Flags().StringVar(&startCoord, "start", "", "maze start as row,col")
	pathCmd.Flags().StringVar(&goalCoord, "goal", "", "maze goal as row,col")
	pathCmd.Flags().StringVar(&algorithm, "algorithm", "", "dfs, bfs or astar")
	pathCmd.Flags().BoolVar(&noCycles, "no-cycles", false, "enqueue a state again only when reached more cheaply")
	pathCmd.Flags().BoolVar(&allPaths, "all", false, "print every solution instead of the first")
	pathCmd.Flags().StringSliceVar(&portals, "portal", nil, "delivery portal as r,c:r,c (repeatable)")
	pathCmd.Flags().Float64Var(&hazardCost, "hazard-cost", 0, "cost of stepping onto a hazardous tile")

	playCmd.Flags().StringVar(&gameName, "game", "", "tictactoe, reversi or magicsum")
	playCmd.Flags().StringVar(&xAgent, "x", engine.AlphaBetaKind, "agent playing X: alphabeta or random")
	playCmd.Flags().StringVar(&oAgent, "o", engine.RandomKind, "agent playing O: alphabeta or random")
	playCmd.Flags().IntVar(&depth, "depth", 0, "alpha-beta search depth")
	playCmd.Flags().Uint64Var(&seed, "seed", 0, "random agent seed")
	playCmd.Flags().IntVar(&maxMoves, "max-moves", 0, "ply limit")
	playCmd.Flags().StringVar(&evalName, "eval", "", "reversi evaluation for alpha-beta agents: positional, discs or mobility")

	arenaCmd.Flags().StringVar(&gameName, "game", "", "tictactoe, reversi or magicsum")
	arenaCmd.Flags().IntVar(&games, "games", 0, "games per match up")
	arenaCmd.Flags().IntVar(&maxDepth, "max-depth", 0, "deepest alpha-beta agent")
	arenaCmd.Flags().StringVar(&outDir, "dir", "", "results directory")

	throughputCmd.Flags().StringVar(&outDir, "dir", "", "results directory")

	rootCmd.AddCommand(pathCmd, playCmd, arenaCmd, throughputCmd)
}

func runPath(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("algorithm") {
		cfg.Search.Algorithm = algorithm
	}
	if cmd.Flags().Changed("no-cycles") {
		cfg.Search.CycleAvoidance = noCycles
	}
	if cmd.Flags().Changed("hazard-cost") {
		cfg.Delivery.HazardCost = hazardCost
	}
	if cmd.Flags().Changed("portal") {
		cfg.Delivery.Portals = portals
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts := []searcher.Option{searcher.WithProgressEvery(cfg.Search.ProgressEvery)}
	if cfg.Search.CycleAvoidance {
		opts = append(opts, searcher.WithCycleAvoidance())
	}

	switch problemKind {
	case "maze":
		m, err := loadMaze()
		if err != nil {
			return err
		}
		return solve[maze.Coord](cmd.OutOrStdout(), searcher.New[maze.Coord](m, cfg.Strategy(), opts...), m.Render)
	case "delivery":
		m, err := loadDelivery()
		if err != nil {
			return err
		}
		return solve[delivery.Coord](cmd.OutOrStdout(), searcher.New[delivery.Coord](m, cfg.Strategy(), opts...), m.Render)
	}
	return fmt.Errorf("unknown problem %q, want maze or delivery", problemKind)
}

func loadMaze() (*maze.Maze, error) {
	if mapFile == "" && startCoord == "" && goalCoord == "" {
		return maze.Default(), nil
	}
	text := maze.DefaultText
	if mapFile != "" {
		data, err := os.ReadFile(mapFile)
		if err != nil {
			return nil, err
		}
		text = string(data)
	}
	start, goal := maze.DefaultStart, maze.DefaultGoal
	var err error
	if startCoord != "" {
		if start, err = maze.ParseCoord(startCoord); err != nil {
			return nil, err
		}
	}
	if goalCoord != "" {
		if goal, err = maze.ParseCoord(goalCoord); err != nil {
			return nil, err
		}
	}
	return maze.Parse(text, start, goal)
}

func loadDelivery() (*delivery.Map, error) {
	text := delivery.SimpleMap
	if mapFile != "" {
		data, err := os.ReadFile(mapFile)
		if err != nil {
			return nil, err
		}
		text = string(data)
	}
	ps, err := cfg.Portals()
	if err != nil {
		return nil, err
	}
	return delivery.Parse(text, delivery.WithHazardCost(cfg.Delivery.HazardCost), delivery.WithPortals(ps...))
}

func solve[S comparable](out io.Writer, s *searcher.Searcher[S], render func(*searcher.Path[S]) string) error {
	found := 0
	for path, err := range s.Solutions() {
		if err != nil {
			return err
		}
		found++
		fmt.Fprintf(out, "solution %d: cost %v, %d moves, %d expanded\n%v\n%s", found, path.Cost(), path.Len(), s.Expanded(), path, render(path))
		if !allPaths {
			return nil
		}
	}
	if found == 0 {
		fmt.Fprintf(out, "no path after %d expansions\n", s.Expanded())
	}
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("game") {
		cfg.Play.Game = gameName
	}
	if cmd.Flags().Changed("depth") {
		cfg.Play.Depth = depth
	}
	if cmd.Flags().Changed("seed") {
		cfg.Play.Seed = seed
	}
	if cmd.Flags().Changed("max-moves") {
		cfg.Play.MaxMoves = maxMoves
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	root, err := experiments.Root(cfg.Play.Game, cfg.MagicSum)
	if err != nil {
		return err
	}
	maxAgent, err := newAgent(xAgent, cfg.Play.Seed)
	if err != nil {
		return err
	}
	minAgent, err := newAgent(oAgent, cfg.Play.Seed+1)
	if err != nil {
		return err
	}

	final, gm, moves, err := engine.Local(root, maxAgent, minAgent, engine.WithMaxMoves(cfg.Play.MaxMoves)).Run()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, m := range moves {
		fmt.Fprintf(out, "%3d %s %s\n", m.Step, m.Player, m.Move)
	}
	fmt.Fprintf(out, "%v\n", final)
	winner := gm.Winner
	if winner == "" {
		winner = "none"
	}
	fmt.Fprintf(out, "winner: %s (value %v) after %d moves\n", winner, gm.FinalValue, gm.TotalMoves)
	return nil
}

func newAgent(kind string, seed uint64) (engine.Agent, error) {
	if evalName == "" || kind != engine.AlphaBetaKind {
		return engine.NewAgent(kind, cfg.Play.Depth, seed)
	}
	if cfg.Play.Game != "reversi" {
		return nil, fmt.Errorf("--eval only applies to reversi")
	}
	fn, ok := reversi.Evaluations[evalName]
	if !ok {
		return nil, fmt.Errorf("unknown reversi evaluation %q", evalName)
	}
	return engine.NewAlphaBetaAgent(cfg.Play.Depth, game.WithEvaluation(fn)), nil
}

func runArena(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("game") {
		cfg.Play.Game = gameName
	}
	if cmd.Flags().Changed("games") {
		cfg.Arena.Games = games
	}
	if cmd.Flags().Changed("max-depth") {
		cfg.Arena.MaxDepth = maxDepth
	}
	if cmd.Flags().Changed("dir") {
		cfg.Arena.ResultsDir = outDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	a := experiments.DepthArena(cfg.Play.Game, cfg.Arena.MaxDepth)
	a.Magic = cfg.MagicSum
	a.Games = cfg.Arena.Games
	a.MaxMoves = cfg.Play.MaxMoves
	a.Dir = cfg.Arena.ResultsDir
	dir, err := experiments.Run(a)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), dir)
	return nil
}

func runThroughput(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("dir") {
		cfg.Arena.ResultsDir = outDir
	}
	m, err := delivery.Parse(delivery.SimpleMap, delivery.WithHazardCost(cfg.Delivery.HazardCost))
	if err != nil {
		return err
	}
	problems := []experiments.PathProblem{
		experiments.NewPathProblem[maze.Coord]("maze", maze.Default()),
		experiments.NewPathProblem[delivery.Coord]("delivery", m),
	}
	// Without cycle avoidance the default maze has too many walks to finish.
	dir, err := experiments.RunThroughput(cfg.Arena.ResultsDir, experiments.CycleFree, problems)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), dir)
	return nil
}
