package experiments

import (
	"errors"
	"fmt"

	"explore/engine"
	"explore/experiments/metrics"
	"explore/game"
	"explore/game/magicsum"
	"explore/game/reversi"
	"explore/game/tictactoe"
	"explore/meta"

	"github.com/rs/zerolog/log"
)

var ErrUnknownGame = errors.New("experiments: unknown game")

// Games lists the names accepted by Root.
var Games = []string{"tictactoe", "reversi", "magicsum"}

// Root returns the starting node of the named game.
func Root(name string, magic magicsum.Config) (game.Node, error) {
	switch name {
	case "tictactoe":
		return tictactoe.New(), nil
	case "reversi":
		return reversi.New(), nil
	case "magicsum":
		return magicsum.New(magic)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGame, name)
}

// Arena describes a set of match ups between agent configurations.
type Arena struct {
	Name     string
	Game     string
	Magic    magicsum.Config // Used when Game is "magicsum"
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
	Games    int // Per match up
	MaxMoves int
	Dir      string // Results root
}

// DepthArena pairs alpha-beta agents of increasing depth with a random baseline.
func DepthArena(gameName string, maxDepth int) Arena {
	baseline := metrics.AgentConfig{ID: 0, Kind: engine.RandomKind, Seed: meta.SEED}
	configs := []metrics.AgentConfig{baseline}
	var matchUps [][2]metrics.AgentConfig
	for depth := 1; depth <= maxDepth; depth++ {
		config := metrics.AgentConfig{ID: depth, Kind: engine.AlphaBetaKind, Depth: depth}
		configs = append(configs, config)
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, baseline})
	}
	return Arena{
		Name:     "depth_" + gameName,
		Game:     gameName,
		Magic:    magicsum.DefaultConfig(),
		Configs:  configs,
		MatchUps: matchUps,
		Games:    meta.NUM_GAMES,
		MaxMoves: meta.MAX_MOVES,
		Dir:      meta.RESULTS_DIR,
	}
}

// Run plays every match up and writes the agent configs, game records and
// move records. The two agents swap sides after every game. It returns the
// directory the records were written to.
func Run(a Arena) (string, error) {
	if _, err := Root(a.Game, a.Magic); err != nil {
		return "", err
	}

	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", a.Name)

	for mi, matchUp := range a.MatchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(a.MatchUps), matchUp[0], matchUp[1])

		for i := 0; i < a.Games; i++ {
			x, o := matchUp[0], matchUp[1]
			if i%2 == 1 {
				x, o = o, x
			}
			count++
			gameMetric, moveMetrics, err := runGame(a, x, o, uint64(i))
			if err != nil {
				return "", fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Game:       a.Game,
				Agent1:     x.ID,
				Agent2:     o.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(a.MatchUps), i+1, gameMetric.Winner)
		}
	}

	log.Info().Msgf("completed %s experiment", a.Name)

	writer, err := metrics.NewWriter(a.Dir, a.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(a.Configs); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")
	return writer.Dir(), nil
}

// runGame plays one game. round offsets random seeds so that repeated games
// between the same configs differ.
func runGame(a Arena, x, o metrics.AgentConfig, round uint64) (metrics.GameMetric, []metrics.MoveMetric, error) {
	root, err := Root(a.Game, a.Magic)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	maxAgent, err := engine.NewAgent(x.Kind, x.Depth, x.Seed+round)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	minAgent, err := engine.NewAgent(o.Kind, o.Depth, o.Seed+round)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}

	var opts []engine.Option
	if a.MaxMoves > 0 {
		opts = append(opts, engine.WithMaxMoves(a.MaxMoves))
	}
	_, gameMetric, moveMetrics, err := engine.Local(root, maxAgent, minAgent, opts...).Run()
	return gameMetric, moveMetrics, err
}
