package engine

import (
	"fmt"
	"time"

	"explore/experiments/metrics"
	"explore/game"

	"github.com/rs/zerolog/log"
)

type Option func(g *Game)

// WithMaxMoves caps the number of plies, passes included.
func WithMaxMoves(n int) Option {
	return func(g *Game) {
		if n > 0 {
			g.maxMoves = n
		}
	}
}

// Game plays two agents against each other in one process.
type Game struct {
	root     game.Node
	agents   [2]Agent // maximizer, minimizer
	maxMoves int
}

var _ Engine = (*Game)(nil)

func Local(root game.Node, maxAgent, minAgent Agent, opts ...Option) *Game {
	if root == nil {
		panic("engine needs a root node")
	}
	if maxAgent == nil || minAgent == nil {
		panic("engine needs two agents")
	}
	g := &Game{ // Default values
		root:     root,
		agents:   [2]Agent{maxAgent, minAgent},
		maxMoves: MaxMoves,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run executes the game loop from the root. A player without moves passes
// when the game allows it. The returned node is where play stopped, also on
// error.
func (g *Game) Run() (game.Node, metrics.GameMetric, []metrics.MoveMetric, error) {
	node := g.root
	gameMetric := metrics.GameMetric{
		StartingPlayer: game.Player(node),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric
	finish := func() {
		gameMetric.EndTime = time.Now()
		gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
		gameMetric.TotalMoves = len(moveMetrics)
		gameMetric.FinalValue = node.Evaluate()
		if node.IsLeaf() {
			gameMetric.Winner = winner(gameMetric.FinalValue)
		}
	}

	log.Info().Msgf("player %s is starting", gameMetric.StartingPlayer)

	for step := 1; !node.IsLeaf() && step <= g.maxMoves; step++ {
		player := game.Player(node)

		if !game.HasChildren(node) {
			passer, ok := node.(game.Passer)
			if !ok {
				log.Warn().Str("node", node.Name()).Msg("player has no move and cannot pass, stopping")
				break
			}
			log.Debug().Int("step", step).Str("player", player).Msg("pass")
			node = passer.Pass()
			gameMetric.Passes++
			moveMetrics = append(moveMetrics, metrics.MoveMetric{Step: step, Player: player, Move: "pass"})
			continue
		}

		agent := g.agents[1]
		if node.IsMax() {
			agent = g.agents[0]
		}
		next, searchMetric, err := agent.FindMove(node)
		if err != nil {
			finish()
			return node, gameMetric, moveMetrics, fmt.Errorf("move %d by %s: %w", step, player, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       player,
			Move:         next.Name(),
			SearchMetric: searchMetric,
		})
		log.Debug().Int("step", step).Str("player", player).Str("move", next.Name()).Dur("took", searchMetric.Duration).Msg("move")
		node = next
	}

	finish()
	if node.IsLeaf() {
		log.Info().Str("winner", gameMetric.Winner).Float64("value", gameMetric.FinalValue).Int("moves", gameMetric.TotalMoves).Msg("game over")
	} else {
		log.Info().Int("moves", gameMetric.TotalMoves).Msg("stopped before the game ended")
	}
	return node, gameMetric, moveMetrics, nil
}

// winner names the side the final value favours, or "" for a draw.
func winner(value float64) string {
	switch {
	case value > 0:
		return "X"
	case value < 0:
		return "O"
	}
	return ""
}
