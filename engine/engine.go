package engine

import (
	"explore/experiments/metrics"
	"explore/game"
)

const MaxMoves = 10000

type Engine interface {
	// Run plays until a leaf is reached or the move limit is hit
	Run() (final game.Node, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
