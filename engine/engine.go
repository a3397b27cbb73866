package engine

import (
	"context"

	"reversi/experiments/metrics"
	"reversi/game"
)

type Engine interface {
	// Run plays one game to the end and returns the final state with its metrics
	Run(ctx context.Context) (game.State, metrics.GameMetric, []metrics.MoveMetric, error)
}
