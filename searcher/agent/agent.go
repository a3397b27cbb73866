package agent

import (
	"context"
	"time"

	"reversi/experiments/metrics"
	"reversi/game"
)

type Agent interface {
	// FindMove returns the move for the side to move in state and the search metrics (if collected).
	// game.Pass is returned when that side has no placement.
	FindMove(ctx context.Context, state game.State, budget time.Duration) (game.Move, metrics.SearchMetric)
}
