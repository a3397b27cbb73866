package agent

import (
	"context"
	"sync"
	"time"

	"reversi/experiments/metrics"
	"reversi/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent returns an agent that plays a uniformly random legal move. It serves as the
// baseline opponent in experiments and end-to-end tests.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(_ context.Context, state game.State, _ time.Duration) (game.Move, metrics.SearchMetric) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return game.Pass, metrics.SearchMetric{}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{Workers: 1}
}
