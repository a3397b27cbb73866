package agent

import (
	"context"
	"time"

	"reversi/book"
	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/searcher"

	"github.com/rs/zerolog/log"
)

type Option func(a *searchAgent)

// WithBook plays from b while the game follows one of its lines.
func WithBook(b *book.Book) Option {
	return func(a *searchAgent) {
		a.book = b
	}
}

type searchAgent struct {
	scheduler *searcher.Scheduler
	book      *book.Book
}

// NewSearchAgent returns an agent that answers from the opening book when it can and searches otherwise.
func NewSearchAgent(scheduler *searcher.Scheduler, options ...Option) Agent {
	a := &searchAgent{scheduler: scheduler}
	for _, option := range options {
		option(a)
	}
	return a
}

func (a *searchAgent) FindMove(ctx context.Context, state game.State, budget time.Duration) (game.Move, metrics.SearchMetric) {
	if a.book != nil {
		if move, ok := a.book.Lookup(state.History); ok {
			name, _ := a.book.Opening(state.History)
			log.Debug().Str("opening", name).Msgf("Book move %s", move)
			return move, metrics.SearchMetric{}
		}
	}
	return a.scheduler.ChooseMove(ctx, state.Board(state.Turn), budget)
}
