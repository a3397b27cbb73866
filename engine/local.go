package engine

import (
	"context"
	"fmt"
	"time"

	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/gamemaster"
	"reversi/searcher/agent"

	"github.com/rs/zerolog/log"
)

// LocalEngine plays two in-process agents against each other with a fixed
// budget per move.
type LocalEngine struct {
	agents [2]agent.Agent
	budget time.Duration
}

func NewLocalEngine(black, white agent.Agent, budget time.Duration) *LocalEngine {
	if black == nil || white == nil {
		panic("need two agents")
	}
	return &LocalEngine{
		agents: [2]agent.Agent{game.Black: black, game.White: white},
		budget: budget,
	}
}

// Run executes the entire game loop until neither side can move.
func (e *LocalEngine) Run(ctx context.Context) (game.State, metrics.GameMetric, []metrics.MoveMetric, error) {
	referee := gamemaster.NewReferee()
	gameMetric := metrics.GameMetric{StartingPlayer: game.Black.String(), StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	for step := 1; !referee.Over(); step++ {
		if err := ctx.Err(); err != nil {
			return referee.State(), gameMetric, moveMetrics, err
		}
		state := referee.State()
		move, searchMetric := e.agents[state.Turn].FindMove(ctx, state, e.budget)
		if err := referee.Play(move); err != nil {
			return state, gameMetric, moveMetrics, fmt.Errorf("%s at step %d: %w", state.Turn, step, err)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         step,
			Player:       state.Turn.String(),
			Move:         move.String(),
			SearchMetric: searchMetric,
		})
	}

	final := referee.State()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = len(final.History)
	gameMetric.BlackDiscs = final.Count(game.Black)
	gameMetric.WhiteDiscs = final.Count(game.White)
	if winner, ok := final.Winner(); ok {
		gameMetric.Winner = winner.String()
	}

	log.Debug().Msgf("Game over %d - %d\n%s", gameMetric.BlackDiscs, gameMetric.WhiteDiscs, final)
	return final, gameMetric, moveMetrics, nil
}
