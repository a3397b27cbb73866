package player

import (
	"context"
	"fmt"
	"time"

	"reversi/communication"
	"reversi/game"
	"reversi/meta"
	"reversi/searcher/agent"
	"reversi/utils"

	"github.com/rs/zerolog/log"
)

// Player represents a match server client driven by an agent.
type Player struct {
	Name         string
	Communicator communication.Communicator
	agent        agent.Agent
	state        game.State
	color        game.Color
	remaining    time.Duration
}

// NewPlayer creates a new Player instance.
func NewPlayer(name string, comm communication.Communicator, a agent.Agent) *Player {
	return &Player{
		Name:         name,
		Communicator: comm,
		agent:        a,
		remaining:    meta.DefaultClock,
	}
}

// Play announces the player and answers the server until it says BYE. The
// final standings are returned.
func (p *Player) Play(ctx context.Context) ([]communication.Stat, error) {
	if err := p.Communicator.Open(ctx, p.Name); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}

	for {
		req, err := p.Communicator.Receive(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to receive request: %w", err)
		}

		switch r := req.(type) {
		case communication.Start:
			log.Info().Msgf("Start color=%s, opponent=%s, remaining=%s", r.Color, r.Opponent, r.Remaining)
			p.state = game.NewState()
			p.color = r.Color
			p.remaining = r.Remaining
			if p.color == game.Black {
				err = p.move(ctx)
			}
		case communication.OpponentMove:
			log.Info().Msgf("OPPONENT %s", r.Move)
			if p.state, err = p.state.Play(r.Move); err != nil {
				return nil, fmt.Errorf("server relayed an opponent move we cannot apply: %w", err)
			}
			log.Debug().Msgf("\n%s", p.state)
			err = p.move(ctx)
		case communication.GiveUp:
			log.Info().Msg("OPPONENT GIVEUP")
		case communication.Ack:
			log.Debug().Msgf("Time remaining: %s", r.Remaining)
			p.remaining = r.Remaining
		case communication.End:
			log.Info().
				Str("result", r.Result.String()).
				Int("score", r.Score).
				Int("opponent_score", r.OpponentScore).
				Str("reason", r.Reason).
				Msg("The game ends")
		case communication.Bye:
			for _, stat := range r.Stats {
				log.Info().Msgf("The stat of %s: score %d, win/lose %d/%d", stat.Name, stat.Score, stat.Wins, stat.Losses)
			}
			return r.Stats, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (p *Player) move(ctx context.Context) error {
	budget := Budget(p.remaining, p.state.Empties())
	move, metric := p.agent.FindMove(ctx, p.state, budget)

	next, err := p.state.Play(move)
	if err != nil {
		return fmt.Errorf("agent chose %s: %w", move, err)
	}
	if err := p.Communicator.Play(ctx, move); err != nil {
		return fmt.Errorf("failed to send move: %w", err)
	}
	p.state = next

	log.Info().Msgf("ME %s", move)
	log.Debug().
		Dur("budget", budget).
		Int("nodes", metric.Nodes).
		Int("depth", metric.MaxDepth).
		Msgf("\n%s", p.state)
	return nil
}

// Budget shares the remaining clock, less a safety margin, evenly over the
// moves the player still has to make.
func Budget(remaining time.Duration, empties int) time.Duration {
	movesLeft := max(1, (empties+1)/2)
	share := (remaining - meta.SafetyMargin) / time.Duration(movesLeft)
	return utils.Clamp(share, min(meta.MinBudget, remaining), remaining)
}
