package gamemaster

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"reversi/communication"
	"reversi/communication/server"
	"reversi/game"
	"reversi/meta"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

// Reasons reported with END.
const (
	ReasonDoublePass = "DOUBLE_PASS"
	ReasonIllegal    = "ILLEGAL_MOVE"
	ReasonTimeout    = "TIMEOUT"
)

type Option func(gm *GameMaster)

// WithGames sets how many games are played before BYE. Colors alternate.
func WithGames(n int) Option {
	return func(gm *GameMaster) {
		if n > 0 {
			gm.games = n
		}
	}
}

// WithClock sets each player's thinking time per game.
func WithClock(d time.Duration) Option {
	return func(gm *GameMaster) {
		if d > 0 {
			gm.clock = d
		}
	}
}

// GameMaster referees matches between two players over TCP.
type GameMaster struct {
	games int
	clock time.Duration
}

// NewGameMaster initializes a new GameMaster.
func NewGameMaster(options ...Option) *GameMaster {
	gm := &GameMaster{
		games: 1,
		clock: meta.DefaultClock,
	}
	for _, option := range options {
		option(gm)
	}
	return gm
}

type seat struct {
	conn  *server.Conn
	stat  communication.Stat
	clock time.Duration
}

// Serve accepts two players from l, plays the configured number of games
// and returns the final standings. l is closed when ctx is done.
func (gm *GameMaster) Serve(ctx context.Context, l net.Listener) ([]communication.Stat, error) {
	stop := context.AfterFunc(ctx, func() { _ = l.Close() })
	defer stop()

	seats := make([]*seat, 2)
	for i := range seats {
		conn, err := l.Accept()
		if err != nil {
			return nil, fmt.Errorf("failed to accept player %d: %w", i+1, err)
		}
		seats[i] = &seat{conn: server.NewConn(conn)}
		defer seats[i].conn.Close()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, s := range seats {
		g.Go(func() error {
			return s.conn.Open(gctx)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	for _, s := range seats {
		s.stat.Name = s.conn.Name
	}
	log.Info().Msgf("Match %s vs %s, %d games", seats[0].stat.Name, seats[1].stat.Name, gm.games)

	for i := range gm.games {
		black, white := seats[i%2], seats[1-i%2]
		if err := gm.playGame(ctx, black, white); err != nil {
			return nil, fmt.Errorf("game %d: %w", i+1, err)
		}
	}

	stats := lo.Map(seats, func(s *seat, _ int) communication.Stat { return s.stat })
	for _, s := range seats {
		if err := s.conn.Send(ctx, communication.Bye{Stats: stats}); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

// playGame runs one game. Errors are returned only for broken connections;
// a player's fault ends the game as a loss for that player.
func (gm *GameMaster) playGame(ctx context.Context, black, white *seat) error {
	seats := [2]*seat{game.Black: black, game.White: white}
	for c, s := range seats {
		s.clock = gm.clock
		color := game.Color(c)
		start := communication.Start{Color: color, Opponent: seats[color.Other()].stat.Name, Remaining: gm.clock}
		if err := s.conn.Send(ctx, start); err != nil {
			return err
		}
	}

	referee := NewReferee()
	for !referee.Over() {
		turn := referee.State().Turn
		mover, other := seats[turn], seats[turn.Other()]

		move, reason, err := gm.readMove(ctx, mover)
		if err != nil {
			return err
		}
		if reason == "" {
			if err := referee.Play(move); err != nil {
				log.Warn().Err(err).Msgf("%s forfeits", mover.stat.Name)
				reason = ReasonIllegal
			}
		}
		if reason != "" {
			if err := other.conn.Send(ctx, communication.GiveUp{}); err != nil {
				return err
			}
			return gm.finish(ctx, referee, seats, turn, reason)
		}

		if err := mover.conn.Send(ctx, communication.Ack{Remaining: mover.clock}); err != nil {
			return err
		}
		if referee.Over() {
			break
		}
		if err := other.conn.Send(ctx, communication.OpponentMove{Move: move}); err != nil {
			return err
		}
	}

	loser := game.Color(-1)
	if winner, ok := referee.State().Winner(); ok {
		loser = winner.Other()
	}
	return gm.finish(ctx, referee, seats, loser, ReasonDoublePass)
}

// readMove waits for the mover's command within its clock. A non-empty
// reason means the mover forfeits.
func (gm *GameMaster) readMove(ctx context.Context, s *seat) (game.Move, string, error) {
	moveCtx, cancel := context.WithTimeout(ctx, s.clock)
	defer cancel()

	start := time.Now()
	cmd, err := s.conn.Receive(moveCtx)
	s.clock -= time.Since(start)

	switch {
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		log.Warn().Msgf("%s ran out of time", s.stat.Name)
		return game.Pass, ReasonTimeout, nil
	case errors.Is(err, communication.ErrMalformed):
		log.Warn().Err(err).Msgf("%s sent a malformed command", s.stat.Name)
		return game.Pass, ReasonIllegal, nil
	case err != nil:
		return game.Pass, "", fmt.Errorf("failed to read from %s: %w", s.stat.Name, err)
	case s.clock < 0:
		return game.Pass, ReasonTimeout, nil
	}

	play, ok := cmd.(communication.Play)
	if !ok {
		return game.Pass, ReasonIllegal, nil
	}
	return play.Move, "", nil
}

// finish reports the result to both players. loser is -1 on a tie.
func (gm *GameMaster) finish(ctx context.Context, referee *Referee, seats [2]*seat, loser game.Color, reason string) error {
	for c, s := range seats {
		color := game.Color(c)
		score, opponentScore := referee.Score(color)
		end := communication.End{Result: communication.Tie, Score: score, OpponentScore: opponentScore, Reason: reason}
		switch loser {
		case color:
			end.Result = communication.Lose
			s.stat.Losses++
			s.stat.Score--
		case color.Other():
			end.Result = communication.Win
			s.stat.Wins++
			s.stat.Score++
		}
		if err := s.conn.Send(ctx, end); err != nil {
			return err
		}
	}
	log.Info().Msgf("Game over (%s): %s %d - %d %s", reason,
		seats[game.Black].stat.Name, referee.State().Count(game.Black),
		referee.State().Count(game.White), seats[game.White].stat.Name)
	return nil
}
