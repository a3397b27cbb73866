package gamemaster

import (
	"errors"
	"fmt"

	"reversi/game"
)

var (
	ErrIllegalMove = errors.New("illegal move")
	ErrGameOver    = errors.New("game is over - no moves allowed")
)

// Referee holds the authoritative state of one game and only lets legal
// moves through.
type Referee struct {
	state game.State
}

func NewReferee() *Referee {
	return &Referee{state: game.NewState()}
}

func (r *Referee) State() game.State {
	return r.state
}

func (r *Referee) Over() bool {
	return r.state.Over()
}

// Play applies move for the side to move.
func (r *Referee) Play(move game.Move) error {
	if r.state.Over() {
		return ErrGameOver
	}
	next, err := r.state.Play(move)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIllegalMove, err)
	}
	r.state = next
	return nil
}

// Score returns the disc count of c and of its opponent.
func (r *Referee) Score(c game.Color) (int, int) {
	return r.state.Count(c), r.state.Count(c.Other())
}
