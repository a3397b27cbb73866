package game

import (
	"errors"
	"fmt"
	"math/bits"
	"slices"
)

var ErrIllegalMove = errors.New("illegal move")

type Color int

const (
	Black Color = iota
	White
)

func (c Color) Other() Color {
	return 1 - c
}

func (c Color) String() string {
	if c == Black {
		return "Black"
	}
	return "White"
}

// State is the authoritative game record: discs by color, side to move and
// every move played so far. Play returns a new State; the receiver is never
// modified.
type State struct {
	Black   uint64
	White   uint64
	Turn    Color
	History []Move
}

func NewState() State {
	b := NewBoard()
	return State{Black: b.Player, White: b.Opponent, Turn: Black}
}

// Board re-roots the discs so that c is Player.
func (s State) Board(c Color) Board {
	if c == Black {
		return Board{Player: s.Black, Opponent: s.White}
	}
	return Board{Player: s.White, Opponent: s.Black}
}

func (s State) LegalMoves() []Move {
	return s.Board(s.Turn).Moves(true)
}

// CanMove reports whether the side to move has a placement.
func (s State) CanMove() bool {
	b := s.Board(s.Turn)
	return ValidMoves(b.Player, b.Opponent) != 0
}

// Over reports whether neither side can place a disc.
func (s State) Over() bool {
	b := s.Board(s.Turn)
	return ValidMoves(b.Player, b.Opponent) == 0 && ValidMoves(b.Opponent, b.Player) == 0
}

// Play applies m for the side to move. A pass is legal only when that side
// has no placement.
func (s State) Play(m Move) (State, error) {
	b := s.Board(s.Turn)
	valid := ValidMoves(b.Player, b.Opponent)
	switch {
	case m == Pass && valid != 0:
		return s, fmt.Errorf("%w: %s passed with %d moves available", ErrIllegalMove, s.Turn, bits.OnesCount64(valid))
	case m != Pass && (bits.OnesCount64(uint64(m)) != 1 || uint64(m)&valid == 0):
		return s, fmt.Errorf("%w: %s cannot play %s", ErrIllegalMove, s.Turn, m)
	}

	b = b.Play(m)
	next := State{Turn: s.Turn.Other(), History: append(slices.Clip(s.History), m)}
	if s.Turn == Black {
		next.Black, next.White = b.Player, b.Opponent
	} else {
		next.White, next.Black = b.Player, b.Opponent
	}
	return next, nil
}

func (s State) Count(c Color) int {
	if c == Black {
		return bits.OnesCount64(s.Black)
	}
	return bits.OnesCount64(s.White)
}

func (s State) Empties() int {
	return 64 - bits.OnesCount64(s.Black|s.White)
}

// Winner returns the color with more discs; ok is false on a tie.
func (s State) Winner() (c Color, ok bool) {
	black, white := s.Count(Black), s.Count(White)
	switch {
	case black > white:
		return Black, true
	case white > black:
		return White, true
	}
	return Black, false
}

// String draws the board with B for black and W for white discs.
func (s State) String() string {
	return render(s.Black, s.White, 'B', 'W')
}
