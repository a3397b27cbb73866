package game

import "math/bits"

// Move is a single placed square (one bit set) or Pass.
type Move uint64

// Pass is the move of a side without legal placements.
const Pass Move = 0

// Board holds the discs of the side the engine evaluates for (Player)
// and of its adversary (Opponent). Bit index is x + y*8.
type Board struct {
	Player   uint64
	Opponent uint64
}

const (
	initialBlack uint64 = 0x0000000810000000
	initialWhite uint64 = 0x0000001008000000
)

// NewBoard returns the starting layout with black as Player.
func NewBoard() Board {
	return Board{Player: initialBlack, Opponent: initialWhite}
}

// Pos maps a column and row in [0, 8) to its single-bit move.
func Pos(x, y int) Move {
	return Move(1) << (x + y*8)
}

// FromPos is the inverse of Pos. m must have exactly one bit set.
func FromPos(m Move) (x, y int) {
	idx := bits.TrailingZeros64(uint64(m))
	return idx & 7, idx >> 3
}

func (b Board) Empty() uint64 {
	return ^(b.Player | b.Opponent)
}

// Placed is the number of discs on the board.
func (b Board) Placed() int {
	return bits.OnesCount64(b.Player | b.Opponent)
}

// Swap returns the same physical layout seen from the other side.
func (b Board) Swap() Board {
	return Board{Player: b.Opponent, Opponent: b.Player}
}

// Moves lists the legal moves of the side to move, lowest square first.
func (b Board) Moves(playerToMove bool) []Move {
	if playerToMove {
		return Split(ValidMoves(b.Player, b.Opponent))
	}
	return Split(ValidMoves(b.Opponent, b.Player))
}

// Play places m for Player.
func (b Board) Play(m Move) Board {
	Put(m, &b.Player, &b.Opponent)
	return b
}

// PlayOpponent places m for Opponent.
func (b Board) PlayOpponent(m Move) Board {
	Put(m, &b.Opponent, &b.Player)
	return b
}

// Pass leaves the board as is; passing never changes discs.
func (b Board) Pass() Board {
	return b
}

// Split breaks a mask into single-bit moves, lowest square first.
func Split(mask uint64) []Move {
	moves := make([]Move, 0, bits.OnesCount64(mask))
	for mask != 0 {
		m := mask & -mask
		moves = append(moves, Move(m))
		mask ^= m
	}
	return moves
}
