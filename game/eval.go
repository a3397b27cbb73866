package game

import "math/bits"

// Evaluate scores a board from Player's perspective.
type Evaluate func(Board) int

// Square groups used by the mid-game evaluation.
const (
	corners    uint64 = 0x8100000000000081
	xSquares   uint64 = 0x0042000000004200
	cSquares   uint64 = 0x4281000000008142
	outerRing  uint64 = 0x3c0081818181003c
	secondRing uint64 = 0x003c424242423c00
	thirdRing  uint64 = 0x00003c24243c0000
	innerRing  uint64 = 0x0000001818000000
)

// Past this many discs only material counts.
const endgameDiscs = 60

type weight struct {
	mask   uint64
	factor int
}

var weights = [...]weight{
	{corners, 16},
	{xSquares, -4},
	{cSquares, -8},
	{outerRing, 2},
	{secondRing, 1},
	{thirdRing, 1},
	{innerRing, -1},
}

// MaxEvaluation bounds the absolute value EvaluatePosition can return.
const MaxEvaluation = 64*64 + 4*16 + 4*4 + 8*8 + 16*2 + 16 + 12 + 4

// EvaluatePosition weighs material once the board is nearly full, and
// confirmed discs plus square groups before that.
func EvaluatePosition(b Board) int {
	if b.Placed() > endgameDiscs {
		return (bits.OnesCount64(b.Player) - bits.OnesCount64(b.Opponent)) * 64
	}

	score := (ConfirmedCount(b.Player) - ConfirmedCount(b.Opponent)) * 64
	for _, w := range weights {
		score += (bits.OnesCount64(b.Player&w.mask) - bits.OnesCount64(b.Opponent&w.mask)) * w.factor
	}
	return score
}
