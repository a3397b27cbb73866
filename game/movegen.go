package game

// direction is one of the eight rays. gen restricts the opponent discs a
// run may cross while enumerating moves; put keeps a single step from
// wrapping around the board edge while applying one.
type direction struct {
	shift uint
	left  bool
	gen   uint64
	put   uint64
}

const (
	horizontalMask uint64 = 0x7e7e7e7e7e7e7e7e
	verticalMask   uint64 = 0x00ffffffffffff00
	diagonalMask   uint64 = 0x007e7e7e7e7e7e00
)

var directions = [8]direction{
	{shift: 1, left: true, gen: horizontalMask, put: 0xfefefefefefefefe},  // left
	{shift: 1, left: false, gen: horizontalMask, put: 0x7f7f7f7f7f7f7f7f}, // right
	{shift: 8, left: true, gen: verticalMask, put: 0xffffffffffffff00},    // up
	{shift: 8, left: false, gen: verticalMask, put: 0x00ffffffffffffff},   // down
	{shift: 7, left: true, gen: diagonalMask, put: 0x7f7f7f7f7f7f7f00},    // right up
	{shift: 9, left: true, gen: diagonalMask, put: 0xfefefefefefefe00},    // left up
	{shift: 9, left: false, gen: diagonalMask, put: 0x007f7f7f7f7f7f7f},   // right down
	{shift: 7, left: false, gen: diagonalMask, put: 0x00fefefefefefefe},   // left down
}

func (d direction) step(b uint64) uint64 {
	if d.left {
		return b << d.shift
	}
	return b >> d.shift
}

// ValidMoves returns the empty squares where me flanks at least one run
// of opponent discs.
func ValidMoves(me, opponent uint64) uint64 {
	blank := ^(me | opponent)
	var valid uint64
	for _, d := range directions {
		mask := opponent & d.gen
		run := mask & d.step(me)
		// a run has at most six discs between anchor and landing square
		for range 5 {
			run |= mask & d.step(run)
		}
		valid |= blank & d.step(run)
	}
	return valid
}

// Put places pos for me and flips every captured opponent run. Each
// direction is read from the board as it was before the move.
func Put(pos Move, me, opponent *uint64) {
	var captured uint64
	for _, d := range directions {
		var run uint64
		mask := d.step(uint64(pos)) & d.put
		for mask != 0 && mask&*opponent != 0 {
			run |= mask
			mask = d.step(mask) & d.put
		}
		if mask&*me != 0 {
			captured |= run
		}
	}
	*me ^= uint64(pos) | captured
	*opponent ^= captured
}

// Flips returns the discs a move at pos would capture without applying it.
func Flips(pos Move, me, opponent uint64) uint64 {
	before := opponent
	Put(pos, &me, &opponent)
	return before &^ opponent
}
