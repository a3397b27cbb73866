package game

import "math/bits"

const (
	fileA uint64 = 0x0101010101010101
	fileH uint64 = 0x8080808080808080
	rank1 uint64 = 0x00000000000000ff
	rank8 uint64 = 0xff00000000000000
)

// support names, for one of the four axes through a square, the neighbour
// on the quadrant's corner side: step moves a confirmed set onto the squares
// that neighbour supports, edge marks squares whose neighbour is off-board.
type support struct {
	shift uint
	left  bool
	edge  uint64
}

func (s support) step(b uint64) uint64 {
	if s.left {
		return b << s.shift
	}
	return b >> s.shift
}

// Horizontal, vertical, diagonal and anti-diagonal support per quadrant.
var quadrants = [4][4]support{
	{ // up-left
		{shift: 1, left: true, edge: fileA},
		{shift: 8, left: true, edge: rank1},
		{shift: 9, left: true, edge: fileA | rank1},
		{shift: 7, left: true, edge: fileH | rank1},
	},
	{ // up-right
		{shift: 1, left: false, edge: fileH},
		{shift: 8, left: true, edge: rank1},
		{shift: 7, left: true, edge: fileH | rank1},
		{shift: 9, left: true, edge: fileA | rank1},
	},
	{ // down-left
		{shift: 1, left: true, edge: fileA},
		{shift: 8, left: false, edge: rank8},
		{shift: 7, left: false, edge: fileA | rank8},
		{shift: 9, left: false, edge: fileH | rank8},
	},
	{ // down-right
		{shift: 1, left: false, edge: fileH},
		{shift: 8, left: false, edge: rank8},
		{shift: 9, left: false, edge: fileH | rank8},
		{shift: 7, left: false, edge: fileA | rank8},
	},
}

// Confirmed returns the discs of me that can never be flipped again.
//
// A disc is confirmed within a quadrant when, on every axis, its neighbour
// towards that quadrant's corner is off-board or itself confirmed. The set
// grows from the corner until it stops changing. Discs that are stable only
// through mixed support from several quadrants, or through filled lines, are
// missed: the count is a lower bound.
func Confirmed(me uint64) uint64 {
	var confirmed uint64
	for _, q := range quadrants {
		var set uint64
		for {
			next := me
			for _, s := range q {
				next &= s.step(set) | s.edge
			}
			if next == set {
				break
			}
			set = next
		}
		confirmed |= set
	}
	return confirmed & me
}

func ConfirmedCount(me uint64) int {
	return bits.OnesCount64(Confirmed(me))
}
