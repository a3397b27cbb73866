package game

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadCoordinate = errors.New("bad coordinate")

// String formats m as a column letter and row number ("D3"), or "PASS".
func (m Move) String() string {
	if m == Pass {
		return "PASS"
	}
	x, y := FromPos(m)
	return fmt.Sprintf("%c%d", 'A'+x, y+1)
}

// ParseMove reads "D3" (any case) or "PASS".
func ParseMove(s string) (Move, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "PASS" {
		return Pass, nil
	}
	if len(s) != 2 {
		return Pass, fmt.Errorf("%w: %q", ErrBadCoordinate, s)
	}
	x := int(s[0]) - 'A'
	y := int(s[1]) - '1'
	if x < 0 || x > 7 || y < 0 || y > 7 {
		return Pass, fmt.Errorf("%w: %q", ErrBadCoordinate, s)
	}
	return Pos(x, y), nil
}

// ParseSequence reads concatenated coordinates such as "F5D6C3".
func ParseSequence(s string) ([]Move, error) {
	s = strings.TrimSpace(s)
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("%w: odd length sequence %q", ErrBadCoordinate, s)
	}
	moves := make([]Move, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		m, err := ParseMove(s[i : i+2])
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}
	return moves, nil
}

// String draws the board row by row, X for Player and O for Opponent.
func (b Board) String() string {
	return render(b.Player, b.Opponent, 'X', 'O')
}

func render(first, second uint64, a, o byte) string {
	var sb strings.Builder
	sb.WriteString("  A B C D E F G H\n")
	for y := range 8 {
		sb.WriteByte(byte('1' + y))
		for x := range 8 {
			pos := uint64(Pos(x, y))
			sb.WriteByte(' ')
			switch {
			case first&pos != 0:
				sb.WriteByte(a)
			case second&pos != 0:
				sb.WriteByte(o)
			default:
				sb.WriteByte('.')
			}
		}
		if y != 7 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
