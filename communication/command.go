package communication

import (
	"fmt"
	"strings"

	"reversi/game"
)

// Command is a line sent by a player to the match server.
type Command interface {
	fmt.Stringer
	command()
}

type Open struct {
	Name string
}

// Play is the player's placement or game.Pass.
type Play struct {
	Move game.Move
}

func (Open) command() {}
func (Play) command() {}

func (c Open) String() string {
	return "OPEN " + c.Name
}

func (c Play) String() string {
	return "MOVE " + c.Move.String()
}

// ParseCommand reads one line sent by a player.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return nil, malformed(line)
	}
	switch fields[0] {
	case "OPEN":
		return Open{Name: fields[1]}, nil
	case "MOVE":
		move, err := game.ParseMove(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return Play{Move: move}, nil
	}
	return nil, malformed(line)
}
