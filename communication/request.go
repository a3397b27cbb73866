package communication

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"reversi/game"
)

var ErrMalformed = errors.New("malformed message")

type Result int

const (
	Win Result = iota
	Lose
	Tie
)

func (r Result) String() string {
	switch r {
	case Win:
		return "WIN"
	case Lose:
		return "LOSE"
	}
	return "TIE"
}

// Request is a line sent by the match server to a player.
type Request interface {
	fmt.Stringer
	request()
}

// Start begins a game. Remaining is the player's clock for the whole game.
type Start struct {
	Color     game.Color
	Opponent  string
	Remaining time.Duration
}

// OpponentMove relays the opponent's placement or game.Pass.
type OpponentMove struct {
	Move game.Move
}

type GiveUp struct{}

// Ack confirms a move and reports the clock left after it.
type Ack struct {
	Remaining time.Duration
}

type End struct {
	Result        Result
	Score         int
	OpponentScore int
	Reason        string
}

type Stat struct {
	Name   string
	Score  int
	Wins   int
	Losses int
}

// Bye closes the session with the standings of every player.
type Bye struct {
	Stats []Stat
}

func (Start) request()        {}
func (OpponentMove) request() {}
func (GiveUp) request()       {}
func (Ack) request()          {}
func (End) request()          {}
func (Bye) request()          {}

func (r Start) String() string {
	return fmt.Sprintf("START %s %s %d", strings.ToUpper(r.Color.String()), r.Opponent, r.Remaining.Milliseconds())
}

func (r OpponentMove) String() string {
	return "MOVE " + r.Move.String()
}

func (GiveUp) String() string {
	return "MOVE GIVEUP"
}

func (r Ack) String() string {
	return fmt.Sprintf("ACK %d", r.Remaining.Milliseconds())
}

func (r End) String() string {
	return fmt.Sprintf("END %s %d %d %s", r.Result, r.Score, r.OpponentScore, r.Reason)
}

func (r Bye) String() string {
	var sb strings.Builder
	sb.WriteString("BYE")
	for _, s := range r.Stats {
		fmt.Fprintf(&sb, " %s %d %d %d", s.Name, s.Score, s.Wins, s.Losses)
	}
	return sb.String()
}

// ParseRequest reads one line sent by the match server.
func ParseRequest(line string) (Request, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrMalformed)
	}

	switch args := fields[1:]; fields[0] {
	case "START":
		if len(args) != 3 {
			return nil, malformed(line)
		}
		var color game.Color
		switch args[0] {
		case "BLACK":
			color = game.Black
		case "WHITE":
			color = game.White
		default:
			return nil, malformed(line)
		}
		remaining, err := parseMillis(args[2])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrMalformed, line, err)
		}
		return Start{Color: color, Opponent: args[1], Remaining: remaining}, nil

	case "MOVE":
		if len(args) != 1 {
			return nil, malformed(line)
		}
		if args[0] == "GIVEUP" {
			return GiveUp{}, nil
		}
		move, err := game.ParseMove(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		return OpponentMove{Move: move}, nil

	case "ACK":
		if len(args) != 1 {
			return nil, malformed(line)
		}
		remaining, err := parseMillis(args[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrMalformed, line, err)
		}
		return Ack{Remaining: remaining}, nil

	case "END":
		if len(args) != 4 {
			return nil, malformed(line)
		}
		var result Result
		switch args[0] {
		case "WIN":
			result = Win
		case "LOSE":
			result = Lose
		case "TIE":
			result = Tie
		default:
			return nil, malformed(line)
		}
		score, err1 := strconv.Atoi(args[1])
		opponentScore, err2 := strconv.Atoi(args[2])
		if err := errors.Join(err1, err2); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrMalformed, line, err)
		}
		return End{Result: result, Score: score, OpponentScore: opponentScore, Reason: args[3]}, nil

	case "BYE":
		if len(args)%4 != 0 {
			return nil, malformed(line)
		}
		stats := make([]Stat, 0, len(args)/4)
		for i := 0; i < len(args); i += 4 {
			score, err1 := strconv.Atoi(args[i+1])
			wins, err2 := strconv.Atoi(args[i+2])
			losses, err3 := strconv.Atoi(args[i+3])
			if err := errors.Join(err1, err2, err3); err != nil {
				return nil, fmt.Errorf("%w: %q: %w", ErrMalformed, line, err)
			}
			stats = append(stats, Stat{Name: args[i], Score: score, Wins: wins, Losses: losses})
		}
		return Bye{Stats: stats}, nil
	}
	return nil, malformed(line)
}

// parseMillis reads a clock in milliseconds. Negative clocks read as zero.
func parseMillis(s string) (time.Duration, error) {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return time.Duration(max(ms, 0)) * time.Millisecond, nil
}

func malformed(line string) error {
	return fmt.Errorf("%w: %q", ErrMalformed, strings.TrimSpace(line))
}
