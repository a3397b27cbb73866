package communication

import (
	"testing"
	"time"

	"reversi/game"

	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		line string
		want Request
	}{
		{"START BLACK alice 60000", Start{Color: game.Black, Opponent: "alice", Remaining: time.Minute}},
		{"START WHITE bob 1500", Start{Color: game.White, Opponent: "bob", Remaining: 1500 * time.Millisecond}},
		{"MOVE D3", OpponentMove{Move: game.Pos(3, 2)}},
		{"MOVE PASS", OpponentMove{Move: game.Pass}},
		{"MOVE GIVEUP", GiveUp{}},
		{"ACK 42000", Ack{Remaining: 42 * time.Second}},
		{"END WIN 40 24 DOUBLE_PASS", End{Result: Win, Score: 40, OpponentScore: 24, Reason: "DOUBLE_PASS"}},
		{"END TIE 32 32 DOUBLE_PASS", End{Result: Tie, Score: 32, OpponentScore: 32, Reason: "DOUBLE_PASS"}},
		{"BYE", Bye{Stats: []Stat{}}},
		{"BYE alice 3 2 1 bob -3 1 2", Bye{Stats: []Stat{
			{Name: "alice", Score: 3, Wins: 2, Losses: 1},
			{Name: "bob", Score: -3, Wins: 1, Losses: 2},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseRequest(tt.line + "\n")
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.line, got.String())
		})
	}

	t.Run("negative clock reads as zero", func(t *testing.T) {
		got, err := ParseRequest("ACK -120")
		require.NoError(t, err)
		require.Equal(t, Ack{}, got)
		require.Equal(t, "ACK 0", got.String())
	})

	t.Run("malformed", func(t *testing.T) {
		for _, line := range []string{
			"",
			"HELLO",
			"START",
			"START RED alice 100",
			"START BLACK alice",
			"START BLACK alice soon",
			"MOVE",
			"MOVE Z9",
			"MOVE D3 D4",
			"ACK",
			"ACK ten",
			"END DRAW 1 2 x",
			"END WIN 1 2",
			"END WIN one 2 x",
			"BYE alice 1 2",
			"BYE alice 1 2 x",
		} {
			_, err := ParseRequest(line)
			require.ErrorIs(t, err, ErrMalformed, "line %q", line)
		}
	})
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"OPEN anonymous", Open{Name: "anonymous"}},
		{"MOVE H8", Play{Move: game.Pos(7, 7)}},
		{"MOVE PASS", Play{Move: game.Pass}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, tt.line, got.String())
		})
	}

	t.Run("malformed", func(t *testing.T) {
		for _, line := range []string{"", "OPEN", "OPEN two names", "MOVE", "MOVE I9", "PLAY D3"} {
			_, err := ParseCommand(line)
			require.ErrorIs(t, err, ErrMalformed, "line %q", line)
		}
	})
}
