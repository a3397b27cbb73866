package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestEvaluatePosition(t *testing.T) {
	t.Run("initial position is balanced", func(t *testing.T) {
		require.Zero(t, EvaluatePosition(NewBoard()))
	})

	t.Run("square groups", func(t *testing.T) {
		require.Equal(t, -4, EvaluatePosition(Board{Player: uint64(Pos(1, 1))}))
		require.Equal(t, -8, EvaluatePosition(Board{Player: uint64(Pos(1, 0))}))
		require.Equal(t, 2, EvaluatePosition(Board{Player: uint64(Pos(2, 0))}))
		require.Equal(t, -1, EvaluatePosition(NewBoard().Play(Pos(3, 2))))
	})

	t.Run("confirmed corner", func(t *testing.T) {
		// 64 for the confirmed disc, 16 for the corner, 1 for the
		// opponent sitting in the center
		b := Board{Player: uint64(Pos(0, 0)), Opponent: uint64(Pos(3, 3))}
		require.Equal(t, 81, EvaluatePosition(b))
	})

	t.Run("full board counts material", func(t *testing.T) {
		player := uint64(1)<<40 - 1
		require.Equal(t, 16*64, EvaluatePosition(Board{Player: player, Opponent: ^player}))
	})

	t.Run("antisymmetric and bounded", func(t *testing.T) {
		r := rand.New(rand.NewSource(13))
		for range 100 {
			randomGame(r, func(s State) {
				b := s.Board(s.Turn)
				score := EvaluatePosition(b)
				require.Equal(t, -score, EvaluatePosition(b.Swap()))
				require.LessOrEqual(t, score, MaxEvaluation)
				require.GreaterOrEqual(t, score, -MaxEvaluation)
			})
		}
	})
}
