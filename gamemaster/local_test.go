package gamemaster

import (
	"testing"

	"reversi/game"

	"github.com/stretchr/testify/require"
)

func TestReferee(t *testing.T) {
	t.Run("initial state", func(t *testing.T) {
		r := NewReferee()
		require.Equal(t, game.NewState(), r.State())
		require.False(t, r.Over())

		me, opponent := r.Score(game.Black)
		require.Equal(t, 2, me)
		require.Equal(t, 2, opponent)
	})

	t.Run("legal move", func(t *testing.T) {
		r := NewReferee()
		require.NoError(t, r.Play(game.Pos(5, 4)))
		require.Equal(t, game.White, r.State().Turn)

		me, opponent := r.Score(game.Black)
		require.Equal(t, 4, me)
		require.Equal(t, 1, opponent)
	})

	t.Run("illegal moves leave the state alone", func(t *testing.T) {
		r := NewReferee()
		for _, m := range []game.Move{game.Pos(0, 0), game.Pass, game.Pos(3, 3)} {
			err := r.Play(m)
			require.ErrorIs(t, err, ErrIllegalMove)
			require.ErrorIs(t, err, game.ErrIllegalMove)
		}
		require.Equal(t, game.NewState(), r.State())
	})

	t.Run("no moves after the end", func(t *testing.T) {
		r := &Referee{state: game.State{Black: uint64(game.Pos(3, 3)), Turn: game.White}}
		require.True(t, r.Over())
		require.ErrorIs(t, r.Play(game.Pass), ErrGameOver)
	})
}
