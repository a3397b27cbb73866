package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatePlay(t *testing.T) {
	t.Run("alternates turns and records history", func(t *testing.T) {
		s := NewState()
		require.Equal(t, Black, s.Turn)
		require.Equal(t, 60, s.Empties())

		next, err := s.Play(Pos(4, 5))
		require.NoError(t, err)
		require.Equal(t, White, next.Turn)
		require.Equal(t, []Move{Pos(4, 5)}, next.History)
		require.Equal(t, 4, next.Count(Black))
		require.Equal(t, 1, next.Count(White))

		require.Empty(t, s.History, "receiver is unchanged")
		require.Equal(t, 2, s.Count(Black))
	})

	t.Run("branches do not share history", func(t *testing.T) {
		s, err := NewState().Play(Pos(4, 5))
		require.NoError(t, err)

		a, err := s.Play(Pos(3, 5))
		require.NoError(t, err)
		b, err := s.Play(Pos(5, 5))
		require.NoError(t, err)
		require.Equal(t, Pos(3, 5), a.History[1])
		require.Equal(t, Pos(5, 5), b.History[1])
	})

	t.Run("rejects illegal moves", func(t *testing.T) {
		s := NewState()
		for _, m := range []Move{Pos(0, 0), Pos(3, 3), Pos(0, 0) | Pos(1, 1), Pass} {
			next, err := s.Play(m)
			require.ErrorIs(t, err, ErrIllegalMove, "move %s", m)
			require.Equal(t, s, next)
		}
	})

	t.Run("pass only without placements", func(t *testing.T) {
		// Black on B1 has nothing to flank; white on A1 can take C1
		s := State{Black: uint64(Pos(1, 0)), White: uint64(Pos(0, 0)), Turn: Black}
		require.False(t, s.CanMove())
		require.False(t, s.Over())

		next, err := s.Play(Pass)
		require.NoError(t, err)
		require.Equal(t, White, next.Turn)
		require.Equal(t, s.Black, next.Black)
		require.Equal(t, []Move{Pass}, next.History)
		require.Equal(t, []Move{Pos(2, 0)}, next.LegalMoves())
	})
}

func TestStateOver(t *testing.T) {
	t.Run("full board", func(t *testing.T) {
		black := uint64(1)<<40 - 1
		s := State{Black: black, White: ^black}
		require.True(t, s.Over())
		require.Zero(t, s.Empties())

		winner, ok := s.Winner()
		require.True(t, ok)
		require.Equal(t, Black, winner)
	})

	t.Run("one side wiped out", func(t *testing.T) {
		s := State{White: uint64(Pos(3, 3) | Pos(4, 4)), Turn: Black}
		require.True(t, s.Over())

		winner, ok := s.Winner()
		require.True(t, ok)
		require.Equal(t, White, winner)
	})

	t.Run("tie", func(t *testing.T) {
		half := uint64(1)<<32 - 1
		s := State{Black: half, White: ^half}
		require.True(t, s.Over())
		_, ok := s.Winner()
		require.False(t, ok)
	})
}

func TestColor(t *testing.T) {
	require.Equal(t, White, Black.Other())
	require.Equal(t, Black, White.Other())
	require.Equal(t, "Black", Black.String())
	require.Equal(t, "White", White.String())
}
