package book

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"reversi/game"

	"github.com/stretchr/testify/require"
)

func sequence(t *testing.T, s string) []game.Move {
	t.Helper()
	moves, err := game.ParseSequence(s)
	require.NoError(t, err)
	return moves
}

func TestDefault(t *testing.T) {
	b := Default()
	require.Equal(t, 11, b.Len())

	t.Run("first move", func(t *testing.T) {
		move, ok := b.Lookup(nil)
		require.True(t, ok)
		require.Equal(t, game.Pos(5, 4), move)
	})

	t.Run("follows the first matching prefix", func(t *testing.T) {
		move, ok := b.Lookup(sequence(t, "f5d6"))
		require.True(t, ok)
		require.Equal(t, "C3", move.String())

		name, ok := b.Opening(sequence(t, "f5d6c3d3c4f4"))
		require.True(t, ok)
		require.Equal(t, "aubrey", name)

		move, ok = b.Lookup(sequence(t, "f5d6c3d3c4f4c5b3c2"))
		require.True(t, ok)
		require.Equal(t, "E3", move.String())
	})

	t.Run("other branches", func(t *testing.T) {
		move, ok := b.Lookup(sequence(t, "f5d6c5"))
		require.True(t, ok)
		require.Equal(t, "F4", move.String())

		move, ok = b.Lookup(sequence(t, "f5f6"))
		require.True(t, ok)
		require.Equal(t, "E6", move.String())
	})

	t.Run("out of book", func(t *testing.T) {
		_, ok := b.Lookup(sequence(t, "e6"))
		require.False(t, ok)

		// the line ends here
		_, ok = b.Lookup(sequence(t, "f5f4"))
		require.False(t, ok)

		_, ok = b.Opening(sequence(t, "f5d6c3d3c4f4c5b3c2e3d2c6b4a4"))
		require.False(t, ok)
	})
}

func TestRead(t *testing.T) {
	t.Run("comments and spacing", func(t *testing.T) {
		b, err := Read(strings.NewReader("# openings\ntiger, F5D6C3D3C4\n\nparallel,f5f4\n"))
		require.NoError(t, err)
		require.Equal(t, 2, b.Len())

		move, ok := b.Lookup(sequence(t, "f5"))
		require.True(t, ok)
		require.Equal(t, "D6", move.String())
	})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"missing field", "tiger\n", "line 1"},
		{"extra field", "tiger,f5d6,x\n", "line 1"},
		{"bad coordinate", "ok,f5\nbroken,f5z9\n", "line 2"},
		{"illegal move", "ok,f5\n\nbad,f5f5\n", "line 3"},
		{"empty moves", "empty,\n", "line 1"},
		{"missing name", ",f5\n", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.ErrorIs(t, err, ErrBadLine)
			require.ErrorContains(t, err, tt.want)
		})
	}

	t.Run("illegal move is classified", func(t *testing.T) {
		_, err := Read(strings.NewReader("bad,f5a1\n"))
		require.ErrorIs(t, err, game.ErrIllegalMove)
	})
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.csv")
	require.NoError(t, os.WriteFile(path, []byte("cow,f5d6c5\n"), 0o600))

	b, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
