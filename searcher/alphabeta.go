package searcher

import (
	"errors"
	"math/bits"
	"reversi/game"
	"sync/atomic"
)

// ErrCancelled reports that a search stopped before finishing. Its score,
// if any, must not be used.
var ErrCancelled = errors.New("search cancelled")

// Cancel is a one-way stop signal shared by every search of one decision.
type Cancel struct {
	flag atomic.Bool
}

func (c *Cancel) Set() {
	c.flag.Store(true)
}

func (c *Cancel) IsSet() bool {
	return c != nil && c.flag.Load()
}

type alphaBeta struct {
	evaluate game.Evaluate
	cancel   *Cancel
	nodes    int
}

// Search runs a fail-hard alpha-beta search of depth plies and scores the
// result from Player's perspective. playerToMove selects the side to move.
func Search(b game.Board, playerToMove bool, depth, alpha, beta int, cancel *Cancel) (int, error) {
	ab := alphaBeta{evaluate: game.EvaluatePosition, cancel: cancel}
	return ab.search(b, playerToMove, depth, alpha, beta)
}

func (ab *alphaBeta) search(b game.Board, playerToMove bool, depth, alpha, beta int) (int, error) {
	if ab.cancel.IsSet() {
		return 0, ErrCancelled
	}
	ab.nodes++

	me, other := b.Player, b.Opponent
	if !playerToMove {
		me, other = other, me
	}

	moves := game.ValidMoves(me, other)
	if moves == 0 {
		if game.ValidMoves(other, me) == 0 {
			return final(b), nil
		}
		// Passing costs no depth
		return ab.search(b, !playerToMove, depth, alpha, beta)
	}

	if depth == 0 {
		return ab.evaluate(b), nil
	}

	for moves != 0 {
		m := game.Move(moves & -moves)
		moves ^= uint64(m)

		var child game.Board
		if playerToMove {
			child = b.Play(m)
		} else {
			child = b.PlayOpponent(m)
		}

		score, err := ab.search(child, !playerToMove, depth-1, alpha, beta)
		if err != nil {
			return 0, err
		}

		if playerToMove {
			alpha = max(alpha, score)
		} else {
			beta = min(beta, score)
		}
		if alpha >= beta {
			break
		}
	}

	if playerToMove {
		return alpha, nil
	}
	return beta, nil
}

// final scores a position where neither side can move.
func final(b game.Board) int {
	player, opponent := bits.OnesCount64(b.Player), bits.OnesCount64(b.Opponent)
	switch {
	case player > opponent:
		return Win
	case player < opponent:
		return Loss
	}
	return 0
}
