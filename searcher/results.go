package searcher

import (
	"maps"
	"reversi/game"
	"sync"
)

// results holds, per root move, the score of its deepest completed
// iteration. Each worker writes only its own move.
type results struct {
	sync.Mutex
	scores map[game.Move]int
}

func newResults() *results {
	return &results{scores: make(map[game.Move]int)}
}

func (r *results) store(move game.Move, score int) {
	r.Lock()
	defer r.Unlock()

	r.scores[move] = score
}

// best returns the highest scored move; ties go to the earliest in order.
func (r *results) best(order []game.Move) (game.Move, int, bool) {
	r.Lock()
	defer r.Unlock()

	found := false
	var bestMove game.Move
	bestScore := 0
	for _, move := range order {
		score, ok := r.scores[move]
		if !ok {
			continue
		}
		if !found || score > bestScore {
			found = true
			bestMove = move
			bestScore = score
		}
	}
	return bestMove, bestScore, found
}

func (r *results) snapshot() map[game.Move]int {
	r.Lock()
	defer r.Unlock()

	return maps.Clone(r.scores)
}
