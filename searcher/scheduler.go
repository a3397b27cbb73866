package searcher

import (
	"context"
	"math/bits"
	"reversi/experiments/metrics"
	"reversi/game"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type Option func(s *Scheduler)

// Progress is published each time a root worker completes an iteration.
type Progress struct {
	Move  game.Move
	Depth int
	Score int
}

// Scheduler picks moves by racing one iterative-deepening search per legal
// root move against a deadline. It keeps no state between decisions, so one
// Scheduler may serve concurrent ChooseMove calls.
type Scheduler struct {
	maxDepth    int
	evaluate    game.Evaluate
	withMetrics bool
	progress    func(Progress)
}

func WithMaxDepth(depth int) Option {
	return func(s *Scheduler) {
		if depth > 0 && depth <= MaxDepth {
			s.maxDepth = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(s *Scheduler) {
		if evaluate != nil {
			s.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(s *Scheduler) {
		s.withMetrics = true
	}
}

// WithProgress registers fn to observe published results. fn is called from
// the worker goroutines and must be safe for concurrent use.
func WithProgress(fn func(Progress)) Option {
	return func(s *Scheduler) {
		s.progress = fn
	}
}

func NewScheduler(options ...Option) *Scheduler {
	s := &Scheduler{ // Default values
		maxDepth: MaxDepth,
		evaluate: game.EvaluatePosition,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// decision is everything one ChooseMove call shares with its workers.
type decision struct {
	board   game.Board
	results *results
	cancel  *Cancel
	metrics metrics.Collector
}

// ChooseMove returns Player's move within about budget, or game.Pass when
// Player has none. Cancelling ctx ends the search early; the best move found
// so far is still returned.
func (s *Scheduler) ChooseMove(ctx context.Context, b game.Board, budget time.Duration) (game.Move, metrics.SearchMetric) {
	return s.choose(ctx, b, budget, &Cancel{})
}

func (s *Scheduler) choose(ctx context.Context, b game.Board, budget time.Duration, cancel *Cancel) (game.Move, metrics.SearchMetric) {
	moves := b.Moves(true)
	switch len(moves) {
	case 0:
		return game.Pass, metrics.SearchMetric{}
	case 1:
		if !s.withMetrics {
			return moves[0], metrics.SearchMetric{}
		}
		return moves[0], metrics.SearchMetric{Workers: 1}
	}

	d := &decision{
		board:   b,
		results: newResults(),
		cancel:  cancel,
		metrics: metrics.NewDummyCollector(),
	}
	if s.withMetrics {
		d.metrics = metrics.NewCollector()
	}
	d.metrics.Start(len(moves), budget)

	var g errgroup.Group
	for _, move := range moves {
		g.Go(func() error {
			s.deepen(d, move)
			return nil
		})
	}
	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	timer := time.NewTimer(budget)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	case <-done:
	}
	d.cancel.Set()
	<-done

	best, score, ok := d.results.best(moves)
	if !ok {
		best = moves[0]
		d.metrics.SetFallback(true)
	}
	metric := d.metrics.Complete()

	log.Debug().
		Str("move", best.String()).
		Int("score", score).
		Bool("fallback", !ok).
		Dur("budget", budget).
		Msgf("root scores %v", d.results.snapshot())
	return best, metric
}

// deepen searches one root move at increasing depth until cancelled, a
// proven result, or a depth that reaches the end of every line.
func (s *Scheduler) deepen(d *decision, move game.Move) {
	child := d.board.Play(move)
	empties := bits.OnesCount64(child.Empty())
	ab := alphaBeta{evaluate: s.evaluate, cancel: d.cancel}
	defer func() {
		d.metrics.AddNodes(ab.nodes)
	}()

	for depth := 1; depth <= s.maxDepth; depth++ {
		score, err := ab.search(child, false, depth, -Inf, Inf)
		if err != nil {
			return
		}
		d.results.store(move, score)
		d.metrics.AddDepth(depth)
		if s.progress != nil {
			s.progress(Progress{Move: move, Depth: depth, Score: score})
		}

		if score >= Win || score <= Loss || depth >= empties {
			return
		}
	}
}
