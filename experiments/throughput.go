package experiments

import (
	"context"
	"fmt"
	"time"

	"reversi/engine"
	"reversi/experiments/metrics"
	"reversi/game"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// Throughput is the search speed of one self-play game.
type Throughput struct {
	Budget        time.Duration
	Searches      int
	Nodes         int
	NodesPerSec   float64
	MeanDepth     float64
	FallbackMoves int
}

// RunThroughputExperiment plays one search agent against itself at each
// budget and measures how many nodes the root workers visit.
func RunThroughputExperiment(ctx context.Context, budgets ...time.Duration) ([]Throughput, error) {
	if len(budgets) == 0 {
		budgets = []time.Duration{10 * time.Millisecond, TimeBudget, 200 * time.Millisecond}
	}

	results := make([]Throughput, 0, len(budgets))
	for _, budget := range budgets {
		config := metrics.AgentConfig{Budget: budget}
		e := engine.NewLocalEngine(newAgent(config, 0), newAgent(config, 1), budget)

		log.Info().Msgf("starting throughput game with budget %s...", budget)
		_, _, moveMetrics, err := e.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("throughput with budget %s: %w", budget, err)
		}

		result := measure(budget, moveMetrics)
		log.Info().Msgf("budget %s: %d searches, %.0f nodes/s, mean depth %.1f", budget, result.Searches, result.NodesPerSec, result.MeanDepth)
		results = append(results, result)
	}
	return results, nil
}

// measure summarises the moves that ran a search; forced moves and passes
// are skipped.
func measure(budget time.Duration, moveMetrics []metrics.MoveMetric) Throughput {
	searched := lo.Filter(moveMetrics, func(m metrics.MoveMetric, _ int) bool {
		return m.Move != game.Pass.String() && m.Workers > 1
	})

	result := Throughput{
		Budget:        budget,
		Searches:      len(searched),
		Nodes:         lo.SumBy(searched, func(m metrics.MoveMetric) int { return m.Nodes }),
		FallbackMoves: lo.CountBy(searched, func(m metrics.MoveMetric) bool { return m.Fallback }),
	}
	if len(searched) == 0 {
		return result
	}
	elapsed := lo.SumBy(searched, func(m metrics.MoveMetric) time.Duration { return m.Duration })
	if elapsed > 0 {
		result.NodesPerSec = float64(result.Nodes) / elapsed.Seconds()
	}
	result.MeanDepth = float64(lo.SumBy(searched, func(m metrics.MoveMetric) int { return m.MaxDepth })) / float64(len(searched))
	return result
}
