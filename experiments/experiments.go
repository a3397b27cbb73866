package experiments

import (
	"context"
	"fmt"
	"time"

	"reversi/book"
	"reversi/engine"
	"reversi/experiments/metrics"
	"reversi/searcher"
	"reversi/searcher/agent"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

const (
	NumGames   = 10 // Per match up
	TimeBudget = 50 * time.Millisecond
)

// ResultsDir is where experiment runs are stored.
var ResultsDir = "results"

var baseline = metrics.AgentConfig{ID: 0, Name: "random", Random: true}

var budgetConfigs = []metrics.AgentConfig{
	{ID: 1, Name: "search-10ms", Budget: 10 * time.Millisecond},
	{ID: 2, Name: "search-50ms", Budget: TimeBudget},
	{ID: 3, Name: "search-200ms", Budget: 200 * time.Millisecond},
	{ID: 4, Name: "search-50ms-book", Budget: TimeBudget, Book: true},
}

// Summary is the score of one matchup from the second agent's side.
type Summary struct {
	Agent  metrics.AgentConfig
	Versus metrics.AgentConfig
	Wins   int
	Losses int
	Ties   int
	Discs  float64 // Mean disc margin
}

// RunBudgetExperiment pairs search agents with growing budgets against the
// random baseline.
func RunBudgetExperiment(ctx context.Context) ([]Summary, error) {
	matchUps := lo.Map(budgetConfigs, func(config metrics.AgentConfig, _ int) []metrics.AgentConfig {
		return []metrics.AgentConfig{baseline, config}
	})
	return runExperiment(ctx, "budget", append(budgetConfigs, baseline), matchUps, NumGames)
}

// RunDepthExperiment pairs depth-limited agents against a depth-one agent.
func RunDepthExperiment(ctx context.Context) ([]Summary, error) {
	reference := metrics.AgentConfig{ID: 0, Name: "depth-1", Budget: TimeBudget, MaxDepth: 1}
	configs := lo.Map([]int{2, 3, 4, 6}, func(depth int, i int) metrics.AgentConfig {
		return metrics.AgentConfig{ID: i + 1, Name: fmt.Sprintf("depth-%d", depth), Budget: TimeBudget, MaxDepth: depth}
	})
	matchUps := lo.Map(configs, func(config metrics.AgentConfig, _ int) []metrics.AgentConfig {
		return []metrics.AgentConfig{reference, config}
	})
	return runExperiment(ctx, "depth", append(configs, reference), matchUps, NumGames)
}

func runExperiment(ctx context.Context, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, numGames int) ([]Summary, error) {
	// Run a number of games for each matchup
	start := time.Now()
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	summaries := make([]Summary, 0, len(matchUps))

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchup := range matchUps {
		config1 := matchup[0]
		config2 := matchup[1]
		summary := Summary{Agent: config2, Versus: config1}

		log.Info().Msgf("starting matchup %d of %d between agent1=%s and agent2=%s...", mi+1, len(matchUps), config1.Name, config2.Name)

		for i := range numGames {
			// Alternate colors so neither agent always moves first
			black, white := config1, config2
			if i%2 == 1 {
				black, white = config2, config1
			}
			e := engine.NewLocalEngine(newAgent(black, uint64(count)), newAgent(white, uint64(count)+1), max(black.Budget, white.Budget))
			_, gameMetric, moveMetrics, err := e.Run(ctx)
			if err != nil {
				return nil, fmt.Errorf("%s matchup %d game %d: %w", name, mi+1, i+1, err)
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Black:      black.ID,
				White:      white.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}
			summary.add(gameMetric, black.ID == config2.ID)

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %q", mi+1, len(matchUps), i+1, gameMetric.Winner)
		}
		summary.Discs /= float64(max(numGames, 1))
		summaries = append(summaries, summary)
		log.Info().Msgf("completed matchup %d of %d: %s won %d, lost %d, tied %d", mi+1, len(matchUps), config2.Name, summary.Wins, summary.Losses, summary.Ties)
	}

	log.Info().Msgf("completed %s experiment", name)

	// Store experiment metadata
	writer, err := metrics.NewWriter(ResultsDir, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	end := time.Now()
	err = writer.WriteSetup(metrics.Setup{
		Name:      name,
		Matchups:  matchUps,
		NumGames:  numGames,
		StartTime: start,
		EndTime:   end,
		Duration:  end.Sub(start),
	})
	if err != nil {
		return nil, err
	}
	if err = writer.WriteAgentConfigs(configs); err != nil {
		return nil, fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	// Store experiment results
	if err = writer.WriteGameRecords(gameRecords); err != nil {
		return nil, fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err = writer.WriteMoveRecords(moveRecords); err != nil {
		return nil, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored move records in %s", writer.Dir())
	return summaries, nil
}

func (s *Summary) add(m metrics.GameMetric, agentIsBlack bool) {
	margin := m.BlackDiscs - m.WhiteDiscs
	agentColor := "White"
	if agentIsBlack {
		agentColor = "Black"
	} else {
		margin = -margin
	}
	s.Discs += float64(margin)

	switch m.Winner {
	case "":
		s.Ties++
	case agentColor:
		s.Wins++
	default:
		s.Losses++
	}
}

func newAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	if config.Random {
		return agent.NewRandomAgent(seed)
	}

	options := []searcher.Option{searcher.WithMetrics()}
	if config.MaxDepth > 0 {
		options = append(options, searcher.WithMaxDepth(config.MaxDepth))
	}
	var agentOptions []agent.Option
	if config.Book {
		agentOptions = append(agentOptions, agent.WithBook(book.Default()))
	}
	return agent.NewSearchAgent(searcher.NewScheduler(options...), agentOptions...)
}
