package experiments

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"reversi/experiments/metrics"

	"github.com/stretchr/testify/require"
)

func TestRunExperiment(t *testing.T) {
	ResultsDir = t.TempDir()

	reference := metrics.AgentConfig{ID: 0, Name: "random", Random: true}
	search := metrics.AgentConfig{ID: 1, Name: "depth-2", Budget: 20 * time.Millisecond, MaxDepth: 2, Book: true}
	summaries, err := runExperiment(context.Background(), "smoke", []metrics.AgentConfig{reference, search},
		[][]metrics.AgentConfig{{reference, search}}, 2)
	require.NoError(t, err)

	require.Len(t, summaries, 1)
	s := summaries[0]
	require.Equal(t, search, s.Agent)
	require.Equal(t, reference, s.Versus)
	require.Equal(t, 2, s.Wins+s.Losses+s.Ties)

	runs, err := os.ReadDir(filepath.Join(ResultsDir, "smoke"))
	require.NoError(t, err)
	require.Len(t, runs, 1)
	for _, name := range []string{"setup.json", "agent_configs.csv", "game_records.csv", "move_records.csv"} {
		require.FileExists(t, filepath.Join(ResultsDir, "smoke", runs[0].Name(), name))
	}
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	s.add(metrics.GameMetric{Winner: "Black", BlackDiscs: 40, WhiteDiscs: 24}, true)
	s.add(metrics.GameMetric{Winner: "Black", BlackDiscs: 34, WhiteDiscs: 30}, false)
	s.add(metrics.GameMetric{BlackDiscs: 32, WhiteDiscs: 32}, false)

	require.Equal(t, 1, s.Wins)
	require.Equal(t, 1, s.Losses)
	require.Equal(t, 1, s.Ties)
	require.Equal(t, float64(16-4), s.Discs)
}

func TestMeasure(t *testing.T) {
	moves := []metrics.MoveMetric{
		{Move: "F5", SearchMetric: metrics.SearchMetric{Workers: 4, Nodes: 1000, MaxDepth: 4, Duration: 500 * time.Millisecond}},
		{Move: "D6", SearchMetric: metrics.SearchMetric{Workers: 3, Nodes: 3000, MaxDepth: 6, Duration: 1500 * time.Millisecond, Fallback: true}},
		{Move: "C3", SearchMetric: metrics.SearchMetric{Workers: 1}},
		{Move: "PASS"},
	}
	got := measure(time.Second, moves)
	require.Equal(t, 2, got.Searches)
	require.Equal(t, 4000, got.Nodes)
	require.InDelta(t, 2000.0, got.NodesPerSec, 1e-9)
	require.InDelta(t, 5.0, got.MeanDepth, 1e-9)
	require.Equal(t, 1, got.FallbackMoves)

	require.Zero(t, measure(time.Second, nil).Searches)
}

func TestRunThroughputExperiment(t *testing.T) {
	if testing.Short() {
		t.Skip("plays a full game per budget")
	}
	results, err := RunThroughputExperiment(context.Background(), 5*time.Millisecond)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Positive(t, results[0].Searches)
	require.Positive(t, results[0].Nodes)
}
