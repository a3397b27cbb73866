package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"reversi/experiments/metrics"
	"reversi/game"
	"reversi/searcher/agent"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// remoteAgent asks an agent server for moves.
type remoteAgent struct {
	url    string
	client *http.Client
}

// NewRemoteAgent returns an agent backed by the agent server at url.
func NewRemoteAgent(url string) agent.Agent {
	return &remoteAgent{url: url, client: &http.Client{}}
}

func (a *remoteAgent) FindMove(ctx context.Context, state game.State, budget time.Duration) (game.Move, metrics.SearchMetric) {
	legal := state.LegalMoves()
	if len(legal) == 0 {
		return game.Pass, metrics.SearchMetric{}
	}

	move, metric, err := a.requestMove(ctx, state.Board(state.Turn), budget)
	if err == nil && !lo.Contains(legal, move) {
		err = fmt.Errorf("agent server returned %s, not a legal move", move)
	}
	if err != nil {
		log.Warn().Err(err).Msg("Remote agent failed, falling back to the first legal move")
		return legal[0], metrics.SearchMetric{Budget: budget, Fallback: true}
	}
	return move, metric
}

// requestMove encodes the board in JSON and posts it to /findmove on the agent side.
func (a *remoteAgent) requestMove(ctx context.Context, b game.Board, budget time.Duration) (game.Move, metrics.SearchMetric, error) {
	payload := struct {
		Player   string `json:"player"`
		Opponent string `json:"opponent"`
		BudgetMs int64  `json:"budget_ms"`
	}{
		Player:   fmt.Sprintf("%#x", b.Player),
		Opponent: fmt.Sprintf("%#x", b.Opponent),
		BudgetMs: budget.Milliseconds(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return game.Pass, metrics.SearchMetric{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url+"/findmove", bytes.NewReader(body))
	if err != nil {
		return game.Pass, metrics.SearchMetric{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := a.client.Do(req)
	if err != nil {
		return game.Pass, metrics.SearchMetric{}, fmt.Errorf("failed to reach agent server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		out, _ := io.ReadAll(resp.Body)
		return game.Pass, metrics.SearchMetric{}, fmt.Errorf("agent returned status %d: %s", resp.StatusCode, bytes.TrimSpace(out))
	}

	var out struct {
		Move     string `json:"move"`
		Nodes    int    `json:"nodes"`
		MaxDepth int    `json:"max_depth"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return game.Pass, metrics.SearchMetric{}, fmt.Errorf("failed to decode move: %w", err)
	}
	move, err := game.ParseMove(out.Move)
	if err != nil {
		return game.Pass, metrics.SearchMetric{}, err
	}
	return move, metrics.SearchMetric{
		Budget:   budget,
		Duration: time.Since(start),
		Nodes:    out.Nodes,
		MaxDepth: out.MaxDepth,
	}, nil
}

