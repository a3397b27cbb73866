package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"reversi/game"
	"reversi/meta"
	"reversi/searcher"
	"reversi/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

var errBadBoard = errors.New("bad board")

// Server answers move requests over HTTP and streams search progress to
// websocket clients on /ws.
type Server struct {
	scheduler *searcher.Scheduler
	hub       *hub
	router    chi.Router
}

type findMoveRequest struct {
	Player   string `json:"player"`
	Opponent string `json:"opponent"`
	BudgetMs int64  `json:"budget_ms"`
}

type findMoveResponse struct {
	Move     string `json:"move"`
	Nodes    int    `json:"nodes"`
	MaxDepth int    `json:"max_depth"`
}

// NewServer builds a server whose searches are configured by options.
func NewServer(options ...searcher.Option) *Server {
	s := &Server{hub: newHub()}
	options = append(options, searcher.WithMetrics(), searcher.WithProgress(s.publish))
	s.scheduler = searcher.NewScheduler(options...)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/findmove", s.handleFindMove)
	r.Get("/ws", s.hub.serveWS)
	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info().Msgf("[AgentServer] Starting agent server on %s ...", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("agent server: %w", err)
	}
	return nil
}

func (s *Server) publish(p searcher.Progress) {
	s.hub.broadcast("progress", progressPayload{Move: p.Move.String(), Depth: p.Depth, Score: p.Score})
}

func (s *Server) handleFindMove(w http.ResponseWriter, r *http.Request) {
	var payload findMoveRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	board, err := payload.board()
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	budget := meta.DefaultBudget
	if payload.BudgetMs > 0 {
		budget = utils.Clamp(time.Duration(payload.BudgetMs)*time.Millisecond, meta.MinBudget, meta.MaxBudget)
	}

	move, metric := s.scheduler.ChooseMove(r.Context(), board, budget)
	s.hub.broadcast("decision", decisionPayload{Move: move.String(), Nodes: metric.Nodes, MaxDepth: metric.MaxDepth})
	writeJSON(w, http.StatusOK, findMoveResponse{Move: move.String(), Nodes: metric.Nodes, MaxDepth: metric.MaxDepth})
}

func (p findMoveRequest) board() (game.Board, error) {
	player, err := parseMask(p.Player)
	if err != nil {
		return game.Board{}, fmt.Errorf("player: %w", err)
	}
	opponent, err := parseMask(p.Opponent)
	if err != nil {
		return game.Board{}, fmt.Errorf("opponent: %w", err)
	}
	if player&opponent != 0 {
		return game.Board{}, fmt.Errorf("%w: sides overlap", errBadBoard)
	}
	return game.Board{Player: player, Opponent: opponent}, nil
}

func parseMask(s string) (uint64, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "0x")
	mask, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errBadBoard, err)
	}
	return mask, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("Failed to encode response")
	}
}
