package agent

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"splendor/game"
	"splendor/searcher"
)

type selectRequest struct {
	Agent   int           `json:"agent"`
	State   *game.State   `json:"state"`
	Actions []game.Action `json:"actions,omitempty"` // Defaults to the rules' legal actions
}

type selectResponse struct {
	Action   game.Action `json:"action"`
	Episodes int         `json:"episodes"`
	Elapsed  string      `json:"elapsed"`
}

// Server exposes SelectAction over HTTP for harnesses running in another
// process. Every request gets its own search.
type Server struct {
	rules   game.Rules
	options []searcher.Option
	seed    atomic.Uint64
	router  chi.Router
}

func NewServer(rules game.Rules, seed uint64, options ...searcher.Option) *Server {
	s := &Server{rules: rules, options: options}
	s.seed.Store(seed)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})
	r.Post("/select-action", s.handleSelectAction)
	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the agent server on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Info().Msgf("starting agent server on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleSelectAction(w http.ResponseWriter, r *http.Request) {
	var payload selectRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if payload.State == nil {
		http.Error(w, "bad request: missing state", http.StatusBadRequest)
		return
	}
	if payload.Agent < 0 || payload.Agent >= game.NumPlayers {
		http.Error(w, "bad request: agent must be 0 or 1", http.StatusBadRequest)
		return
	}

	actions := payload.Actions
	if len(actions) == 0 {
		actions = s.rules.LegalActions(payload.State, payload.Agent)
	}

	seed := s.seed.Add(1)
	agent := NewEvaluationAgent(payload.Agent, s.newSearcher(seed), seed)

	start := time.Now()
	action, metric, err := agent.SelectAction(actions, payload.State)
	if errors.Is(err, searcher.ErrInvalidInput) {
		http.Error(w, "no legal actions", http.StatusUnprocessableEntity)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Info().
		Str("request_id", middleware.GetReqID(r.Context())).
		Int("agent", payload.Agent).
		Int("episodes", metric.Episodes).
		Msgf("selected %v", action)

	w.Header().Set("Content-Type", "application/json")
	resp := selectResponse{Action: action, Episodes: metric.Episodes, Elapsed: time.Since(start).String()}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		http.Error(w, "failed to encode action: "+err.Error(), http.StatusInternalServerError)
	}
}

// newSearcher applies the per-request seed after the configured options so
// that every request searches with its own seed.
func (s *Server) newSearcher(seed uint64) *searcher.MCTS {
	options := append(append([]searcher.Option{}, s.options...), searcher.WithSeed(seed), searcher.WithMetrics())
	return searcher.NewMCTS(s.rules, options...)
}
