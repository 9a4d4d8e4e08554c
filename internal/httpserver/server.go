// internal/httpserver/server.go
//
// HTTP wiring for the word-duel backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health".
//   - Game endpoints (optional auth): POST /game/start, /game/join,
//     /game/guess, /game/results.
//   - Auth + stats endpoints: /auth/*, /stats/me (see routes_auth.go).
//   - Maps engine sentinels onto HTTP statuses; resolved results trigger the
//     per-day stats write for signed-in users.
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so cookies work).
//   - Auth is never required to play; identity only decorates statistics.
//   - "Waiting for opponent" is client polling; no handler ever blocks on
//     the other player.

package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/wordduel/go-server/internal/duel"
	"github.com/wordduel/go-server/internal/game"
	"github.com/wordduel/go-server/internal/registry"
	"github.com/wordduel/go-server/internal/results"
	"github.com/wordduel/go-server/internal/stats"
)

// Server bundles router, game service, and persistence handles.
type Server struct {
	r     *chi.Mux
	svc   *duel.Service
	db    *sql.DB
	stats *stats.Store
}

// New constructs a Server, installs middleware, and registers routes.
func New(svc *duel.Service, db *sql.DB) *Server {
	s := &Server{r: chi.NewRouter(), svc: svc, db: db, stats: stats.New(db)}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(corsFromEnv)                     // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordduel-go","endpoints":["/health","POST /game/start","POST /game/join","POST /game/guess","POST /game/results","/auth/*"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	// Game endpoints: OPTIONAL AUTH (guests can play)
	s.r.With(s.withOptionalAuth()).Post("/game/start", s.handleStart)
	s.r.With(s.withOptionalAuth()).Post("/game/join", s.handleJoin)
	s.r.With(s.withOptionalAuth()).Post("/game/guess", s.handleGuess)
	s.r.With(s.withOptionalAuth()).Post("/game/results", s.handleResults)

	// Auth + stats (require auth where noted)
	s.mountAuthRoutes()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// corsFromEnv enables credentialed CORS for a single origin.
// Uses CLIENT_ORIGIN env var; defaults to http://localhost:5173.
func corsFromEnv(next http.Handler) http.Handler {
	origin := os.Getenv("CLIENT_ORIGIN")
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// writeDomainError maps engine/service sentinels onto HTTP statuses with a
// JSON error body. Every error is local to one request; nothing is retried.
func writeDomainError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, duel.ErrInvalidGuess), errors.Is(err, duel.ErrNotInDictionary):
		status = http.StatusBadRequest
	case errors.Is(err, registry.ErrSessionNotFound), errors.Is(err, game.ErrUnknownPlayer):
		status = http.StatusNotFound
	case errors.Is(err, game.ErrSessionFull), errors.Is(err, game.ErrAlreadyJoined),
		errors.Is(err, game.ErrPlayerFinished), errors.Is(err, game.ErrAttemptsExhausted):
		status = http.StatusConflict
	}
	http.Error(w, `{"error":"`+err.Error()+`"}`, status)
}

// ------------------------------ GAME ---------------------------------------

// startRes is returned by POST /game/start.
type startRes struct {
	SessionID string `json:"sessionId"`
	PlayerID  string `json:"playerId"`
}

// handleStart creates a session; the caller becomes player one and shares
// the session id out-of-band as the join code.
func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	res := s.svc.Start()
	log.Info().Str("sessionId", res.SessionID).Msg("game started")
	_ = json.NewEncoder(w).Encode(startRes{SessionID: res.SessionID, PlayerID: res.PlayerID})
}

// joinReq/joinRes payloads for POST /game/join.
type joinReq struct {
	SessionID string `json:"sessionId"`
}
type joinRes struct {
	PlayerID string `json:"playerId"`
}

// handleJoin seats the caller as player two.
func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req joinReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" {
		http.Error(w, `{"error":"sessionId is required"}`, http.StatusBadRequest)
		return
	}
	playerID, err := s.svc.Join(req.SessionID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(joinRes{PlayerID: playerID})
}

// guessReq/guessRes payloads for POST /game/guess.
type guessReq struct {
	SessionID string `json:"sessionId"`
	PlayerID  string `json:"playerId"`
	Guess     string `json:"guess"`
}
type guessRes struct {
	Feedback    []game.Verdict `json:"feedback"`
	GameOver    bool           `json:"gameOver"`
	CorrectWord string         `json:"correctWord,omitempty"`
}

// handleGuess validates and scores one guess.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	if req.SessionID == "" || req.PlayerID == "" || req.Guess == "" {
		http.Error(w, `{"error":"sessionId, playerId and guess are required"}`, http.StatusBadRequest)
		return
	}
	res, err := s.svc.Guess(req.SessionID, req.PlayerID, req.Guess)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	_ = json.NewEncoder(w).Encode(guessRes{
		Feedback:    res.Feedback,
		GameOver:    res.GameOver,
		CorrectWord: res.CorrectWord,
	})
}

// resultsReq/resultsRes payloads for POST /game/results.
// Message is populated instead of Winner when the outcome is pending or a
// draw.
type resultsReq struct {
	SessionID string `json:"sessionId"`
	PlayerID  string `json:"playerId"`
}
type resultsRes struct {
	Winner           string  `json:"winner,omitempty"`
	Attempts         int     `json:"attempts,omitempty"`
	TimeTakenSeconds float64 `json:"timeTakenSeconds,omitempty"`
	Message          string  `json:"message,omitempty"`
}

// handleResults evaluates the match outcome. Safe to poll while waiting for
// the opponent. Resolving a non-pending outcome with a signed-in identity
// triggers the per-day stats write and the match archive (both idempotent).
func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	var req resultsReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SessionID == "" || req.PlayerID == "" {
		http.Error(w, `{"error":"sessionId and playerId are required"}`, http.StatusBadRequest)
		return
	}
	out, err := s.svc.Results(req.SessionID, req.PlayerID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	switch out.Kind {
	case results.KindPending:
		_ = json.NewEncoder(w).Encode(resultsRes{Message: "Waiting for other player to finish."})
		return
	case results.KindDraw:
		s.persistOutcome(r, req.SessionID, req.PlayerID, out)
		_ = json.NewEncoder(w).Encode(resultsRes{Message: "No winner."})
		return
	}

	s.persistOutcome(r, req.SessionID, req.PlayerID, out)
	_ = json.NewEncoder(w).Encode(resultsRes{
		Winner:           out.WinnerID,
		Attempts:         out.Attempts,
		TimeTakenSeconds: out.ElapsedSeconds,
	})
}

// persistOutcome archives the finished match and, for signed-in callers,
// bumps their daily stats. Best effort: failures are logged, never surfaced.
func (s *Server) persistOutcome(r *http.Request, sessionID, playerID string, out results.Outcome) {
	if err := s.stats.ArchiveMatch(r.Context(), sessionID, out.WinnerID, out.Attempts, out.ElapsedSeconds); err != nil {
		log.Warn().Err(err).Str("sessionId", sessionID).Msg("archive match")
	}

	me, _ := r.Context().Value(ctxUserKey{}).(*authUser)
	if me == nil {
		return
	}
	didWin := out.Kind == results.KindWinner && out.WinnerID == playerID
	day := stats.DayKey(time.Now())
	if err := s.stats.RecordOutcome(r.Context(), me.ID, didWin, day); err != nil {
		log.Warn().Err(err).Str("user", me.ID).Msg("record outcome")
	}
}

// ------------------------------- small util --------------------------------

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
