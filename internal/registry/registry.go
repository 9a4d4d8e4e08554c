// internal/registry/registry.go
//
// In-memory registry of active game sessions.
// Responsibilities:
//   - Create sessions with collision-resistant identifiers (the session id is
//     shared out-of-band as a join code, so ids are random, not sequential).
//   - Look up sessions by id; seat the second player.
//   - Evict stale entries on a timer: finished matches and lobbies nobody
//     ever joined, once past the retention window.
//
// Characteristics:
//   - Concurrency-safe via RWMutex; session mutations happen under each
//     session's own lock, the registry lock only guards the map.
//   - State is lost when the process restarts (matches persisted separately).

package registry

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/wordduel/go-server/internal/game"
)

// ErrSessionNotFound is returned when a session id is unknown or evicted.
var ErrSessionNotFound = errors.New("session not found")

// Registry is a concurrently accessed keyed store of live sessions.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session

	answer func() string // picks a secret word for each new session
	now    func() time.Time
}

// New constructs a Registry. answer supplies the secret for each created
// session; now may be nil (defaults to time.Now) and exists for tests.
func New(answer func() string, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		sessions: make(map[string]*game.Session),
		answer:   answer,
		now:      now,
	}
}

// Create allocates a new session with a fresh secret word and seats the
// caller as player one. Returns the session and the player one id.
func (r *Registry) Create() (*game.Session, string) {
	sessionID := uuid.NewString()
	playerID := uuid.NewString()
	s := game.NewSession(sessionID, r.answer(), playerID, r.now())

	r.mu.Lock()
	r.sessions[sessionID] = s
	r.mu.Unlock()

	log.Debug().Str("sessionId", sessionID).Msg("session created")
	return s, playerID
}

// Get looks up a session by id.
func (r *Registry) Get(sessionID string) (*game.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if s, ok := r.sessions[sessionID]; ok {
		return s, nil
	}
	return nil, ErrSessionNotFound
}

// Join seats a second player in the session and returns their new id.
func (r *Registry) Join(sessionID string) (string, error) {
	s, err := r.Get(sessionID)
	if err != nil {
		return "", err
	}
	playerID := uuid.NewString()
	if err := s.Join(playerID); err != nil {
		return "", err
	}
	log.Debug().Str("sessionId", sessionID).Msg("player joined")
	return playerID, nil
}

// Evict removes sessions created before the retention cutoff whose state is
// finished or still waiting for an opponent. In-progress matches are kept
// regardless of age. Returns the number of sessions removed.
func (r *Registry) Evict(olderThan time.Duration) int {
	cutoff := r.now().Add(-olderThan)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if !s.CreatedAt().Before(cutoff) {
			continue
		}
		switch s.State() {
		case game.StateFinished, game.StateWaiting:
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// StartSweeper runs Evict every interval until ctx is cancelled.
func (r *Registry) StartSweeper(ctx context.Context, interval, retention time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.Evict(retention); n > 0 {
					log.Info().Int("removed", n).Msg("evicted stale sessions")
				}
			}
		}
	}()
	log.Info().Dur("interval", interval).Dur("retention", retention).Msg("session sweeper started")
}
