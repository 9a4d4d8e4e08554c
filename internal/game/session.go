// internal/game/session.go
//
// Session state machine for one two-player match.
// Responsibilities:
//   - Bind two player slots to one fixed secret word.
//   - Apply guesses: score feedback, append history, flip per-player
//     completion, advance the session phase.
//   - Serialize concurrent mutations with a per-session mutex so the two
//     players' requests never observe a half-applied update.
//
// Phase rules:
//   - waiting_for_opponent → in_progress when the second player joins.
//   - in_progress → finished only once BOTH players are finished. One player
//     winning (or running out of attempts) never ends the match for the
//     other, who keeps guessing against their own budget.

package game

import (
	"sync"
	"time"
)

// Session is one match: a secret word shared by up to two players.
// All exported methods are safe for concurrent use.
type Session struct {
	mu sync.Mutex

	id        string
	secret    string // lowercase, assigned exactly once at creation
	players   []*Player
	state     State
	createdAt time.Time
}

// NewSession constructs a session in the waiting phase with player one
// already seated. secret must be a lowercase WordLength word.
func NewSession(id, secret, playerID string, now time.Time) *Session {
	return &Session{
		id:        id,
		secret:    secret,
		players:   []*Player{{ID: playerID}},
		state:     StateWaiting,
		createdAt: now,
	}
}

// ID returns the session's external handle.
func (s *Session) ID() string { return s.id }

// CreatedAt returns the session creation time.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Join seats playerID in the free slot and starts the match.
// Fails with ErrSessionFull when both slots are taken, ErrAlreadyJoined
// when the caller is already seated.
func (s *Session) Join(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.players {
		if p.ID == playerID {
			return ErrAlreadyJoined
		}
	}
	if len(s.players) >= 2 {
		return ErrSessionFull
	}
	s.players = append(s.players, &Player{ID: playerID})
	s.state = StateInProgress
	return nil
}

// GuessOutcome is the result of one accepted guess.
type GuessOutcome struct {
	Feedback       []Verdict
	PlayerFinished bool // this player won or exhausted attempts
	SessionOver    bool // both players finished; the secret may be revealed
	Secret         string
}

// RecordGuess scores word for playerID and commits the full record (history
// append, per-player completion flag, session phase) atomically.
//
// word must already be validated (lowercase, WordLength, a–z): validation
// failures are rejected upstream and never reach session state.
func (s *Session) RecordGuess(playerID, word string, now time.Time) (GuessOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.find(playerID)
	if p == nil {
		return GuessOutcome{}, ErrUnknownPlayer
	}
	if p.Finished {
		return GuessOutcome{}, ErrPlayerFinished
	}
	if len(p.Guesses) >= MaxAttempts {
		return GuessOutcome{}, ErrAttemptsExhausted
	}

	fb := Score(s.secret, word)
	p.Guesses = append(p.Guesses, GuessRecord{Word: word, Feedback: fb})

	if allCorrect(fb) || len(p.Guesses) >= MaxAttempts {
		p.Finished = true
		p.FinishedAt = now
	}

	// The match is decided only when both seats are taken and both players
	// are done; a lone player finishing keeps the session open for a joiner.
	if len(s.players) == 2 && s.players[0].Finished && s.players[1].Finished {
		s.state = StateFinished
	}

	out := GuessOutcome{
		Feedback:       fb,
		PlayerFinished: p.Finished,
		SessionOver:    s.state == StateFinished,
	}
	if out.SessionOver {
		out.Secret = s.secret
	}
	return out, nil
}

// find returns the seated player with the given id, or nil.
// Caller must hold s.mu.
func (s *Session) find(playerID string) *Player {
	for _, p := range s.players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// PlayerSnapshot is a read-only copy of one player's state.
type PlayerSnapshot struct {
	ID         string
	Guesses    []GuessRecord
	Finished   bool
	FinishedAt time.Time
	Solved     bool
}

// Snapshot is a consistent read-only copy of the whole session, taken under
// the session lock. Result evaluation works off snapshots so it never holds
// the lock while computing.
type Snapshot struct {
	ID        string
	Secret    string
	State     State
	CreatedAt time.Time
	Players   []PlayerSnapshot
}

// Snapshot copies the session state for lock-free reading.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:        s.id,
		Secret:    s.secret,
		State:     s.state,
		CreatedAt: s.createdAt,
		Players:   make([]PlayerSnapshot, 0, len(s.players)),
	}
	for _, p := range s.players {
		snap.Players = append(snap.Players, PlayerSnapshot{
			ID:         p.ID,
			Guesses:    append([]GuessRecord(nil), p.Guesses...),
			Finished:   p.Finished,
			FinishedAt: p.FinishedAt,
			Solved:     p.Solved(),
		})
	}
	return snap
}

// HasPlayer reports whether playerID is seated in the session.
func (s *Session) HasPlayer(playerID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(playerID) != nil
}

// State returns the current session phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
