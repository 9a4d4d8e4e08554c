// internal/duel/service.go
//
// Orchestration layer for the duel boundary operations: start, join, guess,
// results. Composes the session registry, the feedback engine, and the result
// calculator; owns input validation so invalid requests never touch session
// state. Transport-agnostic: the HTTP layer is a thin wrapper over this.

package duel

import (
	"errors"
	"strings"
	"time"

	"github.com/wordduel/go-server/internal/game"
	"github.com/wordduel/go-server/internal/registry"
	"github.com/wordduel/go-server/internal/results"
)

// Dictionary decides whether a word is an acceptable guess. It is a
// pluggable predicate; rejection is a validation error, not an engine
// concern. A nil Dictionary accepts every well-formed word.
type Dictionary func(word string) bool

// Validation sentinels. Engine and registry errors pass through unchanged.
var (
	ErrInvalidGuess    = errors.New("guess must be exactly 5 letters a-z")
	ErrNotInDictionary = errors.New("word not in dictionary")
)

// Service exposes the boundary operations of the game engine.
type Service struct {
	reg  *registry.Registry
	dict Dictionary
	now  func() time.Time
}

// NewService wires the orchestrator. now may be nil (defaults to time.Now).
func NewService(reg *registry.Registry, dict Dictionary, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{reg: reg, dict: dict, now: now}
}

// StartResult is returned by Start: the join code to share plus the
// creator's player identity.
type StartResult struct {
	SessionID string
	PlayerID  string
}

// Start creates a new session with a fresh secret word; the caller becomes
// player one.
func (s *Service) Start() StartResult {
	sess, playerID := s.reg.Create()
	return StartResult{SessionID: sess.ID(), PlayerID: playerID}
}

// Join seats the caller as player two.
// Errors: registry.ErrSessionNotFound, game.ErrSessionFull, game.ErrAlreadyJoined.
func (s *Service) Join(sessionID string) (playerID string, err error) {
	return s.reg.Join(sessionID)
}

// GuessResult is returned by Guess.
type GuessResult struct {
	Feedback    []game.Verdict
	GameOver    bool   // this player is finished (won or out of attempts)
	CorrectWord string // revealed only once the whole session is finished
}

// Guess validates and scores one guess for a player.
//
// Validation happens before any lookup or mutation: the word is trimmed and
// lowercased, must be exactly five a–z letters, and must pass the dictionary
// predicate. A rejected guess leaves all state untouched.
func (s *Service) Guess(sessionID, playerID, word string) (GuessResult, error) {
	word = strings.ToLower(strings.TrimSpace(word))
	if len(word) != game.WordLength || !isLowerAlpha(word) {
		return GuessResult{}, ErrInvalidGuess
	}
	if s.dict != nil && !s.dict(word) {
		return GuessResult{}, ErrNotInDictionary
	}

	sess, err := s.reg.Get(sessionID)
	if err != nil {
		return GuessResult{}, err
	}
	out, err := sess.RecordGuess(playerID, word, s.now())
	if err != nil {
		return GuessResult{}, err
	}
	return GuessResult{
		Feedback:    out.Feedback,
		GameOver:    out.PlayerFinished,
		CorrectWord: out.Secret,
	}, nil
}

// Results evaluates the match outcome for a seated player. Safe to poll:
// it never mutates session state.
func (s *Service) Results(sessionID, playerID string) (results.Outcome, error) {
	sess, err := s.reg.Get(sessionID)
	if err != nil {
		return results.Outcome{}, err
	}
	if !sess.HasPlayer(playerID) {
		return results.Outcome{}, game.ErrUnknownPlayer
	}
	return results.Evaluate(sess.Snapshot()), nil
}

// isLowerAlpha reports whether s is all lowercase ASCII letters.
func isLowerAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
