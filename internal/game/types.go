// internal/game/types.go
//
// Core type definitions for the duel game engine.
// Defines:
//   - Verdict: per-letter result of a guess (correct/present/absent).
//   - GuessRecord: one submitted word paired with its computed feedback.
//   - Player: one of the two slots in a session.
//   - State: session lifecycle phase.

package game

import "time"

// Verdict represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is correct and in the correct position.
//   - "present": letter exists in the answer but in a different position.
//   - "absent":  letter does not exist in the answer at all.
type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictPresent Verdict = "present"
	VerdictAbsent  Verdict = "absent"
)

const (
	// WordLength is the fixed length of secrets and guesses.
	WordLength = 5
	// MaxAttempts is each player's independent guess budget.
	MaxAttempts = 5
)

// State is the session lifecycle phase. Transitions are forward-only:
// waiting_for_opponent → in_progress → finished.
type State string

const (
	StateWaiting    State = "waiting_for_opponent"
	StateInProgress State = "in_progress"
	StateFinished   State = "finished"
)

// GuessRecord is one submitted guess and the feedback it earned.
type GuessRecord struct {
	Word     string    `json:"word"`
	Feedback []Verdict `json:"feedback"`
}

// Player holds one slot's state. Both players guess the same secret
// independently, each with their own attempt budget.
type Player struct {
	ID         string
	Guesses    []GuessRecord
	Finished   bool      // set once the player wins or exhausts attempts
	FinishedAt time.Time // zero until Finished
}

// Solved reports whether the player's most recent guess matched the secret.
func (p *Player) Solved() bool {
	if len(p.Guesses) == 0 {
		return false
	}
	return allCorrect(p.Guesses[len(p.Guesses)-1].Feedback)
}

// allCorrect returns true if every verdict is VerdictCorrect.
func allCorrect(fb []Verdict) bool {
	for _, v := range fb {
		if v != VerdictCorrect {
			return false
		}
	}
	return true
}
