package game

import (
	"errors"
	"testing"
	"time"
)

func newTestSession() *Session {
	return NewSession("s1", "crane", "p1", time.Unix(1000, 0))
}

func TestJoinCapacity(t *testing.T) {
	s := newTestSession()

	if err := s.Join("p2"); err != nil {
		t.Fatalf("second join failed: %v", err)
	}
	if got := s.State(); got != StateInProgress {
		t.Fatalf("state after second join = %s, want %s", got, StateInProgress)
	}
	if err := s.Join("p3"); !errors.Is(err, ErrSessionFull) {
		t.Fatalf("third join: got %v, want ErrSessionFull", err)
	}
	if err := s.Join("p1"); !errors.Is(err, ErrAlreadyJoined) {
		t.Fatalf("repeat join: got %v, want ErrAlreadyJoined", err)
	}
}

func TestRecordGuessUnknownPlayer(t *testing.T) {
	s := newTestSession()
	if _, err := s.RecordGuess("ghost", "crane", time.Now()); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("got %v, want ErrUnknownPlayer", err)
	}
}

func TestWinningGuessFinishesPlayerOnly(t *testing.T) {
	s := newTestSession()
	if err := s.Join("p2"); err != nil {
		t.Fatal(err)
	}

	out, err := s.RecordGuess("p1", "crane", time.Unix(1010, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !out.PlayerFinished {
		t.Error("winning guess should finish the player")
	}
	if out.SessionOver {
		t.Error("one winner must not end the session while p2 is still playing")
	}
	if out.Secret != "" {
		t.Error("secret must not be revealed before the session is over")
	}
	if got := s.State(); got != StateInProgress {
		t.Errorf("state = %s, want %s", got, StateInProgress)
	}

	// A finished player may not guess again.
	if _, err := s.RecordGuess("p1", "slate", time.Now()); !errors.Is(err, ErrPlayerFinished) {
		t.Errorf("got %v, want ErrPlayerFinished", err)
	}

	// The opponent keeps playing against their own budget.
	if _, err := s.RecordGuess("p2", "slate", time.Unix(1020, 0)); err != nil {
		t.Fatalf("p2 guess after p1 won: %v", err)
	}
}

func TestAttemptBudgetExhaustion(t *testing.T) {
	s := newTestSession()
	if err := s.Join("p2"); err != nil {
		t.Fatal(err)
	}

	var out GuessOutcome
	var err error
	for i := 0; i < MaxAttempts; i++ {
		out, err = s.RecordGuess("p1", "slate", time.Unix(int64(1000+i), 0))
		if err != nil {
			t.Fatalf("guess %d: %v", i+1, err)
		}
	}
	if !out.PlayerFinished {
		t.Error("fifth wrong guess should finish the player")
	}

	// The sixth attempt is rejected and the history stays capped.
	if _, err := s.RecordGuess("p1", "slate", time.Now()); !errors.Is(err, ErrPlayerFinished) {
		t.Errorf("sixth guess: got %v, want ErrPlayerFinished", err)
	}
	snap := s.Snapshot()
	if n := len(snap.Players[0].Guesses); n != MaxAttempts {
		t.Errorf("history length = %d, want %d", n, MaxAttempts)
	}
	if snap.Players[0].Solved {
		t.Error("exhausted player must not count as solved")
	}
}

func TestSessionFinishesWhenBothPlayersDone(t *testing.T) {
	s := newTestSession()
	if err := s.Join("p2"); err != nil {
		t.Fatal(err)
	}

	if _, err := s.RecordGuess("p1", "crane", time.Unix(1010, 0)); err != nil {
		t.Fatal(err)
	}
	out, err := s.RecordGuess("p2", "crane", time.Unix(1020, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !out.SessionOver {
		t.Error("both players done should end the session")
	}
	if out.Secret != "crane" {
		t.Errorf("secret reveal = %q, want %q", out.Secret, "crane")
	}
	if got := s.State(); got != StateFinished {
		t.Errorf("state = %s, want %s", got, StateFinished)
	}
}

// A lone player finishing keeps the session open: the match is only decided
// once both seats are taken and both players are done.
func TestSoloFinishDoesNotEndSession(t *testing.T) {
	s := newTestSession()
	out, err := s.RecordGuess("p1", "crane", time.Unix(1010, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !out.PlayerFinished {
		t.Error("solo player should be personally finished")
	}
	if out.SessionOver {
		t.Error("session must stay open for a second player")
	}
	if got := s.State(); got != StateWaiting {
		t.Errorf("state = %s, want %s", got, StateWaiting)
	}
	if err := s.Join("p2"); err != nil {
		t.Fatalf("join after solo finish: %v", err)
	}
}

func TestFinishedAtRecorded(t *testing.T) {
	s := newTestSession()
	if err := s.Join("p2"); err != nil {
		t.Fatal(err)
	}
	at := time.Unix(1234, 0)
	if _, err := s.RecordGuess("p1", "crane", at); err != nil {
		t.Fatal(err)
	}
	snap := s.Snapshot()
	if !snap.Players[0].FinishedAt.Equal(at) {
		t.Errorf("FinishedAt = %v, want %v", snap.Players[0].FinishedAt, at)
	}
	if !snap.Players[1].FinishedAt.IsZero() {
		t.Errorf("unfinished player FinishedAt = %v, want zero", snap.Players[1].FinishedAt)
	}
}
