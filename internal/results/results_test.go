package results

import (
	"testing"
	"time"

	"github.com/wordduel/go-server/internal/game"
)

func guesses(n int) []game.GuessRecord {
	out := make([]game.GuessRecord, n)
	for i := range out {
		out[i] = game.GuessRecord{Word: "slate"}
	}
	return out
}

func snapshot(state game.State, players ...game.PlayerSnapshot) game.Snapshot {
	return game.Snapshot{
		ID:        "s1",
		Secret:    "crane",
		State:     state,
		CreatedAt: time.Unix(1000, 0),
		Players:   players,
	}
}

func TestEvaluate(t *testing.T) {
	at := func(sec int64) time.Time { return time.Unix(sec, 0) }

	cases := []struct {
		name string
		snap game.Snapshot
		want Outcome
	}{
		{
			name: "pending while session unfinished",
			snap: snapshot(game.StateInProgress,
				game.PlayerSnapshot{ID: "a", Guesses: guesses(5), Finished: true, FinishedAt: at(1100)},
				game.PlayerSnapshot{ID: "b", Guesses: guesses(2)},
			),
			want: Outcome{Kind: KindPending},
		},
		{
			name: "fewer attempts wins",
			snap: snapshot(game.StateFinished,
				game.PlayerSnapshot{ID: "a", Guesses: guesses(3), Finished: true, FinishedAt: at(1200), Solved: true},
				game.PlayerSnapshot{ID: "b", Guesses: guesses(4), Finished: true, FinishedAt: at(1100), Solved: true},
			),
			want: Outcome{Kind: KindWinner, WinnerID: "a", Attempts: 3, ElapsedSeconds: 200},
		},
		{
			name: "equal attempts earlier finish wins",
			snap: snapshot(game.StateFinished,
				game.PlayerSnapshot{ID: "a", Guesses: guesses(3), Finished: true, FinishedAt: at(1100), Solved: true},
				game.PlayerSnapshot{ID: "b", Guesses: guesses(3), Finished: true, FinishedAt: at(1150), Solved: true},
			),
			want: Outcome{Kind: KindWinner, WinnerID: "a", Attempts: 3, ElapsedSeconds: 100},
		},
		{
			name: "only solver wins even with more attempts",
			snap: snapshot(game.StateFinished,
				game.PlayerSnapshot{ID: "a", Guesses: guesses(5), Finished: true, FinishedAt: at(1100)},
				game.PlayerSnapshot{ID: "b", Guesses: guesses(5), Finished: true, FinishedAt: at(1300), Solved: true},
			),
			want: Outcome{Kind: KindWinner, WinnerID: "b", Attempts: 5, ElapsedSeconds: 300},
		},
		{
			name: "neither solved is a draw",
			snap: snapshot(game.StateFinished,
				game.PlayerSnapshot{ID: "a", Guesses: guesses(5), Finished: true, FinishedAt: at(1100)},
				game.PlayerSnapshot{ID: "b", Guesses: guesses(5), Finished: true, FinishedAt: at(1200)},
			),
			want: Outcome{Kind: KindDraw},
		},
		{
			name: "identical attempts and timestamps is a draw",
			snap: snapshot(game.StateFinished,
				game.PlayerSnapshot{ID: "a", Guesses: guesses(3), Finished: true, FinishedAt: at(1100), Solved: true},
				game.PlayerSnapshot{ID: "b", Guesses: guesses(3), Finished: true, FinishedAt: at(1100), Solved: true},
			),
			want: Outcome{Kind: KindDraw},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Evaluate(tc.snap)
			if got != tc.want {
				t.Errorf("Evaluate() = %+v, want %+v", got, tc.want)
			}
		})
	}
}
