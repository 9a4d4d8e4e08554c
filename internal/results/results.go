// internal/results/results.go
//
// Winner determination for a finished match.
// Works off game.Snapshot values so evaluation never touches live session
// locks. Tie-break order: fewer attempts wins; equal attempts, earlier
// finish wins; equal on both, the match is a draw.

package results

import (
	"time"

	"github.com/wordduel/go-server/internal/game"
)

// Kind discriminates the possible outcomes of a match.
type Kind string

const (
	KindPending Kind = "pending" // not both players finished yet
	KindWinner  Kind = "winner"
	KindDraw    Kind = "draw"
)

// Outcome is the resolved result of a match.
type Outcome struct {
	Kind           Kind
	WinnerID       string
	Attempts       int
	ElapsedSeconds float64 // winner's FinishedAt minus session CreatedAt
}

// Evaluate determines the outcome for a session snapshot.
//
// Pending until the session itself is finished. Among finished sessions,
// only players whose final guess solved the word are candidates; none means
// a draw, one means a winner, two are ordered by (attempts, finishedAt)
// with an exact tie declared a draw.
func Evaluate(snap game.Snapshot) Outcome {
	if snap.State != game.StateFinished {
		return Outcome{Kind: KindPending}
	}

	var solvers []game.PlayerSnapshot
	for _, p := range snap.Players {
		if p.Solved {
			solvers = append(solvers, p)
		}
	}

	switch len(solvers) {
	case 0:
		return Outcome{Kind: KindDraw}
	case 1:
		return winner(solvers[0], snap.CreatedAt)
	}

	a, b := solvers[0], solvers[1]
	switch {
	case len(a.Guesses) < len(b.Guesses):
		return winner(a, snap.CreatedAt)
	case len(b.Guesses) < len(a.Guesses):
		return winner(b, snap.CreatedAt)
	case a.FinishedAt.Before(b.FinishedAt):
		return winner(a, snap.CreatedAt)
	case b.FinishedAt.Before(a.FinishedAt):
		return winner(b, snap.CreatedAt)
	}
	// Same attempts, indistinguishable completion order.
	return Outcome{Kind: KindDraw}
}

func winner(p game.PlayerSnapshot, createdAt time.Time) Outcome {
	return Outcome{
		Kind:           KindWinner,
		WinnerID:       p.ID,
		Attempts:       len(p.Guesses),
		ElapsedSeconds: p.FinishedAt.Sub(createdAt).Seconds(),
	}
}
