// internal/stats/store.go
//
// Persisted player statistics, updated when a match outcome resolves for a
// signed-in user.
//
// Semantics:
//   - totals (games, wins) accumulate per user.
//   - current streak increments on a win, resets to 0 on a loss.
//   - longest streak is the high-water mark of the current streak.
//   - updates are idempotent per calendar day: a second resolved match on
//     the same day for the same user is a no-op.
//
// Finished matches are also archived for history (INSERT OR IGNORE keyed by
// session id, so re-polling results never duplicates rows).

package stats

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// UserStats is the per-user aggregate row.
type UserStats struct {
	UserID        string `json:"userId"`
	TotalGames    int    `json:"totalGames"`
	TotalWins     int    `json:"totalWins"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
	LastGameDate  string `json:"lastGameDate"` // YYYY-MM-DD, UTC
}

// Store persists user statistics and the match archive in SQLite.
type Store struct {
	db *sql.DB
}

// New constructs a Store over an opened database.
func New(db *sql.DB) *Store { return &Store{db: db} }

// DayKey returns t as YYYY-MM-DD in UTC, the idempotence granularity.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// RecordOutcome applies one resolved match for uid on the given day.
// The first call of a day commits; repeats on the same day are no-ops.
func (s *Store) RecordOutcome(ctx context.Context, uid string, didWin bool, day string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var cur UserStats
	err = tx.QueryRowContext(ctx, `
        SELECT total_games, total_wins, current_streak, longest_streak, last_game_date
        FROM user_stats WHERE user_id=?`, uid,
	).Scan(&cur.TotalGames, &cur.TotalWins, &cur.CurrentStreak, &cur.LongestStreak, &cur.LastGameDate)

	switch {
	case err == sql.ErrNoRows:
		// First recorded game for this user.
		wins, streak := 0, 0
		if didWin {
			wins, streak = 1, 1
		}
		if _, err := tx.ExecContext(ctx, `
            INSERT INTO user_stats (user_id, total_games, total_wins, current_streak, longest_streak, last_game_date)
            VALUES (?,?,?,?,?,?)`, uid, 1, wins, streak, streak, day); err != nil {
			return fmt.Errorf("insert user stats: %w", err)
		}

	case err != nil:
		return fmt.Errorf("load user stats: %w", err)

	default:
		if cur.LastGameDate == day {
			// Already counted a game today.
			return tx.Commit()
		}
		cur.TotalGames++
		if didWin {
			cur.TotalWins++
			cur.CurrentStreak++
		} else {
			cur.CurrentStreak = 0
		}
		if cur.CurrentStreak > cur.LongestStreak {
			cur.LongestStreak = cur.CurrentStreak
		}
		if _, err := tx.ExecContext(ctx, `
            UPDATE user_stats
            SET total_games=?, total_wins=?, current_streak=?, longest_streak=?, last_game_date=?
            WHERE user_id=?`,
			cur.TotalGames, cur.TotalWins, cur.CurrentStreak, cur.LongestStreak, day, uid); err != nil {
			return fmt.Errorf("update user stats: %w", err)
		}
	}

	return tx.Commit()
}

// Get loads a user's aggregate stats. A user with no recorded games gets
// the zero row.
func (s *Store) Get(ctx context.Context, uid string) (UserStats, error) {
	st := UserStats{UserID: uid}
	err := s.db.QueryRowContext(ctx, `
        SELECT total_games, total_wins, current_streak, longest_streak, last_game_date
        FROM user_stats WHERE user_id=?`, uid,
	).Scan(&st.TotalGames, &st.TotalWins, &st.CurrentStreak, &st.LongestStreak, &st.LastGameDate)
	if err == sql.ErrNoRows {
		return st, nil
	}
	if err != nil {
		return st, err
	}
	return st, nil
}

// ArchiveMatch records one finished match. Keyed by session id, so calls
// repeated while clients poll results stay single rows.
func (s *Store) ArchiveMatch(ctx context.Context, sessionID, winnerID string, attempts int, elapsedSeconds float64) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO matches (session_id, winner_id, attempts, elapsed_s, finished_at)
        VALUES (?,?,?,?,?)`,
		sessionID, winnerID, attempts, elapsedSeconds, time.Now().UTC().Format(time.RFC3339))
	return err
}
