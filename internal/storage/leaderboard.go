package storage

import (
	"fmt"
	"time"
)

// LeaderboardEntry is a named score on the local leaderboard.
type LeaderboardEntry struct {
	ID        int64
	Name      string
	Score     int
	CreatedAt time.Time
}

// AddLeaderboardEntry inserts a named score.
func (s *Store) AddLeaderboardEntry(name string, score int, at time.Time) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO leaderboard (name, score, created_at_ms) VALUES (?, ?, ?)",
		name, score, at.UnixMilli(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save leaderboard entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopLeaderboard returns the best entries, score descending. Equal scores
// keep submission order.
func (s *Store) TopLeaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := s.db.Query(
		`SELECT id, name, score, created_at_ms
		 FROM leaderboard
		 ORDER BY score DESC, created_at_ms ASC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	for rows.Next() {
		var e LeaderboardEntry
		var ms int64
		if err := rows.Scan(&e.ID, &e.Name, &e.Score, &ms); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = time.UnixMilli(ms).UTC()
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// TrimLeaderboard deletes everything below the best keep entries.
func (s *Store) TrimLeaderboard(keep int) error {
	_, err := s.db.Exec(
		`DELETE FROM leaderboard WHERE id NOT IN (
			SELECT id FROM leaderboard
			ORDER BY score DESC, created_at_ms ASC, id ASC
			LIMIT ?
		)`,
		keep,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot trim leaderboard: %w", err)
	}
	return nil
}
