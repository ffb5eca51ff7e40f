// Package leaderboard keeps the named top scores. A Service is either local
// (SQLite or a preference key) or remote (the HTTP API served by
// `line98 serve-leaderboard`).
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxNameLength is the longest accepted player name, in characters.
const MaxNameLength = 15

// DefaultSize is the number of entries shown and kept.
const DefaultSize = 5

var (
	// ErrInvalidName is returned for empty or overlong names.
	ErrInvalidName = errors.New("leaderboard: invalid name")

	// ErrSubmit wraps every other submission failure. Callers treat it as
	// recoverable and offer a retry.
	ErrSubmit = errors.New("leaderboard: submission failed")
)

// Entry is one leaderboard row. Timestamp is Unix milliseconds.
type Entry struct {
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Timestamp int64  `json:"timestamp"`
}

// NewEntry builds an entry stamped with at.
func NewEntry(name string, score int, at time.Time) Entry {
	return Entry{Name: name, Score: score, Timestamp: at.UnixMilli()}
}

// Time returns the entry timestamp.
func (e Entry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Service reads and updates a leaderboard.
type Service interface {
	// FetchTop returns up to n entries, score descending.
	FetchTop(ctx context.Context, n int) ([]Entry, error)

	// Submit records an entry and returns the updated top list.
	Submit(ctx context.Context, e Entry) ([]Entry, error)
}

// NormalizeName trims surrounding space and checks the length limit.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return "", fmt.Errorf("%w: %d characters, at most %d allowed", ErrInvalidName, n, MaxNameLength)
	}
	return name, nil
}

// Validate normalizes the entry name and rejects negative scores.
func Validate(e Entry) (Entry, error) {
	name, err := NormalizeName(e.Name)
	if err != nil {
		return Entry{}, err
	}
	if e.Score < 0 {
		return Entry{}, fmt.Errorf("%w: negative score %d", ErrSubmit, e.Score)
	}
	e.Name = name
	return e, nil
}

// Rank sorts entries score descending, earlier timestamps first on ties,
// and truncates to n.
func Rank(entries []Entry, n int) []Entry {
	out := append([]Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Timestamp < out[j].Timestamp
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
