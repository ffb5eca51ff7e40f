package leaderboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/vovakirdan/line98/internal/core"
	"github.com/vovakirdan/line98/internal/storage"
)

// Local is a Service backed by the SQLite leaderboard table.
type Local struct {
	store *storage.Store
	size  int
}

// NewLocal creates a SQLite-backed leaderboard keeping size entries.
func NewLocal(store *storage.Store, size int) *Local {
	if size <= 0 {
		size = DefaultSize
	}
	return &Local{store: store, size: size}
}

// FetchTop implements Service.
func (l *Local) FetchTop(_ context.Context, n int) ([]Entry, error) {
	if n <= 0 || n > l.size {
		n = l.size
	}
	rows, err := l.store.TopLeaderboard(n)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: fetch: %w", err)
	}

	entries := make([]Entry, 0, len(rows))
	for _, r := range rows {
		entries = append(entries, NewEntry(r.Name, r.Score, r.CreatedAt))
	}
	return entries, nil
}

// Submit implements Service.
func (l *Local) Submit(ctx context.Context, e Entry) ([]Entry, error) {
	e, err := Validate(e)
	if err != nil {
		return nil, err
	}

	if _, err := l.store.AddLeaderboardEntry(e.Name, e.Score, e.Time()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	if err := l.store.TrimLeaderboard(l.size); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	return l.FetchTop(ctx, l.size)
}

// StoreKey is the preference key used by KV.
const StoreKey = "line98-leaderboard"

// KV is a Service that keeps the whole list as JSON under one preference
// key. It is the fallback when no database is available.
type KV struct {
	mu    sync.Mutex
	store core.PersistenceStore
	size  int
}

// NewKV creates a preference-backed leaderboard keeping size entries.
func NewKV(store core.PersistenceStore, size int) *KV {
	if size <= 0 {
		size = DefaultSize
	}
	return &KV{store: store, size: size}
}

// load reads the stored list. Missing or malformed data reads as empty.
func (k *KV) load() []Entry {
	raw, ok, err := k.store.GetValue(StoreKey)
	if err != nil || !ok {
		return nil
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil
	}
	return entries
}

// FetchTop implements Service.
func (k *KV) FetchTop(_ context.Context, n int) ([]Entry, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if n <= 0 || n > k.size {
		n = k.size
	}
	return Rank(k.load(), n), nil
}

// Submit implements Service.
func (k *KV) Submit(_ context.Context, e Entry) ([]Entry, error) {
	e, err := Validate(e)
	if err != nil {
		return nil, err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	board := Rank(append(k.load(), e), k.size)
	data, err := json.Marshal(board)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	if err := k.store.SetValue(StoreKey, string(data)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	return board, nil
}

var (
	_ Service = (*Local)(nil)
	_ Service = (*KV)(nil)
)
