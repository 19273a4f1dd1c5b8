package store

import (
	"log/slog"

	"github.com/user/bmark/internal/logging"
)

var log = logging.For("store")

// Store is an in-memory, append-only list of bookmarks that is safe for
// concurrent use. Readers only ever receive copies.
type Store struct {
	guard guard
	items []string
}

// New returns an empty store.
func New() *Store {
	return &Store{items: make([]string, 0)}
}

// NewWithSeed returns a store that already holds seed, in order.
func NewWithSeed(seed []string) *Store {
	items := make([]string, len(seed))
	copy(items, seed)
	return &Store{items: items}
}

// Append adds item to the end of the list.
func (s *Store) Append(item string) error {
	var n int
	err := s.guard.with(func() {
		s.items = append(s.items, item)
		n = len(s.items)
	})
	if err != nil {
		log.Error("append failed", slog.Any("error", err))
		return &LockError{Op: "append", Err: err}
	}
	log.Debug("bookmark appended", slog.Int("count", n))
	return nil
}

// Snapshot returns a point-in-time copy of every bookmark, oldest first.
func (s *Store) Snapshot() ([]string, error) {
	var out []string
	err := s.guard.with(func() {
		out = make([]string, len(s.items))
		copy(out, s.items)
	})
	if err != nil {
		log.Error("snapshot failed", slog.Any("error", err))
		return nil, &LockError{Op: "snapshot", Err: err}
	}
	return out, nil
}

// Len returns the number of bookmarks held.
func (s *Store) Len() (int, error) {
	var n int
	err := s.guard.with(func() {
		n = len(s.items)
	})
	if err != nil {
		return 0, &LockError{Op: "len", Err: err}
	}
	return n, nil
}

// Poisoned reports whether the store's lock has been poisoned.
func (s *Store) Poisoned() bool {
	return s.guard.isPoisoned()
}
