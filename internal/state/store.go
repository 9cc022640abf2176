package state

import (
	"fmt"
	"sync"
	"time"

	"stacks/internal/library"
)

// Snapshot represents the latest catalog data available to the UI.
type Snapshot struct {
	Books       []library.Book
	Held        map[int64]bool // book ID -> borrowed by the current user
	HasBooks    bool
	LastUpdated time.Time
	LastError   error
}

// Store coordinates concurrent updates to the snapshot. The book list is
// always wholesale-replaced, never patched entry by entry, so a reload can
// never leave a half-applied mutation visible.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data
// is kept but the error is recorded for visibility.
func (s *Store) Update(books []library.Book, held map[int64]bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		return
	}

	s.snapshot.Books = cloneBooks(books)
	s.snapshot.Held = cloneHeld(held)
	s.snapshot.HasBooks = true
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Books = cloneBooks(s.snapshot.Books)
	snap.Held = cloneHeld(s.snapshot.Held)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneBooks(books []library.Book) []library.Book {
	if len(books) == 0 {
		return nil
	}
	dup := make([]library.Book, len(books))
	copy(dup, books)
	return dup
}

func cloneHeld(held map[int64]bool) map[int64]bool {
	if len(held) == 0 {
		return nil
	}
	dup := make(map[int64]bool, len(held))
	for id, v := range held {
		dup[id] = v
	}
	return dup
}
