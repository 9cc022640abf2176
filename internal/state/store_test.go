package state

import (
	"errors"
	"testing"
	"time"

	"stacks/internal/library"
)

func TestStore_UpdateAndSnapshotClone(t *testing.T) {
	var s Store

	books := []library.Book{{ID: 1, Title: "Dune"}, {ID: 2, Title: "Hyperion", IsBorrowed: true}}
	held := map[int64]bool{2: true}

	before := time.Now()
	s.Update(books, held, nil)

	snap := s.Snapshot()
	if !snap.HasBooks {
		t.Fatalf("HasBooks = false, want true")
	}
	if len(snap.Books) != 2 || snap.Books[0].ID != 1 {
		t.Fatalf("snapshot books = %#v, want 2 books", snap.Books)
	}
	if !snap.Held[2] {
		t.Fatalf("Held[2] = false, want true")
	}
	if snap.LastUpdated.Before(before) {
		t.Fatalf("LastUpdated = %v, want >= %v", snap.LastUpdated, before)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}

	// Returned snapshot should be independent of the stored one.
	snap.Books[0].ID = 999
	snap.Held[1] = true
	snap2 := s.Snapshot()
	if snap2.Books[0].ID != 1 {
		t.Fatalf("Snapshot should clone books; got id %d want 1", snap2.Books[0].ID)
	}
	if snap2.Held[1] {
		t.Fatalf("Snapshot should clone held map")
	}
}

func TestStore_UpdateErrorKeepsPreviousData(t *testing.T) {
	var s Store

	s.Update([]library.Book{{ID: 1}}, nil, nil)

	origErr := errors.New("boom")
	s.Update(nil, nil, origErr)

	snap := s.Snapshot()
	if len(snap.Books) != 1 || snap.Books[0].ID != 1 {
		t.Fatalf("books after failed update = %#v, want previous data kept", snap.Books)
	}
	if snap.LastError == nil || !errors.Is(snap.LastError, origErr) {
		t.Fatalf("LastError = %v, want wrapped %v", snap.LastError, origErr)
	}
}

func TestStore_UpdateReplacesWholesale(t *testing.T) {
	var s Store

	s.Update([]library.Book{{ID: 1}, {ID: 2}}, map[int64]bool{2: true}, nil)
	s.Update([]library.Book{{ID: 3}}, nil, nil)

	snap := s.Snapshot()
	if len(snap.Books) != 1 || snap.Books[0].ID != 3 {
		t.Fatalf("books = %#v, want only the new list", snap.Books)
	}
	if len(snap.Held) != 0 {
		t.Fatalf("held = %#v, want reset with the new list", snap.Held)
	}
}
