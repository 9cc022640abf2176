package library

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// BorrowChecker is the subset of Catalog needed to resolve who holds a book.
type BorrowChecker interface {
	HasBorrowed(ctx context.Context, id int64) (bool, error)
}

// BorrowedByUser asks the server, for every borrowed book in the list, whether
// the current user is the borrower. The checks run concurrently and the result
// is only produced once all of them settle. A failed check counts as "not
// borrowed by the user" rather than failing the whole lookup, so a flaky
// endpoint degrades a card to Unavailable instead of blanking the grid.
func BorrowedByUser(ctx context.Context, checker BorrowChecker, books []Book) map[int64]bool {
	results := make([]bool, len(books))
	g, ctx := errgroup.WithContext(ctx)
	for i, b := range books {
		if !b.IsBorrowed {
			continue
		}
		i, b := i, b
		g.Go(func() error {
			held, err := checker.HasBorrowed(ctx, b.ID)
			if err != nil {
				return nil
			}
			results[i] = held
			return nil
		})
	}
	_ = g.Wait()

	held := make(map[int64]bool, len(books))
	for i, b := range books {
		if results[i] {
			held[b.ID] = true
		}
	}
	return held
}
