package ui

import (
	"context"
	"errors"
	"testing"

	"stacks/internal/library"
	"stacks/internal/session"
	"stacks/internal/state"
)

// fakeCatalog implements library.Catalog and records what the UI asked for.
type fakeCatalog struct {
	books       []library.Book
	held        map[int64]bool
	searchBooks []library.Book

	listErr   error
	loginRole string
	loginErr  error

	listCalls     int
	searchCalls   int
	lastQuery     string
	borrowCalls   int
	returnCalls   int
	deleteCalls   int
	lastDeletedID int64
	saveCalls     int
	lastDraft     library.BookDraft
	logoutCalls   int
}

func (f *fakeCatalog) Login(ctx context.Context, creds library.Credentials) (string, error) {
	return f.loginRole, f.loginErr
}

func (f *fakeCatalog) Register(ctx context.Context, creds library.Credentials) error {
	return nil
}

func (f *fakeCatalog) Logout(ctx context.Context) error {
	f.logoutCalls++
	return nil
}

func (f *fakeCatalog) ListBooks(ctx context.Context) ([]library.Book, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.books, nil
}

func (f *fakeCatalog) SearchBooks(ctx context.Context, query string) ([]library.Book, error) {
	f.searchCalls++
	f.lastQuery = query
	return f.searchBooks, nil
}

func (f *fakeCatalog) SaveBook(ctx context.Context, draft library.BookDraft) error {
	f.saveCalls++
	f.lastDraft = draft
	return nil
}

func (f *fakeCatalog) BorrowBook(ctx context.Context, id int64) error {
	f.borrowCalls++
	return nil
}

func (f *fakeCatalog) ReturnBook(ctx context.Context, id int64) error {
	f.returnCalls++
	return nil
}

func (f *fakeCatalog) DeleteBook(ctx context.Context, id int64) error {
	f.deleteCalls++
	f.lastDeletedID = id
	return nil
}

func (f *fakeCatalog) HasBorrowed(ctx context.Context, id int64) (bool, error) {
	return f.held[id], nil
}

var _ library.Catalog = (*fakeCatalog)(nil)

func TestMutationSuccessTriggersFullReload(t *testing.T) {
	fake := &fakeCatalog{books: []library.Book{{ID: 1, Title: "Dune"}}}
	m := newTestModel(t, fake, session.Session{Role: "Member"})

	m, cmd := runUpdate(t, m, mutationMsg{kind: mutationBorrow})
	if cmd == nil {
		t.Fatalf("successful mutation produced no reload command")
	}
	if len(m.toasts) == 0 || m.toasts[0].message != "Success!" {
		t.Fatalf("missing success toast: %v", m.toasts)
	}

	msg := cmd()
	if fake.listCalls != 1 {
		t.Fatalf("list calls = %d, want 1 reload", fake.listCalls)
	}
	snap, ok := msg.(snapshotMsg)
	if !ok {
		t.Fatalf("reload produced %T, want snapshotMsg", msg)
	}
	m, _ = runUpdate(t, m, snap)
	if len(m.snapshot.Books) != 1 || m.snapshot.Books[0].Title != "Dune" {
		t.Fatalf("snapshot not replaced: %+v", m.snapshot)
	}
}

func TestMutationFailureKeepsFormOpenForCorrection(t *testing.T) {
	fake := &fakeCatalog{}
	m := newTestModel(t, fake, session.Session{Role: "Admin"})
	m.overlay = OverlayForm
	m.form = newFormState(nil)
	m.form.busy = true

	statusErr := &library.StatusError{StatusCode: 400, Body: "title taken"}
	m, cmd := runUpdate(t, m, mutationMsg{kind: mutationSave, err: statusErr})

	if cmd != nil {
		t.Fatalf("failed save triggered a reload")
	}
	if m.overlay != OverlayForm {
		t.Fatalf("overlay = %v after failed save, want form kept open", m.overlay)
	}
	if m.form.busy {
		t.Fatalf("form still busy after failure, submit would stay disabled")
	}
	if len(m.toasts) == 0 || m.toasts[0].level != toastError {
		t.Fatalf("missing error toast: %v", m.toasts)
	}
}

func TestFailedDeleteDropsConfirmTarget(t *testing.T) {
	fake := &fakeCatalog{}
	m := newTestModel(t, fake, session.Session{Role: "Admin"})
	book := library.Book{ID: 7, Title: "Dune"}
	m.confirmBook = &book

	statusErr := &library.StatusError{StatusCode: 500, Body: "nope"}
	m, cmd := runUpdate(t, m, mutationMsg{kind: mutationDelete, err: statusErr})

	if cmd != nil {
		t.Fatalf("failed delete triggered a reload")
	}
	if m.confirmBook != nil {
		t.Fatalf("confirmBook = %+v after failed delete, want cleared", m.confirmBook)
	}
	if len(m.toasts) == 0 || m.toasts[0].message != "Could not delete." {
		t.Fatalf("toast = %v, want delete failure message", m.toasts)
	}
}

func TestStaleSearchResultIsDiscarded(t *testing.T) {
	fake := &fakeCatalog{}
	m := newTestModel(t, fake, session.Session{Role: "Member"})
	m.snapshot = state.Snapshot{
		Books:    []library.Book{{ID: 1, Title: "Dune"}, {ID: 2, Title: "Hyperion"}},
		HasBooks: true,
	}
	m.activeQuery = "hyperion"

	// A response for a query that has since been replaced must not land.
	stale := searchResultMsg{query: "dune", books: []library.Book{{ID: 1, Title: "Dune"}}}
	m, _ = runUpdate(t, m, stale)
	if m.results != nil {
		t.Fatalf("stale results applied: %v", m.results)
	}

	// Neither must a stale error clobber the grid.
	m, _ = runUpdate(t, m, searchResultMsg{query: "dune", err: errors.New("boom")})
	if m.loadErr != "" {
		t.Fatalf("stale search error applied: %q", m.loadErr)
	}

	// The response matching the active query lands normally.
	current := searchResultMsg{query: "hyperion", books: []library.Book{{ID: 2, Title: "Hyperion"}}}
	m, _ = runUpdate(t, m, current)
	if len(m.results) != 1 || m.results[0].Title != "Hyperion" {
		t.Fatalf("current results not applied: %v", m.results)
	}
}

func TestMutationTransportFailureShowsNetworkToast(t *testing.T) {
	fake := &fakeCatalog{}
	m := newTestModel(t, fake, session.Session{Role: "Member"})

	m, _ = runUpdate(t, m, mutationMsg{kind: mutationBorrow, err: errors.New("dial tcp: refused")})
	if len(m.toasts) == 0 || m.toasts[0].message != "Network error." {
		t.Fatalf("toast = %v, want network error", m.toasts)
	}
}

func TestMutationUnauthorizedReturnsToLogin(t *testing.T) {
	fake := &fakeCatalog{}
	m := newTestModel(t, fake, session.Session{Role: "Member"})

	err := &library.StatusError{StatusCode: 401}
	m, _ = runUpdate(t, m, mutationMsg{kind: mutationBorrow, err: err})
	if m.currentView != ViewLogin {
		t.Fatalf("currentView = %v after 401, want ViewLogin", m.currentView)
	}
}

func TestFailedLoginRestoresSubmitControl(t *testing.T) {
	fake := &fakeCatalog{}
	m := newTestModel(t, fake, session.Session{})
	m.auth.busy = true

	m, cmd := runUpdate(t, m, loginResultMsg{err: &library.StatusError{StatusCode: 401, Body: "bad"}})
	if cmd != nil {
		t.Fatalf("failed login produced a command")
	}
	if m.auth.busy {
		t.Fatalf("auth still busy after failure, submit would stay disabled")
	}
	if len(m.toasts) == 0 || m.toasts[0].message != "Invalid email or password." {
		t.Fatalf("toast = %v, want invalid-credentials message", m.toasts)
	}
}

func TestFailedLoginTransportErrorShowsNetworkToast(t *testing.T) {
	fake := &fakeCatalog{}
	m := newTestModel(t, fake, session.Session{})
	m.auth.busy = true

	m, _ = runUpdate(t, m, loginResultMsg{err: errors.New("connection refused")})
	if m.auth.busy {
		t.Fatalf("auth still busy after transport failure")
	}
	if len(m.toasts) == 0 || m.toasts[0].message != "Network error occurred." {
		t.Fatalf("toast = %v, want network error message", m.toasts)
	}
}

func TestSuccessfulLoginPersistsRoleAndNavigates(t *testing.T) {
	fake := &fakeCatalog{}
	m := newTestModel(t, fake, session.Session{})

	m, cmd := runUpdate(t, m, loginResultMsg{role: "Admin"})
	if cmd == nil {
		t.Fatalf("successful login produced no navigation command")
	}
	if m.sess.Role != "Admin" {
		t.Fatalf("sess.Role = %q, want Admin", m.sess.Role)
	}
	if got := session.Load(m.sessionPath); got.Role != "Admin" {
		t.Fatalf("persisted role = %q, want Admin", got.Role)
	}
	if len(m.toasts) == 0 || m.toasts[0].message != "Welcome back!" {
		t.Fatalf("toast = %v, want welcome message", m.toasts)
	}
}

func TestRegisterFailureSurfacesServerMessage(t *testing.T) {
	fake := &fakeCatalog{}
	m := newTestModel(t, fake, session.Session{})
	m.currentView = ViewRegister
	m.auth.busy = true

	err := &library.StatusError{StatusCode: 409, Body: "Email already in use"}
	m, _ = runUpdate(t, m, registerResultMsg{err: err})
	if m.auth.busy {
		t.Fatalf("auth still busy after register failure")
	}
	if len(m.toasts) == 0 || m.toasts[0].message != "Failed: Email already in use" {
		t.Fatalf("toast = %v, want server message", m.toasts)
	}
}

func TestEnterCatalogRefreshesList(t *testing.T) {
	fake := &fakeCatalog{books: []library.Book{{ID: 1}}}
	m := newTestModel(t, fake, session.Session{})

	m, cmd := runUpdate(t, m, enterCatalogMsg{})
	if m.currentView != ViewCatalog {
		t.Fatalf("currentView = %v, want ViewCatalog", m.currentView)
	}
	if cmd == nil {
		t.Fatalf("entering the catalog produced no refresh command")
	}
	cmd()
	if fake.listCalls != 1 {
		t.Fatalf("list calls = %d, want 1", fake.listCalls)
	}
}

func TestLogoutClearsLocalState(t *testing.T) {
	fake := &fakeCatalog{}
	m := newTestModel(t, fake, session.Session{Role: "Member"})
	m.snapshot = state.Snapshot{Books: []library.Book{{ID: 1}}, HasBooks: true}

	m, cmd := runUpdate(t, m, keyRune('l'))
	if cmd == nil {
		t.Fatalf("logout produced no command")
	}
	msg := cmd()
	if fake.logoutCalls != 1 {
		t.Fatalf("logout calls = %d, want 1", fake.logoutCalls)
	}

	m, _ = runUpdate(t, m, msg)
	if m.currentView != ViewLogin {
		t.Fatalf("currentView = %v after logout, want ViewLogin", m.currentView)
	}
	if m.sess.Authenticated() {
		t.Fatalf("session still authenticated after logout")
	}
	if len(m.snapshot.Books) != 0 {
		t.Fatalf("catalog state survived logout: %+v", m.snapshot)
	}
}

func TestIsTransportError(t *testing.T) {
	if isTransportError(&library.StatusError{StatusCode: 500}) {
		t.Fatalf("StatusError classified as transport error")
	}
	if !isTransportError(errors.New("dial tcp: refused")) {
		t.Fatalf("plain error not classified as transport error")
	}
	if isTransportError(nil) {
		t.Fatalf("nil classified as transport error")
	}
}
