package ui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"stacks/internal/library"
	"stacks/internal/session"
	"stacks/internal/state"
)

// View represents the current top-level view.
type View int

const (
	ViewLogin View = iota
	ViewRegister
	ViewCatalog
)

// Overlay represents a modal layered over the catalog view.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayForm
	OverlayDetail
	OverlayConfirm
	OverlayHelp
)

const (
	toastTickInterval = 500 * time.Millisecond
	// navigateDelay keeps the success toast visible before switching views,
	// like the original redirect-after-toast behavior.
	navigateDelay = 750 * time.Millisecond
)

// Options configures the UI.
type Options struct {
	Context     context.Context
	Client      library.Catalog
	Store       *state.Store
	Session     session.Session
	SessionPath string
	ServerURL   string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx         context.Context
	client      library.Catalog
	store       *state.Store
	sess        session.Session
	sessionPath string
	serverURL   string

	// UI state
	theme       Theme
	keys        keyMap
	width       int
	height      int
	ready       bool
	currentView View
	overlay     Overlay

	// Auth view state
	auth authState

	// Catalog state
	snapshot    state.Snapshot
	results     []library.Book // active search results; nil when no search applied
	resultsHeld map[int64]bool
	activeQuery string
	searching   bool // search input focused
	searchInput textinput.Model
	loadErr     string // inline grid error, empty when the last load succeeded
	selected    int

	// Overlay state
	form        formState
	detailBook  *library.Book
	confirmBook *library.Book

	toasts []toast
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	sessionPath := opts.SessionPath
	if sessionPath == "" {
		sessionPath = session.DefaultPath()
	}

	view := ViewLogin
	if opts.Session.Authenticated() {
		// Already signed in: skip the auth views entirely.
		view = ViewCatalog
	}

	search := textinput.New()
	search.Placeholder = "Search books"
	search.Prompt = "/ "
	search.CharLimit = 120

	return Model{
		ctx:         ctx,
		client:      opts.Client,
		store:       opts.Store,
		sess:        opts.Session,
		sessionPath: sessionPath,
		serverURL:   opts.ServerURL,
		theme:       GetTheme(opts.Session.Theme),
		keys:        DefaultKeyMap(),
		currentView: view,
		auth:        newAuthState(),
		searchInput: search,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(),
	}
	if m.currentView == ViewCatalog {
		cmds = append(cmds, refreshCmd(m.ctx, m.client, m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		m.toasts = pruneToasts(m.toasts, time.Time(msg))
		return m, tickCmd()

	case loginResultMsg:
		return m.handleLoginResult(msg)

	case registerResultMsg:
		return m.handleRegisterResult(msg)

	case enterCatalogMsg:
		m.currentView = ViewCatalog
		m.overlay = OverlayNone
		m.auth = newAuthState()
		return m, refreshCmd(m.ctx, m.client, m.store)

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.loadErr = ""
		m.clampSelection()
		return m, nil

	case loadFailedMsg:
		m.loadErr = "Error loading data."
		return m, nil

	case searchResultMsg:
		// A response for anything but the current query is stale; the query
		// may have been changed or cleared while the request was in flight.
		if msg.query != m.activeQuery {
			return m, nil
		}
		if msg.err != nil {
			m.loadErr = "Error searching books."
			return m, nil
		}
		m.results = msg.books
		m.resultsHeld = msg.held
		m.loadErr = ""
		m.selected = 0
		return m, nil

	case unauthorizedMsg:
		// The server no longer recognizes the session; nothing rendered from
		// here on may come from stale data.
		m.currentView = ViewLogin
		m.overlay = OverlayNone
		m.auth = newAuthState()
		m.results = nil
		m.resultsHeld = nil
		m.activeQuery = ""
		m.searching = false
		m.snapshot = state.Snapshot{}
		m.notify("Session expired. Please sign in.", toastInfo)
		return m, nil

	case mutationMsg:
		return m.handleMutation(msg)

	case logoutDoneMsg:
		m.sess.Role = ""
		m.currentView = ViewLogin
		m.overlay = OverlayNone
		m.auth = newAuthState()
		m.results = nil
		m.resultsHeld = nil
		m.activeQuery = ""
		m.snapshot = state.Snapshot{}
		return m, nil
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	switch m.overlay {
	case OverlayHelp:
		return m.renderHelp()
	case OverlayForm:
		return m.renderForm()
	case OverlayDetail:
		return m.renderDetail()
	case OverlayConfirm:
		return m.renderConfirm()
	}

	switch m.currentView {
	case ViewLogin:
		return m.renderLogin()
	case ViewRegister:
		return m.renderRegister()
	default:
		return m.renderCatalog()
	}
}

// handleKey routes keyboard input to the active view or overlay.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c always quits, even mid-submit.
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.overlay {
	case OverlayHelp:
		m.overlay = OverlayNone
		return m, nil
	case OverlayForm:
		return m.handleFormKey(msg)
	case OverlayDetail:
		return m.handleDetailKey(msg)
	case OverlayConfirm:
		return m.handleConfirmKey(msg)
	}

	switch m.currentView {
	case ViewLogin, ViewRegister:
		return m.handleAuthKey(msg)
	default:
		return m.handleCatalogKey(msg)
	}
}

// handleMutation finishes a borrow/return/delete/save round trip. Successful
// mutations always trigger a full list reload; the client never patches the
// in-memory list.
func (m Model) handleMutation(msg mutationMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if errors.Is(msg.err, library.ErrUnauthorized) {
			return m.Update(unauthorizedMsg{})
		}
		if isTransportError(msg.err) {
			m.notify("Network error.", toastError)
		} else {
			m.notify(msg.failureText(), toastError)
		}
		// A failed save keeps the form open for correction.
		if msg.kind == mutationSave {
			m.form.busy = false
		}
		if msg.kind == mutationDelete {
			m.confirmBook = nil
		}
		return m, nil
	}

	m.notify(msg.successText(), toastSuccess)
	if msg.kind == mutationSave || msg.kind == mutationDelete {
		m.overlay = OverlayNone
		m.form = formState{}
		m.confirmBook = nil
	}
	return m, refreshCmd(m.ctx, m.client, m.store)
}

// visibleBooks returns the set the grid renders: active search results when a
// query is applied, otherwise the last full load.
func (m Model) visibleBooks() []library.Book {
	if m.activeQuery != "" {
		return m.results
	}
	return m.snapshot.Books
}

// heldByUser reports whether the current user borrows the given book within
// the rendered set.
func (m Model) heldByUser(id int64) bool {
	if m.activeQuery != "" {
		return m.resultsHeld[id]
	}
	return m.snapshot.Held[id]
}

func (m *Model) clampSelection() {
	count := len(m.visibleBooks())
	if count == 0 {
		m.selected = 0
		return
	}
	if m.selected >= count {
		m.selected = count - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m Model) selectedBook() *library.Book {
	books := m.visibleBooks()
	if len(books) == 0 || m.selected < 0 || m.selected >= len(books) {
		return nil
	}
	b := books[m.selected]
	return &b
}

// Messages

type tickMsg time.Time

type snapshotMsg state.Snapshot

type loadFailedMsg struct{ err error }

type unauthorizedMsg struct{}

type enterCatalogMsg struct{}

type loginResultMsg struct {
	role string
	err  error
}

type registerResultMsg struct{ err error }

type searchResultMsg struct {
	query string
	books []library.Book
	held  map[int64]bool
	err   error
}

type logoutDoneMsg struct{}

type mutationKind int

const (
	mutationBorrow mutationKind = iota
	mutationReturn
	mutationDelete
	mutationSave
)

type mutationMsg struct {
	kind mutationKind
	err  error
}

func (m mutationMsg) successText() string {
	switch m.kind {
	case mutationDelete:
		return "Book deleted."
	case mutationSave:
		return "Successfully saved!"
	default:
		return "Success!"
	}
}

func (m mutationMsg) failureText() string {
	switch m.kind {
	case mutationDelete:
		return "Could not delete."
	case mutationSave:
		return "Operation failed."
	default:
		return "Action failed."
	}
}

// isTransportError distinguishes request failures from non-OK responses.
func isTransportError(err error) bool {
	var statusErr *library.StatusError
	return err != nil && !errors.As(err, &statusErr)
}

// Commands

func tickCmd() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func navigateCmd() tea.Cmd {
	return tea.Tick(navigateDelay, func(time.Time) tea.Msg {
		return enterCatalogMsg{}
	})
}

// refreshCmd reloads the full book list, resolves per-book borrower checks,
// and publishes the result through the store.
func refreshCmd(ctx context.Context, client library.Catalog, store *state.Store) tea.Cmd {
	return func() tea.Msg {
		books, err := client.ListBooks(ctx)
		if err != nil {
			if errors.Is(err, library.ErrUnauthorized) {
				return unauthorizedMsg{}
			}
			logrus.WithError(err).Warn("book list load failed")
			store.Update(nil, nil, err)
			return loadFailedMsg{err: err}
		}
		held := library.BorrowedByUser(ctx, client, books)
		store.Update(books, held, nil)
		return snapshotMsg(store.Snapshot())
	}
}

func searchCmd(ctx context.Context, client library.Catalog, query string) tea.Cmd {
	return func() tea.Msg {
		books, err := client.SearchBooks(ctx, query)
		if err != nil {
			if errors.Is(err, library.ErrUnauthorized) {
				return unauthorizedMsg{}
			}
			logrus.WithError(err).Warn("book search failed")
			return searchResultMsg{query: query, err: err}
		}
		held := library.BorrowedByUser(ctx, client, books)
		return searchResultMsg{query: query, books: books, held: held}
	}
}

func loginCmd(ctx context.Context, client library.Catalog, creds library.Credentials) tea.Cmd {
	return func() tea.Msg {
		role, err := client.Login(ctx, creds)
		return loginResultMsg{role: role, err: err}
	}
}

func registerCmd(ctx context.Context, client library.Catalog, creds library.Credentials) tea.Cmd {
	return func() tea.Msg {
		return registerResultMsg{err: client.Register(ctx, creds)}
	}
}

func borrowCmd(ctx context.Context, client library.Catalog, id int64) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{kind: mutationBorrow, err: client.BorrowBook(ctx, id)}
	}
}

func returnCmd(ctx context.Context, client library.Catalog, id int64) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{kind: mutationReturn, err: client.ReturnBook(ctx, id)}
	}
}

func deleteCmd(ctx context.Context, client library.Catalog, id int64) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{kind: mutationDelete, err: client.DeleteBook(ctx, id)}
	}
}

func saveCmd(ctx context.Context, client library.Catalog, draft library.BookDraft) tea.Cmd {
	return func() tea.Msg {
		return mutationMsg{kind: mutationSave, err: client.SaveBook(ctx, draft)}
	}
}

// logoutCmd posts the logout best-effort; the local session is cleared no
// matter what the server answers.
func logoutCmd(ctx context.Context, client library.Catalog, sessionPath string) tea.Cmd {
	return func() tea.Msg {
		if err := client.Logout(ctx); err != nil {
			logrus.WithError(err).Debug("logout request failed")
		}
		if err := session.Clear(sessionPath); err != nil {
			logrus.WithError(err).Warn("clear session failed")
		}
		return logoutDoneMsg{}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
