package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"stacks/internal/library"
	"stacks/internal/session"
)

// bookAction is the single affordance a card presents for its borrow state.
type bookAction int

const (
	actionBorrow bookAction = iota
	actionReturn
	actionUnavailable
)

// actionFor picks exactly one of Borrow, Return, or Unavailable for a book.
// heldByUser comes from the per-book borrower check; a book borrowed by
// somebody else is unavailable.
func actionFor(b library.Book, heldByUser bool) bookAction {
	if heldByUser {
		return actionReturn
	}
	if b.IsBorrowed {
		return actionUnavailable
	}
	return actionBorrow
}

func (a bookAction) label() string {
	switch a {
	case actionReturn:
		return "Return"
	case actionUnavailable:
		return "Unavailable"
	default:
		return "Borrow"
	}
}

// handleCatalogKey processes keyboard input on the catalog view.
func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.overlay = OverlayHelp
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		return m.cycleTheme()

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.searchInput.SetValue(m.activeQuery)
		m.searchInput.Focus()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		if m.activeQuery != "" {
			// Empty query restores the last full load without a network call.
			m.clearSearch()
		}
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		return m, refreshCmd(m.ctx, m.client, m.store)

	case key.Matches(msg, m.keys.Logout):
		return m, logoutCmd(m.ctx, m.client, m.sessionPath)

	case key.Matches(msg, m.keys.DismissToast):
		m.dismissToast()
		return m, nil

	case key.Matches(msg, m.keys.Open):
		if b := m.selectedBook(); b != nil {
			m.detailBook = b
			m.overlay = OverlayDetail
		}
		return m, nil

	case key.Matches(msg, m.keys.Borrow):
		if b := m.selectedBook(); b != nil && actionFor(*b, m.heldByUser(b.ID)) == actionBorrow {
			return m, borrowCmd(m.ctx, m.client, b.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Return):
		if b := m.selectedBook(); b != nil && actionFor(*b, m.heldByUser(b.ID)) == actionReturn {
			return m, returnCmd(m.ctx, m.client, b.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Add):
		if m.sess.Admin() {
			m.form = newFormState(nil)
			m.overlay = OverlayForm
		}
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		if b := m.selectedBook(); b != nil && m.sess.Admin() {
			m.form = newFormState(b)
			m.overlay = OverlayForm
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if b := m.selectedBook(); b != nil && m.sess.Admin() {
			// Deletion never fires without explicit confirmation.
			m.confirmBook = b
			m.overlay = OverlayConfirm
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.moveSelection(-m.gridColumns())
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.moveSelection(m.gridColumns())
		return m, nil

	case key.Matches(msg, m.keys.Left):
		m.moveSelection(-1)
		return m, nil

	case key.Matches(msg, m.keys.Right):
		m.moveSelection(1)
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		if count := len(m.visibleBooks()); count > 0 {
			m.selected = count - 1
		}
		return m, nil
	}

	return m, nil
}

// handleSearchKey processes input while the search field is focused.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.performSearch()
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue(m.activeQuery)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// performSearch applies the entered query. An empty query re-renders the last
// full load locally; anything else asks the server.
func (m Model) performSearch() (tea.Model, tea.Cmd) {
	query := strings.TrimSpace(m.searchInput.Value())
	m.searching = false
	m.searchInput.Blur()

	if query == "" {
		m.clearSearch()
		return m, nil
	}

	m.activeQuery = query
	return m, searchCmd(m.ctx, m.client, query)
}

func (m *Model) clearSearch() {
	m.activeQuery = ""
	m.results = nil
	m.resultsHeld = nil
	m.searchInput.SetValue("")
	m.clampSelection()
}

func (m *Model) moveSelection(delta int) {
	count := len(m.visibleBooks())
	if count == 0 {
		return
	}
	next := m.selected + delta
	if next < 0 {
		next = 0
	}
	if next >= count {
		next = count - 1
	}
	m.selected = next
}

func (m Model) cycleTheme() (tea.Model, tea.Cmd) {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.sess.Theme = m.theme.Name
	_ = session.Save(m.sessionPath, m.sess)
	return m, nil
}
