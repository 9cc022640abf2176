package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"stacks/internal/library"
)

const (
	cardWidth  = 34
	cardGap    = 1
	descLines  = 3
	noCoverTag = "No Cover"
)

// gridColumns returns how many cards fit per row at the current width.
func (m Model) gridColumns() int {
	if m.width <= 0 {
		return 1
	}
	cols := (m.width + cardGap) / (cardWidth + 2 + cardGap) // +2 for borders
	if cols < 1 {
		cols = 1
	}
	return cols
}

// renderCatalog renders the main catalog screen.
func (m Model) renderCatalog() string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n")

	switch {
	case m.loadErr != "":
		b.WriteString(styles.DangerText.Render(m.loadErr))
	case len(m.visibleBooks()) == 0 && m.snapshot.HasBooks:
		b.WriteString(styles.MutedText.Render("No books found."))
	case !m.snapshot.HasBooks:
		b.WriteString(styles.MutedText.Render("Loading catalog..."))
	default:
		b.WriteString(m.renderGrid())
	}

	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString("\n\n")
		b.WriteString(toasts)
	}

	content := b.String()
	footer := m.renderFooter()

	// Pin the footer to the bottom edge.
	contentHeight := m.height - lipgloss.Height(footer)
	filled := lipgloss.Place(m.width, contentHeight, lipgloss.Left, lipgloss.Top, content)
	return filled + "\n" + footer
}

func (m Model) renderSearchBar() string {
	styles := m.theme.Styles()
	if m.searching {
		return m.searchInput.View()
	}
	if m.activeQuery != "" {
		return styles.PrimaryText.Render("search: "+m.activeQuery) +
			styles.FaintText.Render("  (esc clears)")
	}
	return styles.FaintText.Render("/ to search")
}

// renderGrid lays the visible books out as bordered cards in rows.
func (m Model) renderGrid() string {
	books := m.visibleBooks()
	cols := m.gridColumns()

	var rows []string
	for start := 0; start < len(books); start += cols {
		end := start + cols
		if end > len(books) {
			end = len(books)
		}
		cards := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(books[i], i == m.selected))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

// renderCard renders one book card with its status badge, description, and
// the single action affordance the borrow state allows.
func (m Model) renderCard(b library.Book, selected bool) string {
	styles := m.theme.Styles()
	inner := cardWidth

	var lines []string
	lines = append(lines, styles.Text.Bold(true).Render(truncate(b.Title, inner)))
	lines = append(lines, styles.SecondaryText.Render(truncate(b.Author, inner)))

	badge := styles.Available.Render("AVAILABLE")
	if b.IsBorrowed {
		badge = styles.Borrowed.Render("BORROWED")
	}
	cover := styles.FaintText.Render(noCoverTag)
	if b.ImagePath != "" {
		cover = styles.FaintText.Render(truncate(b.ImagePath, inner-12))
	}
	lines = append(lines, badge+" "+cover)
	lines = append(lines, "")

	desc := b.Description
	if strings.TrimSpace(desc) == "" {
		desc = "No description provided."
	}
	wrapped := wrapLines(desc, inner, descLines)
	for len(wrapped) < descLines {
		wrapped = append(wrapped, "")
	}
	for _, line := range wrapped {
		lines = append(lines, styles.MutedText.Render(line))
	}
	lines = append(lines, "")

	action := actionFor(b, m.heldByUser(b.ID))
	var actionText string
	switch action {
	case actionReturn:
		actionText = styles.InfoText.Render("[r] Return")
	case actionUnavailable:
		actionText = styles.FaintText.Italic(true).Render("Unavailable")
	default:
		actionText = styles.SuccessText.Render("[b] Borrow")
	}
	if m.sess.Admin() {
		actionText += styles.FaintText.Render("   [e]dit [d]elete")
	}
	lines = append(lines, actionText)

	card := styles.Card
	if selected {
		card = styles.CardSelected
	}
	return card.Width(inner).Render(strings.Join(lines, "\n"))
}
