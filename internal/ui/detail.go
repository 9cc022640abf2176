package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleDetailKey dismisses or acts on the book detail overlay.
func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape), key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Quit):
		m.overlay = OverlayNone
		m.detailBook = nil
		return m, nil

	case key.Matches(msg, m.keys.Borrow):
		if b := m.detailBook; b != nil && actionFor(*b, m.heldByUser(b.ID)) == actionBorrow {
			m.overlay = OverlayNone
			m.detailBook = nil
			return m, borrowCmd(m.ctx, m.client, b.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.Return):
		if b := m.detailBook; b != nil && actionFor(*b, m.heldByUser(b.ID)) == actionReturn {
			m.overlay = OverlayNone
			m.detailBook = nil
			return m, returnCmd(m.ctx, m.client, b.ID)
		}
		return m, nil
	}
	return m, nil
}

// renderDetail renders the full book view overlay.
func (m Model) renderDetail() string {
	if m.detailBook == nil {
		return m.renderCatalog()
	}
	styles := m.theme.Styles()
	b := *m.detailBook

	var out strings.Builder
	out.WriteString(styles.Text.Bold(true).Render(b.Title))
	out.WriteString("\n")
	out.WriteString(styles.SecondaryText.Render("by " + b.Author))
	out.WriteString("\n\n")

	if b.IsBorrowed {
		out.WriteString(styles.Borrowed.Render("BORROWED"))
	} else {
		out.WriteString(styles.Available.Render("AVAILABLE"))
	}
	out.WriteString("\n\n")

	desc := strings.TrimSpace(b.Description)
	if desc == "" {
		desc = "No description available for this book."
	}
	for _, line := range wrapLines(desc, 52, 12) {
		out.WriteString(styles.Text.Render(line))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	cover := noCoverTag
	if b.ImagePath != "" {
		cover = b.ImagePath
	}
	out.WriteString(styles.FaintText.Render("cover: " + truncate(cover, 48)))
	out.WriteString("\n\n")

	switch actionFor(b, m.heldByUser(b.ID)) {
	case actionReturn:
		out.WriteString(styles.InfoText.Render("[r] Return  •  esc: close"))
	case actionBorrow:
		out.WriteString(styles.SuccessText.Render("[b] Borrow  •  esc: close"))
	default:
		out.WriteString(styles.FaintText.Render("Unavailable  •  esc: close"))
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(58).
		Render(out.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
