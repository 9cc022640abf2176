package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// handleConfirmKey resolves the delete confirmation. Only an explicit "y"
// issues the request; anything that closes the overlay declines it.
func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if b := m.confirmBook; b != nil {
			m.overlay = OverlayNone
			return m, deleteCmd(m.ctx, m.client, b.ID)
		}
		m.overlay = OverlayNone
		return m, nil
	case "n", "N":
		m.overlay = OverlayNone
		m.confirmBook = nil
		return m, nil
	}
	if key.Matches(msg, m.keys.Escape) {
		m.overlay = OverlayNone
		m.confirmBook = nil
	}
	return m, nil
}

// renderConfirm renders the delete confirmation overlay.
func (m Model) renderConfirm() string {
	if m.confirmBook == nil {
		return m.renderCatalog()
	}
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.DangerText.Render("Delete book"))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Render("Are you sure you want to delete this book?"))
	b.WriteString("\n\n")
	b.WriteString(styles.MutedText.Render(truncate(m.confirmBook.Title, 44)))
	b.WriteString("\n\n")
	b.WriteString(styles.FaintText.Render("y: delete  •  n/esc: cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Danger)).
		Padding(1, 2).
		Width(50).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
