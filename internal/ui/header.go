package ui

import (
	"fmt"
	"strings"
	"time"
)

// renderHeader renders the top status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	parts := []string{
		styles.PrimaryText.Bold(true).Render("STACKS"),
		styles.MutedText.Render(m.serverURL),
	}

	if m.sess.Authenticated() {
		role := m.sess.Role
		if m.sess.Admin() {
			parts = append(parts, styles.WarningText.Render(role))
		} else {
			parts = append(parts, styles.SecondaryText.Render(role))
		}
	}

	if m.snapshot.HasBooks {
		count := len(m.visibleBooks())
		label := fmt.Sprintf("%d books", count)
		if count == 1 {
			label = "1 book"
		}
		if m.activeQuery != "" {
			label += fmt.Sprintf(" matching %q", m.activeQuery)
		}
		parts = append(parts, styles.Text.Render(label))
	}

	if !m.snapshot.LastUpdated.IsZero() {
		parts = append(parts, styles.FaintText.Render(relativeTime(m.snapshot.LastUpdated)))
	}

	return styles.Header.Width(m.width).Render(strings.Join(parts, "  •  "))
}

// renderFooter renders the key hint bar.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()

	hints := []string{
		"j/k/←/→: move",
		"enter: view",
		"/: search",
		"b: borrow",
		"r: return",
	}
	if m.sess.Admin() {
		hints = append(hints, "a: add", "e: edit", "d: delete")
	}
	hints = append(hints, "l: log out", "h: help", "q: quit")

	return styles.Footer.Width(m.width).Render(strings.Join(hints, "  •  "))
}

// relativeTime formats a refresh timestamp with a coarse age suffix.
func relativeTime(t time.Time) string {
	since := time.Since(t)
	stamp := t.Format("15:04:05")
	switch {
	case since < time.Minute:
		return stamp + " (now)"
	case since < time.Hour:
		return fmt.Sprintf("%s (%dm ago)", stamp, int(since.Minutes()))
	case since < 24*time.Hour:
		return fmt.Sprintf("%s (%dh ago)", stamp, int(since.Hours()))
	default:
		return stamp
	}
}
