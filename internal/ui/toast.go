package ui

import (
	"strings"
	"time"
)

// toastLevel categorizes a toast for styling.
type toastLevel int

const (
	toastInfo toastLevel = iota
	toastSuccess
	toastError
)

const defaultToastDuration = 4 * time.Second

// toast is a transient notification rendered above the footer.
// A zero expiry pins the toast until it is dismissed.
type toast struct {
	message string
	level   toastLevel
	expires time.Time
}

// pushToast queues a notification. A zero duration pins the toast.
func (m *Model) pushToast(message string, level toastLevel, duration time.Duration) {
	if strings.TrimSpace(message) == "" {
		return
	}
	t := toast{message: message, level: level}
	if duration > 0 {
		t.expires = time.Now().Add(duration)
	}
	m.toasts = append(m.toasts, t)
}

// notify queues a toast with the default duration.
func (m *Model) notify(message string, level toastLevel) {
	m.pushToast(message, level, defaultToastDuration)
}

// dismissToast removes the oldest toast, if any.
func (m *Model) dismissToast() {
	if len(m.toasts) > 0 {
		m.toasts = m.toasts[1:]
	}
}

// pruneToasts drops expired toasts, keeping pinned ones.
func pruneToasts(toasts []toast, now time.Time) []toast {
	kept := toasts[:0]
	for _, t := range toasts {
		if t.expires.IsZero() || t.expires.After(now) {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}

// renderToasts renders the active toasts, newest last.
func (m Model) renderToasts() string {
	if len(m.toasts) == 0 {
		return ""
	}
	styles := m.theme.Styles()
	var b strings.Builder
	for i, t := range m.toasts {
		var line string
		switch t.level {
		case toastSuccess:
			line = styles.SuccessText.Render("✔ " + t.message)
		case toastError:
			line = styles.DangerText.Render("✘ " + t.message)
		default:
			line = styles.InfoText.Render("ℹ " + t.message)
		}
		b.WriteString(line)
		if i < len(m.toasts)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
