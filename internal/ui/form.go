package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stacks/internal/library"
)

// Book form field indices.
const (
	formTitle = iota
	formAuthor
	formDescription
	formImage
	formFieldCount
)

// formState holds the create/edit book form. A non-zero editID selects the
// update endpoint on submit, mirroring the hidden id field of the original
// single-form design.
type formState struct {
	inputs       [formFieldCount]textinput.Model
	focus        int
	editID       int64
	oldImagePath string
	busy         bool
}

// newFormState builds the form, prefilled from book when editing.
func newFormState(book *library.Book) formState {
	labels := [formFieldCount]string{"Title", "Author", "Description", "Cover image path (optional)"}

	var f formState
	for i := range f.inputs {
		input := textinput.New()
		input.Placeholder = labels[i]
		input.Prompt = "> "
		input.CharLimit = 500
		f.inputs[i] = input
	}
	f.inputs[formTitle].Focus()

	if book != nil {
		f.editID = book.ID
		f.oldImagePath = book.ImagePath
		f.inputs[formTitle].SetValue(book.Title)
		f.inputs[formAuthor].SetValue(book.Author)
		f.inputs[formDescription].SetValue(book.Description)
	}
	return f
}

func (f formState) draft() library.BookDraft {
	return library.BookDraft{
		ID:           f.editID,
		Title:        strings.TrimSpace(f.inputs[formTitle].Value()),
		Author:       strings.TrimSpace(f.inputs[formAuthor].Value()),
		Description:  strings.TrimSpace(f.inputs[formDescription].Value()),
		ImageFile:    strings.TrimSpace(f.inputs[formImage].Value()),
		OldImagePath: f.oldImagePath,
	}
}

func (f *formState) focusField(idx int) {
	f.focus = idx
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// handleFormKey processes keyboard input while the book form is open.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		if !m.form.busy {
			m.overlay = OverlayNone
			m.form = formState{}
		}
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.form.focusField((m.form.focus + 1) % formFieldCount)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.form.focusField((m.form.focus + formFieldCount - 1) % formFieldCount)
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m.submitForm()
	}

	if m.form.busy {
		return m, nil
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if m.form.busy {
		return m, nil
	}
	draft := m.form.draft()
	if draft.Title == "" || draft.Author == "" {
		m.notify("Title and author are required.", toastError)
		return m, nil
	}
	m.form.busy = true
	return m, saveCmd(m.ctx, m.client, draft)
}

// renderForm renders the create/edit overlay.
func (m Model) renderForm() string {
	styles := m.theme.Styles()

	title := "Add Book"
	if m.form.editID > 0 {
		title = "Edit Book"
	}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n\n")
	for i := range m.form.inputs {
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("\n")
	}
	if m.form.editID > 0 && m.form.oldImagePath != "" {
		b.WriteString(styles.FaintText.Render("current cover: " + truncate(m.form.oldImagePath, 40)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.form.busy {
		b.WriteString(styles.MutedText.Render("Saving..."))
	} else {
		b.WriteString(styles.FaintText.Render("enter: save  •  tab: next field  •  esc: cancel"))
	}

	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString("\n\n")
		b.WriteString(toasts)
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.BorderFocus)).
		Padding(1, 2).
		Width(56).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
