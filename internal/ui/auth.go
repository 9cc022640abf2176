package ui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"stacks/internal/library"
	"stacks/internal/session"
)

// Auth form field indices. The remember toggle sits after the text inputs.
const (
	fieldEmail = iota
	fieldPassword
	fieldRemember
	authFieldCount
)

// authState holds the login/registration form.
type authState struct {
	inputs   [2]textinput.Model
	focus    int
	remember bool
	busy     bool
}

func newAuthState() authState {
	email := textinput.New()
	email.Placeholder = "Email"
	email.Prompt = "> "
	email.CharLimit = 120
	email.Focus()

	password := textinput.New()
	password.Placeholder = "Password"
	password.Prompt = "> "
	password.CharLimit = 120
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	return authState{inputs: [2]textinput.Model{email, password}}
}

func (a authState) credentials() library.Credentials {
	return library.Credentials{
		Email:      strings.TrimSpace(a.inputs[fieldEmail].Value()),
		Password:   a.inputs[fieldPassword].Value(),
		RememberMe: a.remember,
	}
}

func (a *authState) focusField(idx int) {
	a.focus = idx
	for i := range a.inputs {
		if i == idx {
			a.inputs[i].Focus()
		} else {
			a.inputs[i].Blur()
		}
	}
}

// handleAuthKey processes keyboard input on the login and register views.
func (m Model) handleAuthKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ToRegister) && m.currentView == ViewLogin && !m.auth.busy:
		m.currentView = ViewRegister
		m.auth = newAuthState()
		return m, nil

	case key.Matches(msg, m.keys.ToLogin) && m.currentView == ViewRegister && !m.auth.busy:
		m.currentView = ViewLogin
		m.auth = newAuthState()
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		return m.cycleTheme()

	case key.Matches(msg, m.keys.NextField):
		m.auth.focusField((m.auth.focus + 1) % authFieldCount)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.auth.focusField((m.auth.focus + authFieldCount - 1) % authFieldCount)
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		if m.auth.focus == fieldRemember {
			m.auth.remember = !m.auth.remember
			return m, nil
		}
		return m.submitAuth()
	}

	if m.auth.focus == fieldRemember {
		if msg.String() == " " {
			m.auth.remember = !m.auth.remember
		}
		return m, nil
	}

	if m.auth.busy {
		// The submit is in flight; the form is disabled until it settles.
		return m, nil
	}

	var cmd tea.Cmd
	m.auth.inputs[m.auth.focus], cmd = m.auth.inputs[m.auth.focus].Update(msg)
	return m, cmd
}

// submitAuth disables the submit control and issues the login or registration
// request. The control is restored on every failure path.
func (m Model) submitAuth() (tea.Model, tea.Cmd) {
	if m.auth.busy {
		return m, nil
	}
	creds := m.auth.credentials()
	if creds.Email == "" || creds.Password == "" {
		m.notify("Email and password are required.", toastError)
		return m, nil
	}
	m.auth.busy = true
	if m.currentView == ViewRegister {
		return m, registerCmd(m.ctx, m.client, creds)
	}
	return m, loginCmd(m.ctx, m.client, creds)
}

func (m Model) handleLoginResult(msg loginResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.auth.busy = false
		if isTransportError(msg.err) {
			m.notify("Network error occurred.", toastError)
		} else {
			m.notify("Invalid email or password.", toastError)
		}
		return m, nil
	}

	m.sess.Role = msg.role
	if err := session.Save(m.sessionPath, m.sess); err != nil {
		m.notify("Could not persist session.", toastError)
	}
	m.pushToast("Welcome back!", toastSuccess, 2*time.Second)
	return m, navigateCmd()
}

func (m Model) handleRegisterResult(msg registerResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.auth.busy = false
		if isTransportError(msg.err) {
			m.notify("Network error occurred.", toastError)
			return m, nil
		}
		// Registration surfaces the server's own message.
		var statusErr *library.StatusError
		text := "registration failed"
		if errors.As(msg.err, &statusErr) && statusErr.Body != "" {
			text = statusErr.Body
		}
		m.notify("Failed: "+text, toastError)
		return m, nil
	}

	m.pushToast("Account created! Redirecting...", toastSuccess, 2*time.Second)
	return m, navigateCmd()
}

// renderLogin renders the sign-in view.
func (m Model) renderLogin() string {
	return m.renderAuth("Sign in to your library", "Sign In", "Signing in...", []string{
		"tab: next field",
		"enter: submit",
		"ctrl+r: create an account",
		"T: theme",
		"ctrl+c: quit",
	})
}

// renderRegister renders the account-creation view.
func (m Model) renderRegister() string {
	return m.renderAuth("Create your account", "Create Account", "Creating account...", []string{
		"tab: next field",
		"enter: submit",
		"ctrl+l: back to sign in",
		"ctrl+c: quit",
	})
}

func (m Model) renderAuth(title, submitLabel, busyLabel string, hints []string) string {
	styles := m.theme.Styles()

	var b strings.Builder
	b.WriteString(styles.PrimaryText.Bold(true).Render("STACKS"))
	b.WriteString("  ")
	b.WriteString(styles.MutedText.Render(m.serverURL))
	b.WriteString("\n\n")
	b.WriteString(styles.Text.Bold(true).Render(title))
	b.WriteString("\n\n")

	b.WriteString(m.auth.inputs[fieldEmail].View())
	b.WriteString("\n")
	b.WriteString(m.auth.inputs[fieldPassword].View())
	b.WriteString("\n\n")

	check := "[ ]"
	if m.auth.remember {
		check = "[x]"
	}
	remember := check + " Remember me"
	if m.auth.focus == fieldRemember {
		b.WriteString(styles.PrimaryText.Render(remember))
	} else {
		b.WriteString(styles.MutedText.Render(remember))
	}
	b.WriteString("\n\n")

	label := submitLabel
	buttonStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.theme.SelectionText)).
		Background(lipgloss.Color(m.theme.Primary)).
		Padding(0, 2)
	if m.auth.busy {
		label = busyLabel
		buttonStyle = buttonStyle.Background(lipgloss.Color(m.theme.SurfaceAlt))
	}
	b.WriteString(buttonStyle.Render(label))

	if toasts := m.renderToasts(); toasts != "" {
		b.WriteString("\n\n")
		b.WriteString(toasts)
	}

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(1, 3).
		Width(48).
		Render(b.String())

	footer := styles.Footer.Width(m.width).Render(strings.Join(hints, "  •  "))

	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, card)
	return body + "\n" + footer
}
