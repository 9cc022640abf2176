// Package session persists the advisory client-side session state.
// It is stored in ~/.config/stacks/session.toml.
package session

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Session holds what the client remembers between runs: the role the server
// granted at login and the preferred theme. The role is advisory only and
// gates UI affordances; the server independently authorizes every request.
type Session struct {
	Role  string `toml:"role"`
	Theme string `toml:"theme"`
}

// RoleAdmin is the role that unlocks add/edit/delete affordances.
const RoleAdmin = "Admin"

const (
	defaultSessionPath = "~/.config/stacks/session.toml"
	defaultTheme       = "Indigo"
)

// Authenticated reports whether a signed-in role is on record. Absence means
// "not authenticated" from the client's perspective.
func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.Role) != ""
}

// Admin reports whether the stored role unlocks administrative affordances.
func (s Session) Admin() bool {
	return s.Role == RoleAdmin
}

// DefaultPath returns the default session file path.
func DefaultPath() string {
	return defaultSessionPath
}

// Load reads the session from the given path, falling back to an empty
// session if missing or unreadable.
func Load(path string) Session {
	sess := Session{Theme: defaultTheme}

	resolved, err := resolvePath(path)
	if err != nil {
		return sess
	}

	file, err := os.Open(resolved)
	if err != nil {
		return sess
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return sess
	}

	if err := toml.Unmarshal(bytes, &sess); err != nil {
		return Session{Theme: defaultTheme}
	}

	if strings.TrimSpace(sess.Theme) == "" {
		sess.Theme = defaultTheme
	}

	return sess
}

// Save writes the session to the given path, creating directories as needed.
func Save(path string, s Session) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	bytes, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}

	return nil
}

// Clear removes the stored role while keeping preferences. A missing file is
// not an error.
func Clear(path string) error {
	sess := Load(path)
	if !sess.Authenticated() {
		return nil
	}
	sess.Role = ""
	return Save(path, sess)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultSessionPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
