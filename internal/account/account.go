// Package account maintains the local authentication state: the bearer
// token and user profile issued at login, persisted across runs so the
// TUI can resume without re-authenticating.
package account

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Roles gate the admin-only surfaces.
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Profile is the locally cached identity of the signed-in user.
type Profile struct {
	University string `json:"university"`
	RollNo     string `json:"roll_no"`
	FullName   string `json:"full_name,omitempty"`
}

// Session is the persisted authentication state. It is written once at
// login and cleared at logout or on any authorization failure.
type Session struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
	Role    string  `json:"role"`
}

// Manager owns the session file. It is the single authority for
// auth/role state; screens ask it instead of re-parsing stored data.
type Manager struct {
	path string

	mu      sync.Mutex
	current *Session
}

// NewManager creates a Manager over the given session file path and
// loads any existing session.
func NewManager(path string) (*Manager, error) {
	m := &Manager{path: path}
	if err := m.load(); err != nil {
		return nil, err
	}
	return m, nil
}

// DefaultSessionPath resolves the session file location:
// $CAMPUSMATE_SESSION, then $XDG_CONFIG_HOME/campusmate/session.json,
// then ~/.config/campusmate/session.json.
func DefaultSessionPath() (string, error) {
	if p := os.Getenv("CAMPUSMATE_SESSION"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "campusmate", "session.json"), nil
}

func (m *Manager) load() error {
	raw, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		// A corrupt session file is treated as logged out rather than
		// wedging startup.
		return nil
	}
	if sess.Token != "" {
		m.current = &sess
	}
	return nil
}

// Save persists a new session, replacing any existing one.
func (m *Manager) Save(sess Session) error {
	if sess.Role == "" {
		sess.Role = RoleStudent
	}

	raw, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(m.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(m.path, raw, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}

	m.mu.Lock()
	m.current = &sess
	m.mu.Unlock()
	return nil
}

// Clear wipes the session from memory and disk. Safe to call when
// already logged out.
func (m *Manager) Clear() error {
	m.mu.Lock()
	m.current = nil
	m.mu.Unlock()

	err := os.Remove(m.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

// Current returns the active session, or nil when logged out. A session
// whose token has expired locally is reported as logged out.
func (m *Manager) Current() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.current == nil {
		return nil
	}
	if TokenExpired(m.current.Token) {
		return nil
	}
	sess := *m.current
	return &sess
}

// Token implements the transport client's token source.
func (m *Manager) Token() string {
	if sess := m.Current(); sess != nil {
		return sess.Token
	}
	return ""
}

// LoggedIn reports whether a usable session exists.
func (m *Manager) LoggedIn() bool {
	return m.Current() != nil
}

// IsAdmin reports whether the active session carries the admin role.
func (m *Manager) IsAdmin() bool {
	sess := m.Current()
	return sess != nil && sess.Role == RoleAdmin
}

// UserKey returns a stable per-user key for scoping local data, or ""
// when logged out.
func (m *Manager) UserKey() string {
	sess := m.Current()
	if sess == nil {
		return ""
	}
	return sess.Profile.University + "/" + sess.Profile.RollNo
}
