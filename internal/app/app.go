// Package app wires the screens, router, and shared services into the
// root Bubble Tea model.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/nilabh/campusmate/internal/account"
	"github.com/nilabh/campusmate/internal/api"
	"github.com/nilabh/campusmate/internal/router"
	"github.com/nilabh/campusmate/internal/screen"
	"github.com/nilabh/campusmate/internal/screens/home"
	"github.com/nilabh/campusmate/internal/screens/login"
	"github.com/nilabh/campusmate/internal/store"
	"github.com/nilabh/campusmate/internal/ui/layout"
)

// Options carries the shared services every screen draws on.
type Options struct {
	Client  *api.Client
	Manager *account.Manager
	Store   *store.Store
	Logger  *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	width  int
	height int
}

// newAppModel creates the root model, starting at home when a session
// exists and at login otherwise.
func newAppModel(opts Options) AppModel {
	m := AppModel{opts: opts}

	var initial screen.Screen
	if opts.Manager.LoggedIn() {
		initial = m.homeScreen()
	} else {
		initial = m.loginScreen()
	}
	m.router = router.New(initial)
	return m
}

func (m AppModel) homeScreen() screen.Screen {
	return home.New(m.opts.Client, m.opts.Manager, m.opts.Store, m.loginScreen)
}

func (m AppModel) loginScreen() screen.Screen {
	return login.New(m.opts.Client, m.opts.Manager, m.opts.Store, m.homeScreen)
}

// expiredLoginScreen is the login screen shown after a forced logout,
// carrying the reason so the user is not dropped on a bare form.
func (m AppModel) expiredLoginScreen() screen.Screen {
	s := login.New(m.opts.Client, m.opts.Manager, m.opts.Store, m.homeScreen)
	s.SetNotice("Session expired, please log in again.")
	return s
}

// sessionExpiredMsg is dispatched when the backend rejects the token.
type sessionExpiredMsg struct{}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case sessionExpiredMsg:
		// Token no longer accepted: wipe the session and fall back to
		// login, whatever the user was doing.
		_ = m.opts.Manager.Clear()
		m.opts.Logger.Info("session expired, returning to login")
		return m, m.router.ReplaceAll(m.expiredLoginScreen())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var user, role string
	if sess := m.opts.Manager.Current(); sess != nil {
		user = sess.Profile.FullName
		if user == "" {
			user = sess.Profile.RollNo
		}
		role = sess.Role
	}
	header := layout.RenderHeader(title, user, role, m.width)

	footerHints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
	if provider, ok := active.(screen.KeyHintProvider); ok {
		if hints := provider.KeyHints(); len(hints) > 0 {
			footerHints = hints
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program. The transport's unauthorized hook
// re-enters the update loop through Program.Send so expiry handling
// stays on the single-threaded model.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))

	opts.Client.SetUnauthorizedHook(func() {
		p.Send(sessionExpiredMsg{})
	})

	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
