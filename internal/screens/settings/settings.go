// Package settings shows the signed-in profile and local data actions.
package settings

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nilabh/campusmate/internal/account"
	"github.com/nilabh/campusmate/internal/router"
	"github.com/nilabh/campusmate/internal/screen"
	"github.com/nilabh/campusmate/internal/store"
	"github.com/nilabh/campusmate/internal/ui/components"
	"github.com/nilabh/campusmate/internal/ui/layout"
	"github.com/nilabh/campusmate/internal/ui/theme"
)

// Logout builds the screen to fall back to after signing out.
type Logout func() screen.Screen

// SettingsScreen shows profile info and destructive local actions.
type SettingsScreen struct {
	manager *account.Manager
	storage *store.Store
	logout  Logout

	menu    components.Menu
	confirm string // pending destructive action, "" when none
	notice  string
}

var _ screen.Screen = (*SettingsScreen)(nil)
var _ screen.KeyHintProvider = (*SettingsScreen)(nil)

// New creates the settings screen.
func New(manager *account.Manager, storage *store.Store, logout Logout) *SettingsScreen {
	s := &SettingsScreen{
		manager: manager,
		storage: storage,
		logout:  logout,
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Clear my local data", Action: func() tea.Cmd {
			s.confirm = "clear"
			return nil
		}},
		{Label: "Sign out", Action: func() tea.Cmd {
			s.confirm = "logout"
			return nil
		}},
		{Label: "Back", Action: func() tea.Cmd {
			return func() tea.Msg { return router.PopScreenMsg{} }
		}},
	})
	return s
}

func (s *SettingsScreen) Init() tea.Cmd {
	return nil
}

func (s *SettingsScreen) Title() string {
	return "Settings"
}

func (s *SettingsScreen) KeyHints() []layout.KeyHint {
	if s.confirm != "" {
		return []layout.KeyHint{
			{Key: "Y", Description: "Confirm"},
			{Key: "N", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SettingsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		key := kmsg.String()

		if s.confirm != "" {
			switch key {
			case "y", "Y":
				return s.runConfirmed()
			case "n", "N", "esc":
				s.confirm = ""
			}
			return s, nil
		}

		if key == "esc" {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *SettingsScreen) runConfirmed() (screen.Screen, tea.Cmd) {
	action := s.confirm
	s.confirm = ""

	switch action {
	case "clear":
		if err := s.storage.ClearUser(s.manager.UserKey()); err != nil {
			s.notice = err.Error()
			return s, nil
		}
		s.notice = "Local quiz history and uploads cleared."
		return s, nil

	case "logout":
		userKey := s.manager.UserKey()
		if err := s.manager.Clear(); err != nil {
			s.notice = err.Error()
			return s, nil
		}
		// Queued uploads belong to the account, not the machine.
		_ = s.storage.ClearUser(userKey)
		logout := s.logout
		return s, func() tea.Msg {
			return router.ReplaceStackMsg{Screen: logout()}
		}
	}
	return s, nil
}

func (s *SettingsScreen) View(width, height int) string {
	var b strings.Builder

	if sess := s.manager.Current(); sess != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  Account"))
		b.WriteString("\n\n")
		name := sess.Profile.FullName
		if name == "" {
			name = sess.Profile.RollNo
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf("  %s", name)))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(
			"  %s · %s · %s", sess.Profile.University, sess.Profile.RollNo, sess.Role)))
		b.WriteString("\n\n")
	}

	if s.confirm != "" {
		prompt := "Clear all locally stored quiz history for this account?"
		if s.confirm == "logout" {
			prompt = "Sign out of CampusMate on this machine?"
		}
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("  " + prompt))
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("  [Y] Yes"))
		b.WriteString("    ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(s.menu.View())

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("  " + s.notice))
		b.WriteString("\n")
	}
	return b.String()
}
