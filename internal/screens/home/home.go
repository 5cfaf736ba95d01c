// Package home is the main menu shown after sign-in.
package home

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/nilabh/campusmate/internal/account"
	"github.com/nilabh/campusmate/internal/api"
	"github.com/nilabh/campusmate/internal/router"
	"github.com/nilabh/campusmate/internal/screen"
	"github.com/nilabh/campusmate/internal/screens/chat"
	"github.com/nilabh/campusmate/internal/screens/dashboard"
	"github.com/nilabh/campusmate/internal/screens/documents"
	"github.com/nilabh/campusmate/internal/screens/quizsetup"
	"github.com/nilabh/campusmate/internal/screens/settings"
	"github.com/nilabh/campusmate/internal/store"
	"github.com/nilabh/campusmate/internal/ui/components"
)

// HomeScreen is the main navigation menu.
type HomeScreen struct {
	manager *account.Manager

	menu       components.Menu
	menuLabels []string
	stats      store.Stats
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. The logout callback rebuilds the login
// screen when the user signs out from settings.
func New(client *api.Client, manager *account.Manager, storage *store.Store, logout settings.Logout) *HomeScreen {
	userKey := manager.UserKey()

	var stats store.Stats
	if storage != nil && userKey != "" {
		if loaded, err := storage.Activity().Stats(context.Background(), userKey); err == nil {
			stats = loaded
		}
	}

	menuLabels := []string{"START QUIZ", "DOCUMENTS", "ASK A QUESTION", "DASHBOARD", "SETTINGS", "EXIT"}

	items := []components.MenuItem{
		{Label: menuLabels[0], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: quizsetup.New(client, storage, userKey)}
			}
		}},
		{Label: menuLabels[1], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: documents.New(client, storage, userKey)}
			}
		}},
		{Label: menuLabels[2], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: chat.New(client)}
			}
		}},
		{Label: menuLabels[3], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: dashboard.New(client, storage, userKey, manager.IsAdmin())}
			}
		}},
		{Label: menuLabels[4], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: settings.New(manager, storage, logout)}
			}
		}},
		{Label: menuLabels[5], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		manager:    manager,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		stats:      stats,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}
