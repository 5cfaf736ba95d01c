// Package dashboard renders the learner's overview: headline metrics,
// recent activity and suggested next steps. When the backend is
// unreachable it falls back to locally recorded stats.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nilabh/campusmate/internal/api"
	"github.com/nilabh/campusmate/internal/router"
	"github.com/nilabh/campusmate/internal/screen"
	"github.com/nilabh/campusmate/internal/store"
	"github.com/nilabh/campusmate/internal/ui/layout"
	"github.com/nilabh/campusmate/internal/ui/theme"
)

// DashboardScreen shows the overview.
type DashboardScreen struct {
	client  *api.Client
	storage *store.Store
	userKey string
	admin   bool

	overview *api.DashboardOverview
	local    *store.Stats
	loading  bool
	offline  bool
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

type overviewLoadedMsg struct {
	Overview *api.DashboardOverview
	Local    *store.Stats
	Err      error
}

// New creates the dashboard screen. The backend health panel is shown
// only to admin accounts.
func New(client *api.Client, storage *store.Store, userKey string, admin bool) *DashboardScreen {
	return &DashboardScreen{
		client:  client,
		storage: storage,
		userKey: userKey,
		admin:   admin,
		loading: true,
	}
}

func (s *DashboardScreen) Init() tea.Cmd {
	client, storage, userKey := s.client, s.storage, s.userKey
	return func() tea.Msg {
		ctx := context.Background()
		var local *store.Stats
		if storage != nil && userKey != "" {
			if stats, err := storage.Activity().Stats(ctx, userKey); err == nil {
				local = &stats
			}
		}
		overview, err := client.Overview(ctx)
		return overviewLoadedMsg{Overview: overview, Local: local, Err: err}
	}
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case overviewLoadedMsg:
		s.loading = false
		s.local = msg.Local
		if msg.Err != nil {
			s.offline = true
			return s, nil
		}
		s.offline = false
		s.overview = msg.Overview
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r", "R":
			s.loading = true
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *DashboardScreen) View(width, height int) string {
	if s.loading {
		return theme.Hint.Render("\n  Loading your dashboard...")
	}

	var b strings.Builder

	if s.offline {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("  Offline: showing locally recorded activity."))
		b.WriteString("\n\n")
		b.WriteString(s.renderLocal(width))
		return b.String()
	}
	if s.overview == nil {
		return theme.Hint.Render("\n  Nothing to show yet.")
	}

	if len(s.overview.Metrics) > 0 {
		var cards []string
		for _, m := range s.overview.Metrics {
			cards = append(cards, renderMetric(m))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
		b.WriteString("\n\n")
	}

	if len(s.overview.Recommendations) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  Next steps"))
		b.WriteString("\n")
		for _, rec := range s.overview.Recommendations {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render("  ▸ " + rec.Title))
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + rec.Description))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(s.overview.Activity) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  Recent activity"))
		b.WriteString("\n")
		for i, act := range s.overview.Activity {
			if i >= 5 {
				break
			}
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render("  " + act.Title))
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + act.Timestamp))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if s.admin && len(s.overview.Systems) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  Systems"))
		b.WriteString("\n")
		for _, sys := range s.overview.Systems {
			color := theme.Success
			if sys.Status != "operational" {
				color = theme.Accent
			}
			b.WriteString("  ")
			b.WriteString(lipgloss.NewStyle().Foreground(color).Render("● "))
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(sys.Name))
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + sys.Status))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderMetric(m api.DashboardMetric) string {
	arrow := "▲"
	color := theme.Success
	if m.ChangeDirection == "down" {
		arrow = "▼"
		color = theme.Error
	}
	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Value) +
		"\n" + lipgloss.NewStyle().Foreground(theme.TextDim).Render(m.Label) +
		"\n" + lipgloss.NewStyle().Foreground(color).Render(fmt.Sprintf("%s %.1f%%", arrow, m.Change))
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 2).
		MarginLeft(2).
		Render(body)
}

func (s *DashboardScreen) renderLocal(width int) string {
	if s.local == nil {
		return theme.Hint.Render("  No local activity recorded yet.")
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf(
		"  Sessions: %d    Questions answered: %d    Accuracy: %.0f%%",
		s.local.Sessions, s.local.Answered, s.local.Accuracy()*100)))
	b.WriteString("\n\n")

	for _, topic := range s.local.Topics {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(fmt.Sprintf(
			"  %-28s %d answered   %.0f%%", topic.Topic, topic.Answered, topic.Accuracy()*100)))
		b.WriteString("\n")
	}
	return b.String()
}
