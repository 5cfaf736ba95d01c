package login

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nilabh/campusmate/internal/ui/components"
	"github.com/nilabh/campusmate/internal/ui/theme"
)

var fieldLabels = [fieldCount]string{"University", "Roll number", "Password"}

func (s *LoginScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Welcome to CampusMate"))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("Sign in with your campus account"))
	b.WriteString("\n\n")

	if s.notice != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Width(cw).Render(s.notice))
		b.WriteString("\n\n")
	}

	for i := range s.inputs {
		label := fieldLabels[i]
		style := theme.Unselected
		if i == s.focused {
			style = theme.Selected
		}
		b.WriteString(style.Render(label))
		b.WriteString("\n")
		b.WriteString(s.inputs[i].View())
		b.WriteString("\n\n")
	}

	if s.verifiedName != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Render("Hi, " + s.verifiedName))
		b.WriteString("\n")
	}
	if s.submitting {
		b.WriteString(theme.Hint.Render("Signing in..."))
		b.WriteString("\n")
	}
	if s.errMsg != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
		b.WriteString("\n")
	}

	card := components.PanelCard(b.String(), cw)
	return components.PanelFrame(card, width, height)
}
