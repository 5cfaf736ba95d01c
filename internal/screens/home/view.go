package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nilabh/campusmate/internal/ui/components"
	"github.com/nilabh/campusmate/internal/ui/theme"
)

// Block-letter title, with a compact fallback for narrow terminals.
const titleFull = ` ██████╗ █████╗ ███╗   ███╗██████╗ ██╗   ██╗███████╗███╗   ███╗ █████╗ ████████╗███████╗
██╔════╝██╔══██╗████╗ ████║██╔══██╗██║   ██║██╔════╝████╗ ████║██╔══██╗╚══██╔══╝██╔════╝
██║     ███████║██╔████╔██║██████╔╝██║   ██║███████╗██╔████╔██║███████║   ██║   █████╗
██║     ██╔══██║██║╚██╔╝██║██╔═══╝ ██║   ██║╚════██║██║╚██╔╝██║██╔══██║   ██║   ██╔══╝
╚██████╗██║  ██║██║ ╚═╝ ██║██║     ╚██████╔╝███████║██║ ╚═╝ ██║██║  ██║   ██║   ███████╗
 ╚═════╝╚═╝  ╚═╝╚═╝     ╚═╝╚═╝      ╚═════╝ ╚══════╝╚═╝     ╚═╝╚═╝  ╚═╝   ╚═╝   ╚══════╝`

const titleCompact = "C · A · M · P · U · S · M · A · T · E"

func (h *HomeScreen) View(width, height int) string {
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string

	sections = append(sections, h.renderTitle(cw, compact))

	if greeting := h.renderGreeting(cw); greeting != "" {
		sections = append(sections, greeting)
	}

	sections = append(sections, h.renderStatsBar(cw))
	sections = append(sections, h.renderMenu(cw))

	content := strings.Join(sections, "\n\n")
	return components.PanelFrame(content, width, height)
}

func (h *HomeScreen) renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	title := titleFull
	if compact || cw < 90 {
		title = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(title))
}

func (h *HomeScreen) renderGreeting(cw int) string {
	sess := h.manager.Current()
	if sess == nil || sess.Profile.FullName == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Welcome back, " + sess.Profile.FullName)
}

func (h *HomeScreen) renderStatsBar(cw int) string {
	sessions := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("%d", h.stats.Sessions))
	answered := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("%d", h.stats.Answered))
	accuracy := lipgloss.NewStyle().Foreground(theme.Success).Bold(true).
		Render(fmt.Sprintf("%.0f%%", h.stats.Accuracy()*100))
	dim := lipgloss.NewStyle().Foreground(theme.TextDim)

	line := sessions + dim.Render(" quizzes   ") +
		answered + dim.Render(" answered   ") +
		accuracy + dim.Render(" accuracy")

	return components.PanelCard(line, cw)
}

func (h *HomeScreen) renderMenu(cw int) string {
	buttonWidth := cw - 8
	if buttonWidth < 20 {
		buttonWidth = 20
	}
	var rows []string
	for i, label := range h.menuLabels {
		rows = append(rows, components.PanelButton(label, i == h.menu.Selected, buttonWidth))
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(rows, "\n"))
}
