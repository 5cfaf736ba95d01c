package chat

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nilabh/campusmate/internal/ui/theme"
)

func (s *ChatScreen) View(width, height int) string {
	var b strings.Builder

	if len(s.turns) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("\nAsk a question about your uploaded notes and documents.\n"))
	}

	bubbleWidth := min(width-8, 72)
	userStyle := lipgloss.NewStyle().
		Width(bubbleWidth).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(0, 1)
	assistantStyle := lipgloss.NewStyle().
		Width(bubbleWidth).
		Foreground(theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	// Show as many of the latest turns as fit above the input line.
	budget := height - 4
	var rendered []string
	for i := len(s.turns) - 1; i >= 0 && budget > 0; i-- {
		turn := s.turns[i]
		var block string
		if turn.Role == "user" {
			block = lipgloss.PlaceHorizontal(width, lipgloss.Right, userStyle.Render(turn.Content))
		} else {
			block = lipgloss.PlaceHorizontal(width, lipgloss.Left, assistantStyle.Render(turn.Content))
		}
		budget -= lipgloss.Height(block)
		if budget < 0 {
			break
		}
		rendered = append([]string{block}, rendered...)
	}
	b.WriteString(strings.Join(rendered, "\n"))
	b.WriteString("\n\n")

	if s.waiting {
		b.WriteString(theme.Hint.Render("  Thinking..."))
		b.WriteString("\n")
	}
	b.WriteString("  " + s.input.View())

	return b.String()
}
