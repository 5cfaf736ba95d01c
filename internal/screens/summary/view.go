package summary

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nilabh/campusmate/internal/ui/components"
	"github.com/nilabh/campusmate/internal/ui/theme"
)

func (s *SummaryScreen) View(width, height int) string {
	sum := s.result

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Quiz complete!"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("%s · %s", s.input.Config.Topic, s.input.Config.KnowledgeLevel)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Questions: %d        Correct: %d        Accuracy: %.0f%%",
		sum.TotalQuestions, sum.CorrectCount, sum.Accuracy*100)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n")

	bar := components.NewProgressBar("", sum.Accuracy, true, min(width-8, 48))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, bar.View()))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))

	if len(sum.ConceptBreakdown) > 0 {
		b.WriteString(sectionHeader(width, divider, "Concepts"))
		for _, cb := range sum.ConceptBreakdown {
			line := fmt.Sprintf("  %-28s %d/%d correct   %.0f%%",
				cb.Concept, cb.Correct, cb.Attempts, cb.Accuracy*100)
			style := lipgloss.NewStyle().Foreground(theme.Text)
			if cb.Accuracy < 0.5 {
				style = style.Foreground(theme.Error)
			}
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(sum.DifficultyBreakdown) > 0 {
		b.WriteString(sectionHeader(width, divider, "Difficulty"))
		for _, db := range sum.DifficultyBreakdown {
			line := fmt.Sprintf("  %-10s %d/%d correct   %.0f%%",
				db.Difficulty, db.Correct, db.Attempts, db.Accuracy*100)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Text).Render(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(sum.RecommendedConcepts) > 0 {
		b.WriteString(sectionHeader(width, divider, "Study next"))
		for _, c := range sum.RecommendedConcepts {
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.Accent).Render("  ▸ "+c)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if past := s.priorSessions(5); len(past) > 0 {
		b.WriteString(sectionHeader(width, divider, "Past sessions"))
		for _, opt := range past {
			label := opt.PrimarySource
			if label == "" {
				label = shortSessionID(opt.SessionID)
			}
			line := fmt.Sprintf("  %-28s %d attempts   %.0f%%",
				label, opt.Attempts, opt.Accuracy*100)
			b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(line)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if s.analytics != nil && s.analytics.Attempts > 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("Server view: %d attempts, %.0f%% accuracy",
				s.analytics.Attempts, s.analytics.Accuracy*100)))
		b.WriteString("\n\n")
	}

	actions := "[N] New topic    [Esc] Home"
	if s.input.Restart != nil {
		actions = "[P] Practise again    " + actions
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(actions))

	return b.String()
}

func sectionHeader(width int, divider, label string) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)) +
		"\n" +
		lipgloss.PlaceHorizontal(width, lipgloss.Center, divider) +
		"\n\n"
}
