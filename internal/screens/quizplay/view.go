package quizplay

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nilabh/campusmate/internal/quiz"
	"github.com/nilabh/campusmate/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	if s.startErr != "" {
		return renderError(width, s.startErr)
	}
	if s.showQuitConfirm {
		return renderQuitConfirm(width)
	}

	switch s.ctrl.Phase() {
	case quiz.PhaseAwaiting, quiz.PhaseIdle:
		return s.renderLoading(width)
	case quiz.PhaseError:
		return s.renderStepError(width)
	case quiz.PhaseAnswered:
		return s.renderFeedback(width)
	}
	return s.renderQuestion(width)
}

func (s *PlayScreen) renderQuestion(width int) string {
	q := s.ctrl.CurrentQuestion()
	if q == nil {
		return s.renderLoading(width)
	}

	var b strings.Builder
	b.WriteString(s.renderStatusLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	prompt := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Prompt)
	b.WriteString(prompt)
	b.WriteString("\n\n")

	if q.Type() == quiz.TypeFillBlank {
		answerLine := lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Render("Answer: " + s.input.View())
		b.WriteString(answerLine)
	} else {
		b.WriteString(s.renderOptions(width, q))
	}

	if strip := s.renderHistoryStrip(width); strip != "" {
		b.WriteString("\n\n")
		b.WriteString(strip)
	}

	return b.String()
}

// renderHistoryStrip shows one tick per answered question.
func (s *PlayScreen) renderHistoryStrip(width int) string {
	history := s.ctrl.History()
	if len(history) == 0 {
		return ""
	}
	var marks []string
	for _, turn := range history {
		if turn.WasCorrect {
			marks = append(marks, lipgloss.NewStyle().Foreground(theme.Success).Render("✓"))
		} else {
			marks = append(marks, lipgloss.NewStyle().Foreground(theme.Error).Render("✗"))
		}
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("So far: ")+strings.Join(marks, " "))
}

// renderStatusLine shows topic, progress, source and the advisory
// difficulty band.
func (s *PlayScreen) renderStatusLine(width int) string {
	cfg := s.ctrl.Config()

	left := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s", cfg.Topic))

	answered := s.ctrl.AnsweredCount()
	right := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s  %s",
			answered+1,
			cfg.TotalQuestions,
			renderDifficultyBadge(s.ctrl.DifficultyHint()),
			s.ctrl.SourceLabel(),
		))

	line := left
	pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 4
	if pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	return line
}

func renderDifficultyBadge(d quiz.Difficulty) string {
	color := theme.Success
	switch d {
	case quiz.DifficultyMedium:
		color = theme.Accent
	case quiz.DifficultyHard:
		color = theme.Error
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(d))
}

func (s *PlayScreen) renderOptions(width int, q *quiz.Question) string {
	var b strings.Builder
	for i, opt := range q.Options {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt.Text)
		if i == s.selected {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\nSelect (1-4) or use arrows + Enter"))

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, b.String())
}

func (s *PlayScreen) renderFeedback(width int) string {
	fb := s.ctrl.Feedback()
	if fb == nil {
		return s.renderLoading(width)
	}

	var b strings.Builder
	b.WriteString("\n\n")

	if fb.WasCorrect {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Success).
			Bold(true).
			Render("Correct!"))
	} else {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Bold(true).
			Render("Not quite"))
		if fb.CorrectOptionText != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().
				Width(width).
				Align(lipgloss.Center).
				Foreground(theme.TextDim).
				Render(fmt.Sprintf("Correct answer: %s", fb.CorrectOptionText)))
		}
	}

	b.WriteString("\n\n")

	if fb.Explanation != "" {
		exp := lipgloss.NewStyle().
			Width(min(width-8, 70)).
			Foreground(theme.Text).
			Render(fb.Explanation)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, exp))
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Press Enter for the next question..."))

	return b.String()
}

func (s *PlayScreen) renderStepError(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Bold(true).
		Render("Couldn't reach the quiz service"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(s.ctrl.Err()))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(fmt.Sprintf("Your %d answered questions are safe.", s.ctrl.AnsweredCount())))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("[R] Retry    [Esc] End quiz"))
	return b.String()
}

func (s *PlayScreen) renderLoading(width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  Fetching the next question...")
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render("End this quiz early?"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("You'll see a summary of what you answered so far."))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] Yes, end quiz"))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] No, keep going"))
	return b.String()
}

func renderError(width int, errMsg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render(fmt.Sprintf("\n\n\n  Error: %s\n\n  Press any key to go back.", errMsg))
}
