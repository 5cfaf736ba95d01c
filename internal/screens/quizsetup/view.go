package quizsetup

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nilabh/campusmate/internal/quiz"
	"github.com/nilabh/campusmate/internal/ui/components"
	"github.com/nilabh/campusmate/internal/ui/theme"
)

var levelLabels = map[quiz.KnowledgeLevel]string{
	quiz.LevelBeginner:     "Beginner",
	quiz.LevelIntermediate: "Intermediate",
	quiz.LevelAdvanced:     "Advanced",
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("Build your quiz"))
	b.WriteString("\n\n")

	b.WriteString(s.fieldLabel(fieldTopic, "Topic"))
	b.WriteString("\n")
	b.WriteString(s.topic.View())
	b.WriteString("\n\n")

	b.WriteString(s.fieldLabel(fieldLevel, "Your level"))
	b.WriteString("\n")
	b.WriteString(s.choiceRow(fieldLevel, levelLabels[levels[s.levelIdx]]))
	b.WriteString("\n\n")

	b.WriteString(s.fieldLabel(fieldCount, fmt.Sprintf("Questions (%d-%d)", quiz.MinQuestions, quiz.MaxQuestions)))
	b.WriteString("\n")
	b.WriteString(s.count.View())
	b.WriteString("\n\n")

	b.WriteString(s.fieldLabel(fieldSource, "Study material"))
	b.WriteString("\n")
	b.WriteString(s.choiceRow(fieldSource, quiz.SourceModeLabel(sources[s.sourceIdx])))
	b.WriteString("\n\n")

	if sources[s.sourceIdx] == quiz.SourceCustom {
		b.WriteString(s.fieldLabel(fieldDocument, "Document"))
		b.WriteString("\n")
		b.WriteString(s.documentRow())
		b.WriteString("\n\n")
	}

	b.WriteString(components.PanelButton("Start quiz", s.focused == fieldStart && s.canStart(), cw/2))
	b.WriteString("\n")

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}

	card := components.PanelCard(b.String(), cw)
	return components.PanelFrame(card, width, height)
}

func (s *SetupScreen) fieldLabel(field int, label string) string {
	if s.focused == field {
		return theme.Selected.Render(label)
	}
	return theme.Unselected.Render(label)
}

func (s *SetupScreen) choiceRow(field int, value string) string {
	row := fmt.Sprintf("◂ %s ▸", value)
	if s.focused == field {
		return lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(row)
	}
	return lipgloss.NewStyle().Foreground(theme.Text).Render(row)
}

func (s *SetupScreen) documentRow() string {
	switch {
	case s.docsLoading:
		return theme.Hint.Render("Loading documents...")
	case s.docsErr != "":
		return lipgloss.NewStyle().Foreground(theme.Error).Render(s.docsErr)
	case len(s.documents) == 0:
		return theme.Hint.Render("No documents uploaded yet.")
	}
	return s.choiceRow(fieldDocument, s.documents[s.docIdx].Title)
}
