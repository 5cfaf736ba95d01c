package documents

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nilabh/campusmate/internal/store"
	"github.com/nilabh/campusmate/internal/ui/theme"
)

func (s *DocumentsScreen) View(width, height int) string {
	if s.detail != nil {
		return s.renderDetail(width)
	}

	var b strings.Builder

	if s.loading {
		b.WriteString(theme.Hint.Render("\n  Loading your library..."))
		return b.String()
	}
	if s.loadErr != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("\n  " + s.loadErr))
		b.WriteString(theme.Hint.Render("\n\n  [R] Retry"))
		return b.String()
	}

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  Library"))
	b.WriteString("\n\n")

	if len(s.docs) == 0 {
		b.WriteString(theme.Hint.Render("  Nothing here yet. Press U to upload your first document."))
		b.WriteString("\n")
	}
	for i, doc := range s.docs {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		line := fmt.Sprintf("%s%s", prefix, doc.Title)
		if len(doc.Tags) > 0 {
			line += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + strings.Join(doc.Tags, ", "))
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if len(s.queue) > 0 {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  Upload queue"))
		b.WriteString("\n\n")
		for _, item := range s.queue {
			b.WriteString("  " + renderQueueRow(item))
			b.WriteString("\n")
		}
	}

	if s.uploadActive {
		b.WriteString("\n")
		b.WriteString(theme.Selected.Render("  Upload a file"))
		b.WriteString("\n  ")
		b.WriteString(s.uploadInput.View())
		b.WriteString("\n")
		if s.uploadErr != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Error).Render("  " + s.uploadErr))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func renderQueueRow(item store.UploadItem) string {
	var badge string
	switch item.State {
	case store.UploadPending:
		badge = lipgloss.NewStyle().Foreground(theme.TextDim).Render("[queued]")
	case store.UploadUploading:
		badge = lipgloss.NewStyle().Foreground(theme.Accent).Render("[uploading]")
	case store.UploadDone:
		badge = lipgloss.NewStyle().Foreground(theme.Success).Render("[done]")
	case store.UploadFailed:
		badge = lipgloss.NewStyle().Foreground(theme.Error).Render("[failed]")
	}
	row := fmt.Sprintf("%s %s  (%.1f KB)", badge, item.FileName, float64(item.SizeBytes)/1024)
	if item.State == store.UploadFailed && item.Error != "" {
		row += lipgloss.NewStyle().Foreground(theme.Error).Render("  " + item.Error)
	}
	return row
}

func (s *DocumentsScreen) renderDetail(width int) string {
	d := s.detail
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  " + d.Source))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("  %d indexed passages", d.ChunkCount)))
	if d.IngestedAt != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("  ·  ingested " + d.IngestedAt))
	}
	b.WriteString("\n\n")

	if d.Summary != "" {
		summary := lipgloss.NewStyle().
			Width(min(width-8, 76)).
			Foreground(theme.Text).
			Render(d.Summary)
		b.WriteString("  " + strings.ReplaceAll(summary, "\n", "\n  "))
		b.WriteString("\n\n")
	}

	shown := 0
	for _, chunk := range d.Chunks {
		if shown >= 3 {
			break
		}
		text := chunk.Text
		if len(text) > 200 {
			text = text[:200] + "..."
		}
		block := lipgloss.NewStyle().
			Width(min(width-8, 76)).
			Foreground(theme.TextDim).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1).
			Render(text)
		b.WriteString("  " + strings.ReplaceAll(block, "\n", "\n  "))
		b.WriteString("\n")
		shown++
	}

	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("  Esc to go back"))
	return b.String()
}
