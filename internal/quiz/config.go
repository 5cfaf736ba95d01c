package quiz

import (
	"errors"
	"strings"
)

const (
	// MinQuestions and MaxQuestions bound a session's configured length.
	MinQuestions = 1
	MaxQuestions = 25

	// DefaultQuestions is the builder's preselected session length.
	DefaultQuestions = 5
)

// SessionConfig describes one quiz session. It is created at session
// start and stays immutable until an explicit restart.
type SessionConfig struct {
	Topic          string
	KnowledgeLevel KnowledgeLevel
	TotalQuestions int
	SourceMode     SourceMode
	SourceID       string
}

// ErrSourceRequired is returned when sourceMode is custom but no
// document was selected.
var ErrSourceRequired = errors.New("custom source mode requires a document selection")

// Normalize trims the topic, defaults the knowledge level, and clamps
// TotalQuestions into [MinQuestions, MaxQuestions].
func (c SessionConfig) Normalize() SessionConfig {
	c.Topic = strings.TrimSpace(c.Topic)
	if c.KnowledgeLevel == "" {
		c.KnowledgeLevel = LevelIntermediate
	}
	if c.SourceMode == "" {
		c.SourceMode = SourceLatest
	}
	if c.TotalQuestions < MinQuestions {
		c.TotalQuestions = MinQuestions
	}
	if c.TotalQuestions > MaxQuestions {
		c.TotalQuestions = MaxQuestions
	}
	return c
}

// Validate reports whether the config can start a session. The builder
// screen disables its start action on failure; the controller rejects
// an invalid config at Start as well.
func (c SessionConfig) Validate() error {
	if c.SourceMode == SourceCustom && strings.TrimSpace(c.SourceID) == "" {
		return ErrSourceRequired
	}
	return nil
}

// SourceModeLabel returns the display label for a source mode.
func SourceModeLabel(mode SourceMode) string {
	switch mode {
	case SourceLatest:
		return "Newest upload"
	case SourcePrevious:
		return "Previous upload"
	case SourceAll:
		return "All documents"
	case SourceCustom:
		return "Specific document"
	}
	return string(mode)
}
