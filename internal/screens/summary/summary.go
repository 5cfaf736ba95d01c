// Package summary displays the end-of-quiz results: score, per-concept
// and per-difficulty breakdowns, and what to study next.
package summary

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/nilabh/campusmate/internal/api"
	"github.com/nilabh/campusmate/internal/quiz"
	"github.com/nilabh/campusmate/internal/router"
	"github.com/nilabh/campusmate/internal/screen"
	"github.com/nilabh/campusmate/internal/store"
	"github.com/nilabh/campusmate/internal/ui/layout"
)

// Input is everything the summary needs from the finished session.
type Input struct {
	Config    quiz.SessionConfig
	SessionID string
	History   []quiz.HistoryTurn
	// Summary is the backend's aggregate, nil when the session ended
	// before the complete step arrived.
	Summary *quiz.Summary
	// Restart builds a fresh play screen with the same configuration.
	Restart func() screen.Screen
}

// SummaryScreen shows the session result.
type SummaryScreen struct {
	client  *api.Client
	storage *store.Store
	userKey string
	input   Input

	result       quiz.Summary
	analytics    *api.SessionOption
	pastSessions []api.SessionOption
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

type analyticsLoadedMsg struct {
	SessionID string
	Summary   *api.SessionOption
}

type optionsLoadedMsg struct {
	Sessions []api.SessionOption
}

// New creates the summary screen. When the backend never sent its
// aggregate the result is derived locally from the answered history.
func New(client *api.Client, storage *store.Store, userKey string, input Input) *SummaryScreen {
	s := &SummaryScreen{
		client:  client,
		storage: storage,
		userKey: userKey,
		input:   input,
	}
	if input.Summary != nil {
		s.result = *input.Summary
	} else {
		s.result = Derive(input.History)
	}
	return s
}

// Derive builds a summary from the answered turns alone.
func Derive(history []quiz.HistoryTurn) quiz.Summary {
	sum := quiz.Summary{TotalQuestions: len(history)}
	concepts := map[string]*quiz.ConceptBreakdown{}
	difficulties := map[quiz.Difficulty]*quiz.DifficultyBreakdown{}
	var conceptOrder []string
	var difficultyOrder []quiz.Difficulty

	for _, turn := range history {
		if turn.WasCorrect {
			sum.CorrectCount++
		} else {
			sum.IncorrectCount++
		}

		label := turn.ConceptLabel
		if label == "" {
			label = "General"
		}
		cb, ok := concepts[label]
		if !ok {
			cb = &quiz.ConceptBreakdown{Concept: label}
			concepts[label] = cb
			conceptOrder = append(conceptOrder, label)
		}
		cb.Attempts++
		if turn.WasCorrect {
			cb.Correct++
		} else {
			cb.Incorrect++
		}

		db, ok := difficulties[turn.Difficulty]
		if !ok {
			db = &quiz.DifficultyBreakdown{Difficulty: turn.Difficulty}
			difficulties[turn.Difficulty] = db
			difficultyOrder = append(difficultyOrder, turn.Difficulty)
		}
		db.Attempts++
		if turn.WasCorrect {
			db.Correct++
		} else {
			db.Incorrect++
		}
	}

	if sum.TotalQuestions > 0 {
		sum.Accuracy = float64(sum.CorrectCount) / float64(sum.TotalQuestions)
	}
	for _, label := range conceptOrder {
		cb := *concepts[label]
		cb.Accuracy = float64(cb.Correct) / float64(cb.Attempts)
		sum.ConceptBreakdown = append(sum.ConceptBreakdown, cb)
		if cb.Accuracy < 0.5 {
			sum.RecommendedConcepts = append(sum.RecommendedConcepts, label)
		}
	}
	for _, d := range difficultyOrder {
		db := *difficulties[d]
		db.Accuracy = float64(db.Correct) / float64(db.Attempts)
		sum.DifficultyBreakdown = append(sum.DifficultyBreakdown, db)
	}
	return sum
}

func (s *SummaryScreen) Init() tea.Cmd {
	if s.client == nil || s.input.SessionID == "" {
		return nil
	}
	client := s.client
	sessionID := s.input.SessionID
	return tea.Batch(
		func() tea.Msg {
			sum, err := client.SessionAnalytics(context.Background(), sessionID)
			if err != nil {
				// The local result stands on its own.
				return analyticsLoadedMsg{SessionID: sessionID}
			}
			return analyticsLoadedMsg{SessionID: sessionID, Summary: sum}
		},
		func() tea.Msg {
			opts, err := client.QuizAnalyticsOptions(context.Background())
			if err != nil {
				return optionsLoadedMsg{}
			}
			return optionsLoadedMsg{Sessions: opts.Sessions}
		},
	)
}

// priorSessions returns up to limit past sessions from the analytics
// options, skipping the one just finished.
func (s *SummaryScreen) priorSessions(limit int) []api.SessionOption {
	var out []api.SessionOption
	for _, opt := range s.pastSessions {
		if opt.SessionID == s.input.SessionID {
			continue
		}
		out = append(out, opt)
		if len(out) == limit {
			break
		}
	}
	return out
}

func shortSessionID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func (s *SummaryScreen) Title() string {
	return "Quiz summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{}
	if s.input.Restart != nil {
		hints = append(hints, layout.KeyHint{Key: "P", Description: "Practise again"})
	}
	return append(hints,
		layout.KeyHint{Key: "N", Description: "New topic"},
		layout.KeyHint{Key: "Esc", Description: "Home"},
	)
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case analyticsLoadedMsg:
		if msg.SessionID == s.input.SessionID && msg.Summary != nil {
			s.analytics = msg.Summary
		}
		return s, nil

	case optionsLoadedMsg:
		s.pastSessions = msg.Sessions
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "p", "P":
			if s.input.Restart != nil {
				restart := s.input.Restart
				return s, func() tea.Msg {
					return router.ReplaceScreenMsg{Screen: restart()}
				}
			}
		case "n", "N", "esc", "enter":
			// Back to the setup screen below on the stack.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}
