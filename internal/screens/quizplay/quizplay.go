// Package quizplay implements the active quiz screen. The session
// state machine lives in the quiz package; this screen translates key
// events into controller calls and step responses into messages.
package quizplay

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/nilabh/campusmate/internal/api"
	"github.com/nilabh/campusmate/internal/quiz"
	"github.com/nilabh/campusmate/internal/router"
	"github.com/nilabh/campusmate/internal/screen"
	"github.com/nilabh/campusmate/internal/screens/summary"
	"github.com/nilabh/campusmate/internal/store"
	"github.com/nilabh/campusmate/internal/ui/components"
	"github.com/nilabh/campusmate/internal/ui/layout"
)

// PlayScreen runs one quiz session.
type PlayScreen struct {
	client  *api.Client
	storage *store.Store
	userKey string

	ctrl       *quiz.Controller
	pendingReq *quiz.StepRequest
	selected   int
	input      components.TextInput

	showQuitConfirm bool
	startErr        string
}

var _ screen.Screen = (*PlayScreen)(nil)
var _ screen.KeyHintProvider = (*PlayScreen)(nil)

// New creates a play screen for the given configuration. The first
// step request is issued from Init.
func New(client *api.Client, storage *store.Store, userKey string, cfg quiz.SessionConfig) *PlayScreen {
	s := &PlayScreen{
		client:  client,
		storage: storage,
		userKey: userKey,
		ctrl:    quiz.NewController(),
		input:   components.NewTextInput("Type your answer...", false, 80),
	}
	req, err := s.ctrl.Start(cfg)
	if err != nil {
		s.startErr = err.Error()
		return s
	}
	s.pendingReq = &req
	return s
}

func (s *PlayScreen) Init() tea.Cmd {
	if s.pendingReq == nil {
		return nil
	}
	req := *s.pendingReq
	s.pendingReq = nil
	return s.fetchStep(req)
}

func (s *PlayScreen) Title() string {
	return "Quiz"
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	if s.showQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End quiz"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.ctrl.Phase() {
	case quiz.PhaseAnswered:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next question"},
			{Key: "Esc", Description: "End quiz"},
		}
	case quiz.PhaseError:
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Esc", Description: "End quiz"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "End quiz"},
	}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case stepResultMsg:
		return s.handleStepResult(msg)

	case quizEndMsg:
		return s.finish()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.textEntryActive() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *PlayScreen) handleStepResult(msg stepResultMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.ctrl.ApplyError(msg.SessionID, msg.Err)
		return s, nil
	}
	if !s.ctrl.ApplyStep(msg.SessionID, msg.Step) {
		return s, nil
	}

	if s.ctrl.Phase() == quiz.PhaseComplete {
		return s.finish()
	}

	// Fresh question: reset the answer widgets.
	s.selected = 0
	if q := s.ctrl.CurrentQuestion(); q != nil && q.Type() == quiz.TypeFillBlank {
		s.input = components.NewTextInput("Type your answer...", false, 80)
		return s, s.input.Init()
	}
	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.startErr != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.showQuitConfirm {
		switch key {
		case "y", "Y":
			s.showQuitConfirm = false
			return s, func() tea.Msg { return quizEndMsg{} }
		case "n", "N", "esc":
			s.showQuitConfirm = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		s.showQuitConfirm = true
		return s, nil
	case "ctrl+c":
		return s, tea.Quit
	}

	switch s.ctrl.Phase() {
	case quiz.PhaseQuestion:
		return s.handleQuestionKey(msg)
	case quiz.PhaseAnswered:
		if key == "enter" || key == " " {
			return s.advance()
		}
	case quiz.PhaseError:
		if key == "r" || key == "R" {
			if req, ok := s.ctrl.Retry(); ok {
				return s, s.fetchStep(req)
			}
		}
	}
	return s, nil
}

func (s *PlayScreen) handleQuestionKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	q := s.ctrl.CurrentQuestion()
	if q == nil {
		return s, nil
	}
	key := msg.String()

	if s.textEntryActive() {
		if key == "enter" {
			return s.submit(s.input.Value())
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}

	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(q.Options)-1 {
			s.selected++
		}
	case "enter":
		if s.selected < len(q.Options) {
			return s.submit(q.Options[s.selected].ID)
		}
	case "1", "2", "3", "4":
		i := int(key[0] - '1')
		if i < len(q.Options) {
			s.selected = i
			return s.submit(q.Options[i].ID)
		}
	}
	return s, nil
}

func (s *PlayScreen) textEntryActive() bool {
	q := s.ctrl.CurrentQuestion()
	return s.ctrl.Phase() == quiz.PhaseQuestion && q != nil && q.Type() == quiz.TypeFillBlank
}

func (s *PlayScreen) submit(raw string) (screen.Screen, tea.Cmd) {
	q := s.ctrl.CurrentQuestion()
	fb, ok := s.ctrl.Submit(raw)
	if !ok || q == nil {
		return s, nil
	}

	if s.storage != nil && s.userKey != "" {
		cfg := s.ctrl.Config()
		_ = s.storage.Activity().RecordAnswer(context.Background(), store.AnswerRecord{
			UserKey:      s.userKey,
			SessionID:    s.ctrl.SessionID(),
			QuestionID:   q.QuestionID,
			Topic:        cfg.Topic,
			Difficulty:   string(q.Difficulty),
			ConceptLabel: q.ConceptLabel,
			Answer:       strings.TrimSpace(raw),
			Correct:      fb.WasCorrect,
		})
	}
	return s, nil
}

func (s *PlayScreen) advance() (screen.Screen, tea.Cmd) {
	req, ok := s.ctrl.Advance()
	if !ok {
		return s, nil
	}
	return s, s.fetchStep(req)
}

// finish records the session locally and swaps in the summary screen.
func (s *PlayScreen) finish() (screen.Screen, tea.Cmd) {
	history := s.ctrl.History()
	cfg := s.ctrl.Config()
	sessionID := s.ctrl.SessionID()

	if s.storage != nil && s.userKey != "" && len(history) > 0 {
		correct := 0
		for _, turn := range history {
			if turn.WasCorrect {
				correct++
			}
		}
		_ = s.storage.Activity().FinishSession(context.Background(), store.SessionRecord{
			UserKey:        s.userKey,
			SessionID:      sessionID,
			Topic:          cfg.Topic,
			KnowledgeLevel: string(cfg.KnowledgeLevel),
			SourceMode:     string(cfg.SourceMode),
			TotalQuestions: len(history),
			CorrectAnswers: correct,
		})
	}

	client, storage, userKey := s.client, s.storage, s.userKey
	sum := summary.New(client, storage, userKey, summary.Input{
		Config:    cfg,
		SessionID: sessionID,
		History:   history,
		Summary:   s.ctrl.CurrentSummary(),
		Restart: func() screen.Screen {
			return New(client, storage, userKey, cfg)
		},
	})
	return s, func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: sum}
	}
}

// fetchStep issues one step request off the update loop.
func (s *PlayScreen) fetchStep(req quiz.StepRequest) tea.Cmd {
	client := s.client
	return func() tea.Msg {
		step, err := client.NextStep(context.Background(), req)
		return stepResultMsg{SessionID: req.SessionID, Step: step, Err: err}
	}
}
