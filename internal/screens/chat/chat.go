// Package chat implements the study assistant conversation screen.
package chat

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/nilabh/campusmate/internal/api"
	"github.com/nilabh/campusmate/internal/router"
	"github.com/nilabh/campusmate/internal/screen"
	"github.com/nilabh/campusmate/internal/ui/components"
	"github.com/nilabh/campusmate/internal/ui/layout"
)

const offlineReply = "I can't reach the assistant right now. Your question is still shown above; try asking again in a moment."

// ChatScreen holds the running conversation with the study assistant.
type ChatScreen struct {
	client *api.Client

	turns   []api.ChatTurn
	input   components.TextInput
	waiting bool
}

var _ screen.Screen = (*ChatScreen)(nil)
var _ screen.KeyHintProvider = (*ChatScreen)(nil)

type answerMsg struct {
	Question string
	Answer   string
	Offline  bool
}

// New creates the chat screen.
func New(client *api.Client) *ChatScreen {
	return &ChatScreen{
		client: client,
		input:  components.NewTextInput("Ask anything about your study material...", false, 200),
	}
}

func (s *ChatScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *ChatScreen) Title() string {
	return "Ask"
}

func (s *ChatScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case answerMsg:
		s.waiting = false
		s.turns = append(s.turns, api.ChatTurn{Role: "assistant", Content: msg.Answer})
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			return s.send()
		}
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *ChatScreen) send() (screen.Screen, tea.Cmd) {
	question := strings.TrimSpace(s.input.Value())
	if question == "" || s.waiting {
		return s, nil
	}

	// Snapshot the history before appending the new question; the
	// request carries the prior turns as context.
	history := make([]api.ChatTurn, len(s.turns))
	copy(history, s.turns)

	s.turns = append(s.turns, api.ChatTurn{Role: "user", Content: question})
	s.input = components.NewTextInput("Ask anything about your study material...", false, 200)
	s.waiting = true

	client := s.client
	return s, tea.Batch(s.input.Init(), func() tea.Msg {
		resp, err := client.Ask(context.Background(), api.ChatRequest{
			Message:      question,
			Conversation: history,
		})
		if err != nil {
			return answerMsg{Question: question, Answer: offlineReply, Offline: true}
		}
		answer := resp.Message
		if len(resp.Sources) > 0 {
			answer += "\n\nSources: " + strings.Join(resp.Sources, ", ")
		}
		return answerMsg{Question: question, Answer: answer}
	})
}
