// Package quizsetup implements the quiz builder form: topic, level,
// question count and study-material source.
package quizsetup

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/nilabh/campusmate/internal/api"
	"github.com/nilabh/campusmate/internal/quiz"
	"github.com/nilabh/campusmate/internal/router"
	"github.com/nilabh/campusmate/internal/screen"
	"github.com/nilabh/campusmate/internal/screens/quizplay"
	"github.com/nilabh/campusmate/internal/store"
	"github.com/nilabh/campusmate/internal/ui/components"
	"github.com/nilabh/campusmate/internal/ui/layout"
)

const (
	fieldTopic = iota
	fieldLevel
	fieldCount
	fieldSource
	fieldDocument
	fieldStart
)

var levels = []quiz.KnowledgeLevel{quiz.LevelBeginner, quiz.LevelIntermediate, quiz.LevelAdvanced}

var sources = []quiz.SourceMode{quiz.SourceLatest, quiz.SourcePrevious, quiz.SourceAll, quiz.SourceCustom}

// SetupScreen collects a quiz configuration before the first question
// is requested.
type SetupScreen struct {
	client  *api.Client
	storage *store.Store
	userKey string

	topic       components.TextInput
	count       components.TextInput
	levelIdx    int
	sourceIdx   int
	docIdx      int
	documents   []api.Document
	docsLoading bool
	docsErr     string

	focused int
	errMsg  string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

type documentsLoadedMsg struct {
	Documents []api.Document
	Err       error
}

// New creates the quiz setup screen, seeding the form from the user's
// previous choices.
func New(client *api.Client, storage *store.Store, userKey string) *SetupScreen {
	s := &SetupScreen{
		client:   client,
		storage:  storage,
		userKey:  userKey,
		topic:    components.NewTextInput("e.g. Operating Systems", false, 80),
		count:    components.NewTextInput(fmt.Sprintf("%d", quiz.DefaultQuestions), true, 2),
		levelIdx: 1, // intermediate
	}

	if storage != nil && userKey != "" {
		ctx := context.Background()
		if topic, err := storage.Prefs().Get(ctx, userKey, store.PrefLastTopic, ""); err == nil && topic != "" {
			s.topic.Model.SetValue(topic)
		}
		if level, err := storage.Prefs().Get(ctx, userKey, store.PrefLastLevel, ""); err == nil {
			for i, l := range levels {
				if string(l) == level {
					s.levelIdx = i
				}
			}
		}
		if count, err := storage.Prefs().Get(ctx, userKey, store.PrefQuestionCount, ""); err == nil && count != "" {
			s.count.Model.SetValue(count)
		}
	}

	return s
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.topic.Init()
}

func (s *SetupScreen) Title() string {
	return "New quiz"
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "←/→", Description: "Change choice"},
		{Key: "Enter", Description: "Start"},
		{Key: "Esc", Description: "Back"},
	}
}

// config assembles the current form state.
func (s *SetupScreen) config() quiz.SessionConfig {
	cfg := quiz.SessionConfig{
		Topic:          strings.TrimSpace(s.topic.Value()),
		KnowledgeLevel: levels[s.levelIdx],
		SourceMode:     sources[s.sourceIdx],
	}
	if n, err := s.count.NumericValue(); err == nil {
		cfg.TotalQuestions = n
	} else {
		cfg.TotalQuestions = quiz.DefaultQuestions
	}
	if cfg.SourceMode == quiz.SourceCustom && s.docIdx < len(s.documents) {
		cfg.SourceID = s.documents[s.docIdx].ID
	}
	return cfg
}

// canStart reports whether the form is complete.
func (s *SetupScreen) canStart() bool {
	cfg := s.config().Normalize()
	return cfg.Validate() == nil
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case documentsLoadedMsg:
		s.docsLoading = false
		if msg.Err != nil {
			s.docsErr = msg.Err.Error()
			return s, nil
		}
		s.documents = msg.Documents
		s.docIdx = 0
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.focused == fieldTopic || s.focused == fieldCount {
		return s, s.updateInput(msg)
	}
	return s, nil
}

func (s *SetupScreen) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch s.focused {
	case fieldTopic:
		s.topic, cmd = s.topic.Update(msg)
	case fieldCount:
		s.count, cmd = s.count.Update(msg)
	}
	return cmd
}

func (s *SetupScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab", "down":
		return s, s.focusField(s.nextField(1))
	case "shift+tab", "up":
		return s, s.focusField(s.nextField(-1))
	case "left", "right":
		return s.cycleChoice(msg.String() == "right")
	case "enter":
		if s.focused == fieldStart {
			return s.start()
		}
		return s, s.focusField(s.nextField(1))
	}

	s.errMsg = ""
	return s, s.updateInput(msg)
}

// nextField steps over the document picker unless a custom source is
// selected.
func (s *SetupScreen) nextField(dir int) int {
	i := s.focused
	for {
		i = (i + dir + fieldStart + 1) % (fieldStart + 1)
		if i == fieldDocument && sources[s.sourceIdx] != quiz.SourceCustom {
			continue
		}
		return i
	}
}

func (s *SetupScreen) focusField(i int) tea.Cmd {
	s.topic.Model.Blur()
	s.count.Model.Blur()
	s.focused = i
	switch i {
	case fieldTopic:
		return s.topic.Init()
	case fieldCount:
		return s.count.Init()
	}
	return nil
}

func (s *SetupScreen) cycleChoice(forward bool) (screen.Screen, tea.Cmd) {
	dir := 1
	if !forward {
		dir = -1
	}
	switch s.focused {
	case fieldLevel:
		s.levelIdx = (s.levelIdx + dir + len(levels)) % len(levels)
	case fieldSource:
		s.sourceIdx = (s.sourceIdx + dir + len(sources)) % len(sources)
		if sources[s.sourceIdx] == quiz.SourceCustom && s.documents == nil && !s.docsLoading {
			return s, s.loadDocuments()
		}
	case fieldDocument:
		if len(s.documents) > 0 {
			s.docIdx = (s.docIdx + dir + len(s.documents)) % len(s.documents)
		}
	}
	return s, nil
}

func (s *SetupScreen) loadDocuments() tea.Cmd {
	s.docsLoading = true
	s.docsErr = ""
	client := s.client
	return func() tea.Msg {
		docs, err := client.Documents(context.Background())
		return documentsLoadedMsg{Documents: docs, Err: err}
	}
}

func (s *SetupScreen) start() (screen.Screen, tea.Cmd) {
	cfg := s.config().Normalize()
	if err := cfg.Validate(); err != nil {
		s.errMsg = "Pick a document for the custom source."
		return s, nil
	}
	if cfg.Topic == "" {
		s.errMsg = "Enter a topic first."
		return s, nil
	}

	if s.storage != nil && s.userKey != "" {
		ctx := context.Background()
		_ = s.storage.Prefs().Set(ctx, s.userKey, store.PrefLastTopic, cfg.Topic)
		_ = s.storage.Prefs().Set(ctx, s.userKey, store.PrefLastLevel, string(cfg.KnowledgeLevel))
		_ = s.storage.Prefs().Set(ctx, s.userKey, store.PrefQuestionCount, fmt.Sprintf("%d", cfg.TotalQuestions))
	}

	play := quizplay.New(s.client, s.storage, s.userKey, cfg)
	return s, func() tea.Msg {
		return router.PushScreenMsg{Screen: play}
	}
}
