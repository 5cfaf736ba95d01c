// Package login implements the sign-in screen shown before any
// backend-facing feature is available.
package login

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/nilabh/campusmate/internal/account"
	"github.com/nilabh/campusmate/internal/api"
	"github.com/nilabh/campusmate/internal/router"
	"github.com/nilabh/campusmate/internal/screen"
	"github.com/nilabh/campusmate/internal/store"
	"github.com/nilabh/campusmate/internal/ui/components"
	"github.com/nilabh/campusmate/internal/ui/layout"
)

const (
	fieldUniversity = iota
	fieldRollNo
	fieldPassword
	fieldCount
)

// Next builds the screen shown after a successful login, typically
// the home screen. Injected to avoid an import cycle.
type Next func() screen.Screen

// LoginScreen collects credentials and exchanges them for a session.
type LoginScreen struct {
	client  *api.Client
	manager *account.Manager
	storage *store.Store
	next    Next

	inputs  [fieldCount]components.TextInput
	focused int

	notice       string
	verifiedName string
	submitting   bool
	errMsg       string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

type verifyDoneMsg struct {
	RollNo string
	Name   string
}

type loginDoneMsg struct {
	Session account.Session
	Err     error
}

// New creates the login screen.
func New(client *api.Client, manager *account.Manager, storage *store.Store, next Next) *LoginScreen {
	s := &LoginScreen{
		client:  client,
		manager: manager,
		storage: storage,
		next:    next,
	}
	s.inputs[fieldUniversity] = components.NewTextInput("University code (e.g. iitm)", false, 40)
	s.inputs[fieldRollNo] = components.NewTextInput("Roll number", false, 40)
	s.inputs[fieldPassword] = components.NewTextInput("Password", false, 64)
	s.inputs[fieldPassword].Model.EchoMode = textinput.EchoPassword
	return s
}

// SetNotice shows a one-off banner above the form, e.g. why the user
// landed back on the login screen. Cleared once typing resumes.
func (s *LoginScreen) SetNotice(text string) {
	s.notice = text
}

func (s *LoginScreen) Init() tea.Cmd {
	return s.inputs[fieldUniversity].Init()
}

func (s *LoginScreen) Title() string {
	return "Sign in"
}

func (s *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Sign in"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case verifyDoneMsg:
		// Ignore when the roll number changed since the lookup started.
		if msg.RollNo == strings.TrimSpace(s.inputs[fieldRollNo].Value()) {
			s.verifiedName = msg.Name
		}
		return s, nil

	case loginDoneMsg:
		return s.handleLoginDone(msg)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.inputs[s.focused], cmd = s.inputs[s.focused].Update(msg)
	return s, cmd
}

func (s *LoginScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.submitting {
		return s, nil
	}

	switch msg.String() {
	case "tab", "down":
		return s, s.focusField((s.focused + 1) % fieldCount)
	case "shift+tab", "up":
		return s, s.focusField((s.focused + fieldCount - 1) % fieldCount)
	case "enter":
		if s.focused < fieldPassword {
			// Moving off the roll number kicks off the name lookup.
			verify := s.focused == fieldRollNo && s.verifiedName == ""
			cmd := s.focusField(s.focused + 1)
			if verify {
				return s, tea.Batch(cmd, s.verifyRoll())
			}
			return s, cmd
		}
		return s.submit()
	}

	s.errMsg = ""
	s.notice = ""
	var cmd tea.Cmd
	s.inputs[s.focused], cmd = s.inputs[s.focused].Update(msg)
	return s, cmd
}

func (s *LoginScreen) focusField(i int) tea.Cmd {
	s.inputs[s.focused].Model.Blur()
	s.focused = i
	s.inputs[i].Model.Focus()
	return s.inputs[i].Init()
}

func (s *LoginScreen) submit() (screen.Screen, tea.Cmd) {
	university := strings.TrimSpace(s.inputs[fieldUniversity].Value())
	rollNo := strings.TrimSpace(s.inputs[fieldRollNo].Value())
	password := s.inputs[fieldPassword].Value()

	if university == "" || rollNo == "" || password == "" {
		s.inputs[fieldUniversity].Submit(university != "")
		s.inputs[fieldRollNo].Submit(rollNo != "")
		s.inputs[fieldPassword].Submit(password != "")
		s.errMsg = "All fields are required."
		return s, nil
	}

	s.submitting = true
	s.errMsg = ""
	client := s.client
	return s, func() tea.Msg {
		resp, err := client.Login(context.Background(), api.LoginRequest{
			University: university,
			RollNo:     rollNo,
			Password:   password,
		})
		if err != nil {
			return loginDoneMsg{Err: err}
		}
		return loginDoneMsg{Session: account.Session{
			Token: resp.AccessToken,
			Profile: account.Profile{
				University: resp.User.University,
				RollNo:     resp.User.RollNo,
				FullName:   resp.User.FullName,
			},
			Role: resp.User.Role,
		}}
	}
}

func (s *LoginScreen) handleLoginDone(msg loginDoneMsg) (screen.Screen, tea.Cmd) {
	s.submitting = false
	if msg.Err != nil {
		if api.IsUnauthorized(msg.Err) {
			s.errMsg = "Wrong credentials, try again."
		} else {
			s.errMsg = msg.Err.Error()
		}
		return s, nil
	}
	if err := s.manager.Save(msg.Session); err != nil {
		s.errMsg = err.Error()
		return s, nil
	}
	// Stale queued work from an earlier session must not replay under
	// the fresh credentials.
	if key := s.manager.UserKey(); key != "" {
		_ = s.storage.Uploads().ClearQueue(context.Background(), key)
	}
	next := s.next
	return s, func() tea.Msg {
		return router.ReplaceStackMsg{Screen: next()}
	}
}

// verifyRoll asks the backend whether this roll number is registered,
// so the learner sees their name before typing a password.
func (s *LoginScreen) verifyRoll() tea.Cmd {
	university := strings.TrimSpace(s.inputs[fieldUniversity].Value())
	rollNo := strings.TrimSpace(s.inputs[fieldRollNo].Value())
	if university == "" || rollNo == "" {
		return nil
	}
	client := s.client
	return func() tea.Msg {
		resp, err := client.Verify(context.Background(), university, rollNo)
		if err != nil || !resp.Exists {
			return verifyDoneMsg{RollNo: rollNo}
		}
		return verifyDoneMsg{RollNo: rollNo, Name: resp.FullName}
	}
}
