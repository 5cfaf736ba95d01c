// Package documents implements the study material library screen: the
// ingested documents on the backend plus the local upload queue.
package documents

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/nilabh/campusmate/internal/api"
	"github.com/nilabh/campusmate/internal/router"
	"github.com/nilabh/campusmate/internal/screen"
	"github.com/nilabh/campusmate/internal/store"
	"github.com/nilabh/campusmate/internal/ui/components"
	"github.com/nilabh/campusmate/internal/ui/layout"
)

// DocumentsScreen lists the library and drives the upload queue.
type DocumentsScreen struct {
	client  *api.Client
	storage *store.Store
	userKey string

	docs    []api.Document
	queue   []store.UploadItem
	loading bool
	loadErr string

	selected int
	detail   *api.DocumentDetail

	uploadInput  components.TextInput
	uploadActive bool
	uploadErr    string
}

var _ screen.Screen = (*DocumentsScreen)(nil)
var _ screen.KeyHintProvider = (*DocumentsScreen)(nil)

type libraryLoadedMsg struct {
	Docs  []api.Document
	Queue []store.UploadItem
	Err   error
}

type detailLoadedMsg struct {
	ID     string
	Detail *api.DocumentDetail
	Err    error
}

type uploadSettledMsg struct {
	ItemID uint
	Err    error
}

// New creates the documents screen.
func New(client *api.Client, storage *store.Store, userKey string) *DocumentsScreen {
	return &DocumentsScreen{
		client:  client,
		storage: storage,
		userKey: userKey,
		loading: true,
	}
}

func (s *DocumentsScreen) Init() tea.Cmd {
	return s.reload()
}

func (s *DocumentsScreen) Title() string {
	return "Documents"
}

func (s *DocumentsScreen) KeyHints() []layout.KeyHint {
	if s.uploadActive {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Queue upload"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if s.detail != nil {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back to list"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: "Open"},
		{Key: "U", Description: "Upload"},
	}
	if len(s.queue) > 0 {
		hints = append(hints,
			layout.KeyHint{Key: "T", Description: "Retry queue"},
			layout.KeyHint{Key: "X", Description: "Dismiss failed"},
		)
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *DocumentsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case libraryLoadedMsg:
		s.loading = false
		if msg.Err != nil {
			s.loadErr = msg.Err.Error()
			return s, nil
		}
		s.loadErr = ""
		s.docs = msg.Docs
		s.queue = msg.Queue
		if s.selected >= len(s.docs) {
			s.selected = 0
		}
		return s, nil

	case detailLoadedMsg:
		if msg.Err != nil {
			s.loadErr = msg.Err.Error()
			return s, nil
		}
		s.detail = msg.Detail
		return s, nil

	case uploadSettledMsg:
		// The queue rows carry their own state; refresh to show it.
		return s, s.reload()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.uploadActive {
		var cmd tea.Cmd
		s.uploadInput, cmd = s.uploadInput.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *DocumentsScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.uploadActive {
		switch key {
		case "esc":
			s.uploadActive = false
			s.uploadErr = ""
			return s, nil
		case "enter":
			return s.queueUpload()
		}
		var cmd tea.Cmd
		s.uploadInput, cmd = s.uploadInput.Update(msg)
		return s, cmd
	}

	if s.detail != nil {
		if key == "esc" || key == "enter" {
			s.detail = nil
		}
		return s, nil
	}

	switch key {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.docs)-1 {
			s.selected++
		}
	case "enter":
		if s.selected < len(s.docs) {
			return s, s.loadDetail(s.docs[s.selected].ID)
		}
	case "u", "U":
		s.uploadActive = true
		s.uploadErr = ""
		s.uploadInput = components.NewTextInput("Path to a PDF or text file...", false, 200)
		return s, s.uploadInput.Init()
	case "r", "R":
		s.loading = true
		return s, s.reload()
	case "t", "T":
		return s, s.retryPending()
	case "x", "X":
		return s, s.dismissFailed()
	}
	return s, nil
}

// retryPending re-runs every queued upload that has not completed.
func (s *DocumentsScreen) retryPending() tea.Cmd {
	if s.storage == nil || s.userKey == "" {
		return nil
	}
	client, storage, userKey := s.client, s.storage, s.userKey
	return func() tea.Msg {
		ctx := context.Background()
		items, err := storage.Uploads().Pending(ctx, userKey)
		if err != nil || len(items) == 0 {
			return uploadSettledMsg{Err: err}
		}
		var last uploadSettledMsg
		for _, item := range items {
			_ = storage.Uploads().SetState(ctx, item.ID, store.UploadUploading, "")
			if _, err := client.RequestUpload(ctx, item.FileName, item.SizeBytes); err != nil {
				_ = storage.Uploads().SetState(ctx, item.ID, store.UploadFailed, err.Error())
				last = uploadSettledMsg{ItemID: item.ID, Err: err}
				continue
			}
			_ = storage.Uploads().SetState(ctx, item.ID, store.UploadDone, "")
			last = uploadSettledMsg{ItemID: item.ID}
		}
		return last
	}
}

// dismissFailed drops the failed queue rows so they stop cluttering the
// list. Pending and done rows are kept.
func (s *DocumentsScreen) dismissFailed() tea.Cmd {
	if s.storage == nil {
		return nil
	}
	storage, queue := s.storage, s.queue
	return func() tea.Msg {
		ctx := context.Background()
		for _, item := range queue {
			if item.State == store.UploadFailed {
				_ = storage.Uploads().Remove(ctx, item.ID)
			}
		}
		return uploadSettledMsg{}
	}
}

// queueUpload validates the file, stores a queue item, and starts the
// upload in the background.
func (s *DocumentsScreen) queueUpload() (screen.Screen, tea.Cmd) {
	path := strings.TrimSpace(s.uploadInput.Value())
	if path == "" {
		return s, nil
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		s.uploadErr = "That file doesn't exist."
		return s, nil
	}

	ctx := context.Background()
	item, err := s.storage.Uploads().Enqueue(ctx, s.userKey, filepath.Base(path), path, info.Size())
	if err != nil {
		s.uploadErr = err.Error()
		return s, nil
	}

	s.uploadActive = false
	return s, tea.Batch(s.reload(), s.runUpload(*item))
}

// runUpload performs one queued upload and settles its state.
func (s *DocumentsScreen) runUpload(item store.UploadItem) tea.Cmd {
	client, storage := s.client, s.storage
	return func() tea.Msg {
		ctx := context.Background()
		_ = storage.Uploads().SetState(ctx, item.ID, store.UploadUploading, "")
		_, err := client.RequestUpload(ctx, item.FileName, item.SizeBytes)
		if err != nil {
			_ = storage.Uploads().SetState(ctx, item.ID, store.UploadFailed, err.Error())
			return uploadSettledMsg{ItemID: item.ID, Err: err}
		}
		_ = storage.Uploads().SetState(ctx, item.ID, store.UploadDone, "")
		return uploadSettledMsg{ItemID: item.ID}
	}
}

func (s *DocumentsScreen) reload() tea.Cmd {
	client, storage, userKey := s.client, s.storage, s.userKey
	return func() tea.Msg {
		ctx := context.Background()
		docs, err := client.Documents(ctx)
		var queue []store.UploadItem
		if storage != nil && userKey != "" {
			queue, _ = storage.Uploads().All(ctx, userKey)
		}
		return libraryLoadedMsg{Docs: docs, Queue: queue, Err: err}
	}
}

func (s *DocumentsScreen) loadDetail(id string) tea.Cmd {
	client := s.client
	return func() tea.Msg {
		detail, err := client.DocumentByID(context.Background(), id)
		return detailLoadedMsg{ID: id, Detail: detail, Err: err}
	}
}
