package documents

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/nilabh/campusmate/internal/api"
	"github.com/nilabh/campusmate/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRetryPending_SettlesQueuedUploads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"t1","status":"queued"}`))
	}))
	defer srv.Close()

	st := openTestStore(t)
	ctx := context.Background()
	item, err := st.Uploads().Enqueue(ctx, "iitm/a", "notes.pdf", "/tmp/notes.pdf", 1024)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := st.Uploads().SetState(ctx, item.ID, store.UploadFailed, "connection reset"); err != nil {
		t.Fatalf("SetState: %v", err)
	}

	s := New(api.New(srv.URL), st, "iitm/a")
	msg := s.retryPending()()
	settled, ok := msg.(uploadSettledMsg)
	if !ok {
		t.Fatalf("msg = %T, want uploadSettledMsg", msg)
	}
	if settled.Err != nil {
		t.Fatalf("retry failed: %v", settled.Err)
	}

	pending, err := st.Uploads().Pending(ctx, "iitm/a")
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after retry = %d, want 0", len(pending))
	}
}

func TestDismissFailed_DropsOnlyFailedRows(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	failed, err := st.Uploads().Enqueue(ctx, "iitm/a", "broken.pdf", "/tmp/broken.pdf", 100)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := st.Uploads().SetState(ctx, failed.ID, store.UploadFailed, "boom"); err != nil {
		t.Fatalf("SetState: %v", err)
	}
	if _, err := st.Uploads().Enqueue(ctx, "iitm/a", "waiting.pdf", "/tmp/waiting.pdf", 100); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	s := New(nil, st, "iitm/a")
	queue, err := st.Uploads().All(ctx, "iitm/a")
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	s.queue = queue

	s.dismissFailed()()

	remaining, err := st.Uploads().All(ctx, "iitm/a")
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(remaining) != 1 || remaining[0].FileName != "waiting.pdf" {
		t.Errorf("remaining = %+v, want only waiting.pdf", remaining)
	}
}
