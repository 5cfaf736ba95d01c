package app

import (
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/nilabh/campusmate/internal/account"
	"github.com/nilabh/campusmate/internal/api"
	"github.com/nilabh/campusmate/internal/store"
)

func testOptions(t *testing.T) Options {
	t.Helper()
	dir := t.TempDir()

	manager, err := account.NewManager(filepath.Join(dir, "session.json"))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	st, err := store.Open(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return Options{
		Client:  api.New("http://localhost:1"),
		Manager: manager,
		Store:   st,
		Logger:  zap.NewNop(),
	}
}

func TestSessionExpired_WipesSessionAndShowsNotice(t *testing.T) {
	opts := testOptions(t)
	if err := opts.Manager.Save(account.Session{Token: "opaque-token"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	m := newAppModel(opts)
	updated, _ := m.Update(sessionExpiredMsg{})
	m = updated.(AppModel)

	if opts.Manager.LoggedIn() {
		t.Error("expected session wiped after expiry")
	}
	if m.router.Depth() != 1 {
		t.Errorf("stack depth = %d, want 1 after forced logout", m.router.Depth())
	}

	view := m.router.Active().View(80, 24)
	if !strings.Contains(view, "Session expired") {
		t.Error("expected the expiry notice on the login screen")
	}
}
