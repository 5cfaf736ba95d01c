package account

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func sessionPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func bearerWithExp(t *testing.T, exp time.Time) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	payload, err := json.Marshal(map[string]any{"sub": "cs21b042", "exp": exp.Unix()})
	if err != nil {
		t.Fatal(err)
	}
	body := base64.RawURLEncoding.EncodeToString(payload)
	return fmt.Sprintf("%s.%s.sig", header, body)
}

func TestManager_StartsLoggedOut(t *testing.T) {
	m, err := NewManager(sessionPath(t))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.LoggedIn() {
		t.Error("expected logged out with no session file")
	}
	if got := m.Token(); got != "" {
		t.Errorf("Token() = %q, want empty", got)
	}
}

func TestManager_SaveAndReload(t *testing.T) {
	path := sessionPath(t)
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	err = m.Save(Session{
		Token:   bearerWithExp(t, time.Now().Add(time.Hour)),
		Profile: Profile{University: "iitm", RollNo: "cs21b042", FullName: "Asha Rao"},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !m.LoggedIn() {
		t.Fatal("expected logged in after Save")
	}
	if got := m.Current().Role; got != RoleStudent {
		t.Errorf("Role = %q, want student default", got)
	}

	// A fresh Manager over the same file picks the session back up.
	m2, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager reload: %v", err)
	}
	sess := m2.Current()
	if sess == nil {
		t.Fatal("expected persisted session on reload")
	}
	if sess.Profile.RollNo != "cs21b042" {
		t.Errorf("RollNo = %q, want cs21b042", sess.Profile.RollNo)
	}
	if got := m2.UserKey(); got != "iitm/cs21b042" {
		t.Errorf("UserKey = %q", got)
	}
}

func TestManager_ExpiredTokenReportsLoggedOut(t *testing.T) {
	m, err := NewManager(sessionPath(t))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	err = m.Save(Session{
		Token:   bearerWithExp(t, time.Now().Add(-time.Minute)),
		Profile: Profile{University: "iitm", RollNo: "cs21b042"},
	})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if m.LoggedIn() {
		t.Error("expected expired session to report logged out")
	}
	if got := m.Token(); got != "" {
		t.Errorf("Token() = %q, want empty for expired session", got)
	}
}

func TestManager_Clear(t *testing.T) {
	path := sessionPath(t)
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if err := m.Save(Session{Token: "opaque-token"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := m.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if m.LoggedIn() {
		t.Error("expected logged out after Clear")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected session file removed")
	}
	// Clearing again is a no-op.
	if err := m.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestManager_CorruptFileTreatedAsLoggedOut(t *testing.T) {
	path := sessionPath(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	m, err := NewManager(path)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.LoggedIn() {
		t.Error("expected corrupt session file to be ignored")
	}
}

func TestManager_IsAdmin(t *testing.T) {
	m, err := NewManager(sessionPath(t))
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if m.IsAdmin() {
		t.Error("logged out must not be admin")
	}
	if err := m.Save(Session{Token: "tok", Role: RoleAdmin}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !m.IsAdmin() {
		t.Error("expected admin role")
	}
}

func TestTokenExpired_OpaqueTokenAssumedLive(t *testing.T) {
	if TokenExpired("not-a-jwt") {
		t.Error("opaque token should be left for the server to judge")
	}
}
