package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestActivity_StatsAggregate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Activity()

	answers := []AnswerRecord{
		{UserKey: "iitm/a", SessionID: "s1", Topic: "Operating Systems", Difficulty: "easy", Correct: true},
		{UserKey: "iitm/a", SessionID: "s1", Topic: "Operating Systems", Difficulty: "medium", Correct: false},
		{UserKey: "iitm/a", SessionID: "s2", Topic: "Networks", Difficulty: "easy", Correct: true},
		{UserKey: "iitm/b", SessionID: "s3", Topic: "Networks", Difficulty: "hard", Correct: false},
	}
	for _, a := range answers {
		if err := repo.RecordAnswer(ctx, a); err != nil {
			t.Fatalf("RecordAnswer: %v", err)
		}
	}
	sessions := []SessionRecord{
		{UserKey: "iitm/a", SessionID: "s1", Topic: "Operating Systems", TotalQuestions: 2, CorrectAnswers: 1},
		{UserKey: "iitm/a", SessionID: "s2", Topic: "Networks", TotalQuestions: 1, CorrectAnswers: 1},
	}
	for _, rec := range sessions {
		if err := repo.FinishSession(ctx, rec); err != nil {
			t.Fatalf("FinishSession: %v", err)
		}
	}

	stats, err := repo.Stats(ctx, "iitm/a")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Sessions != 2 {
		t.Errorf("Sessions = %d, want 2", stats.Sessions)
	}
	if stats.Answered != 3 || stats.Correct != 2 {
		t.Errorf("Answered/Correct = %d/%d, want 3/2", stats.Answered, stats.Correct)
	}
	if got := stats.Accuracy(); got < 0.66 || got > 0.67 {
		t.Errorf("Accuracy = %f", got)
	}
	if len(stats.Topics) != 2 {
		t.Fatalf("Topics = %d, want 2", len(stats.Topics))
	}
	if stats.Topics[0].Topic != "Operating Systems" || stats.Topics[0].Answered != 2 {
		t.Errorf("top topic = %+v", stats.Topics[0])
	}
}

func TestActivity_FinishSessionIdempotent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Activity()

	rec := SessionRecord{UserKey: "iitm/a", SessionID: "s1", Topic: "DBMS", TotalQuestions: 5, CorrectAnswers: 4}
	if err := repo.FinishSession(ctx, rec); err != nil {
		t.Fatalf("FinishSession: %v", err)
	}
	if err := repo.FinishSession(ctx, rec); err != nil {
		t.Fatalf("second FinishSession: %v", err)
	}

	stats, err := repo.Stats(ctx, "iitm/a")
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Sessions != 1 {
		t.Errorf("Sessions = %d, want 1 after duplicate finish", stats.Sessions)
	}
}

func TestUploads_QueueLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Uploads()

	item, err := repo.Enqueue(ctx, "iitm/a", "notes.pdf", "/tmp/notes.pdf", 2048)
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if item.State != UploadPending {
		t.Errorf("State = %q, want pending", item.State)
	}

	pending, err := repo.Pending(ctx, "iitm/a")
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending = %d, want 1", len(pending))
	}

	if err := repo.SetState(ctx, item.ID, UploadFailed, "connection reset"); err != nil {
		t.Fatalf("SetState failed: %v", err)
	}
	// Failed items stay in the retry queue.
	pending, err = repo.Pending(ctx, "iitm/a")
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 1 || pending[0].Error != "connection reset" {
		t.Fatalf("pending after failure = %+v", pending)
	}

	if err := repo.SetState(ctx, item.ID, UploadDone, ""); err != nil {
		t.Fatalf("SetState done: %v", err)
	}
	pending, err = repo.Pending(ctx, "iitm/a")
	if err != nil {
		t.Fatalf("Pending: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("pending after done = %d, want 0", len(pending))
	}

	if err := repo.SetState(ctx, 9999, UploadDone, ""); err == nil {
		t.Error("expected error for unknown item id")
	}
}

func TestUploads_ClearQueueScopesToOneUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Uploads()

	if _, err := repo.Enqueue(ctx, "iitm/a", "old.pdf", "/tmp/old.pdf", 512); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if _, err := repo.Enqueue(ctx, "iitm/b", "keep.pdf", "/tmp/keep.pdf", 512); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}

	if err := repo.ClearQueue(ctx, "iitm/a"); err != nil {
		t.Fatalf("ClearQueue: %v", err)
	}

	itemsA, err := repo.All(ctx, "iitm/a")
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(itemsA) != 0 {
		t.Errorf("user a queue = %d items, want 0", len(itemsA))
	}
	itemsB, err := repo.All(ctx, "iitm/b")
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(itemsB) != 1 {
		t.Errorf("user b queue = %d items, want 1", len(itemsB))
	}
}

func TestPrefs_SetOverwrites(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.Prefs()

	got, err := repo.Get(ctx, "iitm/a", PrefLastTopic, "none")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "none" {
		t.Errorf("unset pref = %q, want fallback", got)
	}

	if err := repo.Set(ctx, "iitm/a", PrefLastTopic, "DBMS"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := repo.Set(ctx, "iitm/a", PrefLastTopic, "Networks"); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, err = repo.Get(ctx, "iitm/a", PrefLastTopic, "none")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "Networks" {
		t.Errorf("pref = %q, want Networks", got)
	}
}

func TestClearUser_ScopesToOneUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.Activity().RecordAnswer(ctx, AnswerRecord{UserKey: "iitm/a", SessionID: "s1", Correct: true}); err != nil {
		t.Fatal(err)
	}
	if err := s.Activity().RecordAnswer(ctx, AnswerRecord{UserKey: "iitm/b", SessionID: "s2", Correct: true}); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearUser("iitm/a"); err != nil {
		t.Fatalf("ClearUser: %v", err)
	}

	statsA, err := s.Activity().Stats(ctx, "iitm/a")
	if err != nil {
		t.Fatal(err)
	}
	statsB, err := s.Activity().Stats(ctx, "iitm/b")
	if err != nil {
		t.Fatal(err)
	}
	if statsA.Answered != 0 {
		t.Errorf("user a answered = %d, want 0", statsA.Answered)
	}
	if statsB.Answered != 1 {
		t.Errorf("user b answered = %d, want 1", statsB.Answered)
	}
}
