package quiz

import (
	"errors"
	"testing"
)

func testQuestion(id string, difficulty Difficulty) *Question {
	return &Question{
		QuestionID:      id,
		Prompt:          "Which scheduler runs first?",
		Difficulty:      difficulty,
		QuestionType:    TypeMCQ,
		CorrectOptionID: "b",
		Explanation:     "The long-term scheduler admits processes.",
		ConceptLabel:    "Scheduling",
		Options: []Option{
			{ID: "a", Text: "Dispatcher"},
			{ID: "b", Text: "Long-term scheduler"},
			{ID: "c", Text: "Swapper"},
		},
	}
}

func questionStep(q *Question, total, remaining int) *Step {
	return &Step{
		Status:             StatusQuestion,
		Question:           q,
		TotalQuestions:     total,
		RemainingQuestions: remaining,
	}
}

func completeStep(total, correct int) *Step {
	return &Step{
		Status: StatusComplete,
		Summary: &Summary{
			TotalQuestions: total,
			CorrectCount:   correct,
			IncorrectCount: total - correct,
			Accuracy:       float64(correct) / float64(total),
		},
	}
}

func startedController(t *testing.T, cfg SessionConfig) (*Controller, StepRequest) {
	t.Helper()
	c := NewController()
	req, err := c.Start(cfg)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return c, req
}

func TestStart_FreshIdentityAndEmptyHistory(t *testing.T) {
	c, req := startedController(t, SessionConfig{Topic: "OS", KnowledgeLevel: LevelBeginner, TotalQuestions: 3})

	if req.SessionID == "" {
		t.Fatal("expected a session identity")
	}
	if len(req.History) != 0 {
		t.Errorf("history = %d turns, want 0", len(req.History))
	}
	if c.Phase() != PhaseAwaiting {
		t.Errorf("phase = %v, want PhaseAwaiting", c.Phase())
	}
}

func TestStart_ClampsTotalQuestions(t *testing.T) {
	_, req := startedController(t, SessionConfig{Topic: "OS", TotalQuestions: 99})
	if req.TotalQuestions != MaxQuestions {
		t.Errorf("TotalQuestions = %d, want %d", req.TotalQuestions, MaxQuestions)
	}

	_, req = startedController(t, SessionConfig{Topic: "OS", TotalQuestions: 0})
	if req.TotalQuestions != MinQuestions {
		t.Errorf("TotalQuestions = %d, want %d", req.TotalQuestions, MinQuestions)
	}
}

func TestStart_CustomSourceRequiresSelection(t *testing.T) {
	c := NewController()
	_, err := c.Start(SessionConfig{Topic: "OS", TotalQuestions: 5, SourceMode: SourceCustom})
	if !errors.Is(err, ErrSourceRequired) {
		t.Fatalf("err = %v, want ErrSourceRequired", err)
	}
	if c.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want PhaseIdle after rejected start", c.Phase())
	}
}

func TestSubmit_AppendsOneTurn(t *testing.T) {
	c, req := startedController(t, SessionConfig{Topic: "OS", KnowledgeLevel: LevelAdvanced, TotalQuestions: 1})
	c.ApplyStep(req.SessionID, questionStep(testQuestion("q1", DifficultyHard), 1, 1))

	fb, ok := c.Submit("b")
	if !ok {
		t.Fatal("Submit returned ok=false")
	}
	if !fb.WasCorrect {
		t.Error("expected correct feedback")
	}
	if c.AnsweredCount() != 1 {
		t.Errorf("history length = %d, want 1", c.AnsweredCount())
	}
	if c.Phase() != PhaseAnswered {
		t.Errorf("phase = %v, want PhaseAnswered", c.Phase())
	}
}

func TestSubmit_Idempotent(t *testing.T) {
	c, req := startedController(t, SessionConfig{Topic: "OS", TotalQuestions: 2})
	c.ApplyStep(req.SessionID, questionStep(testQuestion("q1", DifficultyMedium), 2, 2))

	first, ok := c.Submit("a")
	if !ok {
		t.Fatal("first Submit failed")
	}
	second, ok := c.Submit("b")
	if !ok {
		t.Fatal("second Submit failed")
	}
	if first != second {
		t.Error("expected the same feedback on duplicate submission")
	}
	if c.AnsweredCount() != 1 {
		t.Errorf("history length = %d, want 1 after duplicate submission", c.AnsweredCount())
	}
}

func TestSubmit_EmptyAnswerIsNoOp(t *testing.T) {
	c, req := startedController(t, SessionConfig{Topic: "OS", TotalQuestions: 1})
	c.ApplyStep(req.SessionID, questionStep(testQuestion("q1", DifficultyEasy), 1, 1))

	if _, ok := c.Submit(""); ok {
		t.Error("expected ok=false for empty answer")
	}
	if c.AnsweredCount() != 0 {
		t.Errorf("history length = %d, want 0", c.AnsweredCount())
	}
}

func TestAdvance_RequiresFeedback(t *testing.T) {
	c, req := startedController(t, SessionConfig{Topic: "OS", TotalQuestions: 2})
	c.ApplyStep(req.SessionID, questionStep(testQuestion("q1", DifficultyEasy), 2, 2))

	if _, ok := c.Advance(); ok {
		t.Fatal("Advance should be a no-op before the question is answered")
	}

	c.Submit("b")
	next, ok := c.Advance()
	if !ok {
		t.Fatal("Advance failed after feedback")
	}
	if len(next.History) != 1 {
		t.Errorf("request history = %d turns, want 1", len(next.History))
	}
	if c.Feedback() != nil {
		t.Error("feedback should be cleared by Advance")
	}
}

func TestAdvance_BlockedWhileInFlight(t *testing.T) {
	c, req := startedController(t, SessionConfig{Topic: "OS", TotalQuestions: 2})
	c.ApplyStep(req.SessionID, questionStep(testQuestion("q1", DifficultyEasy), 2, 2))
	c.Submit("b")

	if _, ok := c.Advance(); !ok {
		t.Fatal("first Advance failed")
	}
	if _, ok := c.Advance(); ok {
		t.Error("second Advance should be blocked while a request is outstanding")
	}
}

func TestApplyStep_StaleIdentityDiscarded(t *testing.T) {
	c, req := startedController(t, SessionConfig{Topic: "OS", TotalQuestions: 1})
	oldID := req.SessionID

	req2, err := c.Restart()
	if err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if req2.SessionID == oldID {
		t.Fatal("restart must mint a new session identity")
	}

	if c.ApplyStep(oldID, questionStep(testQuestion("q1", DifficultyEasy), 1, 1)) {
		t.Error("stale response applied; want discarded")
	}
	if c.CurrentStep() != nil {
		t.Error("stale response mutated current step")
	}
}

func TestApplyError_RetainsProgress(t *testing.T) {
	c, req := startedController(t, SessionConfig{Topic: "OS", TotalQuestions: 2})
	step := questionStep(testQuestion("q1", DifficultyEasy), 2, 2)
	c.ApplyStep(req.SessionID, step)
	c.Submit("b")
	next, _ := c.Advance()

	if !c.ApplyError(next.SessionID, errors.New("connection refused")) {
		t.Fatal("ApplyError discarded a live error")
	}
	if c.Err() == "" {
		t.Error("expected a non-empty error message")
	}
	if c.AnsweredCount() != 1 {
		t.Errorf("history length = %d, want 1 after failure", c.AnsweredCount())
	}
	if c.CurrentStep() != step {
		t.Error("prior step should be retained for retry display")
	}

	// Manual retry succeeds and clears the error.
	retry, ok := c.Retry()
	if !ok {
		t.Fatal("Retry refused in error state")
	}
	if len(retry.History) != 1 {
		t.Errorf("retry history = %d turns, want 1", len(retry.History))
	}
	c.ApplyStep(retry.SessionID, completeStep(2, 1))
	if c.Err() != "" {
		t.Errorf("error message = %q, want cleared", c.Err())
	}
	if c.Phase() != PhaseComplete {
		t.Errorf("phase = %v, want PhaseComplete", c.Phase())
	}
}

func TestReset_ClearsEverything(t *testing.T) {
	c, req := startedController(t, SessionConfig{Topic: "OS", TotalQuestions: 1})
	c.ApplyStep(req.SessionID, questionStep(testQuestion("q1", DifficultyEasy), 1, 1))
	c.Submit("b")

	c.Reset()

	if c.SessionID() != "" {
		t.Error("session identity survived reset")
	}
	if c.AnsweredCount() != 0 || c.CurrentStep() != nil || c.Feedback() != nil {
		t.Error("session state survived reset")
	}
	if c.Phase() != PhaseIdle {
		t.Errorf("phase = %v, want PhaseIdle", c.Phase())
	}
}

// Full-session walk from the scenario in the product plan: one question,
// answered correctly, summary reports 100%.
func TestFullSession_SingleQuestion(t *testing.T) {
	c, req := startedController(t, SessionConfig{
		Topic:          "OS",
		KnowledgeLevel: LevelAdvanced,
		TotalQuestions: 1,
		SourceMode:     SourceLatest,
	})

	if got := c.DifficultyHint(); got != DifficultyHard {
		t.Errorf("initial hint = %s, want hard", got)
	}

	c.ApplyStep(req.SessionID, questionStep(testQuestion("q1", DifficultyHard), 1, 1))
	fb, _ := c.Submit("b")
	if !fb.WasCorrect {
		t.Fatal("expected correct answer")
	}

	next, ok := c.Advance()
	if !ok {
		t.Fatal("Advance failed")
	}
	c.ApplyStep(next.SessionID, completeStep(1, 1))

	sum := c.CurrentSummary()
	if sum == nil {
		t.Fatal("expected a summary")
	}
	if sum.CorrectCount != 1 || sum.Accuracy != 1.0 {
		t.Errorf("summary = %+v, want 1 correct at 100%%", sum)
	}
	if c.AnsweredCount() != 1 {
		t.Errorf("history length = %d, want 1", c.AnsweredCount())
	}
	if c.RemainingCount() != 0 {
		t.Errorf("remaining = %d, want 0", c.RemainingCount())
	}
}

// History must track presented questions with no duplicates and no gaps
// across a multi-question session.
func TestFullSession_HistoryMatchesPresentedQuestions(t *testing.T) {
	const n = 3
	c, req := startedController(t, SessionConfig{Topic: "Networks", TotalQuestions: n})

	ids := []string{"q1", "q2", "q3"}
	sid := req.SessionID
	for i, id := range ids {
		c.ApplyStep(sid, questionStep(testQuestion(id, DifficultyMedium), n, n-i))
		if _, ok := c.Submit("b"); !ok {
			t.Fatalf("Submit %s failed", id)
		}
		if _, ok := c.Advance(); !ok {
			t.Fatalf("Advance after %s failed", id)
		}
	}
	c.ApplyStep(sid, completeStep(n, n))

	history := c.History()
	if len(history) != n {
		t.Fatalf("history length = %d, want %d", len(history), n)
	}
	for i, turn := range history {
		if turn.QuestionID != ids[i] {
			t.Errorf("turn %d = %s, want %s", i, turn.QuestionID, ids[i])
		}
	}
}
