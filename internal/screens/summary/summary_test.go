package summary

import (
	"strings"
	"testing"

	"github.com/nilabh/campusmate/internal/api"
	"github.com/nilabh/campusmate/internal/quiz"
)

func TestDerive_Breakdowns(t *testing.T) {
	history := []quiz.HistoryTurn{
		{QuestionID: "q1", ConceptLabel: "Paging", Difficulty: quiz.DifficultyEasy, WasCorrect: true},
		{QuestionID: "q2", ConceptLabel: "Paging", Difficulty: quiz.DifficultyMedium, WasCorrect: false},
		{QuestionID: "q3", ConceptLabel: "Scheduling", Difficulty: quiz.DifficultyMedium, WasCorrect: false},
		{QuestionID: "q4", ConceptLabel: "", Difficulty: quiz.DifficultyEasy, WasCorrect: true},
	}

	sum := Derive(history)

	if sum.TotalQuestions != 4 || sum.CorrectCount != 2 || sum.IncorrectCount != 2 {
		t.Errorf("totals = %d/%d/%d", sum.TotalQuestions, sum.CorrectCount, sum.IncorrectCount)
	}
	if sum.Accuracy != 0.5 {
		t.Errorf("Accuracy = %f, want 0.5", sum.Accuracy)
	}

	if len(sum.ConceptBreakdown) != 3 {
		t.Fatalf("concepts = %d, want 3 (incl. General bucket)", len(sum.ConceptBreakdown))
	}
	paging := sum.ConceptBreakdown[0]
	if paging.Concept != "Paging" || paging.Attempts != 2 || paging.Correct != 1 {
		t.Errorf("paging = %+v", paging)
	}
	if sum.ConceptBreakdown[2].Concept != "General" {
		t.Errorf("blank concept label should bucket as General, got %q", sum.ConceptBreakdown[2].Concept)
	}

	if len(sum.DifficultyBreakdown) != 2 {
		t.Fatalf("difficulties = %d, want 2", len(sum.DifficultyBreakdown))
	}
	medium := sum.DifficultyBreakdown[1]
	if medium.Difficulty != quiz.DifficultyMedium || medium.Attempts != 2 || medium.Correct != 0 {
		t.Errorf("medium = %+v", medium)
	}
}

func TestDerive_RecommendsWeakConcepts(t *testing.T) {
	history := []quiz.HistoryTurn{
		{QuestionID: "q1", ConceptLabel: "Deadlocks", Difficulty: quiz.DifficultyHard, WasCorrect: false},
		{QuestionID: "q2", ConceptLabel: "Deadlocks", Difficulty: quiz.DifficultyHard, WasCorrect: false},
		{QuestionID: "q3", ConceptLabel: "Paging", Difficulty: quiz.DifficultyEasy, WasCorrect: true},
	}

	sum := Derive(history)
	if len(sum.RecommendedConcepts) != 1 || sum.RecommendedConcepts[0] != "Deadlocks" {
		t.Errorf("RecommendedConcepts = %v, want [Deadlocks]", sum.RecommendedConcepts)
	}
}

func TestPastSessions_RenderedWithoutCurrent(t *testing.T) {
	s := New(nil, nil, "iitm/a", Input{
		SessionID: "sess-current",
		History:   []quiz.HistoryTurn{{QuestionID: "q1", WasCorrect: true}},
	})

	s.Update(optionsLoadedMsg{Sessions: []api.SessionOption{
		{SessionID: "sess-current", Attempts: 1, Accuracy: 1},
		{SessionID: "sess-old", Attempts: 4, Accuracy: 0.75, PrimarySource: "lecture-notes.pdf"},
	}})

	view := s.View(100, 40)
	if !strings.Contains(view, "Past sessions") {
		t.Error("expected a past-sessions section")
	}
	if !strings.Contains(view, "lecture-notes.pdf") {
		t.Error("expected the prior session's source label")
	}

	past := s.priorSessions(5)
	if len(past) != 1 || past[0].SessionID != "sess-old" {
		t.Errorf("priorSessions = %+v, want only sess-old", past)
	}
}

func TestPriorSessions_Limit(t *testing.T) {
	s := New(nil, nil, "iitm/a", Input{SessionID: "cur"})
	for i := 0; i < 8; i++ {
		s.pastSessions = append(s.pastSessions, api.SessionOption{SessionID: string(rune('a' + i))})
	}
	if got := len(s.priorSessions(5)); got != 5 {
		t.Errorf("priorSessions length = %d, want 5", got)
	}
}

func TestDerive_Empty(t *testing.T) {
	sum := Derive(nil)
	if sum.TotalQuestions != 0 || sum.Accuracy != 0 {
		t.Errorf("empty history summary = %+v", sum)
	}
}
