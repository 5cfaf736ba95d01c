package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nilabh/campusmate/internal/quiz"
)

// Wire shapes for /quiz/next. The request is snake_case throughout; the
// response mixes snake_case and camelCase exactly as the backend emits
// it. Mapping to domain types happens only at this boundary.

type wireHistoryTurn struct {
	QuestionID        string `json:"question_id,omitempty"`
	Question          string `json:"question"`
	SelectedOptionID  string `json:"selected_option_id,omitempty"`
	CorrectOptionID   string `json:"correct_option_id,omitempty"`
	CorrectOptionText string `json:"correct_option_text,omitempty"`
	Difficulty        string `json:"difficulty"`
	WasCorrect        bool   `json:"was_correct"`
	Explanation       string `json:"explanation,omitempty"`
	ConceptLabel      string `json:"concept_label,omitempty"`
}

type wireStepRequest struct {
	Topic          string            `json:"topic"`
	KnowledgeLevel string            `json:"knowledge_level,omitempty"`
	History        []wireHistoryTurn `json:"history"`
	TotalQuestions int               `json:"total_questions"`
	SourceMode     string            `json:"source_mode,omitempty"`
	SourceID       string            `json:"source_id,omitempty"`
	SessionID      string            `json:"session_id,omitempty"`
}

type wireOption struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type wireQuestion struct {
	QuestionID      string       `json:"question_id"`
	Prompt          string       `json:"prompt"`
	Difficulty      string       `json:"difficulty"`
	Options         []wireOption `json:"options"`
	CorrectOptionID string       `json:"correctOptionId"`
	Explanation     string       `json:"explanation,omitempty"`
	ConceptLabel    string       `json:"conceptLabel,omitempty"`
	QuestionType    string       `json:"questionType,omitempty"`
	FocusConcept    string       `json:"focusConcept,omitempty"`
	FocusKeywords   []string     `json:"focusKeywords,omitempty"`
}

type wireConceptBreakdown struct {
	Concept   string  `json:"concept"`
	Attempts  int     `json:"attempts"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
	Accuracy  float64 `json:"accuracy"`
}

type wireDifficultyBreakdown struct {
	Difficulty string  `json:"difficulty"`
	Attempts   int     `json:"attempts"`
	Correct    int     `json:"correct"`
	Incorrect  int     `json:"incorrect"`
	Accuracy   float64 `json:"accuracy"`
}

type wireStep struct {
	Status              string                    `json:"status"`
	Question            *wireQuestion             `json:"question,omitempty"`
	TotalQuestions      int                       `json:"totalQuestions"`
	RemainingQuestions  int                       `json:"remainingQuestions"`
	SourceLabel         string                    `json:"sourceLabel,omitempty"`
	CorrectCount        int                       `json:"correctCount"`
	IncorrectCount      int                       `json:"incorrectCount"`
	Accuracy            float64                   `json:"accuracy"`
	ConceptBreakdown    []wireConceptBreakdown    `json:"conceptBreakdown,omitempty"`
	DifficultyBreakdown []wireDifficultyBreakdown `json:"difficultyBreakdown,omitempty"`
	RecommendedConcepts []string                  `json:"recommendedConcepts,omitempty"`
}

// NextStep requests the next quiz step for the given payload. The raw
// response is validated against the step schema before adaptation; a
// violation surfaces as ErrBadResponse.
func (c *Client) NextStep(ctx context.Context, req quiz.StepRequest) (*quiz.Step, error) {
	payload := wireStepRequest{
		Topic:          req.Topic,
		KnowledgeLevel: string(req.KnowledgeLevel),
		History:        historyToWire(req.History),
		TotalQuestions: req.TotalQuestions,
		SourceMode:     string(req.SourceMode),
		SourceID:       req.SourceID,
		SessionID:      req.SessionID,
	}

	var raw json.RawMessage
	if err := c.call(ctx, http.MethodPost, "/quiz/next", payload, &raw, false); err != nil {
		return nil, err
	}

	if err := validateStep(raw); err != nil {
		return nil, err
	}

	var ws wireStep
	if err := json.Unmarshal(raw, &ws); err != nil {
		return nil, &ErrBadResponse{Err: err}
	}
	return stepFromWire(&ws)
}

func historyToWire(history []quiz.HistoryTurn) []wireHistoryTurn {
	out := make([]wireHistoryTurn, 0, len(history))
	for _, turn := range history {
		out = append(out, wireHistoryTurn{
			QuestionID:        turn.QuestionID,
			Question:          turn.Question,
			SelectedOptionID:  turn.SelectedOptionID,
			CorrectOptionID:   turn.CorrectOptionID,
			CorrectOptionText: turn.CorrectOptionText,
			Difficulty:        string(turn.Difficulty),
			WasCorrect:        turn.WasCorrect,
			Explanation:       turn.Explanation,
			ConceptLabel:      turn.ConceptLabel,
		})
	}
	return out
}

func questionFromWire(wq *wireQuestion) *quiz.Question {
	options := make([]quiz.Option, 0, len(wq.Options))
	for _, opt := range wq.Options {
		options = append(options, quiz.Option{ID: opt.ID, Text: opt.Text})
	}
	return &quiz.Question{
		QuestionID:      wq.QuestionID,
		Prompt:          wq.Prompt,
		Difficulty:      quiz.Difficulty(wq.Difficulty),
		Options:         options,
		CorrectOptionID: wq.CorrectOptionID,
		Explanation:     wq.Explanation,
		ConceptLabel:    wq.ConceptLabel,
		QuestionType:    quiz.QuestionType(wq.QuestionType),
		FocusConcept:    wq.FocusConcept,
		FocusKeywords:   wq.FocusKeywords,
	}
}

func stepFromWire(ws *wireStep) (*quiz.Step, error) {
	switch ws.Status {
	case string(quiz.StatusQuestion):
		if ws.Question == nil {
			return nil, &ErrBadResponse{Err: fmt.Errorf("question step without a question")}
		}
		return &quiz.Step{
			Status:             quiz.StatusQuestion,
			Question:           questionFromWire(ws.Question),
			TotalQuestions:     ws.TotalQuestions,
			RemainingQuestions: ws.RemainingQuestions,
			SourceLabel:        ws.SourceLabel,
		}, nil

	case string(quiz.StatusComplete):
		concepts := make([]quiz.ConceptBreakdown, 0, len(ws.ConceptBreakdown))
		for _, cb := range ws.ConceptBreakdown {
			concepts = append(concepts, quiz.ConceptBreakdown{
				Concept:   cb.Concept,
				Attempts:  cb.Attempts,
				Correct:   cb.Correct,
				Incorrect: cb.Incorrect,
				Accuracy:  cb.Accuracy,
			})
		}
		difficulties := make([]quiz.DifficultyBreakdown, 0, len(ws.DifficultyBreakdown))
		for _, db := range ws.DifficultyBreakdown {
			difficulties = append(difficulties, quiz.DifficultyBreakdown{
				Difficulty: quiz.Difficulty(db.Difficulty),
				Attempts:   db.Attempts,
				Correct:    db.Correct,
				Incorrect:  db.Incorrect,
				Accuracy:   db.Accuracy,
			})
		}
		return &quiz.Step{
			Status:         quiz.StatusComplete,
			TotalQuestions: ws.TotalQuestions,
			Summary: &quiz.Summary{
				TotalQuestions:      ws.TotalQuestions,
				CorrectCount:        ws.CorrectCount,
				IncorrectCount:      ws.IncorrectCount,
				Accuracy:            ws.Accuracy,
				ConceptBreakdown:    concepts,
				DifficultyBreakdown: difficulties,
				RecommendedConcepts: ws.RecommendedConcepts,
			},
		}, nil
	}

	return nil, &ErrBadResponse{Err: fmt.Errorf("unknown step status %q", ws.Status)}
}
