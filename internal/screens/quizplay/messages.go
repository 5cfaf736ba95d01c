package quizplay

import "github.com/nilabh/campusmate/internal/quiz"

// stepResultMsg carries the outcome of one /quiz/next call. SessionID
// tags the response so answers from an abandoned session are dropped.
type stepResultMsg struct {
	SessionID string
	Step      *quiz.Step
	Err       error
}

// quizEndMsg signals that the learner ended the session early.
type quizEndMsg struct{}
