package quiz

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Phase is the controller's position in the session state machine.
type Phase int

const (
	PhaseIdle     Phase = iota // no session configured
	PhaseAwaiting              // step request outstanding
	PhaseQuestion              // question shown, awaiting an answer
	PhaseAnswered              // feedback shown, awaiting advance
	PhaseComplete              // summary received; terminal until restart
	PhaseError                 // step request failed; retry permitted
)

// Controller drives one adaptive quiz session from configuration through
// completion. It owns the config, history, current step, and feedback
// exclusively; answer evaluation happens locally while question
// selection and scoring stay with the backend.
//
// The controller is single-threaded state: all mutation happens on the
// UI update loop. Transport runs elsewhere and re-enters through
// ApplyStep/ApplyError tagged with the session identity, so a response
// that outlives a reset or restart is discarded instead of applied.
type Controller struct {
	cfg       SessionConfig
	sessionID string
	history   []HistoryTurn
	current   *Step
	feedback  *Feedback
	phase     Phase
	errMsg    string
	inFlight  bool

	newID func() string
}

// NewController creates an idle controller.
func NewController() *Controller {
	return &Controller{newID: NewSessionID}
}

// NewSessionID generates an opaque client-side session identity: a UUID
// when available, else a timestamp+random fallback.
func NewSessionID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}
	return fmt.Sprintf("session-%d-%08x", time.Now().UnixMilli(), rand.Uint32())
}

// Start begins a new session: fresh identity, cleared history and
// feedback, and a first step request with empty history. The config is
// normalized (TotalQuestions clamped to [1,25]) and validated.
func (c *Controller) Start(cfg SessionConfig) (StepRequest, error) {
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return StepRequest{}, err
	}

	c.cfg = cfg
	c.sessionID = c.newID()
	c.history = nil
	c.current = nil
	c.feedback = nil
	c.errMsg = ""
	c.phase = PhaseAwaiting
	c.inFlight = true

	return c.buildRequest(), nil
}

// Restart is Reset followed by Start with the same configuration: a new
// session identity and empty history.
func (c *Controller) Restart() (StepRequest, error) {
	cfg := c.cfg
	c.Reset()
	return c.Start(cfg)
}

// Reset abandons the session entirely. Any in-flight response will be
// discarded by the stale guard since the identity changes.
func (c *Controller) Reset() {
	*c = Controller{newID: c.newID}
}

// Submit evaluates a raw answer for the current question and appends
// exactly one history turn. Submitting again for the same question is a
// no-op that returns the same feedback. Returns ok=false when there is
// no submittable answer or no current question.
func (c *Controller) Submit(rawAnswer string) (*Feedback, bool) {
	if c.feedback != nil {
		return c.feedback, true
	}
	if c.phase != PhaseQuestion {
		return nil, false
	}
	q := c.CurrentQuestion()
	if q == nil {
		return nil, false
	}

	turn, fb, ok := Evaluate(q, rawAnswer)
	if !ok {
		return nil, false
	}

	c.history = append(c.history, turn)
	c.feedback = &fb
	c.phase = PhaseAnswered
	return c.feedback, true
}

// Advance clears the displayed feedback and requests the next step.
// Only valid once the current question has been answered and no request
// is already outstanding.
func (c *Controller) Advance() (StepRequest, bool) {
	if c.phase != PhaseAnswered || c.feedback == nil || c.inFlight {
		return StepRequest{}, false
	}
	c.feedback = nil
	c.phase = PhaseAwaiting
	c.inFlight = true
	return c.buildRequest(), true
}

// Retry re-issues the failed step request from the latest history.
// Retry is user-initiated; the controller never retries on its own.
func (c *Controller) Retry() (StepRequest, bool) {
	if c.phase != PhaseError {
		return StepRequest{}, false
	}
	c.errMsg = ""
	c.phase = PhaseAwaiting
	c.inFlight = true
	return c.buildRequest(), true
}

// ApplyStep installs a step response. Responses tagged with a stale
// session identity are discarded; a changed identity is the de facto
// cancellation signal. Returns false when the response was discarded.
func (c *Controller) ApplyStep(sessionID string, step *Step) bool {
	if sessionID == "" || sessionID != c.sessionID || step == nil {
		return false
	}
	c.inFlight = false
	c.errMsg = ""
	c.current = step
	if step.IsComplete() {
		c.phase = PhaseComplete
	} else {
		c.phase = PhaseQuestion
	}
	return true
}

// ApplyError records a step failure. History, config, and the prior
// step are left untouched so the UI can offer retry without losing
// progress. Stale errors are discarded like stale steps.
func (c *Controller) ApplyError(sessionID string, err error) bool {
	if sessionID == "" || sessionID != c.sessionID || err == nil {
		return false
	}
	c.inFlight = false
	c.errMsg = err.Error()
	if c.errMsg == "" {
		c.errMsg = "unable to retrieve the next quiz step"
	}
	c.phase = PhaseError
	return true
}

// buildRequest snapshots the latest history into a step request.
func (c *Controller) buildRequest() StepRequest {
	history := make([]HistoryTurn, len(c.history))
	copy(history, c.history)
	return StepRequest{
		Topic:          c.cfg.Topic,
		KnowledgeLevel: c.cfg.KnowledgeLevel,
		TotalQuestions: c.cfg.TotalQuestions,
		SourceMode:     c.cfg.SourceMode,
		SourceID:       c.cfg.SourceID,
		SessionID:      c.sessionID,
		History:        history,
	}
}

// Config returns the active session configuration.
func (c *Controller) Config() SessionConfig { return c.cfg }

// SessionID returns the current session identity, or "" when idle.
func (c *Controller) SessionID() string { return c.sessionID }

// Phase returns the current state machine phase.
func (c *Controller) Phase() Phase { return c.phase }

// Err returns the user-facing message for the last step failure.
func (c *Controller) Err() string { return c.errMsg }

// InFlight reports whether a step request is outstanding.
func (c *Controller) InFlight() bool { return c.inFlight }

// History returns a copy of the answered turns, in answer order.
func (c *Controller) History() []HistoryTurn {
	out := make([]HistoryTurn, len(c.history))
	copy(out, c.history)
	return out
}

// AnsweredCount returns the number of recorded turns.
func (c *Controller) AnsweredCount() int { return len(c.history) }

// CurrentStep returns the most recent step, which survives failures for
// retry display.
func (c *Controller) CurrentStep() *Step { return c.current }

// CurrentQuestion returns the active question, or nil.
func (c *Controller) CurrentQuestion() *Question {
	if c.current == nil || c.current.Status != StatusQuestion {
		return nil
	}
	return c.current.Question
}

// CurrentSummary returns the completion summary, or nil.
func (c *Controller) CurrentSummary() *Summary {
	if c.current == nil || !c.current.IsComplete() {
		return nil
	}
	return c.current.Summary
}

// Feedback returns the feedback for the answered question, or nil.
func (c *Controller) Feedback() *Feedback { return c.feedback }

// DifficultyHint returns the advisory next-difficulty band computed
// from the knowledge level and history.
func (c *Controller) DifficultyHint() Difficulty {
	return NextDifficulty(c.cfg.KnowledgeLevel, c.history)
}

// RemainingCount returns how many questions are left, preferring the
// backend's count when a question step carries one.
func (c *Controller) RemainingCount() int {
	if c.phase == PhaseComplete {
		return 0
	}
	if c.current != nil && c.current.Status == StatusQuestion {
		return c.current.RemainingQuestions
	}
	r := c.cfg.TotalQuestions - len(c.history)
	if r < 0 {
		return 0
	}
	return r
}

// SourceLabel returns the backend's label for the active source, else
// the configured mode's display label.
func (c *Controller) SourceLabel() string {
	if c.current != nil && c.current.SourceLabel != "" {
		return c.current.SourceLabel
	}
	if c.sessionID == "" {
		return ""
	}
	return SourceModeLabel(c.cfg.SourceMode)
}
