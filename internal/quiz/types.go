package quiz

// KnowledgeLevel is the learner's self-reported confidence for a topic.
type KnowledgeLevel string

const (
	LevelBeginner     KnowledgeLevel = "beginner"
	LevelIntermediate KnowledgeLevel = "intermediate"
	LevelAdvanced     KnowledgeLevel = "advanced"
)

// Difficulty is the difficulty band a question belongs to.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// SourceMode selects which ingested documents questions are drawn from.
type SourceMode string

const (
	SourceLatest   SourceMode = "latest"
	SourcePrevious SourceMode = "previous"
	SourceAll      SourceMode = "all"
	SourceCustom   SourceMode = "custom"
)

// QuestionType distinguishes how an answer is captured and evaluated.
type QuestionType string

const (
	TypeMCQ       QuestionType = "mcq"
	TypeTrueFalse QuestionType = "true_false"
	TypeFillBlank QuestionType = "fill_blank"
	TypeScenario  QuestionType = "scenario"
)

// Option is one selectable answer for a question.
type Option struct {
	ID   string
	Text string
}

// Question is a server-supplied quiz question. The client treats it as
// read-only; the correct answer is used only for local feedback.
type Question struct {
	QuestionID      string
	Prompt          string
	Difficulty      Difficulty
	Options         []Option
	CorrectOptionID string
	Explanation     string
	ConceptLabel    string
	QuestionType    QuestionType
	FocusConcept    string
	FocusKeywords   []string
}

// Type returns the question type, defaulting to mcq when the server
// omits it.
func (q *Question) Type() QuestionType {
	if q.QuestionType == "" {
		return TypeMCQ
	}
	return q.QuestionType
}

// OptionByID returns the option with the given id, or nil.
func (q *Question) OptionByID(id string) *Option {
	for i := range q.Options {
		if q.Options[i].ID == id {
			return &q.Options[i]
		}
	}
	return nil
}

// CorrectOption returns the option marked correct, or nil for free-text
// questions without one.
func (q *Question) CorrectOption() *Option {
	return q.OptionByID(q.CorrectOptionID)
}

// HistoryTurn is one answered question. Turns are append-only and never
// mutated after creation.
type HistoryTurn struct {
	QuestionID        string
	Question          string
	SelectedOptionID  string
	CorrectOptionID   string
	CorrectOptionText string
	Difficulty        Difficulty
	WasCorrect        bool
	Explanation       string
	ConceptLabel      string
}

// Feedback is what the learner sees immediately after submitting.
type Feedback struct {
	WasCorrect        bool
	CorrectOptionID   string
	CorrectOptionText string
	Explanation       string
	UserAnswerText    string
}

// StepStatus tags the two Step variants.
type StepStatus string

const (
	StatusQuestion StepStatus = "question"
	StatusComplete StepStatus = "complete"
)

// ConceptBreakdown aggregates results for one concept in a summary.
type ConceptBreakdown struct {
	Concept   string
	Attempts  int
	Correct   int
	Incorrect int
	Accuracy  float64
}

// DifficultyBreakdown aggregates results for one difficulty band.
type DifficultyBreakdown struct {
	Difficulty Difficulty
	Attempts   int
	Correct    int
	Incorrect  int
	Accuracy   float64
}

// Summary is the terminal variant of a Step: the backend's aggregate
// view of the finished session.
type Summary struct {
	TotalQuestions      int
	CorrectCount        int
	IncorrectCount      int
	Accuracy            float64
	ConceptBreakdown    []ConceptBreakdown
	DifficultyBreakdown []DifficultyBreakdown
	RecommendedConcepts []string
}

// Step is one backend response cycle: either the next question or the
// session summary. Exactly one of Question/Summary is set, per Status.
type Step struct {
	Status             StepStatus
	Question           *Question
	TotalQuestions     int
	RemainingQuestions int
	SourceLabel        string
	Summary            *Summary
}

// IsComplete reports whether this step ends the session.
func (s *Step) IsComplete() bool {
	return s.Status == StatusComplete
}

// StepRequest is the payload for one /quiz/next call. History is a
// snapshot taken at build time, not a live reference.
type StepRequest struct {
	Topic          string
	KnowledgeLevel KnowledgeLevel
	TotalQuestions int
	SourceMode     SourceMode
	SourceID       string
	SessionID      string
	History        []HistoryTurn
}
