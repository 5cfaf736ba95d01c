package quiz

import "strings"

// FreeTextPrefix marks a synthesized selected-option id recorded when a
// fill-blank answer matched no option. The raw input is embedded so the
// turn stays auditable in history.
const FreeTextPrefix = "text:"

// Evaluate judges a raw answer against a question and produces the
// history turn plus display feedback. It performs no network calls.
//
// Returns ok=false when the input is not submittable (empty, or blank
// after trimming for fill-blank); the caller must treat that as a no-op.
func Evaluate(q *Question, rawAnswer string) (HistoryTurn, Feedback, bool) {
	if q == nil {
		return HistoryTurn{}, Feedback{}, false
	}

	if q.Type() == TypeFillBlank {
		return evaluateFreeText(q, rawAnswer)
	}
	return evaluateOption(q, rawAnswer)
}

// evaluateOption handles mcq, true_false, and scenario questions:
// correctness is selected-id equality against the correct option id.
func evaluateOption(q *Question, rawAnswer string) (HistoryTurn, Feedback, bool) {
	if rawAnswer == "" {
		return HistoryTurn{}, Feedback{}, false
	}

	wasCorrect := rawAnswer == q.CorrectOptionID

	selectedID := rawAnswer
	var userAnswerText string
	if opt := q.OptionByID(rawAnswer); opt != nil {
		selectedID = opt.ID
		userAnswerText = opt.Text
	}

	var correctText string
	if opt := q.CorrectOption(); opt != nil {
		correctText = opt.Text
	}

	turn := HistoryTurn{
		QuestionID:        q.QuestionID,
		Question:          q.Prompt,
		SelectedOptionID:  selectedID,
		CorrectOptionID:   q.CorrectOptionID,
		CorrectOptionText: correctText,
		Difficulty:        q.Difficulty,
		WasCorrect:        wasCorrect,
		Explanation:       q.Explanation,
		ConceptLabel:      q.ConceptLabel,
	}
	fb := Feedback{
		WasCorrect:        wasCorrect,
		CorrectOptionID:   q.CorrectOptionID,
		CorrectOptionText: correctText,
		Explanation:       q.Explanation,
		UserAnswerText:    userAnswerText,
	}
	return turn, fb, true
}

// evaluateFreeText handles fill-blank questions. The input is trimmed
// and lowercased, then matched against option text to resolve an option
// id; failing that it is compared directly against the correct option's
// normalized text.
func evaluateFreeText(q *Question, rawAnswer string) (HistoryTurn, Feedback, bool) {
	typed := strings.TrimSpace(rawAnswer)
	if typed == "" {
		return HistoryTurn{}, Feedback{}, false
	}
	normalized := strings.ToLower(typed)

	var matched *Option
	for i := range q.Options {
		if strings.ToLower(strings.TrimSpace(q.Options[i].Text)) == normalized {
			matched = &q.Options[i]
			break
		}
	}

	var correctText string
	if opt := q.CorrectOption(); opt != nil {
		correctText = opt.Text
	}

	var wasCorrect bool
	if matched != nil {
		wasCorrect = matched.ID == q.CorrectOptionID
	} else {
		wasCorrect = correctText != "" &&
			normalized == strings.ToLower(strings.TrimSpace(correctText))
	}

	selectedID := FreeTextPrefix + typed
	if matched != nil {
		selectedID = matched.ID
	}

	turn := HistoryTurn{
		QuestionID:        q.QuestionID,
		Question:          q.Prompt,
		SelectedOptionID:  selectedID,
		CorrectOptionID:   q.CorrectOptionID,
		CorrectOptionText: correctText,
		Difficulty:        q.Difficulty,
		WasCorrect:        wasCorrect,
		Explanation:       q.Explanation,
		ConceptLabel:      q.ConceptLabel,
	}
	fb := Feedback{
		WasCorrect:        wasCorrect,
		CorrectOptionID:   q.CorrectOptionID,
		CorrectOptionText: correctText,
		Explanation:       q.Explanation,
		UserAnswerText:    typed,
	}
	return turn, fb, true
}
