package service

import "math"

// Outcome classifies one evaluated answer.
type Outcome string

const (
	OutcomeCorrect   Outcome = "correct"
	OutcomePartial   Outcome = "partial"
	OutcomeIncorrect Outcome = "incorrect"
)

// AnswerScoringService evaluates a selected option set against the
// correct set. It is a pure function: no persistence, no side effects.
type AnswerScoringService interface {
	Evaluate(selected, correct []string) (Outcome, float64)
}

type answerScoringService struct{}

func NewAnswerScoringService() AnswerScoringService {
	return &answerScoringService{}
}

// Evaluate treats both inputs as sets: duplicate labels collapse and
// order is irrelevant. Equal sets score 1.0; a proper non-empty subset
// of the correct set scores |selected|/|correct| rounded to two decimal
// places; everything else scores 0.0. Empty selections are rejected by
// the caller before evaluation and never reach here through the session
// service.
func (s *answerScoringService) Evaluate(selected, correct []string) (Outcome, float64) {
	selectedSet := toLabelSet(selected)
	correctSet := toLabelSet(correct)

	if len(selectedSet) == 0 {
		return OutcomeIncorrect, 0.0
	}
	if !containsAll(correctSet, selectedSet) {
		return OutcomeIncorrect, 0.0
	}
	if len(selectedSet) == len(correctSet) {
		return OutcomeCorrect, 1.0
	}

	// Proper subset: every selected label is correct, so the
	// intersection size equals |selected|.
	score := float64(len(selectedSet)) / float64(len(correctSet))
	return OutcomePartial, math.Round(score*100) / 100
}

func toLabelSet(labels []string) map[string]struct{} {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return set
}

func containsAll(set, candidates map[string]struct{}) bool {
	for l := range candidates {
		if _, ok := set[l]; !ok {
			return false
		}
	}
	return true
}
