package service

import (
	"math/rand/v2"

	"quizdeck/internal/model"
)

// QuestionPicker selects the next question from a non-empty candidate
// set. Uniform random selection is a policy choice, not a contract;
// deterministic implementations replace it in tests.
type QuestionPicker interface {
	Pick(candidates []model.Question) model.Question
}

type randomQuestionPicker struct{}

func NewQuestionPicker() QuestionPicker {
	return &randomQuestionPicker{}
}

func (p *randomQuestionPicker) Pick(candidates []model.Question) model.Question {
	return candidates[rand.IntN(len(candidates))]
}
