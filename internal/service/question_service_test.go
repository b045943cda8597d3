package service_test

import (
	"testing"

	"quizdeck/internal/dto"
	"quizdeck/internal/model"
	"quizdeck/internal/service"
)

func newQuestionService() (service.QuestionService, *fakeStore) {
	store := newFakeStore()
	return service.NewQuestionService(&fakeQuestionRepo{store: store}), store
}

func validQuestion() dto.QuestionCreateDTO {
	return dto.QuestionCreateDTO{
		QuestionText:   "Which labels are vowels?",
		Option1:        "A",
		Option2:        "B",
		Option3:        "C",
		Option4:        "D",
		CorrectOptions: []string{"A"},
		QuestionType:   model.QuestionTypeSingle,
	}
}

func TestCreateQuestion(t *testing.T) {
	svc, store := newQuestionService()

	resp, err := svc.CreateQuestion(validQuestion())
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}
	if resp.ID == 0 {
		t.Error("created question has no id")
	}
	if len(store.questions) != 1 {
		t.Fatalf("store holds %d questions, want 1", len(store.questions))
	}
}

func TestCreateQuestionMultipleCorrect(t *testing.T) {
	svc, _ := newQuestionService()

	req := validQuestion()
	req.QuestionType = model.QuestionTypeMultiple
	req.CorrectOptions = []string{"A", "C"}

	resp, err := svc.CreateQuestion(req)
	if err != nil {
		t.Fatalf("CreateQuestion multiple: %v", err)
	}
	if len(resp.CorrectOptions) != 2 {
		t.Errorf("response correct options = %v, want [A C]", resp.CorrectOptions)
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.QuestionCreateDTO)
	}{
		{"single with two correct", func(q *dto.QuestionCreateDTO) {
			q.CorrectOptions = []string{"A", "B"}
		}},
		{"no correct options", func(q *dto.QuestionCreateDTO) {
			q.CorrectOptions = nil
		}},
		{"duplicate correct label", func(q *dto.QuestionCreateDTO) {
			q.QuestionType = model.QuestionTypeMultiple
			q.CorrectOptions = []string{"A", "A"}
		}},
		{"label outside A-D", func(q *dto.QuestionCreateDTO) {
			q.CorrectOptions = []string{"E"}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store := newQuestionService()
			req := validQuestion()
			tc.mutate(&req)

			if _, err := svc.CreateQuestion(req); err == nil {
				t.Error("CreateQuestion accepted an invalid question")
			}
			if len(store.questions) != 0 {
				t.Error("invalid question was persisted")
			}
		})
	}
}

func TestListQuestions(t *testing.T) {
	svc, store := newQuestionService()
	store.addQuestion("q1", []string{"A"}, model.QuestionTypeSingle)
	store.addQuestion("q2", []string{"B", "C"}, model.QuestionTypeMultiple)

	questions, err := svc.ListQuestions()
	if err != nil {
		t.Fatalf("ListQuestions: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("ListQuestions returned %d, want 2", len(questions))
	}
}
