package service_test

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"quizdeck/internal/model"
	"quizdeck/internal/service"
)

func TestBuildResultsRequiresCompletedSession(t *testing.T) {
	e := newEnv()
	sessionUUID := e.startSession(t, 1, 3)

	if _, err := e.results.BuildResults(1, sessionUUID); !errors.Is(err, service.ErrSessionNotCompleted) {
		t.Errorf("BuildResults on active session err = %v, want ErrSessionNotCompleted", err)
	}
}

func TestBuildResultsUnknownOrForeignSession(t *testing.T) {
	e := newEnv()
	sessionUUID := e.startSession(t, 1, 3)

	if _, err := e.results.BuildResults(2, sessionUUID); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("foreign BuildResults err = %v, want ErrSessionNotFound", err)
	}
	if _, err := e.results.BuildResults(1, uuid.New()); !errors.Is(err, service.ErrSessionNotFound) {
		t.Errorf("unknown BuildResults err = %v, want ErrSessionNotFound", err)
	}
}

func TestBuildResultsAggregatesAnswers(t *testing.T) {
	e := newEnv()
	q1 := e.store.addQuestion("pick A and C", []string{"A", "C"}, model.QuestionTypeMultiple)
	q2 := e.store.addQuestion("pick B", []string{"B"}, model.QuestionTypeSingle)
	q3 := e.store.addQuestion("pick D", []string{"D"}, model.QuestionTypeSingle)
	sessionUUID := e.startSession(t, 1, 3)

	for _, submit := range []struct {
		questionID uint
		selected   []string
	}{
		{q1, []string{"A"}},      // partial, 0.5
		{q2, []string{"B"}},      // correct, 1.0
		{q3, []string{"A", "B"}}, // incorrect, 0.0
	} {
		if _, err := e.sessions.SubmitAnswer(1, sessionUUID, submit.questionID, submit.selected); err != nil {
			t.Fatalf("SubmitAnswer(q%d): %v", submit.questionID, err)
		}
	}

	results, err := e.results.BuildResults(1, sessionUUID)
	if err != nil {
		t.Fatalf("BuildResults: %v", err)
	}

	if results.SessionID != sessionUUID.String() {
		t.Errorf("results session id = %s, want %s", results.SessionID, sessionUUID)
	}
	if results.TotalScore != 1.5 {
		t.Errorf("total score = %v, want 1.5", results.TotalScore)
	}
	if results.TotalQuestions != 3 || results.CompletedQuestions != 3 {
		t.Errorf("totals = %d/%d, want 3/3", results.CompletedQuestions, results.TotalQuestions)
	}
	if results.CorrectAnswers != 1 || results.PartiallyCorrectAnswers != 1 || results.IncorrectAnswers != 1 {
		t.Errorf("outcome counts = %d/%d/%d, want 1/1/1",
			results.CorrectAnswers, results.PartiallyCorrectAnswers, results.IncorrectAnswers)
	}
	if len(results.Questions) != 3 {
		t.Fatalf("results carry %d questions, want 3", len(results.Questions))
	}

	// Answers come back in submission order with outcome and score.
	wantOutcomes := []string{"partial", "correct", "incorrect"}
	wantScores := []float64{0.5, 1.0, 0.0}
	for i, qr := range results.Questions {
		if qr.Outcome != wantOutcomes[i] {
			t.Errorf("question %d outcome = %s, want %s", i, qr.Outcome, wantOutcomes[i])
		}
		if qr.Score != wantScores[i] {
			t.Errorf("question %d score = %v, want %v", i, qr.Score, wantScores[i])
		}
		if len(qr.Options) != 4 {
			t.Errorf("question %d carries %d options, want 4", i, len(qr.Options))
		}
		if qr.QuestionText == "" || len(qr.CorrectOptions) == 0 || len(qr.SelectedOptions) == 0 {
			t.Errorf("question %d is missing review fields: %+v", i, qr)
		}
	}
}

func TestBuildResultsAfterForceComplete(t *testing.T) {
	e := newEnv()
	q1 := e.store.addQuestion("pick A", []string{"A"}, model.QuestionTypeSingle)
	e.store.addQuestion("pick B", []string{"B"}, model.QuestionTypeSingle)
	sessionUUID := e.startSession(t, 1, 2)

	if _, err := e.sessions.SubmitAnswer(1, sessionUUID, q1, []string{"A"}); err != nil {
		t.Fatalf("SubmitAnswer: %v", err)
	}
	if _, err := e.sessions.CompleteSession(1, sessionUUID); err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}

	results, err := e.results.BuildResults(1, sessionUUID)
	if err != nil {
		t.Fatalf("BuildResults after force-complete: %v", err)
	}
	if results.CompletedQuestions != 1 || results.TotalQuestions != 2 {
		t.Errorf("force-completed totals = %d/%d, want 1/2", results.CompletedQuestions, results.TotalQuestions)
	}
	if len(results.Questions) != 1 {
		t.Errorf("results carry %d questions, want 1", len(results.Questions))
	}
}
