package service_test

import (
	"fmt"
	"sort"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizdeck/internal/model"
	"quizdeck/internal/service"
)

/* ---------------- In-memory fakes that satisfy the repository interfaces ---------------- */

type fakeStore struct {
	questions      map[uint]model.Question
	sessions       map[uuid.UUID]model.QuizSession
	records        map[string]model.SessionQuestion
	recordOrder    []string
	nextQuestionID uint
	nextSessionID  uint
	nextRecordID   uint

	// recordAnswerErr, when set, is returned by RecordAnswer before any
	// write, simulating a lost transaction race.
	recordAnswerErr error

	// assignFailures makes AssignCurrentQuestion report a lost race that
	// many times before behaving normally.
	assignFailures int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		questions: map[uint]model.Question{},
		sessions:  map[uuid.UUID]model.QuizSession{},
		records:   map[string]model.SessionQuestion{},
	}
}

func recordKey(sessionID, questionID uint) string {
	return fmt.Sprintf("%d|%d", sessionID, questionID)
}

func (s *fakeStore) addQuestion(text string, correct []string, questionType string) uint {
	s.nextQuestionID++
	q := model.Question{
		ID:             s.nextQuestionID,
		QuestionText:   text,
		Option1:        "option one",
		Option2:        "option two",
		Option3:        "option three",
		Option4:        "option four",
		CorrectOptions: correct,
		QuestionType:   questionType,
	}
	s.questions[q.ID] = q
	return q.ID
}

func (s *fakeStore) sessionByUUID(t *testing.T, sessionUUID uuid.UUID) model.QuizSession {
	t.Helper()
	session, ok := s.sessions[sessionUUID]
	if !ok {
		t.Fatalf("session %s not in store", sessionUUID)
	}
	return session
}

type fakeQuestionRepo struct {
	store *fakeStore
}

func (r *fakeQuestionRepo) Create(question *model.Question) error {
	r.store.nextQuestionID++
	question.ID = r.store.nextQuestionID
	r.store.questions[question.ID] = *question
	return nil
}

func (r *fakeQuestionRepo) FindByID(id uint) (*model.Question, error) {
	q, ok := r.store.questions[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &q, nil
}

func (r *fakeQuestionRepo) FindAll() ([]model.Question, error) {
	out := make([]model.Question, 0, len(r.store.questions))
	for _, q := range r.store.questions {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeQuestionRepo) FindUnansweredForSession(sessionID uint) ([]model.Question, error) {
	var out []model.Question
	for _, q := range r.store.questions {
		if _, answered := r.store.records[recordKey(sessionID, q.ID)]; !answered {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeSessionRepo struct {
	store *fakeStore
}

func (r *fakeSessionRepo) Create(session *model.QuizSession) error {
	r.store.nextSessionID++
	session.ID = r.store.nextSessionID
	r.store.sessions[session.SessionUUID] = *session
	return nil
}

func (r *fakeSessionRepo) FindByUUIDAndUser(sessionUUID uuid.UUID, userID uint) (*model.QuizSession, error) {
	session, ok := r.store.sessions[sessionUUID]
	if !ok || session.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return &session, nil
}

func (r *fakeSessionRepo) FindAllByUser(userID uint) ([]model.QuizSession, error) {
	var out []model.QuizSession
	for _, session := range r.store.sessions {
		if session.UserID == userID {
			out = append(out, session)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeSessionRepo) Update(session *model.QuizSession) error {
	r.store.sessions[session.SessionUUID] = *session
	return nil
}

func (r *fakeSessionRepo) AssignCurrentQuestion(session *model.QuizSession, questionID uint) (bool, error) {
	if r.store.assignFailures > 0 {
		r.store.assignFailures--
		return false, nil
	}
	stored, ok := r.store.sessions[session.SessionUUID]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if stored.CurrentQuestionID != nil || stored.IsCompleted {
		return false, nil
	}
	stored.CurrentQuestionID = &questionID
	r.store.sessions[stored.SessionUUID] = stored
	session.CurrentQuestionID = &questionID
	return true, nil
}

func (r *fakeSessionRepo) RecordAnswer(session *model.QuizSession, sq *model.SessionQuestion) error {
	if r.store.recordAnswerErr != nil {
		return r.store.recordAnswerErr
	}
	key := recordKey(sq.SessionID, sq.QuestionID)
	if _, exists := r.store.records[key]; exists {
		return gorm.ErrDuplicatedKey
	}
	r.store.nextRecordID++
	sq.ID = r.store.nextRecordID
	r.store.records[key] = *sq
	r.store.recordOrder = append(r.store.recordOrder, key)
	r.store.sessions[session.SessionUUID] = *session
	return nil
}

type fakeSessionQuestionRepo struct {
	store *fakeStore
}

func (r *fakeSessionQuestionRepo) ExistsForSessionAndQuestion(sessionID, questionID uint) (bool, error) {
	_, exists := r.store.records[recordKey(sessionID, questionID)]
	return exists, nil
}

func (r *fakeSessionQuestionRepo) FindBySessionWithQuestions(sessionID uint) ([]model.SessionQuestion, error) {
	var out []model.SessionQuestion
	for _, key := range r.store.recordOrder {
		record := r.store.records[key]
		if record.SessionID != sessionID {
			continue
		}
		record.Question = r.store.questions[record.QuestionID]
		out = append(out, record)
	}
	return out, nil
}

// firstPicker replaces random selection with lowest-ID-first so tests
// are deterministic.
type firstPicker struct{}

func (firstPicker) Pick(candidates []model.Question) model.Question {
	picked := candidates[0]
	for _, c := range candidates[1:] {
		if c.ID < picked.ID {
			picked = c
		}
	}
	return picked
}

/* ---------------- Shared test environment ---------------- */

type env struct {
	store    *fakeStore
	sessions service.QuizSessionService
	results  service.ResultsService
}

func newEnv() *env {
	store := newFakeStore()
	scoring := service.NewAnswerScoringService()
	sessionRepo := &fakeSessionRepo{store: store}
	questionRepo := &fakeQuestionRepo{store: store}
	sessionQuestionRepo := &fakeSessionQuestionRepo{store: store}
	return &env{
		store:    store,
		sessions: service.NewQuizSessionService(sessionRepo, questionRepo, sessionQuestionRepo, scoring, firstPicker{}),
		results:  service.NewResultsService(sessionRepo, sessionQuestionRepo, scoring),
	}
}

// sameSessionState compares the fields the state machine owns; the
// model itself is not comparable because of its association slices.
func sameSessionState(a, b model.QuizSession) bool {
	return a.CompletedQuestions == b.CompletedQuestions &&
		a.CorrectAnswers == b.CorrectAnswers &&
		a.IncorrectAnswers == b.IncorrectAnswers &&
		a.PartiallyCorrectAnswers == b.PartiallyCorrectAnswers &&
		a.Score == b.Score &&
		a.IsCompleted == b.IsCompleted
}

func (e *env) startSession(t *testing.T, userID uint, totalQuestions int) uuid.UUID {
	t.Helper()
	created, err := e.sessions.StartSession(userID, totalQuestions)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	sessionUUID, err := uuid.Parse(created.SessionID)
	if err != nil {
		t.Fatalf("StartSession returned invalid session id %q: %v", created.SessionID, err)
	}
	return sessionUUID
}
