package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"quizdeck/internal/model"
)

type QuizSessionRepository interface {
	Create(session *model.QuizSession) error
	// FindByUUIDAndUser scopes every lookup by owner; a session that
	// exists for another user is indistinguishable from one that does
	// not exist.
	FindByUUIDAndUser(sessionUUID uuid.UUID, userID uint) (*model.QuizSession, error)
	FindAllByUser(userID uint) ([]model.QuizSession, error)
	Update(session *model.QuizSession) error
	// AssignCurrentQuestion sets current_question_id only when no
	// question is currently assigned. Returns false when a concurrent
	// request won the assignment; the caller re-reads and returns the
	// winner's question.
	AssignCurrentQuestion(session *model.QuizSession, questionID uint) (bool, error)
	// RecordAnswer creates the immutable SessionQuestion row and persists
	// the updated session counters in one transaction. The row is created
	// first so a duplicate (session, question) key aborts before any
	// counter is written.
	RecordAnswer(session *model.QuizSession, sq *model.SessionQuestion) error
}

type quizSessionRepository struct {
	db *gorm.DB
}

func NewQuizSessionRepository(db *gorm.DB) QuizSessionRepository {
	return &quizSessionRepository{db: db}
}

func (r *quizSessionRepository) Create(session *model.QuizSession) error {
	return r.db.Create(session).Error
}

func (r *quizSessionRepository) FindByUUIDAndUser(sessionUUID uuid.UUID, userID uint) (*model.QuizSession, error) {
	var session model.QuizSession
	err := r.db.Where("session_uuid = ? AND user_id = ?", sessionUUID, userID).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *quizSessionRepository) FindAllByUser(userID uint) ([]model.QuizSession, error) {
	var sessions []model.QuizSession
	err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&sessions).Error
	return sessions, err
}

func (r *quizSessionRepository) Update(session *model.QuizSession) error {
	return r.db.Save(session).Error
}

func (r *quizSessionRepository) AssignCurrentQuestion(session *model.QuizSession, questionID uint) (bool, error) {
	res := r.db.Model(&model.QuizSession{}).
		Where("id = ? AND current_question_id IS NULL AND is_completed = ?", session.ID, false).
		Update("current_question_id", questionID)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	session.CurrentQuestionID = &questionID
	return true, nil
}

func (r *quizSessionRepository) RecordAnswer(session *model.QuizSession, sq *model.SessionQuestion) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(sq).Error; err != nil {
			return err
		}
		return tx.Save(session).Error
	})
}
