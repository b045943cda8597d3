package repository

import (
	"gorm.io/gorm"

	"quizdeck/internal/model"
)

type SessionQuestionRepository interface {
	ExistsForSessionAndQuestion(sessionID, questionID uint) (bool, error)
	FindBySessionWithQuestions(sessionID uint) ([]model.SessionQuestion, error)
}

type sessionQuestionRepository struct {
	db *gorm.DB
}

func NewSessionQuestionRepository(db *gorm.DB) SessionQuestionRepository {
	return &sessionQuestionRepository{db: db}
}

func (r *sessionQuestionRepository) ExistsForSessionAndQuestion(sessionID, questionID uint) (bool, error) {
	var count int64
	err := r.db.Model(&model.SessionQuestion{}).
		Where("session_id = ? AND question_id = ?", sessionID, questionID).
		Count(&count).Error
	return count > 0, err
}

func (r *sessionQuestionRepository) FindBySessionWithQuestions(sessionID uint) ([]model.SessionQuestion, error) {
	var records []model.SessionQuestion
	err := r.db.Preload("Question").
		Where("session_id = ?", sessionID).
		Order("created_at asc").
		Find(&records).Error
	return records, err
}
