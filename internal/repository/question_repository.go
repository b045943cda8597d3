package repository

import (
	"quizdeck/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindAll() ([]model.Question, error)
	// FindUnansweredForSession returns every catalog question without a
	// SessionQuestion row for the given session. An exhausted catalog
	// yields an empty slice, not an error.
	FindUnansweredForSession(sessionID uint) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindAll() ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Order("created_at desc").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}

func (r *questionRepository) FindUnansweredForSession(sessionID uint) ([]model.Question, error) {
	var questions []model.Question
	answered := r.db.Model(&model.SessionQuestion{}).
		Select("question_id").
		Where("session_id = ?", sessionID)
	if err := r.db.Where("id NOT IN (?)", answered).Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
