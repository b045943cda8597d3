package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizSession is one user's attempt at a fixed-size quiz. Counters are
// mutated only by the session service; rows are kept for history and
// never deleted. CurrentQuestionID is non-nil only while an assigned
// question awaits an answer.
type QuizSession struct {
	ID                      uint              `gorm:"primarykey" json:"id"`
	UserID                  uint              `json:"user_id" gorm:"not null;index"`
	SessionUUID             uuid.UUID         `json:"session_uuid" gorm:"type:uuid;uniqueIndex;not null"`
	TotalQuestions          int               `json:"total_questions" gorm:"not null"`
	CompletedQuestions      int               `json:"completed_questions" gorm:"not null;default:0"`
	CorrectAnswers          int               `json:"correct_answers" gorm:"not null;default:0"`
	IncorrectAnswers        int               `json:"incorrect_answers" gorm:"not null;default:0"`
	PartiallyCorrectAnswers int               `json:"partially_correct_answers" gorm:"not null;default:0"`
	Score                   float64           `json:"score" gorm:"not null;default:0"`
	IsCompleted             bool              `json:"is_completed" gorm:"not null;default:false"`
	CurrentQuestionID       *uint             `json:"current_question_id,omitempty"`
	CurrentQuestion         *Question         `json:"current_question,omitempty" gorm:"foreignKey:CurrentQuestionID;constraint:OnDelete:SET NULL"`
	SessionQuestions        []SessionQuestion `json:"session_questions,omitempty" gorm:"foreignKey:SessionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt               time.Time         `json:"created_at"`
	UpdatedAt               time.Time         `json:"updated_at"`
	DeletedAt               gorm.DeletedAt    `gorm:"index" json:"-"`
}
