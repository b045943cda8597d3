package model

import (
	"time"

	"gorm.io/gorm"
)

// SessionQuestion is one answered question within one session, created
// exactly once at answer-submission time and immutable afterwards. The
// composite unique index on (session_id, question_id) is the
// authoritative already-answered guard.
type SessionQuestion struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	SessionID       uint           `json:"session_id" gorm:"not null;uniqueIndex:idx_session_question"`
	QuestionID      uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_session_question"`
	Question        Question       `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	SelectedOptions []string       `json:"selected_options" gorm:"serializer:json;not null"`
	Score           float64        `json:"score" gorm:"not null;default:0"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}
