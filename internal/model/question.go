package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	QuestionTypeSingle   = "single"
	QuestionTypeMultiple = "multiple"
)

// OptionLabels are the four labels an answer may select from, in display order.
var OptionLabels = []string{"A", "B", "C", "D"}

// Question is an immutable catalog entry shared read-only across sessions.
// CorrectOptions holds option labels ("A".."D") and is non-empty; type
// "single" carries exactly one label.
type Question struct {
	ID             uint           `gorm:"primarykey" json:"id"`
	QuestionText   string         `json:"question_text" gorm:"type:text;not null"`
	Option1        string         `json:"option1" gorm:"not null"`
	Option2        string         `json:"option2" gorm:"not null"`
	Option3        string         `json:"option3" gorm:"not null"`
	Option4        string         `json:"option4" gorm:"not null"`
	CorrectOptions []string       `json:"correct_options" gorm:"serializer:json;not null"`
	QuestionType   string         `json:"question_type" gorm:"not null;default:'single'"` // "single", "multiple"
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// Options returns the four option texts in label order.
func (q *Question) Options() []string {
	return []string{q.Option1, q.Option2, q.Option3, q.Option4}
}
