package dto

// QuestionCreateDTO is the admin payload for adding a catalog question.
// CorrectOptions holds option labels and must be a non-empty subset of
// A/B/C/D; for type "single" the service enforces exactly one label.
type QuestionCreateDTO struct {
	QuestionText   string   `json:"question_text" binding:"required"`
	Option1        string   `json:"option1" binding:"required"`
	Option2        string   `json:"option2" binding:"required"`
	Option3        string   `json:"option3" binding:"required"`
	Option4        string   `json:"option4" binding:"required"`
	CorrectOptions []string `json:"correct_options" binding:"required,min=1,max=4,dive,oneof=A B C D"`
	QuestionType   string   `json:"question_type" binding:"required,oneof=single multiple"`
}
