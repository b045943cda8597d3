package dto

// StartSessionRequest starts a new quiz session for the caller.
type StartSessionRequest struct {
	TotalQuestions int `json:"total_questions" binding:"required"`
}

// SubmitAnswerRequest submits the selected option labels for one question.
// SelectedOptions is a comma-joined label list, e.g. "A,C"; an empty value
// is rejected by the service as an empty selection, not by binding.
type SubmitAnswerRequest struct {
	QuestionID      uint   `json:"question_id" binding:"required"`
	SelectedOptions string `json:"selected_options"`
}
