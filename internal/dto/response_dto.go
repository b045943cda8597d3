package dto

import "time"

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

// SessionCreatedDTO is returned when a quiz session is started.
type SessionCreatedDTO struct {
	SessionID      string `json:"session_id"`
	TotalQuestions int    `json:"total_questions"`
}

// NextQuestionDTO carries either the assigned question or the
// no-more-questions signal; the latter is a legitimate outcome, not an
// error, and the client may resume once the catalog grows.
type NextQuestionDTO struct {
	NoMoreQuestions    bool     `json:"no_more_questions,omitempty"`
	QuestionID         uint     `json:"question_id,omitempty"`
	QuestionText       string   `json:"question_text,omitempty"`
	Options            []string `json:"options,omitempty"`
	Type               string   `json:"type,omitempty"`
	CompletedQuestions int      `json:"completed_questions"`
	TotalQuestions     int      `json:"total_questions"`
}

// ProgressDTO reports session progress after an answer submission.
type ProgressDTO struct {
	CompletedQuestions int `json:"completed_questions"`
	TotalQuestions     int `json:"total_questions"`
}

type CompleteSessionDTO struct {
	Status string `json:"status"`
}

// QuestionResultDTO is one answered question within a results view.
type QuestionResultDTO struct {
	QuestionText    string   `json:"question_text"`
	Options         []string `json:"options"`
	CorrectOptions  []string `json:"correct_options"`
	SelectedOptions []string `json:"selected_options"`
	Outcome         string   `json:"outcome"`
	Score           float64  `json:"score"`
}

// ResultsDTO is the read-only summary of a completed session.
type ResultsDTO struct {
	SessionID               string              `json:"session_id"`
	TotalScore              float64             `json:"total_score"`
	TotalQuestions          int                 `json:"total_questions"`
	CompletedQuestions      int                 `json:"completed_questions"`
	CorrectAnswers          int                 `json:"correct_answers"`
	IncorrectAnswers        int                 `json:"incorrect_answers"`
	PartiallyCorrectAnswers int                 `json:"partially_correct_answers"`
	Questions               []QuestionResultDTO `json:"questions"`
}

// SessionSummaryDTO lists one of the caller's sessions on the history view.
type SessionSummaryDTO struct {
	SessionID          string    `json:"session_id"`
	TotalQuestions     int       `json:"total_questions"`
	CompletedQuestions int       `json:"completed_questions"`
	Score              float64   `json:"score"`
	IsCompleted        bool      `json:"is_completed"`
	CreatedAt          time.Time `json:"created_at"`
}

// QuestionResponseDTO is the admin view of a catalog question.
type QuestionResponseDTO struct {
	ID             uint      `json:"id"`
	QuestionText   string    `json:"question_text"`
	Option1        string    `json:"option1"`
	Option2        string    `json:"option2"`
	Option3        string    `json:"option3"`
	Option4        string    `json:"option4"`
	CorrectOptions []string  `json:"correct_options"`
	QuestionType   string    `json:"question_type"`
	CreatedAt      time.Time `json:"created_at"`
}
