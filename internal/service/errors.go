package service

import "errors"

// Domain error taxonomy. Validation and state-conflict errors are
// reported to the caller with no state mutated; not-found covers both
// missing sessions and sessions owned by another user.
var (
	ErrInvalidTotalQuestions = errors.New("total questions must be a positive integer")
	ErrEmptySelection        = errors.New("no options selected")
	ErrSessionNotFound       = errors.New("quiz session not found")
	ErrQuestionNotFound      = errors.New("question not found")
	ErrSessionCompleted      = errors.New("quiz session is already completed")
	ErrAlreadyAnswered       = errors.New("question already answered in this session")
	ErrSessionNotCompleted   = errors.New("quiz session is not completed yet")
)
