package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"quizdeck/internal/dto"
	"quizdeck/internal/model"
	"quizdeck/internal/repository"
)

// QuizSessionService is the session state machine. A session is either
// active with no assigned question, active with a current question
// awaiting an answer, or completed. Every operation takes the resolved
// caller identity explicitly and persists its transition before
// returning.
type QuizSessionService interface {
	StartSession(userID uint, totalQuestions int) (*dto.SessionCreatedDTO, error)
	NextQuestion(userID uint, sessionUUID uuid.UUID) (*dto.NextQuestionDTO, error)
	SubmitAnswer(userID uint, sessionUUID uuid.UUID, questionID uint, selectedOptions []string) (*dto.ProgressDTO, error)
	CompleteSession(userID uint, sessionUUID uuid.UUID) (*dto.CompleteSessionDTO, error)
	ListSessions(userID uint) ([]dto.SessionSummaryDTO, error)
}

type quizSessionService struct {
	sessionRepo         repository.QuizSessionRepository
	questionRepo        repository.QuestionRepository
	sessionQuestionRepo repository.SessionQuestionRepository
	scoring             AnswerScoringService
	picker              QuestionPicker
}

func NewQuizSessionService(
	sessionRepo repository.QuizSessionRepository,
	questionRepo repository.QuestionRepository,
	sessionQuestionRepo repository.SessionQuestionRepository,
	scoring AnswerScoringService,
	picker QuestionPicker,
) QuizSessionService {
	return &quizSessionService{
		sessionRepo:         sessionRepo,
		questionRepo:        questionRepo,
		sessionQuestionRepo: sessionQuestionRepo,
		scoring:             scoring,
		picker:              picker,
	}
}

func (s *quizSessionService) StartSession(userID uint, totalQuestions int) (*dto.SessionCreatedDTO, error) {
	if totalQuestions <= 0 {
		return nil, ErrInvalidTotalQuestions
	}

	session := &model.QuizSession{
		UserID:         userID,
		SessionUUID:    uuid.New(),
		TotalQuestions: totalQuestions,
	}
	if err := s.sessionRepo.Create(session); err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("StartSession: failed to create quiz session")
		return nil, fmt.Errorf("failed to create quiz session: %w", err)
	}

	log.Info().Uint("userID", userID).Str("sessionID", session.SessionUUID.String()).Int("totalQuestions", totalQuestions).Msg("Quiz session started")
	return &dto.SessionCreatedDTO{
		SessionID:      session.SessionUUID.String(),
		TotalQuestions: session.TotalQuestions,
	}, nil
}

// maxAssignAttempts bounds how often NextQuestion re-attempts question
// assignment after losing to a concurrent request.
const maxAssignAttempts = 3

// NextQuestion returns the question currently assigned to the session,
// assigning one from the unanswered pool when none is. Re-fetching
// without an intervening answer returns the identical question, so a
// client retry never skips a question.
func (s *quizSessionService) NextQuestion(userID uint, sessionUUID uuid.UUID) (*dto.NextQuestionDTO, error) {
	session, err := s.findOwnedSession(userID, sessionUUID)
	if err != nil {
		return nil, err
	}

	// Losing the assignment race to a concurrent request is recoverable:
	// re-read and honor whatever state the winner left behind, picking
	// again when it freed the slot by answering.
	for attempt := 0; attempt < maxAssignAttempts; attempt++ {
		if session.IsCompleted {
			return nil, ErrSessionCompleted
		}
		if session.CurrentQuestionID != nil {
			return s.currentQuestionDTO(session, *session.CurrentQuestionID)
		}

		candidates, err := s.questionRepo.FindUnansweredForSession(session.ID)
		if err != nil {
			log.Error().Err(err).Uint("sessionID", session.ID).Msg("NextQuestion: failed to load unanswered questions")
			return nil, fmt.Errorf("failed to load unanswered questions: %w", err)
		}
		if len(candidates) == 0 {
			// Catalog exhausted for this session. Not a failure and not
			// completion: the caller may resume once questions are added.
			return &dto.NextQuestionDTO{
				NoMoreQuestions:    true,
				CompletedQuestions: session.CompletedQuestions,
				TotalQuestions:     session.TotalQuestions,
			}, nil
		}

		question := s.picker.Pick(candidates)
		assigned, err := s.sessionRepo.AssignCurrentQuestion(session, question.ID)
		if err != nil {
			log.Error().Err(err).Uint("sessionID", session.ID).Msg("NextQuestion: failed to assign current question")
			return nil, fmt.Errorf("failed to assign current question: %w", err)
		}
		if assigned {
			return s.questionDTO(session, &question), nil
		}

		if session, err = s.findOwnedSession(userID, sessionUUID); err != nil {
			return nil, err
		}
	}

	log.Error().Uint("sessionID", session.ID).Msg("NextQuestion: question assignment kept losing to concurrent requests")
	return nil, fmt.Errorf("failed to assign a question after %d attempts", maxAssignAttempts)
}

func (s *quizSessionService) SubmitAnswer(userID uint, sessionUUID uuid.UUID, questionID uint, selectedOptions []string) (*dto.ProgressDTO, error) {
	session, err := s.findOwnedSession(userID, sessionUUID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted {
		return nil, ErrSessionCompleted
	}

	labels := normalizeLabels(selectedOptions)
	if len(labels) == 0 {
		return nil, ErrEmptySelection
	}

	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		log.Error().Err(err).Uint("questionID", questionID).Msg("SubmitAnswer: failed to load question")
		return nil, fmt.Errorf("failed to load question: %w", err)
	}

	answered, err := s.sessionQuestionRepo.ExistsForSessionAndQuestion(session.ID, question.ID)
	if err != nil {
		log.Error().Err(err).Uint("sessionID", session.ID).Msg("SubmitAnswer: failed to check for existing answer")
		return nil, fmt.Errorf("failed to check for existing answer: %w", err)
	}
	if answered {
		return nil, ErrAlreadyAnswered
	}

	outcome, score := s.scoring.Evaluate(labels, question.CorrectOptions)
	switch outcome {
	case OutcomeCorrect:
		session.CorrectAnswers++
	case OutcomePartial:
		session.PartiallyCorrectAnswers++
	default:
		session.IncorrectAnswers++
	}

	session.Score += score
	session.CompletedQuestions++
	session.CurrentQuestionID = nil
	session.CurrentQuestion = nil
	if session.CompletedQuestions >= session.TotalQuestions {
		session.IsCompleted = true
	}

	record := &model.SessionQuestion{
		SessionID:       session.ID,
		QuestionID:      question.ID,
		SelectedOptions: labels,
		Score:           score,
	}
	if err := s.sessionRepo.RecordAnswer(session, record); err != nil {
		// The unique (session, question) index is the authoritative
		// double-submission guard: a duplicate key means another request
		// recorded this answer first, and no counter was written here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyAnswered
		}
		log.Error().Err(err).Uint("sessionID", session.ID).Uint("questionID", question.ID).Msg("SubmitAnswer: failed to record answer")
		return nil, fmt.Errorf("failed to record answer: %w", err)
	}

	return &dto.ProgressDTO{
		CompletedQuestions: session.CompletedQuestions,
		TotalQuestions:     session.TotalQuestions,
	}, nil
}

// CompleteSession force-completes a session regardless of how many
// questions were answered. Idempotent: completing a completed session is
// a no-op success.
func (s *quizSessionService) CompleteSession(userID uint, sessionUUID uuid.UUID) (*dto.CompleteSessionDTO, error) {
	session, err := s.findOwnedSession(userID, sessionUUID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted {
		return &dto.CompleteSessionDTO{Status: "completed"}, nil
	}

	session.IsCompleted = true
	if err := s.sessionRepo.Update(session); err != nil {
		log.Error().Err(err).Uint("sessionID", session.ID).Msg("CompleteSession: failed to persist completion")
		return nil, fmt.Errorf("failed to complete session: %w", err)
	}

	log.Info().Str("sessionID", sessionUUID.String()).Int("completedQuestions", session.CompletedQuestions).Msg("Quiz session force-completed")
	return &dto.CompleteSessionDTO{Status: "completed"}, nil
}

func (s *quizSessionService) ListSessions(userID uint) ([]dto.SessionSummaryDTO, error) {
	sessions, err := s.sessionRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("ListSessions: failed to load sessions")
		return nil, fmt.Errorf("failed to load sessions: %w", err)
	}

	summaries := make([]dto.SessionSummaryDTO, 0, len(sessions))
	for _, session := range sessions {
		var summary dto.SessionSummaryDTO
		if err := copier.Copy(&summary, &session); err != nil {
			log.Error().Err(err).Uint("sessionID", session.ID).Msg("ListSessions: failed to copy session to summary DTO")
			continue
		}
		summary.SessionID = session.SessionUUID.String()
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *quizSessionService) findOwnedSession(userID uint, sessionUUID uuid.UUID) (*model.QuizSession, error) {
	session, err := s.sessionRepo.FindByUUIDAndUser(sessionUUID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		log.Error().Err(err).Str("sessionID", sessionUUID.String()).Msg("Failed to load quiz session")
		return nil, fmt.Errorf("failed to load quiz session: %w", err)
	}
	return session, nil
}

func (s *quizSessionService) currentQuestionDTO(session *model.QuizSession, questionID uint) (*dto.NextQuestionDTO, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("Failed to load current question")
		return nil, fmt.Errorf("failed to load current question: %w", err)
	}
	return s.questionDTO(session, question), nil
}

func (s *quizSessionService) questionDTO(session *model.QuizSession, question *model.Question) *dto.NextQuestionDTO {
	return &dto.NextQuestionDTO{
		QuestionID:         question.ID,
		QuestionText:       question.QuestionText,
		Options:            question.Options(),
		Type:               question.QuestionType,
		CompletedQuestions: session.CompletedQuestions,
		TotalQuestions:     session.TotalQuestions,
	}
}

// normalizeLabels collapses the selection to a set: blanks drop out and
// duplicates keep their first position.
func normalizeLabels(labels []string) []string {
	seen := make(map[string]struct{}, len(labels))
	normalized := make([]string, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		normalized = append(normalized, l)
	}
	return normalized
}
