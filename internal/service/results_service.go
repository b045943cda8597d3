package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"quizdeck/internal/dto"
	"quizdeck/internal/repository"
)

// ResultsService assembles the read-only summary of a completed session.
type ResultsService interface {
	BuildResults(userID uint, sessionUUID uuid.UUID) (*dto.ResultsDTO, error)
}

type resultsService struct {
	sessionRepo         repository.QuizSessionRepository
	sessionQuestionRepo repository.SessionQuestionRepository
	scoring             AnswerScoringService
}

func NewResultsService(
	sessionRepo repository.QuizSessionRepository,
	sessionQuestionRepo repository.SessionQuestionRepository,
	scoring AnswerScoringService,
) ResultsService {
	return &resultsService{
		sessionRepo:         sessionRepo,
		sessionQuestionRepo: sessionQuestionRepo,
		scoring:             scoring,
	}
}

func (s *resultsService) BuildResults(userID uint, sessionUUID uuid.UUID) (*dto.ResultsDTO, error) {
	session, err := s.sessionRepo.FindByUUIDAndUser(sessionUUID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		log.Error().Err(err).Str("sessionID", sessionUUID.String()).Msg("BuildResults: failed to load quiz session")
		return nil, fmt.Errorf("failed to load quiz session: %w", err)
	}
	if !session.IsCompleted {
		return nil, ErrSessionNotCompleted
	}

	records, err := s.sessionQuestionRepo.FindBySessionWithQuestions(session.ID)
	if err != nil {
		log.Error().Err(err).Uint("sessionID", session.ID).Msg("BuildResults: failed to load answered questions")
		return nil, fmt.Errorf("failed to load answered questions: %w", err)
	}

	questions := make([]dto.QuestionResultDTO, 0, len(records))
	for _, record := range records {
		// The persisted score is authoritative; the outcome is
		// re-derived for display.
		outcome, _ := s.scoring.Evaluate(record.SelectedOptions, record.Question.CorrectOptions)
		questions = append(questions, dto.QuestionResultDTO{
			QuestionText:    record.Question.QuestionText,
			Options:         record.Question.Options(),
			CorrectOptions:  record.Question.CorrectOptions,
			SelectedOptions: record.SelectedOptions,
			Outcome:         string(outcome),
			Score:           record.Score,
		})
	}

	return &dto.ResultsDTO{
		SessionID:               session.SessionUUID.String(),
		TotalScore:              session.Score,
		TotalQuestions:          session.TotalQuestions,
		CompletedQuestions:      session.CompletedQuestions,
		CorrectAnswers:          session.CorrectAnswers,
		IncorrectAnswers:        session.IncorrectAnswers,
		PartiallyCorrectAnswers: session.PartiallyCorrectAnswers,
		Questions:               questions,
	}, nil
}
