package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"quizdeck/internal/dto"
	"quizdeck/internal/model"
	"quizdeck/internal/repository"
)

// QuestionService manages the question catalog. Questions are immutable
// once created and shared read-only across sessions.
type QuestionService interface {
	CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error)
	ListQuestions() ([]dto.QuestionResponseDTO, error)
}

type questionService struct {
	questionRepo repository.QuestionRepository
}

func NewQuestionService(questionRepo repository.QuestionRepository) QuestionService {
	return &questionService{questionRepo: questionRepo}
}

func (s *questionService) CreateQuestion(req dto.QuestionCreateDTO) (*dto.QuestionResponseDTO, error) {
	validLabels := make(map[string]bool, len(model.OptionLabels))
	for _, l := range model.OptionLabels {
		validLabels[l] = true
	}

	seen := make(map[string]bool, len(req.CorrectOptions))
	for _, l := range req.CorrectOptions {
		if !validLabels[l] {
			return nil, fmt.Errorf("correct option %q is not one of the option labels %v", l, model.OptionLabels)
		}
		if seen[l] {
			return nil, fmt.Errorf("duplicate correct option %q", l)
		}
		seen[l] = true
	}
	if len(seen) == 0 {
		return nil, fmt.Errorf("a question must have at least one correct option")
	}
	if req.QuestionType == model.QuestionTypeSingle && len(seen) != 1 {
		return nil, fmt.Errorf("a %q question must have exactly one correct option, got %d", model.QuestionTypeSingle, len(seen))
	}

	var question model.Question
	if err := copier.Copy(&question, &req); err != nil {
		log.Error().Err(err).Msg("CreateQuestion: failed to copy DTO to model")
		return nil, fmt.Errorf("error preparing question: %w", err)
	}

	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Msg("CreateQuestion: failed to create question in database")
		return nil, fmt.Errorf("database error creating question: %w", err)
	}

	var resp dto.QuestionResponseDTO
	if err := copier.Copy(&resp, &question); err != nil {
		log.Error().Err(err).Msg("CreateQuestion: failed to copy model to response DTO")
		return nil, fmt.Errorf("error preparing response data: %w", err)
	}
	return &resp, nil
}

func (s *questionService) ListQuestions() ([]dto.QuestionResponseDTO, error) {
	questions, err := s.questionRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("ListQuestions: failed to load questions")
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}

	dtos := make([]dto.QuestionResponseDTO, 0, len(questions))
	for _, question := range questions {
		var resp dto.QuestionResponseDTO
		if err := copier.Copy(&resp, &question); err != nil {
			log.Error().Err(err).Uint("questionID", question.ID).Msg("ListQuestions: failed to copy question to DTO")
			continue
		}
		dtos = append(dtos, resp)
	}
	return dtos, nil
}
