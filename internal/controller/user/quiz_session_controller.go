package user

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"quizdeck/internal/dto"
	"quizdeck/internal/middleware"
	"quizdeck/internal/service"
)

type QuizSessionController struct {
	sessionService service.QuizSessionService
	resultsService service.ResultsService
}

func NewQuizSessionController(sessionService service.QuizSessionService, resultsService service.ResultsService) *QuizSessionController {
	return &QuizSessionController{
		sessionService: sessionService,
		resultsService: resultsService,
	}
}

// StartSession godoc
// @Summary Start a new quiz session
// @Description Creates a quiz session with the requested number of questions for the authenticated user.
// @Tags Quiz Sessions
// @Accept json
// @Produce json
// @Param session_data body dto.StartSessionRequest true "Number of questions for the session"
// @Success 201 {object} dto.SessionCreatedDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body or non-positive total_questions"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /sessions [post]
func (c *QuizSessionController) StartSession(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthenticated"})
		return
	}

	var req dto.StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("StartSession: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	created, err := c.sessionService.StartSession(userID, req.TotalQuestions)
	if err != nil {
		c.writeError(ctx, err, "Failed to start quiz session")
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// GetNextQuestion godoc
// @Summary Fetch the next question for a session
// @Description Returns the currently assigned question, or assigns a new one at random from the unanswered pool. Re-fetching without answering returns the same question. When the pool is exhausted the response carries no_more_questions instead of an error.
// @Tags Quiz Sessions
// @Produce json
// @Param session_id path string true "Session ID (UUID)"
// @Success 200 {object} dto.NextQuestionDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid session ID format or session already completed"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Security BearerAuth
// @Router /sessions/{session_id}/question [get]
func (c *QuizSessionController) GetNextQuestion(ctx *gin.Context) {
	userID, sessionUUID, ok := c.sessionParams(ctx)
	if !ok {
		return
	}

	question, err := c.sessionService.NextQuestion(userID, sessionUUID)
	if err != nil {
		c.writeError(ctx, err, "Failed to fetch next question")
		return
	}
	ctx.JSON(http.StatusOK, question)
}

// SubmitAnswer godoc
// @Summary Submit an answer for a question
// @Description Scores the selected options against the question's correct options and advances session progress. Each (session, question) pair accepts exactly one answer.
// @Tags Quiz Sessions
// @Accept json
// @Produce json
// @Param session_id path string true "Session ID (UUID)"
// @Param answer_data body dto.SubmitAnswerRequest true "Question ID and comma-joined selected option labels, e.g. A,C"
// @Success 200 {object} dto.ProgressDTO
// @Failure 400 {object} dto.ErrorResponse "Empty selection, already answered, or session already completed"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Session or question not found"
// @Security BearerAuth
// @Router /sessions/{session_id}/answers [post]
func (c *QuizSessionController) SubmitAnswer(ctx *gin.Context) {
	userID, sessionUUID, ok := c.sessionParams(ctx)
	if !ok {
		return
	}

	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	progress, err := c.sessionService.SubmitAnswer(userID, sessionUUID, req.QuestionID, strings.Split(req.SelectedOptions, ","))
	if err != nil {
		c.writeError(ctx, err, "Failed to submit answer")
		return
	}
	ctx.JSON(http.StatusOK, progress)
}

// CompleteSession godoc
// @Summary Force-complete a quiz session
// @Description Marks the session completed regardless of progress. Idempotent: completing a completed session succeeds without changes.
// @Tags Quiz Sessions
// @Produce json
// @Param session_id path string true "Session ID (UUID)"
// @Success 200 {object} dto.CompleteSessionDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Security BearerAuth
// @Router /sessions/{session_id}/complete [post]
func (c *QuizSessionController) CompleteSession(ctx *gin.Context) {
	userID, sessionUUID, ok := c.sessionParams(ctx)
	if !ok {
		return
	}

	status, err := c.sessionService.CompleteSession(userID, sessionUUID)
	if err != nil {
		c.writeError(ctx, err, "Failed to complete quiz session")
		return
	}
	ctx.JSON(http.StatusOK, status)
}

// GetResults godoc
// @Summary Fetch results of a completed session
// @Description Returns every answered question with its options, correct and selected labels, outcome and score, plus session totals.
// @Tags Quiz Sessions
// @Produce json
// @Param session_id path string true "Session ID (UUID)"
// @Success 200 {object} dto.ResultsDTO
// @Failure 400 {object} dto.ErrorResponse "Session is not completed yet"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Security BearerAuth
// @Router /sessions/{session_id}/results [get]
func (c *QuizSessionController) GetResults(ctx *gin.Context) {
	userID, sessionUUID, ok := c.sessionParams(ctx)
	if !ok {
		return
	}

	results, err := c.resultsService.BuildResults(userID, sessionUUID)
	if err != nil {
		c.writeError(ctx, err, "Failed to build results")
		return
	}
	ctx.JSON(http.StatusOK, results)
}

// ListSessions godoc
// @Summary List the caller's quiz sessions
// @Tags Quiz Sessions
// @Produce json
// @Success 200 {array} dto.SessionSummaryDTO
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Security BearerAuth
// @Router /sessions [get]
func (c *QuizSessionController) ListSessions(ctx *gin.Context) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthenticated"})
		return
	}

	sessions, err := c.sessionService.ListSessions(userID)
	if err != nil {
		c.writeError(ctx, err, "Failed to list quiz sessions")
		return
	}
	ctx.JSON(http.StatusOK, sessions)
}

func (c *QuizSessionController) sessionParams(ctx *gin.Context) (uint, uuid.UUID, bool) {
	userID, ok := middleware.UserIDFromContext(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Unauthenticated"})
		return 0, uuid.Nil, false
	}

	sessionUUID, err := uuid.Parse(ctx.Param("session_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid session ID format"})
		return 0, uuid.Nil, false
	}
	return userID, sessionUUID, true
}

func (c *QuizSessionController) writeError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrQuestionNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, service.ErrInvalidTotalQuestions),
		errors.Is(err, service.ErrEmptySelection),
		errors.Is(err, service.ErrSessionCompleted),
		errors.Is(err, service.ErrAlreadyAnswered),
		errors.Is(err, service.ErrSessionNotCompleted):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Str("path", ctx.FullPath()).Msg("Unexpected service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: fallback, Details: []string{err.Error()}})
	}
}
