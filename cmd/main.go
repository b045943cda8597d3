package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"quizdeck/config"
	"quizdeck/database"
	_ "quizdeck/docs" // Swagger docs - auto-generated
	adminctrl "quizdeck/internal/controller/admin"
	userctrl "quizdeck/internal/controller/user"
	"quizdeck/internal/logger"
	"quizdeck/internal/middleware"
	"quizdeck/internal/model"
	"quizdeck/internal/repository"
	"quizdeck/internal/service"
)

// @title QuizDeck API
// @version 1.0
// @description Quiz session API: random question assignment, per-answer scoring, session progress and results.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories layer
		fx.Provide(
			repository.NewQuestionRepository,
			repository.NewQuizSessionRepository,
			repository.NewSessionQuestionRepository,
		),

		// Services layer
		fx.Provide(
			service.NewAnswerScoringService,
			service.NewQuestionPicker,
			service.NewQuestionService,
			service.NewQuizSessionService,
			service.NewResultsService,
		),

		// API controllers layer
		fx.Provide(
			adminctrl.NewAdminQuestionController,
			userctrl.NewQuizSessionController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	// Request logging through zerolog instead of Gin's default logger.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages the HTTP server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminQuestionCtrl *adminctrl.AdminQuestionController,
	sessionCtrl *userctrl.QuizSessionController,
) {
	auth := middleware.Auth(cfg.JWTSecret)

	// Admin routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin", auth)
	{
		questionsGroup := adminAPIGroup.Group("/questions")
		questionsGroup.POST("", adminQuestionCtrl.CreateQuestion)
		questionsGroup.GET("", adminQuestionCtrl.ListQuestions)
	}

	// User routes (prefixed with /api/v1)
	userAPIGroup := router.Group("/api/v1", auth)
	{
		sessionsGroup := userAPIGroup.Group("/sessions")
		sessionsGroup.POST("", sessionCtrl.StartSession)
		sessionsGroup.GET("", sessionCtrl.ListSessions)
		sessionsGroup.GET("/:session_id/question", sessionCtrl.GetNextQuestion)
		sessionsGroup.POST("/:session_id/answers", sessionCtrl.SubmitAnswer)
		sessionsGroup.POST("/:session_id/complete", sessionCtrl.CompleteSession)
		sessionsGroup.GET("/:session_id/results", sessionCtrl.GetResults)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("QuizDeck API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Question{},
		&model.QuizSession{},
		&model.SessionQuestion{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
