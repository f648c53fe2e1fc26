package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/geoquiz-service/internal/config"
	"github.com/geoquiz-service/internal/delivery/http/handler"
	"github.com/geoquiz-service/internal/delivery/http/middleware"
	"github.com/geoquiz-service/internal/pkg/errors"
	"github.com/geoquiz-service/internal/pkg/metrics"
	"github.com/geoquiz-service/internal/pkg/utils"
)

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	exerciseHandler *handler.ExerciseHandler
	quizHandler     *handler.QuizHandler
	healthHandler   *handler.HealthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	exerciseHandler *handler.ExerciseHandler,
	quizHandler *handler.QuizHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	// построение упражнения синхронное, отсюда WriteTimeout
	app := fiber.New(fiber.Config{
		AppName:      "GeoQuiz Service",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:             app,
		config:          cfg,
		logger:          logger,
		exerciseHandler: exerciseHandler,
		quizHandler:     quizHandler,
		healthHandler:   healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// App - доступ к fiber.App (тесты)
func (s *Server) App() *fiber.App {
	return s.app
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.Recovery())
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Logger(s.logger))
	if s.config.Metrics.Enabled {
		s.app.Use(metrics.Middleware())
	}
	s.app.Use(middleware.CORS())
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	if s.config.Metrics.Enabled {
		path := s.config.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		s.app.Get(path, metrics.Handler())
	}

	api := s.app.Group("/api/v1")

	// Health check
	api.Get("/health", s.healthHandler.Health)

	exercises := api.Group("/exercises")

	// Build jobs, до маршрутов с :id
	exercises.Post("/jobs", s.exerciseHandler.EnqueueBuild)
	exercises.Get("/jobs/:id", s.exerciseHandler.GetBuildJob)

	// Exercises
	exercises.Post("/", s.exerciseHandler.BuildExercise)
	exercises.Get("/", s.exerciseHandler.ListExercises)
	exercises.Get("/:id", s.exerciseHandler.GetExercise)
	exercises.Delete("/:id", s.exerciseHandler.DeleteExercise)
	exercises.Get("/:id/progress", s.exerciseHandler.GetProgress)
	exercises.Get("/:id/categories", s.exerciseHandler.GetCategories)
	exercises.Get("/:id/entities", s.exerciseHandler.SearchEntities)

	// Quiz
	quiz := exercises.Group("/:id/quiz")
	quiz.Post("/", s.quizHandler.StartQuiz)
	quiz.Get("/", s.quizHandler.GetQuiz)
	quiz.Delete("/", s.quizHandler.DeleteQuiz)
	quiz.Post("/next", s.quizHandler.NextQuestion)
	quiz.Post("/answers", s.quizHandler.ReportAnswer)
	quiz.Post("/finish", s.quizHandler.FinishQuiz)
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := errors.As(err); ok {
			return utils.SendError(c, appErr)
		}

		code := fiber.StatusInternalServerError
		appErr := errors.ErrInternalServer

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			appErr = errors.New("HTTP_ERROR", e.Message, e.Code)
		}

		if code >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err),
			)
		}

		return c.Status(code).JSON(utils.ErrorResponse{Error: appErr})
	}
}
