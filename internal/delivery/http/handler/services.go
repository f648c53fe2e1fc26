package handler

import (
	"context"

	"github.com/google/uuid"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/usecase/dto"
)

// ExerciseService - операции над упражнениями (usecase.ExerciseUseCase)
type ExerciseService interface {
	BuildExercise(ctx context.Context, req dto.BuildExerciseRequest) (*dto.BuildExerciseResponse, error)
	ListExercises(ctx context.Context) ([]dto.ExerciseResponse, error)
	GetExercise(ctx context.Context, id int64) (*dto.ExerciseResponse, error)
	DeleteExercise(ctx context.Context, id int64) error
	Progress(ctx context.Context, exerciseID int64) (*domain.Progress, error)
	Categories(ctx context.Context, exerciseID int64) ([]dto.CategoryResponse, error)
	SearchEntities(ctx context.Context, exerciseID int64, req dto.EntitySearchRequest) ([]dto.EntityResponse, error)
}

// BuildJobService - асинхронное построение (usecase.BuildJobUseCase)
type BuildJobService interface {
	Enqueue(ctx context.Context, req dto.BuildExerciseRequest) (*dto.BuildJobResponse, error)
	Status(ctx context.Context, jobID uuid.UUID) (*domain.BuildJobStatus, error)
}

// QuizService - викторина упражнения (usecase.QuizUseCase)
type QuizService interface {
	StartQuiz(ctx context.Context, exerciseID int64, req dto.StartQuizRequest) (*dto.QuizResponse, error)
	GetQuiz(ctx context.Context, exerciseID int64) (*dto.QuizResponse, error)
	NextQuestion(ctx context.Context, exerciseID int64) (*dto.QuestionResponse, error)
	ReportAnswer(ctx context.Context, exerciseID int64, req dto.ReportAnswerRequest) error
	FinishQuiz(ctx context.Context, exerciseID int64) (*domain.QuizFeedback, error)
	DeleteQuiz(ctx context.Context, exerciseID int64) error
}
