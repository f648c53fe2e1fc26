package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/domain/repository"
	"github.com/geoquiz-service/internal/pkg/errors"
	"github.com/geoquiz-service/internal/pkg/geo"
	"github.com/geoquiz-service/internal/usecase/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExerciseBuilder - синхронное построение упражнения
type ExerciseBuilder interface {
	BuildExercise(ctx context.Context, req dto.BuildExerciseRequest) (*dto.BuildExerciseResponse, error)
}

// BuildJobUseCase ставит построения в очередь Redis Streams и отслеживает их состояние
type BuildJobUseCase struct {
	streamRepo repository.StreamRepository
	cacheRepo  repository.CacheRepository
	builder    ExerciseBuilder
	statusTTL  time.Duration
	logger     *zap.Logger
}

func NewBuildJobUseCase(
	streamRepo repository.StreamRepository,
	cacheRepo repository.CacheRepository,
	builder ExerciseBuilder,
	statusTTL time.Duration,
	logger *zap.Logger,
) *BuildJobUseCase {
	return &BuildJobUseCase{
		streamRepo: streamRepo,
		cacheRepo:  cacheRepo,
		builder:    builder,
		statusTTL:  statusTTL,
		logger:     logger,
	}
}

// Enqueue проверяет область и публикует задачу в stream:exercise:build
func (uc *BuildJobUseCase) Enqueue(ctx context.Context, req dto.BuildExerciseRequest) (*dto.BuildJobResponse, error) {
	if !geo.ValidateRing(req.Polygon()) {
		return nil, errors.ErrGeometryInvalid
	}

	event := &domain.BuildExerciseEvent{
		JobID:       uuid.New(),
		Name:        req.Name,
		WorkingArea: req.Polygon(),
		RequestedAt: time.Now(),
	}

	status := &domain.BuildJobStatus{
		JobID:     event.JobID,
		Status:    domain.JobQueued,
		UpdatedAt: event.RequestedAt,
	}
	if err := uc.cacheRepo.SetJobStatus(ctx, status, uc.statusTTL); err != nil {
		return nil, err
	}

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamExerciseBuild, event); err != nil {
		uc.logger.Error("Failed to enqueue build", zap.String("job_id", event.JobID.String()), zap.Error(err))
		return nil, err
	}

	uc.logger.Info("Build enqueued", zap.String("job_id", event.JobID.String()), zap.String("name", req.Name))

	return &dto.BuildJobResponse{JobID: event.JobID, Status: domain.JobQueued}, nil
}

// Status возвращает состояние задачи
func (uc *BuildJobUseCase) Status(ctx context.Context, jobID uuid.UUID) (*domain.BuildJobStatus, error) {
	status, err := uc.cacheRepo.GetJobStatus(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, errors.ErrJobNotFound
	}
	return status, nil
}

// Process выполняет задачу из очереди и публикует результат в stream:exercise:built.
// Ошибка построения не возвращается: она записывается в статус и событие.
func (uc *BuildJobUseCase) Process(ctx context.Context, event *domain.BuildExerciseEvent) error {
	logger := uc.logger.With(zap.String("job_id", event.JobID.String()))

	uc.setStatus(ctx, &domain.BuildJobStatus{JobID: event.JobID, Status: domain.JobRunning})

	req := dto.BuildExerciseRequest{
		Name:        event.Name,
		WorkingArea: dto.FromGeoPoints(event.WorkingArea),
	}
	resp, buildErr := uc.builder.BuildExercise(ctx, req)

	done := &domain.ExerciseBuiltEvent{JobID: event.JobID}
	status := &domain.BuildJobStatus{JobID: event.JobID}

	if buildErr != nil {
		if appErr, ok := errors.As(buildErr); ok {
			done.ErrorCode = appErr.Code
		}
		done.Error = buildErr.Error()
		status.Status = domain.JobFailed
		status.ErrorCode = done.ErrorCode
		status.Error = done.Error
		logger.Warn("Build failed", zap.Error(buildErr))
	} else {
		done.ExerciseID = resp.ExerciseID
		done.EntityCount = resp.EntityCount
		status.Status = domain.JobDone
		status.ExerciseID = resp.ExerciseID
		status.EntityCount = resp.EntityCount
	}

	uc.setStatus(ctx, status)

	if err := uc.streamRepo.PublishToStream(ctx, domain.StreamExerciseBuilt, done); err != nil {
		return fmt.Errorf("publish build result: %w", err)
	}
	return nil
}

func (uc *BuildJobUseCase) setStatus(ctx context.Context, status *domain.BuildJobStatus) {
	status.UpdatedAt = time.Now()
	if err := uc.cacheRepo.SetJobStatus(ctx, status, uc.statusTTL); err != nil {
		uc.logger.Warn("Failed to update job status",
			zap.String("job_id", status.JobID.String()),
			zap.Error(err))
	}
}
