package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/domain/repository"
	"github.com/geoquiz-service/internal/pkg/errors"
	"github.com/geoquiz-service/internal/pkg/geo"
	"github.com/geoquiz-service/internal/pkg/metrics"
	"github.com/geoquiz-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// PipelineSettings - параметры построения упражнения
type PipelineSettings struct {
	// Provider - метка поставщика для метрик
	Provider    string
	MinEntities int
	ProgressTTL time.Duration
}

// DefaultPipelineSettings возвращает стандартные параметры
func DefaultPipelineSettings() PipelineSettings {
	return PipelineSettings{
		Provider:    "osm_db",
		MinEntities: MinAlternatives,
		ProgressTTL: time.Hour,
	}
}

// BuildStats - счетчики одного прогона конвейера
type BuildStats struct {
	RecordsRead    int
	ParseErrors    int
	InvalidRecords int
	EntitiesBuilt  int
	Merges         int
	Categories     int
	Levels         int
	Duration       time.Duration
}

// DTO переводит статистику в ответ
func (s *BuildStats) DTO() dto.BuildStatsDTO {
	return dto.BuildStatsDTO{
		RecordsRead:    s.RecordsRead,
		ParseErrors:    s.ParseErrors,
		InvalidRecords: s.InvalidRecords,
		EntitiesBuilt:  s.EntitiesBuilt,
		Merges:         s.Merges,
		Categories:     s.Categories,
		Levels:         s.Levels,
		DurationMillis: s.Duration.Milliseconds(),
	}
}

type ExerciseUseCase struct {
	source       repository.RawRecordSource
	builder      *GeoEntityBuilder
	merger       *MergeEngine
	exerciseRepo repository.ExerciseRepository
	entityRepo   repository.GeoEntityRepository
	cacheRepo    repository.CacheRepository
	newRand      RandFactory
	settings     PipelineSettings
	logger       *zap.Logger
}

func NewExerciseUseCase(
	source repository.RawRecordSource,
	builder *GeoEntityBuilder,
	merger *MergeEngine,
	exerciseRepo repository.ExerciseRepository,
	entityRepo repository.GeoEntityRepository,
	cacheRepo repository.CacheRepository,
	newRand RandFactory,
	settings PipelineSettings,
	logger *zap.Logger,
) *ExerciseUseCase {
	return &ExerciseUseCase{
		source:       source,
		builder:      builder,
		merger:       merger,
		exerciseRepo: exerciseRepo,
		entityRepo:   entityRepo,
		cacheRepo:    cacheRepo,
		newRand:      newRand,
		settings:     settings,
		logger:       logger,
	}
}

// BuildExercise строит упражнение по рабочей области и сохраняет его целиком
func (uc *ExerciseUseCase) BuildExercise(
	ctx context.Context,
	req dto.BuildExerciseRequest,
) (*dto.BuildExerciseResponse, error) {
	start := time.Now()

	construction, stats, err := uc.Construct(ctx, req.Name, req.Polygon())
	if err != nil {
		metrics.ObserveBuild(start, err)
		return nil, err
	}

	exercise, err := uc.exerciseRepo.Create(ctx, construction)
	if err != nil {
		metrics.ObserveBuild(start, err)
		uc.logger.Error("Failed to store exercise", zap.String("name", req.Name), zap.Error(err))
		return nil, err
	}

	stats.Duration = time.Since(start)
	metrics.ObserveBuild(start, nil)
	metrics.EntitiesBuilt.Add(float64(stats.EntitiesBuilt))
	metrics.EntitiesMerged.Add(float64(stats.Merges))

	uc.logger.Info("Exercise built",
		zap.Int64("exercise_id", exercise.ID),
		zap.String("name", exercise.Name),
		zap.Int("records", stats.RecordsRead),
		zap.Int("entities", stats.EntitiesBuilt),
		zap.Int("levels", stats.Levels),
		zap.Duration("duration", stats.Duration))

	return &dto.BuildExerciseResponse{
		ExerciseID:  exercise.ID,
		EntityCount: stats.EntitiesBuilt,
		Stats:       stats.DTO(),
	}, nil
}

// Construct читает записи поставщика, собирает, склеивает и делит объекты на уровни.
// Ничего не сохраняет. Область проверяется до обращения к поставщику.
func (uc *ExerciseUseCase) Construct(
	ctx context.Context,
	name string,
	area []geo.Point,
) (*domain.ExerciseConstruction, *BuildStats, error) {
	if !geo.ValidateRing(area) {
		return nil, nil, errors.ErrGeometryInvalid
	}

	stats := &BuildStats{}

	entities, err := uc.readEntities(ctx, area, stats)
	if err != nil {
		return nil, nil, err
	}

	deduped, merges := uc.merger.Dedup(entities)
	BoostRanksByLength(deduped)
	stats.Merges = merges
	stats.EntitiesBuilt = len(deduped)

	if len(deduped) < uc.settings.MinEntities {
		return nil, nil, errors.ErrNotEnoughGeoEntities.WithDetails(map[string]interface{}{
			"found":    len(deduped),
			"required": uc.settings.MinEntities,
		})
	}

	categories := BuildCategoryDrafts(uc.newRand(), deduped)
	stats.Categories = len(categories)
	for _, c := range categories {
		stats.Levels += len(c.Levels)
	}

	points := make([]geo.Point, len(area))
	copy(points, area)

	return &domain.ExerciseConstruction{
		Exercise: &domain.Exercise{
			Name:        name,
			WorkingArea: points,
		},
		Categories: categories,
	}, stats, nil
}

func (uc *ExerciseUseCase) readEntities(
	ctx context.Context,
	area []geo.Point,
	stats *BuildStats,
) ([]*domain.GeoEntity, error) {
	iter, err := uc.source.Open(ctx, area)
	if err != nil {
		return nil, supplierError(ctx, err)
	}
	defer iter.Close()

	entities := make([]*domain.GeoEntity, 0)
	for {
		if err := ctx.Err(); err != nil {
			return nil, errors.ErrInterrupted.WithCause(err)
		}

		tokens, err := iter.Next(ctx)
		if err != nil {
			return nil, supplierError(ctx, err)
		}
		if tokens == nil {
			break
		}
		stats.RecordsRead++
		metrics.RecordsRead.WithLabelValues(uc.settings.Provider).Inc()

		entity, err := uc.builder.Build(tokens)
		switch {
		case err == nil:
			entities = append(entities, entity)
		case errors.Is(err, errors.ErrParse):
			stats.ParseErrors++
			metrics.RecordsDropped.WithLabelValues("parse").Inc()
			uc.logger.Debug("Record dropped", zap.Error(err))
		case errors.Is(err, errors.ErrBuildValidation):
			stats.InvalidRecords++
			metrics.RecordsDropped.WithLabelValues("validation").Inc()
			uc.logger.Debug("Record dropped", zap.Error(err))
		default:
			return nil, err
		}
	}

	return entities, nil
}

func supplierError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return errors.ErrInterrupted.WithCause(err)
	}
	if _, ok := errors.As(err); ok {
		return err
	}
	return errors.ErrSupplier.WithCause(err)
}

// ListExercises возвращает все упражнения
func (uc *ExerciseUseCase) ListExercises(ctx context.Context) ([]dto.ExerciseResponse, error) {
	exercises, err := uc.exerciseRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ExerciseResponse, 0, len(exercises))
	for _, e := range exercises {
		result = append(result, dto.NewExerciseResponse(e))
	}
	return result, nil
}

func (uc *ExerciseUseCase) GetExercise(ctx context.Context, id int64) (*dto.ExerciseResponse, error) {
	exercise, err := uc.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewExerciseResponse(exercise)
	return &resp, nil
}

// DeleteExercise удаляет упражнение и сбрасывает кеш прогресса
func (uc *ExerciseUseCase) DeleteExercise(ctx context.Context, id int64) error {
	if err := uc.exerciseRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := uc.cacheRepo.DeleteProgress(ctx, id); err != nil {
		uc.logger.Warn("Failed to drop progress cache", zap.Int64("exercise_id", id), zap.Error(err))
	}
	return nil
}

// Progress возвращает процент пройденных уровней, сначала из кеша
func (uc *ExerciseUseCase) Progress(ctx context.Context, exerciseID int64) (*domain.Progress, error) {
	cached, err := uc.cacheRepo.GetProgress(ctx, exerciseID)
	if err != nil {
		uc.logger.Warn("Progress cache read failed", zap.Int64("exercise_id", exerciseID), zap.Error(err))
	}
	if cached != nil {
		metrics.CacheHits.WithLabelValues("progress").Inc()
		return cached, nil
	}
	metrics.CacheMisses.WithLabelValues("progress").Inc()

	if _, err := uc.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		return nil, err
	}

	total, passed, err := uc.exerciseRepo.CountLevels(ctx, exerciseID)
	if err != nil {
		return nil, fmt.Errorf("count levels: %w", err)
	}

	progress := domain.NewProgress(exerciseID, total, passed)
	if err := uc.cacheRepo.SetProgress(ctx, progress, uc.settings.ProgressTTL); err != nil {
		uc.logger.Warn("Progress cache write failed", zap.Int64("exercise_id", exerciseID), zap.Error(err))
	}
	return progress, nil
}

// Categories возвращает надкатегории упражнения с уровнями
func (uc *ExerciseUseCase) Categories(ctx context.Context, exerciseID int64) ([]dto.CategoryResponse, error) {
	if _, err := uc.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		return nil, err
	}

	categories, err := uc.exerciseRepo.GetCategories(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		result = append(result, dto.NewCategoryResponse(c))
	}
	return result, nil
}

// SearchEntities ищет объекты упражнения по названию без учета регистра
func (uc *ExerciseUseCase) SearchEntities(
	ctx context.Context,
	exerciseID int64,
	req dto.EntitySearchRequest,
) ([]dto.EntityResponse, error) {
	entities, err := uc.entityRepo.FindBySimilarName(ctx, exerciseID, req.Name)
	if err != nil {
		return nil, err
	}

	result := make([]dto.EntityResponse, 0, len(entities))
	for _, e := range entities {
		result = append(result, dto.NewEntityResponse(e, true))
	}
	return result, nil
}
