// Package app собирает зависимости сервиса: подключения, репозитории и use cases.
// Используется бинарниками api, worker и geoquizctl.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/geoquiz-service/internal/config"
	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/domain/repository"
	"github.com/geoquiz-service/internal/infrastructure/overpass"
	"github.com/geoquiz-service/internal/pkg/metrics"
	"github.com/geoquiz-service/internal/repository/cache"
	"github.com/geoquiz-service/internal/repository/postgres"
	"github.com/geoquiz-service/internal/repository/postgresosm"
	redisRepo "github.com/geoquiz-service/internal/repository/redis"
	"github.com/geoquiz-service/internal/usecase"
	"github.com/geoquiz-service/internal/worker/exercise"
)

// Infrastructure - внешние подключения
type Infrastructure struct {
	DB    *postgres.DB
	OSMDB *postgresosm.DB // nil, если источник overpass
	Redis *cache.Redis
}

// Connect открывает подключения к PostgreSQL, OSM базе (для osm_db) и Redis
func Connect(cfg *config.Config, log *zap.Logger) (*Infrastructure, error) {
	infra := &Infrastructure{}

	db, err := postgres.New(&cfg.Database, log)
	if err != nil {
		return nil, err
	}
	infra.DB = db

	if cfg.Source.Provider == config.ProviderOSMDB {
		osmDB, err := postgresosm.New(&cfg.OSMDB, log)
		if err != nil {
			infra.Close(log)
			return nil, fmt.Errorf("osm database: %w", err)
		}
		infra.OSMDB = osmDB
	}

	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		infra.Close(log)
		return nil, err
	}
	infra.Redis = redisClient

	return infra, nil
}

// Health проверяет все подключения
func (i *Infrastructure) Health(ctx context.Context) error {
	if err := i.DB.Health(ctx); err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	if i.OSMDB != nil {
		if err := i.OSMDB.Health(ctx); err != nil {
			return fmt.Errorf("osm postgres: %w", err)
		}
	}
	if err := i.Redis.Health(ctx); err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	return nil
}

// Close закрывает открытые подключения
func (i *Infrastructure) Close(log *zap.Logger) {
	if i.Redis != nil {
		if err := i.Redis.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}
	if i.OSMDB != nil {
		if err := i.OSMDB.Close(); err != nil {
			log.Error("Failed to close OSM PostgreSQL connection", zap.Error(err))
		}
	}
	if i.DB != nil {
		if err := i.DB.Close(); err != nil {
			log.Error("Failed to close PostgreSQL connection", zap.Error(err))
		}
	}
}

// WatchPoolMetrics периодически копирует статистику пула в метрики до отмены ctx
func (i *Infrastructure) WatchPoolMetrics(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			metrics.UpdateDBPoolMetrics(i.DB.Stats())
		}
	}
}

// UseCases - собранные use cases
type UseCases struct {
	Exercise   *usecase.ExerciseUseCase
	Quiz       *usecase.QuizUseCase
	BuildJobs  *usecase.BuildJobUseCase
	StreamRepo repository.StreamRepository
}

// NewUseCases создает репозитории и use cases поверх подключений
func NewUseCases(cfg *config.Config, infra *Infrastructure, log *zap.Logger) (*UseCases, error) {
	table, err := loadCategoryTable(cfg.Pipeline.CategoryTablePath)
	if err != nil {
		return nil, err
	}

	source, err := newRecordSource(cfg, infra, log)
	if err != nil {
		return nil, err
	}

	exerciseRepo := postgres.NewExerciseRepository(infra.DB)
	entityRepo := postgres.NewGeoEntityRepository(infra.DB)
	quizRepo := postgres.NewQuizRepository(infra.DB)
	cacheRepo := cache.NewCacheRepository(infra.Redis)
	streamRepo := redisRepo.NewStreamRepository(infra.Redis.Client(), cfg.Worker.StreamReadTimeout, log)

	newRand := usecase.NewRandFactory()

	exerciseUC := usecase.NewExerciseUseCase(
		source,
		usecase.NewGeoEntityBuilder(table),
		usecase.NewMergeEngine(cfg.Pipeline.MergeLimitMeters),
		exerciseRepo,
		entityRepo,
		cacheRepo,
		newRand,
		pipelineSettings(cfg),
		log,
	)

	quizUC := usecase.NewQuizUseCase(
		exerciseRepo,
		entityRepo,
		quizRepo,
		cacheRepo,
		newRand,
		schedulerSettings(&cfg.Quiz),
		log,
	)

	buildJobUC := usecase.NewBuildJobUseCase(
		streamRepo,
		cacheRepo,
		exerciseUC,
		cfg.Cache.JobStatusTTL,
		log,
	)

	return &UseCases{
		Exercise:   exerciseUC,
		Quiz:       quizUC,
		BuildJobs:  buildJobUC,
		StreamRepo: streamRepo,
	}, nil
}

// NewBuildWorker - воркер задач построения поверх use cases
func (u *UseCases) NewBuildWorker(cfg *config.WorkerConfig, log *zap.Logger) *exercise.BuildWorker {
	return exercise.NewBuildWorker(u.StreamRepo, u.BuildJobs, cfg.ConsumerGroup, cfg.BuildTimeout, log)
}

func newRecordSource(cfg *config.Config, infra *Infrastructure, log *zap.Logger) (repository.RawRecordSource, error) {
	switch cfg.Source.Provider {
	case config.ProviderOSMDB:
		if infra.OSMDB == nil {
			return nil, fmt.Errorf("osm database is not connected")
		}
		return postgresosm.NewRecordSource(infra.OSMDB, cfg.Source.MaxRecords), nil
	case config.ProviderOverpass:
		return overpass.NewOverpassClient(&cfg.Source, log), nil
	default:
		return nil, fmt.Errorf("unknown source provider %q", cfg.Source.Provider)
	}
}

func loadCategoryTable(path string) (*domain.CategoryTable, error) {
	if path == "" {
		return domain.DefaultCategoryTable()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category table: %w", err)
	}
	return domain.ParseCategoryTable(data)
}

func pipelineSettings(cfg *config.Config) usecase.PipelineSettings {
	s := usecase.DefaultPipelineSettings()
	s.Provider = cfg.Source.Provider
	if cfg.Pipeline.MinEntities > 0 {
		s.MinEntities = cfg.Pipeline.MinEntities
	}
	if cfg.Cache.ProgressTTL > 0 {
		s.ProgressTTL = cfg.Cache.ProgressTTL
	}
	return s
}

func schedulerSettings(cfg *config.QuizConfig) usecase.SchedulerSettings {
	s := usecase.DefaultSchedulerSettings()
	if cfg.QuestionsPerEntity > 0 {
		s.QuestionsPerEntity = cfg.QuestionsPerEntity
	}
	if cfg.ExtraQuestions >= 0 {
		s.ExtraQuestions = cfg.ExtraQuestions
	}
	if cfg.PassThreshold > 0 {
		s.PassThreshold = cfg.PassThreshold
	}
	if cfg.LevelsBeforeExerciseReminder > 0 {
		s.LevelsBeforeExerciseReminder = cfg.LevelsBeforeExerciseReminder
	}
	if cfg.MaxReminderEntities > 0 {
		s.MaxReminderEntities = cfg.MaxReminderEntities
	}
	return s
}
