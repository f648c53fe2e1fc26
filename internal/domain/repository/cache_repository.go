package repository

import (
	"context"
	"time"

	"github.com/geoquiz-service/internal/domain"
	"github.com/google/uuid"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу, nil при промахе
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// GetProgress получает прогресс упражнения из кеша
	GetProgress(ctx context.Context, exerciseID int64) (*domain.Progress, error)

	// SetProgress сохраняет прогресс упражнения
	SetProgress(ctx context.Context, progress *domain.Progress, ttl time.Duration) error

	// DeleteProgress сбрасывает прогресс упражнения
	DeleteProgress(ctx context.Context, exerciseID int64) error

	// GetJobStatus получает состояние задачи построения
	GetJobStatus(ctx context.Context, jobID uuid.UUID) (*domain.BuildJobStatus, error)

	// SetJobStatus сохраняет состояние задачи построения
	SetJobStatus(ctx context.Context, status *domain.BuildJobStatus, ttl time.Duration) error
}
