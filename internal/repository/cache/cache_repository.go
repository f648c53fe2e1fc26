package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/domain/repository"
	"github.com/geoquiz-service/internal/pkg/errors"
)

// Ключи кеша
const (
	progressKeyPrefix  = "progress:exercise:"
	jobStatusKeyPrefix = "job:build:"
)

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return &cacheRepository{
		client: redis.Client(),
		logger: redis.logger,
	}
}

func progressKey(exerciseID int64) string {
	return fmt.Sprintf("%s%d", progressKeyPrefix, exerciseID)
}

func jobStatusKey(jobID uuid.UUID) string {
	return jobStatusKeyPrefix + jobID.String()
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, errors.ErrCacheError.WithCause(err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	err := r.client.Set(ctx, key, value, ttl).Err()
	if err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return errors.ErrCacheError.WithCause(err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	err := r.client.Del(ctx, key).Err()
	if err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return errors.ErrCacheError.WithCause(err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// getJSON читает и декодирует значение, (false, nil) при промахе
func (r *cacheRepository) getJSON(ctx context.Context, key string, dst interface{}) (bool, error) {
	data, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if data == nil {
		return false, nil
	}

	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Error("Failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return false, errors.ErrCacheError.WithCause(err)
	}
	return true, nil
}

func (r *cacheRepository) setJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		r.logger.Error("Failed to marshal cache value", zap.String("key", key), zap.Error(err))
		return errors.ErrCacheError.WithCause(err)
	}
	return r.Set(ctx, key, data, ttl)
}

// GetProgress получает прогресс упражнения из кеша
func (r *cacheRepository) GetProgress(ctx context.Context, exerciseID int64) (*domain.Progress, error) {
	var progress domain.Progress
	found, err := r.getJSON(ctx, progressKey(exerciseID), &progress)
	if err != nil || !found {
		return nil, err
	}
	return &progress, nil
}

// SetProgress сохраняет прогресс упражнения
func (r *cacheRepository) SetProgress(ctx context.Context, progress *domain.Progress, ttl time.Duration) error {
	return r.setJSON(ctx, progressKey(progress.ExerciseID), progress, ttl)
}

// DeleteProgress сбрасывает прогресс после завершения викторины или удаления упражнения
func (r *cacheRepository) DeleteProgress(ctx context.Context, exerciseID int64) error {
	return r.Delete(ctx, progressKey(exerciseID))
}

func (r *cacheRepository) GetJobStatus(ctx context.Context, jobID uuid.UUID) (*domain.BuildJobStatus, error) {
	var status domain.BuildJobStatus
	found, err := r.getJSON(ctx, jobStatusKey(jobID), &status)
	if err != nil || !found {
		return nil, err
	}
	return &status, nil
}

func (r *cacheRepository) SetJobStatus(ctx context.Context, status *domain.BuildJobStatus, ttl time.Duration) error {
	return r.setJSON(ctx, jobStatusKey(status.JobID), status, ttl)
}
