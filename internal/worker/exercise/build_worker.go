package exercise

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/domain/repository"
	"github.com/geoquiz-service/internal/worker"
)

const (
	maxBatchSize    = 5                      // построение тяжелое, берем немного задач за раз
	emptyQueueSleep = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep      = time.Second
)

// BuildProcessor выполняет задачу построения и публикует результат
type BuildProcessor interface {
	Process(ctx context.Context, event *domain.BuildExerciseEvent) error
}

// BuildWorker читает задачи из stream:exercise:build
type BuildWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	processor    BuildProcessor
	buildTimeout time.Duration
}

// NewBuildWorker создает новый BuildWorker
func NewBuildWorker(
	streamRepo repository.StreamRepository,
	processor BuildProcessor,
	consumerGroup string,
	buildTimeout time.Duration,
	logger *zap.Logger,
) *BuildWorker {
	return &BuildWorker{
		BaseWorker:   worker.NewBaseWorker("exercise-build", consumerGroup, logger),
		streamRepo:   streamRepo,
		processor:    processor,
		buildTimeout: buildTimeout,
	}
}

// Start запускает воркер
func (w *BuildWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting BuildWorker (batch mode)",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.ConsumerName()),
		zap.Int("max_batch_size", maxBatchSize),
		zap.Duration("build_timeout", w.buildTimeout))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamExerciseBuild, w.ConsumerGroup()); err != nil {
		logger.Error("Failed to create consumer group", zap.Error(err))
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		default:
			processed, err := w.processBatch(ctx)
			if err != nil {
				logger.Error("Failed to process batch", zap.Error(err))
				w.Sleep(ctx, errorSleep)
				continue
			}

			if processed == 0 {
				w.Sleep(ctx, emptyQueueSleep)
			}
		}
	}
}

// processBatch читает и выполняет задачи по очереди.
// Возвращает количество прочитанных сообщений.
func (w *BuildWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamExerciseBuild,
		w.ConsumerGroup(),
		w.ConsumerName(),
		maxBatchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}

	if len(messages) == 0 {
		return 0, nil
	}

	logger.Info("Processing batch", zap.Int("message_count", len(messages)))

	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			// ACK битое сообщение чтобы не застревало
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			_ = w.streamRepo.AckMessage(ctx, domain.StreamExerciseBuild, w.ConsumerGroup(), msg.ID)
			continue
		}

		if err := w.build(ctx, event); err != nil {
			logger.Error("Build job failed",
				zap.String("job_id", event.JobID.String()),
				zap.Error(err))
		}

		// Неудачное построение тоже подтверждается: итог уже в статусе задачи
		if err := w.streamRepo.AckMessage(ctx, domain.StreamExerciseBuild, w.ConsumerGroup(), msg.ID); err != nil {
			logger.Error("Failed to ack message", zap.String("message_id", msg.ID), zap.Error(err))
		}

		if ctx.Err() != nil {
			break
		}
	}

	return len(messages), nil
}

func (w *BuildWorker) build(ctx context.Context, event *domain.BuildExerciseEvent) error {
	if w.buildTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, w.buildTimeout)
		defer cancel()
	}
	return w.processor.Process(ctx, event)
}

// parseMessage парсит сообщение из стрима в BuildExerciseEvent
func parseMessage(msg domain.StreamMessage) (*domain.BuildExerciseEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var event domain.BuildExerciseEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if len(event.WorkingArea) == 0 {
		return nil, fmt.Errorf("event %s has no working area", event.JobID)
	}

	return &event, nil
}
