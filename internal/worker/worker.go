package worker

import (
	"context"
)

// Worker - фоновый обработчик, которым управляет WorkerManager.
// Start блокируется до Stop или отмены ctx.
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}
