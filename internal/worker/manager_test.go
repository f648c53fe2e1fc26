package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// loopWorker крутится до Stop или отмены ctx
type loopWorker struct {
	*BaseWorker
	started  atomic.Int32
	finished atomic.Int32
	ignore   bool
}

func newLoopWorker(name string) *loopWorker {
	return &loopWorker{BaseWorker: NewBaseWorker(name, "group", zap.NewNop())}
}

func (w *loopWorker) Start(ctx context.Context) error {
	w.started.Add(1)
	defer w.finished.Add(1)

	if w.ignore {
		// игнорирует Stop, ждет только ctx
		<-ctx.Done()
		return ctx.Err()
	}
	for w.Sleep(ctx, 5*time.Millisecond) {
	}
	return nil
}

func TestBaseWorker_StopIsIdempotent(t *testing.T) {
	w := NewBaseWorker("test", "group", zap.NewNop())

	assert.False(t, w.IsStopped())
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
	assert.True(t, w.IsStopped())
}

func TestBaseWorker_Sleep(t *testing.T) {
	w := NewBaseWorker("test", "group", zap.NewNop())

	assert.True(t, w.Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, w.Sleep(ctx, time.Hour))

	require.NoError(t, w.Stop())
	assert.False(t, w.Sleep(context.Background(), time.Hour))
}

func TestBaseWorker_ConsumerName(t *testing.T) {
	w := NewBaseWorker("exercise-build", "builders", zap.NewNop())

	assert.Equal(t, "exercise-build", w.Name())
	assert.Equal(t, "builders", w.ConsumerGroup())
	assert.NotEmpty(t, w.ConsumerName())
}

func TestWorkerManager_StartWithoutWorkers(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())

	assert.Error(t, m.Start(context.Background()))
}

func TestWorkerManager_StartStop(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	a, b := newLoopWorker("a"), newLoopWorker("b")
	m.Register(a)
	m.Register(b)

	require.NoError(t, m.Start(context.Background()))
	assert.Error(t, m.Start(context.Background()), "second start")

	assert.Eventually(t, func() bool {
		return a.started.Load() == 1 && b.started.Load() == 1
	}, time.Second, 5*time.Millisecond)

	late := newLoopWorker("late")
	m.Register(late)

	require.NoError(t, m.Stop())
	assert.EqualValues(t, 1, a.finished.Load())
	assert.EqualValues(t, 1, b.finished.Load())
	assert.EqualValues(t, 0, late.started.Load())
}

func TestWorkerManager_StopTimeout(t *testing.T) {
	m := NewWorkerManager(zap.NewNop())
	m.SetShutdownTimeout(20 * time.Millisecond)

	stuck := newLoopWorker("stuck")
	stuck.ignore = true
	m.Register(stuck)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, m.Start(ctx))

	assert.Eventually(t, func() bool { return stuck.started.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Error(t, m.Stop())

	cancel()
	assert.Eventually(t, func() bool { return stuck.finished.Load() == 1 }, time.Second, 5*time.Millisecond)
}
