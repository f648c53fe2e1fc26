package domain

import (
	"time"

	"github.com/geoquiz-service/internal/pkg/geo"
	"github.com/google/uuid"
)

// Stream names
const (
	StreamExerciseBuild = "stream:exercise:build"
	StreamExerciseBuilt = "stream:exercise:built"
)

// BuildExerciseEvent - входящая задача на построение упражнения
type BuildExerciseEvent struct {
	JobID       uuid.UUID   `json:"job_id"`
	Name        string      `json:"name"`
	WorkingArea []geo.Point `json:"working_area"`
	RequestedAt time.Time   `json:"requested_at"`
}

// ExerciseBuiltEvent - результат построения
type ExerciseBuiltEvent struct {
	JobID       uuid.UUID `json:"job_id"`
	ExerciseID  int64     `json:"exercise_id,omitempty"`
	EntityCount int       `json:"entity_count"`
	ErrorCode   string    `json:"error_code,omitempty"`
	Error       string    `json:"error,omitempty"`
}

// Статусы задачи построения
const (
	JobQueued  = "queued"
	JobRunning = "running"
	JobDone    = "done"
	JobFailed  = "failed"
)

// BuildJobStatus - состояние задачи, хранится в кеше
type BuildJobStatus struct {
	JobID       uuid.UUID `json:"job_id"`
	Status      string    `json:"status"`
	ExerciseID  int64     `json:"exercise_id,omitempty"`
	EntityCount int       `json:"entity_count,omitempty"`
	ErrorCode   string    `json:"error_code,omitempty"`
	Error       string    `json:"error,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
