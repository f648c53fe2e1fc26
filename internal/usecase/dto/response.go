package dto

import (
	"time"

	"github.com/geoquiz-service/internal/domain"
	"github.com/google/uuid"
)

// BuildExerciseResponse - результат построения упражнения
type BuildExerciseResponse struct {
	ExerciseID  int64         `json:"exercise_id"`
	EntityCount int           `json:"entity_count"`
	Stats       BuildStatsDTO `json:"stats"`
}

// BuildStatsDTO - статистика конвейера
type BuildStatsDTO struct {
	RecordsRead    int   `json:"records_read"`
	ParseErrors    int   `json:"parse_errors"`
	InvalidRecords int   `json:"invalid_records"`
	EntitiesBuilt  int   `json:"entities_built"`
	Merges         int   `json:"merges"`
	Categories     int   `json:"categories"`
	Levels         int   `json:"levels"`
	DurationMillis int64 `json:"duration_ms"`
}

// BuildJobResponse - принятая задача построения
type BuildJobResponse struct {
	JobID  uuid.UUID `json:"job_id"`
	Status string    `json:"status"`
}

// ExerciseResponse - упражнение с прогрессом
type ExerciseResponse struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	DisplayIndex        int       `json:"display_index"`
	WorkingArea         []Point   `json:"working_area"`
	RequiredReminders   int       `json:"required_reminders"`
	PassedSinceReminder int       `json:"passed_since_reminder"`
	CreatedAt           time.Time `json:"created_at"`
}

// NewExerciseResponse - перевод доменной модели
func NewExerciseResponse(e *domain.Exercise) ExerciseResponse {
	return ExerciseResponse{
		ID:                  e.ID,
		Name:                e.Name,
		DisplayIndex:        e.DisplayIndex,
		WorkingArea:         FromGeoPoints(e.WorkingArea),
		RequiredReminders:   e.RequiredReminders,
		PassedSinceReminder: e.PassedSinceReminder,
		CreatedAt:           e.CreatedAt,
	}
}

// CategoryResponse - надкатегория с уровнями
type CategoryResponse struct {
	ID                int64           `json:"id"`
	Supercat          string          `json:"supercat"`
	DisplayIndex      int             `json:"display_index"`
	RequiredReminders int             `json:"required_reminders"`
	Levels            []LevelResponse `json:"levels"`
}

// LevelResponse - уровень категории
type LevelResponse struct {
	ID          int64 `json:"id"`
	Index       int   `json:"index"`
	Passed      bool  `json:"passed"`
	EntityCount int   `json:"entity_count"`
}

// NewCategoryResponse - перевод доменной модели
func NewCategoryResponse(c *domain.CategoryGroup) CategoryResponse {
	levels := make([]LevelResponse, 0, len(c.Levels))
	for _, l := range c.Levels {
		levels = append(levels, LevelResponse{
			ID:          l.ID,
			Index:       l.Index,
			Passed:      l.Passed,
			EntityCount: len(l.EntityIDs),
		})
	}
	return CategoryResponse{
		ID:                c.ID,
		Supercat:          c.Supercat,
		DisplayIndex:      c.DisplayIndex,
		RequiredReminders: c.RequiredReminders,
		Levels:            levels,
	}
}

// EntityResponse - объект для отображения
type EntityResponse struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	Supercat      string     `json:"supercat"`
	Subcat        string     `json:"subcat"`
	Rank          float64    `json:"rank"`
	IsNode        bool       `json:"is_node"`
	Center        Point      `json:"center"`
	Shapes        [][]Point  `json:"shapes,omitempty"`
	TimesAsked    float64    `json:"times_asked"`
	TimesCorrect  float64    `json:"times_correct"`
	LastCorrectAt *time.Time `json:"last_correct_at,omitempty"`
}

// NewEntityResponse - перевод объекта. withShapes добавляет геометрию.
func NewEntityResponse(e *domain.GeoEntity, withShapes bool) EntityResponse {
	c := e.Center()
	resp := EntityResponse{
		ID:            e.ID,
		Name:          e.Name,
		Supercat:      e.Supercat,
		Subcat:        e.Subcat,
		Rank:          e.Rank,
		IsNode:        e.IsNode(),
		Center:        Point{Lat: c.Lat, Lon: c.Lon},
		TimesAsked:    e.TimesAsked,
		TimesCorrect:  e.TimesCorrect,
		LastCorrectAt: e.LastCorrectAt,
	}
	if withShapes {
		resp.Shapes = make([][]Point, 0, len(e.Shapes))
		for _, s := range e.Shapes {
			resp.Shapes = append(resp.Shapes, FromGeoPoints(s.Points))
		}
	}
	return resp
}

// QuestionResponse - выданный вопрос
type QuestionResponse struct {
	ID           int64            `json:"id"`
	Index        int              `json:"index"`
	Total        int              `json:"total"`
	Type         string           `json:"type"`
	Difficulty   int              `json:"difficulty"`
	Target       EntityResponse   `json:"target"`
	Alternatives []EntityResponse `json:"alternatives"`
}

// QuizResponse - текущая викторина
type QuizResponse struct {
	ID           int64  `json:"id"`
	ExerciseID   int64  `json:"exercise_id"`
	Type         string `json:"type"`
	State        string `json:"state"`
	LevelID      *int64 `json:"level_id,omitempty"`
	CategoryID   *int64 `json:"category_id,omitempty"`
	CurrentIndex int    `json:"current_index"`
	Total        int    `json:"total"`
	Answered     int    `json:"answered"`
	Correct      int    `json:"correct"`
}

// NewQuizResponse - перевод викторины и ее вопросов
func NewQuizResponse(q *domain.RunningQuiz, questions []*domain.Question) QuizResponse {
	resp := QuizResponse{
		ID:           q.ID,
		ExerciseID:   q.ExerciseID,
		Type:         q.Type.String(),
		State:        string(domain.StateOf(q, questions)),
		LevelID:      q.LevelID,
		CategoryID:   q.CategoryID,
		CurrentIndex: q.CurrentIndex,
		Total:        len(questions),
	}
	for _, question := range questions {
		if question.Answered {
			resp.Answered++
		}
		if question.AnsweredCorrectly {
			resp.Correct++
		}
	}
	return resp
}
