package domain

import (
	"time"

	"github.com/geoquiz-service/internal/pkg/geo"
)

// Exercise - упражнение, построенное по рабочей области
type Exercise struct {
	ID                  int64       `json:"id" db:"id"`
	Name                string      `json:"name" db:"name"`
	DisplayIndex        int         `json:"display_index" db:"display_index"`
	WorkingArea         []geo.Point `json:"working_area" db:"-"`
	RequiredReminders   int         `json:"required_reminders" db:"required_reminders"`
	PassedSinceReminder int         `json:"passed_since_reminder" db:"passed_since_reminder"`
	CreatedAt           time.Time   `json:"created_at" db:"created_at"`
}

// CategoryGroup - набор уровней одной надкатегории в упражнении
type CategoryGroup struct {
	ID                int64    `json:"id" db:"id"`
	ExerciseID        int64    `json:"exercise_id" db:"exercise_id"`
	Supercat          string   `json:"supercat" db:"supercat"`
	DisplayIndex      int      `json:"display_index" db:"display_index"`
	RequiredReminders int      `json:"required_reminders" db:"required_reminders"`
	Levels            []*Level `json:"levels,omitempty" db:"-"`
}

// NextLevel возвращает первый непройденный уровень или nil
func (c *CategoryGroup) NextLevel() *Level {
	for _, l := range c.Levels {
		if !l.Passed {
			return l
		}
	}
	return nil
}

// PassedLevelIDs - идентификаторы пройденных уровней
func (c *CategoryGroup) PassedLevelIDs() []int64 {
	ids := make([]int64, 0, len(c.Levels))
	for _, l := range c.Levels {
		if l.Passed {
			ids = append(ids, l.ID)
		}
	}
	return ids
}

// Level - уровень викторины: группа объектов близкого ранга
type Level struct {
	ID                int64   `json:"id" db:"id"`
	CategoryID        int64   `json:"category_id" db:"category_id"`
	Index             int     `json:"index" db:"level_index"`
	Passed            bool    `json:"passed" db:"passed"`
	RequiredReminders int     `json:"required_reminders" db:"required_reminders"`
	EntityIDs         []int64 `json:"entity_ids,omitempty" db:"-"`
}

// ExerciseConstruction - результат конвейера до сохранения.
// Объекты сгруппированы по уровням, идентификаторы назначит хранилище.
type ExerciseConstruction struct {
	Exercise   *Exercise
	Categories []*CategoryDraft
}

// CategoryDraft - надкатегория с уровнями объектов
type CategoryDraft struct {
	Supercat     string
	DisplayIndex int
	Levels       [][]*GeoEntity
}

// EntityCount - число объектов во всех уровнях
func (c *ExerciseConstruction) EntityCount() int {
	n := 0
	for _, cat := range c.Categories {
		for _, level := range cat.Levels {
			n += len(level)
		}
	}
	return n
}

// Progress - прогресс упражнения
type Progress struct {
	ExerciseID   int64 `json:"exercise_id"`
	TotalLevels  int   `json:"total_levels"`
	PassedLevels int   `json:"passed_levels"`
	Percentage   int   `json:"percentage"`
}

// NewProgress вычисляет процент пройденных уровней
func NewProgress(exerciseID int64, total, passed int) *Progress {
	p := &Progress{ExerciseID: exerciseID, TotalLevels: total, PassedLevels: passed}
	if total > 0 {
		p.Percentage = passed * 100 / total
	}
	return p
}
