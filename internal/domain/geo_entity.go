package domain

import (
	"time"

	"github.com/geoquiz-service/internal/pkg/geo"
)

const (
	// Unassigned - объект еще не распределен по уровням
	Unassigned int64 = -1

	// NoRank - ранг еще не вычислен
	NoRank = -1.0

	// MinNameLength - минимальная длина названия объекта
	MinNameLength = 2
)

// GeoEntity - именованный объект карты (город, дорога, озеро...)
type GeoEntity struct {
	ID            int64       `json:"id" db:"id"`
	ExerciseID    int64       `json:"exercise_id" db:"exercise_id"`
	SourceID      string      `json:"source_id" db:"source_id"`
	Name          string      `json:"name" db:"name"`
	Rank          float64     `json:"rank" db:"rank"`
	Supercat      string      `json:"supercat" db:"supercat"`
	Subcat        string      `json:"subcat" db:"subcat"`
	Shapes        []NodeShape `json:"shapes" db:"-"`
	LevelID       int64       `json:"level_id" db:"level_id"`
	TimesAsked    float64     `json:"times_asked" db:"times_asked"`
	TimesCorrect  float64     `json:"times_correct" db:"times_correct"`
	LastCorrectAt *time.Time  `json:"last_correct_at,omitempty" db:"last_correct_at"`
}

// NewDraftGeoEntity создает черновик без ранга, категории и уровня
func NewDraftGeoEntity() *GeoEntity {
	return &GeoEntity{
		Rank:    NoRank,
		LevelID: Unassigned,
	}
}

// IsNode - объект состоит из одной фигуры с одной точкой
func (g *GeoEntity) IsNode() bool {
	return len(g.Shapes) == 1 && g.Shapes[0].IsNode()
}

// IsComplete проверяет, что все обязательные поля заполнены
func (g *GeoEntity) IsComplete() bool {
	return g.SourceID != "" &&
		len([]rune(g.Name)) >= MinNameLength &&
		len(g.Shapes) > 0 &&
		g.Rank != NoRank &&
		g.Supercat != "" &&
		g.Subcat != ""
}

// Bounds - общие границы всех фигур
func (g *GeoEntity) Bounds() geo.Bounds {
	if len(g.Shapes) == 0 {
		return geo.Bounds{}
	}
	b := g.Shapes[0].Bounds()
	for _, s := range g.Shapes[1:] {
		b = b.Union(s.Bounds())
	}
	return b
}

// Center - центр общих границ
func (g *GeoEntity) Center() geo.Point {
	return g.Bounds().Center()
}

// Length - суммарная длина всех фигур в метрах
func (g *GeoEntity) Length() float64 {
	total := 0.0
	for _, s := range g.Shapes {
		total += s.Length()
	}
	return total
}

// SameCategory - совпадают надкатегория и подкатегория
func (g *GeoEntity) SameCategory(other *GeoEntity) bool {
	return g.Supercat == other.Supercat && g.Subcat == other.Subcat
}

// Clone возвращает глубокую копию объекта
func (g *GeoEntity) Clone() *GeoEntity {
	c := *g
	c.Shapes = make([]NodeShape, len(g.Shapes))
	for i, s := range g.Shapes {
		c.Shapes[i] = NewNodeShape(s.Points)
	}
	if g.LastCorrectAt != nil {
		t := *g.LastCorrectAt
		c.LastCorrectAt = &t
	}
	return &c
}

// SuccessRatio - доля правильных ответов по объекту
func (g *GeoEntity) SuccessRatio() float64 {
	if g.TimesAsked == 0 {
		return 0
	}
	return g.TimesCorrect / g.TimesAsked
}
