package dto

import "github.com/geoquiz-service/internal/pkg/geo"

// Point - координаты точки
type Point struct {
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
	Lon float64 `json:"lon" validate:"min=-180,max=180"`
}

// BuildExerciseRequest - запрос на построение упражнения по рабочей области
type BuildExerciseRequest struct {
	Name        string  `json:"name" validate:"required,min=2,max=100"`
	WorkingArea []Point `json:"working_area" validate:"required,min=3,max=200,dive"`
}

// Polygon переводит рабочую область в точки геометрии
func (r BuildExerciseRequest) Polygon() []geo.Point {
	return ToGeoPoints(r.WorkingArea)
}

// ToGeoPoints - перевод точек запроса
func ToGeoPoints(points []Point) []geo.Point {
	out := make([]geo.Point, len(points))
	for i, p := range points {
		out[i] = geo.Point{Lon: p.Lon, Lat: p.Lat}
	}
	return out
}

// FromGeoPoints - обратный перевод
func FromGeoPoints(points []geo.Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		out[i] = Point{Lat: p.Lat, Lon: p.Lon}
	}
	return out
}

// StartQuizRequest - запрос на новую викторину
type StartQuizRequest struct {
	Type     string `json:"type" validate:"required,oneof=level follow_up category_reminder exercise_reminder"`
	Supercat string `json:"supercat,omitempty" validate:"required_if=Type level,required_if=Type category_reminder,omitempty,oneof=settlements roads nature transport constructions"`
}

// ReportAnswerRequest - ответ пользователя на вопрос
type ReportAnswerRequest struct {
	QuestionID int64 `json:"question_id" validate:"required,min=1"`
	Correct    bool  `json:"correct"`
}

// EntitySearchRequest - поиск объектов по названию
type EntitySearchRequest struct {
	Name string `query:"name" validate:"required,min=2"`
}
