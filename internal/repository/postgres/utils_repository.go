package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/pkg/geo"
)

// Константы для запросов
const (
	// MaxRandomSample - верхняя граница выборки GetRandom
	MaxRandomSample = 100
	// MaxSearchResults - лимит поиска по названию
	MaxSearchResults = 50
)

// scanner - общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

const entityColumns = `
	id, exercise_id, level_id, source_id, name, rank, supercat, subcat,
	shapes, times_asked, times_correct, last_correct_at`

func scanEntity(row scanner) (*domain.GeoEntity, error) {
	var (
		e         domain.GeoEntity
		shapesRaw []byte
	)
	err := row.Scan(
		&e.ID, &e.ExerciseID, &e.LevelID, &e.SourceID, &e.Name, &e.Rank,
		&e.Supercat, &e.Subcat, &shapesRaw,
		&e.TimesAsked, &e.TimesCorrect, &e.LastCorrectAt,
	)
	if err != nil {
		return nil, err
	}

	shapes, err := decodeShapes(shapesRaw)
	if err != nil {
		return nil, err
	}
	e.Shapes = shapes
	return &e, nil
}

// encodeShapes хранит фигуры как [[[lon, lat], ...], ...]
func encodeShapes(shapes []domain.NodeShape) ([]byte, error) {
	out := make([][][2]float64, len(shapes))
	for i, s := range shapes {
		out[i] = make([][2]float64, len(s.Points))
		for j, p := range s.Points {
			out[i][j] = [2]float64{p.Lon, p.Lat}
		}
	}
	return json.Marshal(out)
}

func decodeShapes(data []byte) ([]domain.NodeShape, error) {
	var raw [][][2]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode shapes: %w", err)
	}
	shapes := make([]domain.NodeShape, len(raw))
	for i, s := range raw {
		shapes[i] = domain.NodeShape{Points: decodeRing(s)}
	}
	return shapes, nil
}

func encodeRing(points []geo.Point) ([]byte, error) {
	out := make([][2]float64, len(points))
	for i, p := range points {
		out[i] = [2]float64{p.Lon, p.Lat}
	}
	return json.Marshal(out)
}

func decodeRing(raw [][2]float64) []geo.Point {
	points := make([]geo.Point, len(raw))
	for i, p := range raw {
		points[i] = geo.Point{Lon: p[0], Lat: p[1]}
	}
	return points
}
