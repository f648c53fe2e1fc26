package domain

import "github.com/geoquiz-service/internal/pkg/geo"

// NodeShape - упорядоченный набор точек: точка, линия или контур
type NodeShape struct {
	Points []geo.Point `json:"points"`
}

// NewNodeShape создает фигуру из копии точек
func NewNodeShape(points []geo.Point) NodeShape {
	cp := make([]geo.Point, len(points))
	copy(cp, points)
	return NodeShape{Points: cp}
}

// Bounds возвращает границы фигуры
func (s NodeShape) Bounds() geo.Bounds {
	return geo.BoundsOf(s.Points)
}

// Length - длина фигуры в метрах
func (s NodeShape) Length() float64 {
	return geo.Length(s.Points)
}

// IsClosed - первая и последняя точки совпадают
func (s NodeShape) IsClosed() bool {
	return geo.IsClosed(s.Points, geo.ValidationEpsilon)
}

// IsNode - фигура из одной точки
func (s NodeShape) IsNode() bool {
	return len(s.Points) == 1
}

// IsValid проверяет инварианты фигуры
func (s NodeShape) IsValid() bool {
	return len(s.Points) > 0 &&
		!geo.CrossesAntimeridian(s.Points) &&
		geo.Validate(s.Points)
}
