// Package geo содержит геометрические примитивы: расстояния, границы и
// проверку самопересечений ломаных.
package geo

import "math"

const (
	// EarthRadiusMeters - радиус Земли для формулы гаверсинусов
	EarthRadiusMeters = 6371000.0

	// ValidationEpsilon - порог замкнутости при валидации фигур
	ValidationEpsilon = 1e-8

	// DisplayEpsilon - порог замкнутости для отображения
	DisplayEpsilon = 1e-4
)

// Point - точка (долгота, широта)
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Bounds - ограничивающий прямоугольник [w, s, e, n]
type Bounds struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// HaversineDistance вычисляет расстояние между двумя точками в метрах
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(toRad(lat1))*math.Cos(toRad(lat2))
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

// Distance - расстояние между точками в метрах
func Distance(p1, p2 Point) float64 {
	return HaversineDistance(p1.Lat, p1.Lon, p2.Lat, p2.Lon)
}

// BoundsOf возвращает границы набора точек. Для пустого набора - нулевые границы.
func BoundsOf(points []Point) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}

	b := Bounds{
		West:  points[0].Lon,
		South: points[0].Lat,
		East:  points[0].Lon,
		North: points[0].Lat,
	}
	for _, p := range points[1:] {
		b = b.extend(p)
	}
	return b
}

// Union объединяет два прямоугольника
func (b Bounds) Union(other Bounds) Bounds {
	return b.extend(Point{Lon: other.West, Lat: other.South}).
		extend(Point{Lon: other.East, Lat: other.North})
}

func (b Bounds) extend(p Point) Bounds {
	b.West = math.Min(b.West, p.Lon)
	b.South = math.Min(b.South, p.Lat)
	b.East = math.Max(b.East, p.Lon)
	b.North = math.Max(b.North, p.Lat)
	return b
}

// Center - середина прямоугольника
func (b Bounds) Center() Point {
	return Point{
		Lon: (b.West + b.East) / 2,
		Lat: (b.South + b.North) / 2,
	}
}

// ProbePoints возвращает четыре угла и центр прямоугольника
func (b Bounds) ProbePoints() [5]Point {
	return [5]Point{
		{Lon: b.West, Lat: b.South},
		{Lon: b.West, Lat: b.North},
		{Lon: b.East, Lat: b.North},
		{Lon: b.East, Lat: b.South},
		b.Center(),
	}
}

// Length - сумма длин отрезков ломаной в метрах
func Length(points []Point) float64 {
	length := 0.0
	for i := 1; i < len(points); i++ {
		length += Distance(points[i-1], points[i])
	}
	return length
}

// IsClosed проверяет, совпадают ли первая и последняя точки с точностью eps
func IsClosed(points []Point, eps float64) bool {
	if len(points) == 0 {
		return false
	}
	return Distance(points[0], points[len(points)-1]) < eps
}

// AsClosed возвращает копию ломаной, замкнутую первой точкой
func AsClosed(points []Point) []Point {
	closed := make([]Point, len(points), len(points)+1)
	copy(closed, points)
	if len(points) > 1 && !IsClosed(points, DisplayEpsilon) {
		closed = append(closed, points[0])
	}
	return closed
}

// CrossesAntimeridian - есть ли скачок долготы больше 180 градусов
func CrossesAntimeridian(points []Point) bool {
	for i := 1; i < len(points); i++ {
		if math.Abs(points[i].Lon-points[i-1].Lon) > 180 {
			return true
		}
	}
	return false
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180.0
}
