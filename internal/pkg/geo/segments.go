package geo

import "math"

type segment struct {
	origin Point
	dirLon float64
	dirLat float64
	length float64
}

func newSegment(from, to Point) segment {
	dLon := to.Lon - from.Lon
	dLat := to.Lat - from.Lat
	length := math.Hypot(dLon, dLat)

	s := segment{origin: from, length: length}
	if length > 0 {
		s.dirLon = dLon / length
		s.dirLat = dLat / length
	}
	return s
}

// intersects решает систему origin0 + s*v0 = origin1 + t*v1 и проверяет,
// что обе дистанции лежат строго внутри отрезков.
func (s segment) intersects(other segment) bool {
	if s.length == 0 || other.length == 0 {
		return false
	}

	// столбцы матрицы: v0 и -v1
	a, b := s.dirLon, -other.dirLon
	c, d := s.dirLat, -other.dirLat

	det := a*d - b*c
	if det == 0 {
		return false
	}

	rLon := other.origin.Lon - s.origin.Lon
	rLat := other.origin.Lat - s.origin.Lat

	dist0 := (rLon*d - b*rLat) / det
	dist1 := (a*rLat - c*rLon) / det

	return dist0 > 0 && dist0 < s.length &&
		dist1 > 0 && dist1 < other.length
}

// Validate возвращает false, если два несмежных отрезка ломаной пересекаются.
// Для замкнутой ломаной первый и последний отрезки считаются смежными.
func Validate(points []Point) bool {
	if len(points) < 4 {
		return true
	}

	segments := make([]segment, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		segments = append(segments, newSegment(points[i-1], points[i]))
	}

	closed := IsClosed(points, ValidationEpsilon)
	last := len(segments) - 1

	for i := 0; i < len(segments); i++ {
		for j := i + 2; j < len(segments); j++ {
			if closed && i == 0 && j == last {
				continue
			}
			if segments[i].intersects(segments[j]) {
				return false
			}
		}
	}
	return true
}

// ValidateRing проверяет область как многоугольник: добавляет замыкающий отрезок
// и отклоняет пересечение антимеридиана.
func ValidateRing(points []Point) bool {
	if len(points) < 3 || CrossesAntimeridian(points) {
		return false
	}
	ring := points
	if !IsClosed(points, ValidationEpsilon) {
		ring = append(append(make([]Point, 0, len(points)+1), points...), points[0])
	}
	return Validate(ring)
}
