package geo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/geoquiz-service/internal/pkg/geo"
)

func TestDistance(t *testing.T) {
	a := geo.Point{Lon: 18.0686, Lat: 59.3293}
	b := geo.Point{Lon: 11.9746, Lat: 57.7089}

	t.Run("symmetric", func(t *testing.T) {
		assert.Equal(t, geo.Distance(a, b), geo.Distance(b, a))
	})

	t.Run("zero for same point", func(t *testing.T) {
		assert.Equal(t, 0.0, geo.Distance(a, a))
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		d := geo.Distance(geo.Point{Lon: 0, Lat: 0}, geo.Point{Lon: 0, Lat: 1})
		assert.InDelta(t, 111195.0, d, 1.0)
	})

	t.Run("stockholm to gothenburg", func(t *testing.T) {
		assert.InDelta(t, 398000.0, geo.Distance(a, b), 3000.0)
	})
}

func TestLength(t *testing.T) {
	t.Run("single point has zero length", func(t *testing.T) {
		assert.Equal(t, 0.0, geo.Length([]geo.Point{{Lon: 10, Lat: 10}}))
	})

	t.Run("empty has zero length", func(t *testing.T) {
		assert.Equal(t, 0.0, geo.Length(nil))
	})

	t.Run("sum of segments", func(t *testing.T) {
		points := []geo.Point{{Lon: 0, Lat: 0}, {Lon: 0, Lat: 1}, {Lon: 0, Lat: 2}}
		expected := geo.Distance(points[0], points[1]) + geo.Distance(points[1], points[2])
		assert.InDelta(t, expected, geo.Length(points), 1e-6)
		assert.GreaterOrEqual(t, geo.Length(points), 0.0)
	})
}

func TestBoundsOf(t *testing.T) {
	points := []geo.Point{
		{Lon: 12.5, Lat: 55.7},
		{Lon: 12.6, Lat: 55.6},
		{Lon: 12.4, Lat: 55.8},
	}

	b := geo.BoundsOf(points)
	assert.Equal(t, geo.Bounds{West: 12.4, South: 55.6, East: 12.6, North: 55.8}, b)
	assert.InDelta(t, 12.5, b.Center().Lon, 1e-9)
	assert.InDelta(t, 55.7, b.Center().Lat, 1e-9)

	probes := b.ProbePoints()
	assert.Len(t, probes, 5)
	assert.Equal(t, b.Center(), probes[4])
}

func TestBounds_Union(t *testing.T) {
	a := geo.Bounds{West: 0, South: 0, East: 1, North: 1}
	b := geo.Bounds{West: -1, South: 0.5, East: 0.5, North: 2}

	assert.Equal(t, geo.Bounds{West: -1, South: 0, East: 1, North: 2}, a.Union(b))
}

func TestIsClosed(t *testing.T) {
	open := []geo.Point{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 1, Lat: 1}}
	closed := append(append([]geo.Point{}, open...), open[0])

	assert.False(t, geo.IsClosed(open, geo.ValidationEpsilon))
	assert.True(t, geo.IsClosed(closed, geo.ValidationEpsilon))
	assert.False(t, geo.IsClosed(nil, geo.ValidationEpsilon))

	t.Run("as closed appends first point once", func(t *testing.T) {
		assert.Len(t, geo.AsClosed(open), 4)
		assert.Len(t, geo.AsClosed(closed), 4)
	})
}

func TestValidate(t *testing.T) {
	t.Run("bowtie is rejected", func(t *testing.T) {
		bowtie := []geo.Point{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 1, Lat: 0}, {Lon: 0, Lat: 1}}
		assert.False(t, geo.Validate(bowtie))
	})

	t.Run("convex quadrilateral is accepted", func(t *testing.T) {
		square := []geo.Point{{Lon: 0, Lat: 0}, {Lon: 0, Lat: 1}, {Lon: 1, Lat: 1}, {Lon: 1, Lat: 0}}
		assert.True(t, geo.Validate(square))
	})

	t.Run("closed convex ring is accepted", func(t *testing.T) {
		ring := []geo.Point{{Lon: 0, Lat: 0}, {Lon: 0, Lat: 1}, {Lon: 1, Lat: 1}, {Lon: 1, Lat: 0}, {Lon: 0, Lat: 0}}
		assert.True(t, geo.Validate(ring))
	})

	t.Run("repeated points are ignored", func(t *testing.T) {
		points := []geo.Point{{Lon: 0, Lat: 0}, {Lon: 0, Lat: 0}, {Lon: 0, Lat: 1}, {Lon: 1, Lat: 1}}
		assert.True(t, geo.Validate(points))
	})
}

func TestValidateRing(t *testing.T) {
	t.Run("bowtie is rejected", func(t *testing.T) {
		points := []geo.Point{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}, {Lon: 1, Lat: 0}, {Lon: 0, Lat: 1}}
		assert.False(t, geo.ValidateRing(points))
	})

	t.Run("triangle is accepted", func(t *testing.T) {
		assert.True(t, geo.ValidateRing([]geo.Point{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}, {Lon: 0, Lat: 1}}))
	})

	t.Run("too few points", func(t *testing.T) {
		assert.False(t, geo.ValidateRing([]geo.Point{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 0}}))
	})

	t.Run("antimeridian", func(t *testing.T) {
		points := []geo.Point{{Lon: 179.5, Lat: 0}, {Lon: -179.5, Lat: 0}, {Lon: -179.5, Lat: 1}}
		assert.True(t, geo.CrossesAntimeridian(points))
		assert.False(t, geo.ValidateRing(points))
	})
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, geo.ValidateCoordinates(59.3, 18.1))
	assert.False(t, geo.ValidateCoordinates(91, 0))
	assert.False(t, geo.ValidateCoordinates(0, -181))
}
