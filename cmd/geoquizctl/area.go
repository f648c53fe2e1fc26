package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/geoquiz-service/internal/usecase/dto"
)

// parseArea разбирает "lat,lon;lat,lon;..."
func parseArea(s string) ([]dto.Point, error) {
	parts := strings.Split(strings.TrimSpace(s), ";")
	points := make([]dto.Point, 0, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		coords := strings.Split(part, ",")
		if len(coords) != 2 {
			return nil, fmt.Errorf("point %d: expected lat,lon, got %q", i+1, part)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(coords[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("point %d: latitude: %w", i+1, err)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(coords[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("point %d: longitude: %w", i+1, err)
		}
		points = append(points, dto.Point{Lat: lat, Lon: lon})
	}
	return points, nil
}
