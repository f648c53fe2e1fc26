package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoquiz-service/internal/pkg/errors"
	"github.com/geoquiz-service/internal/usecase/dto"
)

func TestParseArea(t *testing.T) {
	points, err := parseArea(" 59.30,18.00; 59.36, 18.12 ;59.30,18.12;")
	require.NoError(t, err)
	assert.Equal(t, []dto.Point{
		{Lat: 59.30, Lon: 18.00},
		{Lat: 59.36, Lon: 18.12},
		{Lat: 59.30, Lon: 18.12},
	}, points)
}

func TestParseArea_Errors(t *testing.T) {
	tests := []string{
		"59.30",
		"59.30,18.00,1",
		"north,18.00",
		"59.30,east",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			_, err := parseArea(in)
			assert.Error(t, err)
		})
	}
}

func TestBuildRequest_Validates(t *testing.T) {
	buildCmd.Flags().Set("name", "Stockholm")
	buildCmd.Flags().Set("area", "59.30,18.00;59.36,18.00")
	t.Cleanup(func() {
		buildCmd.Flags().Set("name", "")
		buildCmd.Flags().Set("area", "")
	})

	_, err := buildRequest(buildCmd)
	assert.ErrorIs(t, err, errors.ErrInvalidRequest)

	buildCmd.Flags().Set("area", "59.30,18.00;59.36,18.00;59.36,18.12")
	req, err := buildRequest(buildCmd)
	require.NoError(t, err)
	assert.Len(t, req.WorkingArea, 3)
}
