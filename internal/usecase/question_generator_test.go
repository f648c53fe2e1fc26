package usecase_test

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/pkg/errors"
	"github.com/geoquiz-service/internal/pkg/geo"
	"github.com/geoquiz-service/internal/usecase"
)

func TestAlternativeCount(t *testing.T) {
	tests := []struct {
		qType      domain.QuestionType
		difficulty int
		want       int
	}{
		{domain.NameIt, 0, 2},
		{domain.NameIt, 1, 4},
		{domain.NameIt, 2, 4},
		{domain.NameIt, 3, 6},
		{domain.NameIt, 4, 6},
		{domain.PairIt, 0, 2},
		{domain.PairIt, 4, 6},
		{domain.PlaceIt, 0, 2},
		{domain.PlaceIt, 1, 3},
		{domain.PlaceIt, 2, 4},
		{domain.PlaceIt, 3, 5},
		{domain.PlaceIt, 4, 6},
		{domain.PlaceIt, 9, 6},
		{domain.NameIt, -3, 2},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s_%d", tt.qType, tt.difficulty), func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.AlternativeCount(tt.qType, tt.difficulty))
		})
	}
}

func pool(n int) []*domain.GeoEntity {
	out := make([]*domain.GeoEntity, n)
	for i := range out {
		out[i] = entity(int64(100+i), fmt.Sprintf("Ort %d", i), float64(i), domain.SupercatSettlements, "village",
			geo.Point{Lon: 18 + float64(i)/100, Lat: 59})
	}
	return out
}

func TestQuestionGenerator_GenerateContent(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("target is substituted when sample misses it", func(t *testing.T) {
		repo := &MockGeoEntityRepository{}
		sample := pool(6)
		target := entity(1, "Målet", 1, domain.SupercatSettlements, "city", geo.Point{Lon: 18, Lat: 59})

		repo.On("GetRandom", ctx, int64(1), 6).Return(sample, nil)

		g := usecase.NewQuestionGenerator(repo, rand.New(rand.NewPCG(1, 1)), logger)
		ids, err := g.GenerateContent(ctx, target, domain.PlaceIt, 4)
		require.NoError(t, err)

		assert.Len(t, ids, 6)
		assert.Contains(t, ids, int64(1))
		assert.Equal(t, int64(100), sample[0].ID, "sample from the store is not modified")
		repo.AssertExpectations(t)
	})

	t.Run("target already in sample", func(t *testing.T) {
		repo := &MockGeoEntityRepository{}
		sample := pool(4)
		target := sample[2]

		repo.On("GetRandom", ctx, int64(1), 4).Return(sample, nil)

		g := usecase.NewQuestionGenerator(repo, rand.New(rand.NewPCG(1, 2)), logger)
		ids, err := g.GenerateContent(ctx, target, domain.NameIt, 2)
		require.NoError(t, err)

		assert.Equal(t, []int64{100, 101, 102, 103}, ids)
	})

	t.Run("pair-it drops a non-target to keep count even", func(t *testing.T) {
		repo := &MockGeoEntityRepository{}
		sample := pool(3)
		target := sample[0]

		repo.On("GetRandom", ctx, int64(1), 6).Return(sample, nil)

		g := usecase.NewQuestionGenerator(repo, rand.New(rand.NewPCG(1, 3)), logger)
		ids, err := g.GenerateContent(ctx, target, domain.PairIt, 4)
		require.NoError(t, err)

		assert.Len(t, ids, 2)
		assert.Contains(t, ids, target.ID)
	})

	t.Run("too few entities", func(t *testing.T) {
		repo := &MockGeoEntityRepository{}
		target := entity(1, "Ensam", 1, domain.SupercatSettlements, "city", geo.Point{Lon: 18, Lat: 59})

		repo.On("GetRandom", ctx, int64(1), 2).Return([]*domain.GeoEntity{target}, nil)

		g := usecase.NewQuestionGenerator(repo, rand.New(rand.NewPCG(1, 4)), logger)
		ids, err := g.GenerateContent(ctx, target, domain.NameIt, 0)

		assert.Nil(t, ids)
		assert.ErrorIs(t, err, errors.ErrContentGeneration)
	})

	t.Run("duplicate names are redrawn", func(t *testing.T) {
		repo := &MockGeoEntityRepository{}
		target := entity(1, "Nacka", 1, domain.SupercatSettlements, "town", geo.Point{Lon: 18, Lat: 59})
		dup := entity(2, "NACKA", 1, domain.SupercatSettlements, "town", geo.Point{Lon: 18.1, Lat: 59})
		other := entity(3, "Solna", 1, domain.SupercatSettlements, "town", geo.Point{Lon: 18.2, Lat: 59})

		repo.On("GetRandom", ctx, int64(1), 2).Return([]*domain.GeoEntity{target, dup}, nil).Once()
		repo.On("GetRandom", ctx, int64(1), 2).Return([]*domain.GeoEntity{other, target}, nil).Once()

		g := usecase.NewQuestionGenerator(repo, rand.New(rand.NewPCG(1, 5)), logger)
		ids, err := g.GenerateContent(ctx, target, domain.NameIt, 0)
		require.NoError(t, err)

		assert.Equal(t, []int64{3, 1}, ids)
		repo.AssertNumberOfCalls(t, "GetRandom", 2)
	})

	t.Run("store error", func(t *testing.T) {
		repo := &MockGeoEntityRepository{}
		target := pool(1)[0]
		repo.On("GetRandom", ctx, target.ExerciseID, mock.Anything).Return(nil, errors.ErrDatabaseError)

		g := usecase.NewQuestionGenerator(repo, rand.New(rand.NewPCG(1, 6)), logger)
		_, err := g.GenerateContent(ctx, target, domain.PlaceIt, 0)
		assert.ErrorIs(t, err, errors.ErrDatabaseError)
	})
}

func TestQuestionGenerator_Generate(t *testing.T) {
	ctx := context.Background()
	repo := &MockGeoEntityRepository{}
	sample := pool(6)
	target := sample[0]

	repo.On("GetRandom", ctx, int64(1), mock.AnythingOfType("int")).Return(sample, nil)

	g := usecase.NewQuestionGenerator(repo, rand.New(rand.NewPCG(9, 9)), zap.NewNop())

	var previous *domain.Question
	for i := 0; i < 30; i++ {
		q, err := g.Generate(ctx, target, i%7, previous)
		require.NoError(t, err)

		assert.Equal(t, target.ID, q.GeoEntityID)
		assert.Equal(t, usecase.ClampDifficulty(i%7), q.Difficulty)
		assert.Contains(t, q.ContentIDs, target.ID)
		assert.GreaterOrEqual(t, len(q.ContentIDs), usecase.MinAlternatives)
		if previous != nil {
			assert.NotEqual(t, previous.Type, q.Type, "same entity never repeats the type back to back")
		}
		previous = q
	}
}
