package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/pkg/errors"
	"github.com/geoquiz-service/internal/pkg/geo"
	"github.com/geoquiz-service/internal/usecase"
)

func TestNewMergeEngine_Limit(t *testing.T) {
	assert.Equal(t, 120.0, usecase.NewMergeEngine(120).LimitMeters())
	assert.Equal(t, usecase.DefaultMergeLimitMeters, usecase.NewMergeEngine(0).LimitMeters())
	assert.Equal(t, usecase.DefaultMergeLimitMeters, usecase.NewMergeEngine(500).LimitMeters())
}

func TestMergeEngine_TryMerge(t *testing.T) {
	engine := usecase.NewMergeEngine(usecase.DefaultMergeLimitMeters)
	road := line(59.33, 18.06, 300)

	t.Run("higher rank wins and shapes are joined", func(t *testing.T) {
		a := entity(1, "Sveavägen", 3, domain.SupercatRoads, "road", road...)
		b := entity(2, "sveavägen", 5, domain.SupercatRoads, "road", road...)

		merged, ok := engine.TryMerge(a, b)
		require.True(t, ok)

		assert.Equal(t, "sveavägen", merged.Name)
		assert.Equal(t, 5.0, merged.Rank)
		require.Len(t, merged.Shapes, 2)
		assert.Equal(t, b.Shapes[0].Points, merged.Shapes[0].Points)
		assert.Equal(t, a.Shapes[0].Points, merged.Shapes[1].Points)

		assert.Len(t, a.Shapes, 1, "inputs are not modified")
		assert.Len(t, b.Shapes, 1, "inputs are not modified")
	})

	t.Run("first operand wins on tie", func(t *testing.T) {
		a := entity(1, "Sveavägen", 4, domain.SupercatRoads, "road", road...)
		b := entity(2, "SVEAVÄGEN", 4, domain.SupercatRoads, "road", road...)

		merged, ok := engine.TryMerge(a, b)
		require.True(t, ok)
		assert.Equal(t, "Sveavägen", merged.Name)
		assert.Equal(t, int64(1), merged.ID)
	})

	t.Run("different subcat", func(t *testing.T) {
		a := entity(1, "Ån", 3, domain.SupercatNature, "river", road...)
		b := entity(2, "Ån", 5, domain.SupercatNature, "stream", road...)

		merged, ok := engine.TryMerge(a, b)
		assert.False(t, ok)
		assert.Nil(t, merged)
	})

	t.Run("nodes are never merged", func(t *testing.T) {
		p := geo.Point{Lon: 18.06, Lat: 59.33}
		a := entity(1, "Kyrkan", 3, domain.SupercatConstructions, "church", p)
		b := entity(2, "Kyrkan", 5, domain.SupercatConstructions, "church", p)

		_, ok := engine.TryMerge(a, b)
		assert.False(t, ok)
	})

	t.Run("too far apart", func(t *testing.T) {
		a := entity(1, "Storgatan", 3, domain.SupercatRoads, "road", line(59.33, 18.06, 100)...)
		b := entity(2, "Storgatan", 5, domain.SupercatRoads, "road", line(59.40, 18.06, 100)...)

		_, ok := engine.TryMerge(a, b)
		assert.False(t, ok)
	})

	t.Run("adjacent fragments within limit", func(t *testing.T) {
		first := line(59.33, 18.06, 500)
		second := line(59.33, first[1].Lon+lonDegrees(59.33, 100), 500)
		a := entity(1, "Storgatan", 3, domain.SupercatRoads, "road", first...)
		b := entity(2, "Storgatan", 5, domain.SupercatRoads, "road", second...)

		assert.InDelta(t, 100, usecase.ApproxDistance(a, b), 1)
		_, ok := engine.TryMerge(a, b)
		assert.True(t, ok)
	})
}

func TestMerge_AcrossCategories(t *testing.T) {
	road := line(59.33, 18.06, 300)
	a := entity(1, "Ån", 3, domain.SupercatNature, "river", road...)
	b := entity(2, "Ån", 5, domain.SupercatRoads, "road", road...)

	merged, err := usecase.Merge(a, b)
	assert.Nil(t, merged)
	assert.ErrorIs(t, err, errors.ErrInvariantViolation)
}

func TestMergeEngine_Dedup(t *testing.T) {
	engine := usecase.NewMergeEngine(usecase.DefaultMergeLimitMeters)

	road := line(59.33, 18.06, 300)
	far := line(59.50, 18.06, 300)

	entities := []*domain.GeoEntity{
		entity(1, "Sveavägen", 2, domain.SupercatRoads, "road", road...),
		entity(2, "Kungsgatan", 3, domain.SupercatRoads, "road", road...),
		entity(3, "SVEAVÄGEN", 4, domain.SupercatRoads, "road", road...),
		entity(4, "sveavägen", 1, domain.SupercatRoads, "road", road...),
		entity(5, "Sveavägen", 6, domain.SupercatRoads, "road", far...),
	}

	result, merges := engine.Dedup(entities)

	require.Len(t, result, 3)
	assert.Equal(t, 2, merges)

	assert.Equal(t, "SVEAVÄGEN", result[0].Name)
	assert.Equal(t, 4.0, result[0].Rank)
	assert.Len(t, result[0].Shapes, 3)

	assert.Equal(t, "Sveavägen", result[1].Name)
	assert.Equal(t, 6.0, result[1].Rank)
	assert.Len(t, result[1].Shapes, 1)

	assert.Equal(t, "Kungsgatan", result[2].Name)
}

func TestMergeEngine_DedupEmpty(t *testing.T) {
	engine := usecase.NewMergeEngine(usecase.DefaultMergeLimitMeters)
	result, merges := engine.Dedup(nil)
	assert.Empty(t, result)
	assert.Zero(t, merges)
}

func TestBoostRanksByLength(t *testing.T) {
	short := entity(1, "Kort", 2, domain.SupercatRoads, "road", line(59.33, 18.06, 100)...)
	long := entity(2, "Lång", 2, domain.SupercatRoads, "road", line(59.33, 18.06, 300)...)
	node := entity(3, "Torget", 2, domain.SupercatRoads, "square", geo.Point{Lon: 18, Lat: 59})

	usecase.BoostRanksByLength([]*domain.GeoEntity{short, long, node})

	// средняя длина 400/3 м: точка входит в нее с длиной 0
	assert.InDelta(t, 2*(1+0.75*0.1), short.Rank, 1e-3)
	assert.InDelta(t, 2*(1+2.25*0.1), long.Rank, 1e-3)
	assert.Equal(t, 2.0, node.Rank)
}

func TestBoostRanksByLength_OnlyNodes(t *testing.T) {
	node := entity(1, "Torget", 2, domain.SupercatRoads, "square", geo.Point{Lon: 18, Lat: 59})
	usecase.BoostRanksByLength([]*domain.GeoEntity{node})
	assert.Equal(t, 2.0, node.Rank)
}
