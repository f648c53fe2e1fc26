package testhelpers

import (
	"fmt"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/pkg/geo"
)

// StockholmConstruction - упражнение из двух категорий:
// settlements с уровнями по 3 и 2 объекта, roads с одним уровнем из 2 объектов.
func StockholmConstruction() *domain.ExerciseConstruction {
	town := func(i int, name string, rank float64) *domain.GeoEntity {
		e := domain.NewDraftGeoEntity()
		e.SourceID = fmt.Sprintf("node/%d", i)
		e.Name = name
		e.Rank = rank
		e.Supercat = domain.SupercatSettlements
		e.Subcat = "town"
		e.Shapes = []domain.NodeShape{domain.NewNodeShape([]geo.Point{{Lon: 18 + float64(i)/100, Lat: 59.3}})}
		return e
	}
	road := func(i int, name string, rank float64) *domain.GeoEntity {
		e := domain.NewDraftGeoEntity()
		e.SourceID = fmt.Sprintf("way/%d", i)
		e.Name = name
		e.Rank = rank
		e.Supercat = domain.SupercatRoads
		e.Subcat = "road"
		e.Shapes = []domain.NodeShape{
			domain.NewNodeShape([]geo.Point{{Lon: 18.05, Lat: 59.33}, {Lon: 18.06, Lat: 59.34}}),
			domain.NewNodeShape([]geo.Point{{Lon: 18.06, Lat: 59.34}, {Lon: 18.07, Lat: 59.34}}),
		}
		return e
	}

	return &domain.ExerciseConstruction{
		Exercise: &domain.Exercise{
			Name: "Stockholm",
			WorkingArea: []geo.Point{
				{Lon: 17.9, Lat: 59.2}, {Lon: 17.9, Lat: 59.4}, {Lon: 18.2, Lat: 59.4}, {Lon: 18.2, Lat: 59.2},
			},
		},
		Categories: []*domain.CategoryDraft{
			{
				Supercat:     domain.SupercatSettlements,
				DisplayIndex: 0,
				Levels: [][]*domain.GeoEntity{
					{town(1, "Sundbyberg", 5.25), town(2, "Solna", 6.25), town(3, "Nacka", 6.5)},
					{town(4, "Södertälje", 7.5), town(5, "Stockholm", 10.25)},
				},
			},
			{
				Supercat:     domain.SupercatRoads,
				DisplayIndex: 1,
				Levels: [][]*domain.GeoEntity{
					{road(10, "Sveavägen", 4.5), road(11, "Kungsgatan", 4.75)},
				},
			},
		},
	}
}
