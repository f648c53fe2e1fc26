package usecase

import (
	"math"
	"strings"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/pkg/errors"
	"github.com/geoquiz-service/internal/pkg/geo"
)

const (
	DefaultMergeLimitMeters = 150.0
	MinMergeLimitMeters     = 100.0
	MaxMergeLimitMeters     = 200.0

	// lengthBoostFactor - максимальная доля прибавки ранга для объекта средней длины
	lengthBoostFactor = 0.1
)

// MergeEngine склеивает фрагменты одного и того же объекта
type MergeEngine struct {
	limitMeters float64
}

// NewMergeEngine создает движок с порогом склейки в метрах.
// Значение вне [100, 200] заменяется значением по умолчанию.
func NewMergeEngine(limitMeters float64) *MergeEngine {
	if limitMeters < MinMergeLimitMeters || limitMeters > MaxMergeLimitMeters {
		limitMeters = DefaultMergeLimitMeters
	}
	return &MergeEngine{limitMeters: limitMeters}
}

func (m *MergeEngine) LimitMeters() float64 {
	return m.limitMeters
}

// ApproxDistance - минимальное расстояние между углами и центрами границ двух объектов
func ApproxDistance(a, b *domain.GeoEntity) float64 {
	pa := a.Bounds().ProbePoints()
	pb := b.Bounds().ProbePoints()

	best := math.Inf(1)
	for _, p := range pa {
		for _, q := range pb {
			if d := geo.Distance(p, q); d < best {
				best = d
			}
		}
	}
	return best
}

// Mergeable - объекты одной категории, оба не точки и находятся рядом
func (m *MergeEngine) Mergeable(a, b *domain.GeoEntity) bool {
	if !a.SameCategory(b) {
		return false
	}
	if a.IsNode() || b.IsNode() {
		return false
	}
	return ApproxDistance(a, b) <= m.limitMeters
}

// TryMerge склеивает объекты, если это допустимо
func (m *MergeEngine) TryMerge(a, b *domain.GeoEntity) (*domain.GeoEntity, bool) {
	if !m.Mergeable(a, b) {
		return nil, false
	}
	merged, err := Merge(a, b)
	if err != nil {
		return nil, false
	}
	return merged, true
}

// Merge возвращает новый объект: фигуры объекта с меньшим рангом добавляются
// к объекту с большим. При равных рангах побеждает первый аргумент.
func Merge(a, b *domain.GeoEntity) (*domain.GeoEntity, error) {
	if !a.SameCategory(b) {
		return nil, errors.ErrInvariantViolation.WithMessage(
			"merge across categories: %s/%s and %s/%s", a.Supercat, a.Subcat, b.Supercat, b.Subcat)
	}

	winner, loser := a, b
	if b.Rank > a.Rank {
		winner, loser = b, a
	}

	merged := winner.Clone()
	for _, s := range loser.Shapes {
		merged.Shapes = append(merged.Shapes, domain.NewNodeShape(s.Points))
	}
	return merged, nil
}

// Dedup группирует объекты по названию без учета регистра и склеивает
// близкие объекты внутри каждой группы. Порядок групп - порядок первого появления.
func (m *MergeEngine) Dedup(entities []*domain.GeoEntity) ([]*domain.GeoEntity, int) {
	clusters := make(map[string][]*domain.GeoEntity)
	order := make([]string, 0)

	for _, e := range entities {
		key := strings.ToLower(e.Name)
		if _, ok := clusters[key]; !ok {
			order = append(order, key)
		}
		clusters[key] = append(clusters[key], e)
	}

	result := make([]*domain.GeoEntity, 0, len(entities))
	merges := 0

	for _, key := range order {
		cluster := clusters[key]
		for len(cluster) > 0 {
			acc := cluster[0]
			cluster = cluster[1:]

			for {
				found := false
				for i, other := range cluster {
					merged, ok := m.TryMerge(acc, other)
					if !ok {
						continue
					}
					acc = merged
					cluster = append(cluster[:i:i], cluster[i+1:]...)
					merges++
					found = true
					break
				}
				if !found {
					break
				}
			}

			result = append(result, acc)
		}
	}

	return result, merges
}

// BoostRanksByLength увеличивает ранг протяженных объектов:
// rank *= 1 + (length / meanLength) * 0.1. Средняя длина считается по всем
// объектам, точки входят в нее с длиной 0 и сами не меняются.
func BoostRanksByLength(entities []*domain.GeoEntity) {
	if len(entities) == 0 {
		return
	}

	total := 0.0
	for _, e := range entities {
		if !e.IsNode() {
			total += e.Length()
		}
	}
	if total == 0 {
		return
	}
	mean := total / float64(len(entities))

	for _, e := range entities {
		if e.IsNode() {
			continue
		}
		e.Rank *= 1 + (e.Length()/mean)*lengthBoostFactor
	}
}
