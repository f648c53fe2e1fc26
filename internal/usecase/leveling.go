package usecase

import (
	"math/rand/v2"
	"sort"

	"github.com/geoquiz-service/internal/domain"
)

// MaxLevelSize - максимальное число объектов в уровне
const MaxLevelSize = 5

// GroupLevels делит отсортированные по рангу элементы на уровни размером
// не больше MaxLevelSize. Размеры отличаются не больше чем на 1, лишние
// элементы достаются случайным уровням. Уровни заполняются подряд, поэтому
// уровень 0 получает элементы с наименьшим рангом.
func GroupLevels[T any](rng *rand.Rand, items []T) [][]T {
	n := len(items)
	if n == 0 {
		return nil
	}

	levelCount := (n + MaxLevelSize - 1) / MaxLevelSize
	base := n / levelCount
	remainder := n % levelCount

	sizes := make([]int, levelCount)
	for i := range sizes {
		sizes[i] = base
	}
	for _, i := range rng.Perm(levelCount)[:remainder] {
		sizes[i]++
	}

	levels := make([][]T, 0, levelCount)
	start := 0
	for _, size := range sizes {
		levels = append(levels, items[start:start+size:start+size])
		start += size
	}
	return levels
}

// SortByRank сортирует объекты по возрастанию ранга, при равенстве по SourceID
func SortByRank(entities []*domain.GeoEntity) {
	sort.SliceStable(entities, func(i, j int) bool {
		if entities[i].Rank != entities[j].Rank {
			return entities[i].Rank < entities[j].Rank
		}
		return entities[i].SourceID < entities[j].SourceID
	})
}

// BuildCategoryDrafts раскладывает объекты по надкатегориям в порядке отображения
// и делит каждую на уровни. Пустые надкатегории пропускаются.
func BuildCategoryDrafts(rng *rand.Rand, entities []*domain.GeoEntity) []*domain.CategoryDraft {
	bySupercat := make(map[string][]*domain.GeoEntity)
	for _, e := range entities {
		bySupercat[e.Supercat] = append(bySupercat[e.Supercat], e)
	}

	drafts := make([]*domain.CategoryDraft, 0, len(domain.DisplayOrder))
	for _, supercat := range domain.DisplayOrder {
		group := bySupercat[supercat]
		if len(group) == 0 {
			continue
		}
		SortByRank(group)
		drafts = append(drafts, &domain.CategoryDraft{
			Supercat:     supercat,
			DisplayIndex: len(drafts),
			Levels:       GroupLevels(rng, group),
		})
	}
	return drafts
}
