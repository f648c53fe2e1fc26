package repository

import (
	"context"

	"github.com/geoquiz-service/internal/domain"
)

// GeoEntityRepository определяет методы чтения объектов упражнения
type GeoEntityRepository interface {
	// GetByID возвращает объект вместе с фигурами
	GetByID(ctx context.Context, id int64) (*domain.GeoEntity, error)

	// GetByIDs возвращает объекты в порядке переданных идентификаторов
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.GeoEntity, error)

	// FindBySimilarName ищет объекты с тем же названием без учета регистра
	FindBySimilarName(ctx context.Context, exerciseID int64, name string) ([]*domain.GeoEntity, error)

	// GetByLevel возвращает объекты уровня, упорядоченные по рангу
	GetByLevel(ctx context.Context, levelID int64) ([]*domain.GeoEntity, error)

	// GetIDsByLevels возвращает идентификаторы объектов уровней в порядке хранения
	GetIDsByLevels(ctx context.Context, levelIDs []int64) ([]int64, error)

	// GetRandom возвращает до n случайных объектов упражнения
	GetRandom(ctx context.Context, exerciseID int64, n int) ([]*domain.GeoEntity, error)

	// CountByExercise - число объектов упражнения
	CountByExercise(ctx context.Context, exerciseID int64) (int, error)
}
