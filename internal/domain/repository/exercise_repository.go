package repository

import (
	"context"

	"github.com/geoquiz-service/internal/domain"
)

// ExerciseRepository определяет методы для упражнений, категорий и уровней
type ExerciseRepository interface {
	// Create сохраняет упражнение целиком в одной транзакции
	Create(ctx context.Context, construction *domain.ExerciseConstruction) (*domain.Exercise, error)

	GetByID(ctx context.Context, id int64) (*domain.Exercise, error)

	List(ctx context.Context) ([]*domain.Exercise, error)

	// Delete удаляет упражнение со всеми категориями, уровнями, объектами и викториной
	Delete(ctx context.Context, id int64) error

	// GetCategories возвращает категории с уровнями в порядке отображения
	GetCategories(ctx context.Context, exerciseID int64) ([]*domain.CategoryGroup, error)

	// GetCategory возвращает категорию надкатегории с уровнями
	GetCategory(ctx context.Context, exerciseID int64, supercat string) (*domain.CategoryGroup, error)

	GetCategoryByID(ctx context.Context, id int64) (*domain.CategoryGroup, error)

	GetLevel(ctx context.Context, levelID int64) (*domain.Level, error)

	// CountLevels возвращает общее число уровней и число пройденных
	CountLevels(ctx context.Context, exerciseID int64) (total int, passed int, err error)

	// ApplyQuizOutcome сохраняет итог викторины в одной транзакции
	ApplyQuizOutcome(ctx context.Context, outcome *domain.QuizOutcome) error
}
