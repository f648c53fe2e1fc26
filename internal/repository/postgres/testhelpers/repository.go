package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/geoquiz-service/internal/domain/repository"
	"github.com/geoquiz-service/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

func NewExerciseRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.ExerciseRepository {
	return postgres.NewExerciseRepository(NewDBForTest(db, logger))
}

func NewGeoEntityRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.GeoEntityRepository {
	return postgres.NewGeoEntityRepository(NewDBForTest(db, logger))
}

func NewQuizRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.QuizRepository {
	return postgres.NewQuizRepository(NewDBForTest(db, logger))
}
