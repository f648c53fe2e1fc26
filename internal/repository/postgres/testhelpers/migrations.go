package testhelpers

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/geoquiz-service/internal/repository/postgres"
)

// ApplyMigrations применяет встроенные миграции к тестовой базе
func ApplyMigrations(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	return postgres.NewDBForTest(db, logger).Migrate(ctx)
}
