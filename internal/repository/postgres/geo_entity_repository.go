package postgres

import (
	"context"
	"database/sql"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/domain/repository"
	"github.com/geoquiz-service/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type geoEntityRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewGeoEntityRepository(db *DB) repository.GeoEntityRepository {
	return &geoEntityRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *geoEntityRepository) GetByID(ctx context.Context, id int64) (*domain.GeoEntity, error) {
	query := `SELECT` + entityColumns + ` FROM geo_entities WHERE id = $1`

	e, err := scanEntity(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrGeoEntityNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get geo entity by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}
	return e, nil
}

func (r *geoEntityRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.GeoEntity, error) {
	if len(ids) == 0 {
		return []*domain.GeoEntity{}, nil
	}

	query := `SELECT` + entityColumns + ` FROM geo_entities WHERE id = ANY($1)`

	found, err := r.query(ctx, "get geo entities by IDs", query, pq.Array(ids))
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.GeoEntity, len(found))
	for _, e := range found {
		byID[e.ID] = e
	}

	result := make([]*domain.GeoEntity, 0, len(ids))
	for _, id := range ids {
		if e, ok := byID[id]; ok {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *geoEntityRepository) FindBySimilarName(
	ctx context.Context,
	exerciseID int64,
	name string,
) ([]*domain.GeoEntity, error) {
	query := `SELECT` + entityColumns + `
		FROM geo_entities
		WHERE exercise_id = $1 AND LOWER(name) = LOWER($2)
		ORDER BY rank DESC, id
		LIMIT $3`

	return r.query(ctx, "find geo entities by name", query, exerciseID, name, MaxSearchResults)
}

func (r *geoEntityRepository) GetByLevel(ctx context.Context, levelID int64) ([]*domain.GeoEntity, error) {
	query := `SELECT` + entityColumns + `
		FROM geo_entities
		WHERE level_id = $1
		ORDER BY rank, source_id`

	return r.query(ctx, "get geo entities by level", query, levelID)
}

func (r *geoEntityRepository) GetIDsByLevels(ctx context.Context, levelIDs []int64) ([]int64, error) {
	ids := []int64{}
	if len(levelIDs) == 0 {
		return ids, nil
	}

	query := `SELECT id FROM geo_entities WHERE level_id = ANY($1) ORDER BY id`
	if err := r.db.SelectContext(ctx, &ids, query, pq.Array(levelIDs)); err != nil {
		r.logger.Error("Failed to get geo entity IDs by levels", zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}
	return ids, nil
}

func (r *geoEntityRepository) GetRandom(ctx context.Context, exerciseID int64, n int) ([]*domain.GeoEntity, error) {
	if n <= 0 {
		return []*domain.GeoEntity{}, nil
	}
	if n > MaxRandomSample {
		n = MaxRandomSample
	}

	query := `SELECT` + entityColumns + `
		FROM geo_entities
		WHERE exercise_id = $1
		ORDER BY random()
		LIMIT $2`

	return r.query(ctx, "get random geo entities", query, exerciseID, n)
}

func (r *geoEntityRepository) CountByExercise(ctx context.Context, exerciseID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM geo_entities WHERE exercise_id = $1`, exerciseID)
	if err != nil {
		r.logger.Error("Failed to count geo entities", zap.Int64("exercise_id", exerciseID), zap.Error(err))
		return 0, errors.ErrDatabaseError.WithCause(err)
	}
	return count, nil
}

func (r *geoEntityRepository) query(
	ctx context.Context,
	op string,
	query string,
	args ...interface{},
) ([]*domain.GeoEntity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to "+op, zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}
	defer rows.Close()

	entities := make([]*domain.GeoEntity, 0)
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			r.logger.Error("Failed to scan geo entity", zap.String("op", op), zap.Error(err))
			return nil, errors.ErrDatabaseError.WithCause(err)
		}
		entities = append(entities, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError.WithCause(err)
	}
	return entities, nil
}
