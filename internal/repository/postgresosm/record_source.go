package postgresosm

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/geoquiz-service/internal/domain/repository"
	pkgerrors "github.com/geoquiz-service/internal/pkg/errors"
	"github.com/geoquiz-service/internal/pkg/geo"
)

var recordQuery = fmt.Sprintf(`
	WITH area AS (
		SELECT ST_Transform(ST_GeomFromText($1, %[1]d), %[2]d) AS geom
	), src AS (
		SELECT '%[3]s' AS kind, osm_id, name, %[4]s AS tags_json, way FROM %[5]s
		UNION ALL
		SELECT '%[6]s', osm_id, name, %[4]s, way FROM %[7]s
		UNION ALL
		SELECT '%[6]s', osm_id, name, %[4]s, way FROM %[8]s
	)
	SELECT
		src.kind,
		src.osm_id,
		src.name,
		src.tags_json,
		ARRAY(SELECT ST_Y(dp.geom) FROM ST_DumpPoints(g.geom) AS dp ORDER BY dp.path) AS lats,
		ARRAY(SELECT ST_X(dp.geom) FROM ST_DumpPoints(g.geom) AS dp ORDER BY dp.path) AS lons
	FROM src
	CROSS JOIN area
	CROSS JOIN LATERAL (
		SELECT ST_Transform(
			CASE WHEN GeometryType(src.way) = 'POLYGON' THEN ST_ExteriorRing(src.way) ELSE src.way END,
			%[1]d
		) AS geom
	) AS g
	WHERE src.name IS NOT NULL AND src.name <> ''
	  AND src.way && area.geom
	  AND ST_Intersects(src.way, area.geom)
	ORDER BY src.kind, src.osm_id
	LIMIT $2
`, SRID4326, SRID3857, kindNode, tagsExpr(), planetPointTable, kindWay, planetLineTable, planetPolygonTable)

type recordRow struct {
	Kind     string          `db:"kind"`
	OSMID    int64           `db:"osm_id"`
	Name     string          `db:"name"`
	TagsJSON []byte          `db:"tags_json"`
	Lats     pq.Float64Array `db:"lats"`
	Lons     pq.Float64Array `db:"lons"`
}

type recordSource struct {
	db         *sqlx.DB
	logger     *zap.Logger
	maxRecords int
}

// NewRecordSource создает поставщика сырых записей из таблиц osm2pgsql
func NewRecordSource(db *DB, maxRecords int) repository.RawRecordSource {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &recordSource{
		db:         db.DB,
		logger:     db.logger,
		maxRecords: maxRecords,
	}
}

func (s *recordSource) Open(ctx context.Context, area []geo.Point) (repository.RawRecordIterator, error) {
	if len(area) < 3 {
		return nil, pkgerrors.ErrGeometryInvalid.WithMessage("working area needs at least 3 points")
	}

	rows, err := s.db.QueryxContext(ctx, recordQuery, polygonWKT(area), s.maxRecords)
	if err != nil {
		s.logger.Error("failed to query osm records", zap.Error(err))
		return nil, pkgerrors.ErrSupplier.WithCause(err)
	}

	return &recordIterator{rows: rows, logger: s.logger}, nil
}

type recordIterator struct {
	rows   *sqlx.Rows
	logger *zap.Logger
	read   int
}

func (it *recordIterator) Next(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !it.rows.Next() {
		if err := it.rows.Err(); err != nil {
			it.logger.Error("failed to read osm records", zap.Int("read", it.read), zap.Error(err))
			return nil, pkgerrors.ErrSupplier.WithCause(err)
		}
		return nil, nil
	}

	var row recordRow
	if err := it.rows.StructScan(&row); err != nil {
		it.logger.Error("failed to scan osm record", zap.Error(err))
		return nil, pkgerrors.ErrSupplier.WithCause(err)
	}
	it.read++

	return buildRecord(&row), nil
}

func (it *recordIterator) Close() error {
	return it.rows.Close()
}
