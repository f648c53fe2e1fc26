package postgresosm

const (
	SRID4326 = 4326
	SRID3857 = 3857

	// DefaultMaxRecords - ограничение выборки, если в конфиге 0
	DefaultMaxRecords = 50000

	// DefaultVersion - версия записи без тега osm_version
	DefaultVersion = 1
)

const (
	planetPointTable   = "planet_osm_point"
	planetLineTable    = "planet_osm_line"
	planetPolygonTable = "planet_osm_polygon"
)

// Идентификаторы источника: node/123, way/123, relation/123
const (
	kindNode     = "node"
	kindWay      = "way"
	kindRelation = "relation"
)

// categoryColumns - колонки osm2pgsql, по которым классифицируются объекты.
// Остальные теги лежат в hstore tags.
var categoryColumns = []string{
	"aeroway", "amenity", "boundary", "building", "highway", "historic", "landuse",
	"leisure", "man_made", "natural", "place", "public_transport", "railway",
	"tourism", "waterway",
}

// metaTags - служебные теги osm2pgsql --extra-attributes, в запись не попадают
var metaTags = map[string]struct{}{
	"osm_version":   {},
	"osm_user":      {},
	"osm_uid":       {},
	"osm_changeset": {},
	"osm_timestamp": {},
}
