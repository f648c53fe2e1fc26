package postgresosm

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/geoquiz-service/internal/pkg/geo"
)

func parseTags(raw []byte) map[string]string {
	if len(raw) == 0 {
		return map[string]string{}
	}

	var tmp map[string]string
	if err := json.Unmarshal(raw, &tmp); err != nil {
		return map[string]string{}
	}

	return tmp
}

// sourceID строит идентификатор записи. osm2pgsql хранит отношения
// с отрицательным osm_id.
func sourceID(kind string, osmID int64) string {
	if kind != kindNode && osmID < 0 {
		return kindRelation + "/" + strconv.FormatInt(-osmID, 10)
	}
	return kind + "/" + strconv.FormatInt(osmID, 10)
}

// versionOf берет версию из тега osm_version
func versionOf(tags map[string]string) int {
	if val, ok := tags["osm_version"]; ok {
		if v, err := strconv.Atoi(strings.TrimSpace(val)); err == nil && v > 0 {
			return v
		}
	}
	return DefaultVersion
}

// buildRecord переводит строку planet_osm_* в инструкции для сборщика объектов.
// Теги идут в порядке ключей.
func buildRecord(row *recordRow) []string {
	tags := parseTags(row.TagsJSON)

	tokens := make([]string, 0, 3+len(row.Lats)+len(tags))
	tokens = append(tokens,
		"id "+sourceID(row.Kind, row.OSMID),
		"name "+strings.TrimSpace(row.Name),
		"version "+strconv.Itoa(versionOf(tags)),
	)

	n := len(row.Lats)
	if len(row.Lons) < n {
		n = len(row.Lons)
	}
	for i := 0; i < n; i++ {
		tokens = append(tokens, "lat_lon "+formatCoord(row.Lats[i])+" "+formatCoord(row.Lons[i]))
	}

	keys := make([]string, 0, len(tags))
	for k := range tags {
		if _, skip := metaTags[k]; skip {
			continue
		}
		if strings.TrimSpace(tags[k]) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tokens = append(tokens, "tag "+k+"="+tags[k])
	}

	return tokens
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// polygonWKT строит WKT замкнутого контура рабочей области
func polygonWKT(area []geo.Point) string {
	ring := geo.AsClosed(area)
	parts := make([]string, len(ring))
	for i, p := range ring {
		parts[i] = fmt.Sprintf("%s %s", formatCoord(p.Lon), formatCoord(p.Lat))
	}
	return "POLYGON((" + strings.Join(parts, ", ") + "))"
}

// tagsExpr собирает json тегов: hstore плюс непустые колонки категорий
func tagsExpr() string {
	pairs := make([]string, len(categoryColumns))
	for i, col := range categoryColumns {
		pairs[i] = fmt.Sprintf(`'%s', "%s"`, col, col)
	}
	return fmt.Sprintf(
		"(COALESCE(hstore_to_jsonb(tags), '{}'::jsonb) || jsonb_strip_nulls(jsonb_build_object(%s)))::text",
		strings.Join(pairs, ", "),
	)
}
