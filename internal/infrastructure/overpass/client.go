package overpass

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/geoquiz-service/internal/config"
	"github.com/geoquiz-service/internal/domain/repository"
	"github.com/geoquiz-service/internal/pkg/errors"
	"github.com/geoquiz-service/internal/pkg/geo"
)

const (
	// DefaultMaxRecords - лимит элементов в ответе, если в конфиге 0
	DefaultMaxRecords = 50000

	defaultVersion = 1
)

type client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	maxRecords int
	logger     *zap.Logger
}

// NewOverpassClient создает поставщика сырых записей через Overpass API
func NewOverpassClient(cfg *config.SourceConfig, logger *zap.Logger) repository.RawRecordSource {
	maxRecords := cfg.MaxRecords
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.OverpassTimeout,
		},
		baseURL:    cfg.OverpassURL,
		timeout:    cfg.OverpassTimeout,
		maxRecords: maxRecords,
		logger:     logger,
	}
}

type response struct {
	Elements []element `json:"elements"`
	Remark   string    `json:"remark,omitempty"`
}

type element struct {
	Type     string            `json:"type"`
	ID       int64             `json:"id"`
	Lat      float64           `json:"lat"`
	Lon      float64           `json:"lon"`
	Version  int               `json:"version"`
	Tags     map[string]string `json:"tags"`
	Geometry []latLon          `json:"geometry"`
	Members  []member          `json:"members"`
}

type member struct {
	Type     string   `json:"type"`
	Role     string   `json:"role"`
	Geometry []latLon `json:"geometry"`
}

type latLon struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Open выполняет запрос по области и отдает элементы ответа по одному
func (c *client) Open(ctx context.Context, area []geo.Point) (repository.RawRecordIterator, error) {
	if len(area) < 3 {
		return nil, errors.ErrGeometryInvalid.WithMessage("working area needs at least 3 points")
	}

	query := buildQuery(area, c.timeout, c.maxRecords)

	c.logger.Debug("Calling Overpass API",
		zap.String("url", c.baseURL),
		zap.Int("area_points", len(area)))

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, errors.ErrSupplier.WithCause(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, errors.ErrSupplier.WithCause(fmt.Errorf("failed to execute request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("Overpass API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, errors.ErrSupplier.WithMessage("overpass API error: status %d", resp.StatusCode)
	}

	var overpassResp response
	if err := json.NewDecoder(resp.Body).Decode(&overpassResp); err != nil {
		c.logger.Error("Failed to decode response", zap.Error(err))
		return nil, errors.ErrSupplier.WithCause(fmt.Errorf("failed to decode response: %w", err))
	}

	// remark приходит при таймауте или нехватке памяти на сервере, ответ тогда неполный
	if overpassResp.Remark != "" {
		c.logger.Error("Overpass API returned partial result",
			zap.String("remark", overpassResp.Remark),
			zap.Int("elements", len(overpassResp.Elements)))
		return nil, errors.ErrSupplier.WithMessage("overpass API partial result: %s", overpassResp.Remark)
	}

	c.logger.Debug("Overpass API call successful", zap.Int("elements", len(overpassResp.Elements)))

	return &iterator{elements: overpassResp.Elements}, nil
}

// buildQuery строит Overpass QL запрос именованных объектов внутри полигона
func buildQuery(area []geo.Point, timeout time.Duration, limit int) string {
	coords := make([]string, 0, len(area))
	for _, p := range area {
		coords = append(coords, formatCoord(p.Lat)+" "+formatCoord(p.Lon))
	}
	poly := fmt.Sprintf(`(poly:"%s")`, strings.Join(coords, " "))

	seconds := int(timeout.Seconds())
	if seconds <= 0 {
		seconds = 60
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "[out:json][timeout:%d];\n(\n", seconds)
	for _, kind := range []string{"node", "way", "relation"} {
		fmt.Fprintf(&sb, "  %s[\"name\"]%s;\n", kind, poly)
	}
	fmt.Fprintf(&sb, ");\nout meta geom %d;", limit)
	return sb.String()
}

type iterator struct {
	elements []element
	pos      int
}

func (it *iterator) Next(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if it.pos >= len(it.elements) {
		return nil, nil
	}
	e := it.elements[it.pos]
	it.pos++
	return buildRecord(&e), nil
}

func (it *iterator) Close() error {
	it.elements = nil
	return nil
}

// buildRecord переводит элемент ответа в инструкции сборщика объектов.
// Тег name уходит в инструкцию name, остальные теги идут в порядке ключей.
func buildRecord(e *element) []string {
	version := e.Version
	if version <= 0 {
		version = defaultVersion
	}

	points := elementPoints(e)
	tokens := make([]string, 0, 3+len(points)+len(e.Tags))
	tokens = append(tokens,
		"id "+e.Type+"/"+strconv.FormatInt(e.ID, 10),
		"name "+strings.TrimSpace(e.Tags["name"]),
		"version "+strconv.Itoa(version),
	)

	for _, p := range points {
		tokens = append(tokens, "lat_lon "+formatCoord(p.Lat)+" "+formatCoord(p.Lon))
	}

	keys := make([]string, 0, len(e.Tags))
	for k, v := range e.Tags {
		if k == "name" || strings.TrimSpace(v) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tokens = append(tokens, "tag "+k+"="+e.Tags[k])
	}

	return tokens
}

// elementPoints - точки узла, линии или первого внешнего контура отношения.
// Сборщик строит из записи одну фигуру, остальные контуры отбрасываются.
func elementPoints(e *element) []latLon {
	switch e.Type {
	case "node":
		return []latLon{{Lat: e.Lat, Lon: e.Lon}}
	case "way":
		return e.Geometry
	default:
		for _, m := range e.Members {
			if m.Type == "way" && (m.Role == "outer" || m.Role == "") && len(m.Geometry) > 0 {
				return m.Geometry
			}
		}
		return nil
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
