package usecase

import (
	"strconv"
	"strings"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/pkg/errors"
	"github.com/geoquiz-service/internal/pkg/geo"
)

// Виды инструкций в сырой записи
const (
	tokenID      = "id"
	tokenName    = "name"
	tokenVersion = "version"
	tokenLatLon  = "lat_lon"
	tokenTag     = "tag"
)

// TagRankWeight - прибавка к рангу за каждый тег
const TagRankWeight = 0.25

// GeoEntityBuilder собирает объект из инструкций сырой записи
type GeoEntityBuilder struct {
	table *domain.CategoryTable
}

func NewGeoEntityBuilder(table *domain.CategoryTable) *GeoEntityBuilder {
	return &GeoEntityBuilder{table: table}
}

// Build разбирает инструкции и возвращает проверенный черновик объекта.
// Ошибки: ErrParse для неизвестной или испорченной инструкции,
// ErrBuildValidation если не хватает обязательных полей.
func (b *GeoEntityBuilder) Build(tokens []string) (*domain.GeoEntity, error) {
	entity := domain.NewDraftGeoEntity()

	var (
		points     []geo.Point
		tags       []domain.Tag
		version    int
		hasVersion bool
	)

	for _, token := range tokens {
		kind, rest, _ := strings.Cut(strings.TrimSpace(token), " ")
		rest = strings.TrimSpace(rest)

		switch kind {
		case tokenID:
			if rest == "" {
				return nil, errors.ErrParse.WithMessage("empty id")
			}
			entity.SourceID = rest

		case tokenName:
			entity.Name = rest

		case tokenVersion:
			v, err := strconv.Atoi(rest)
			if err != nil {
				return nil, errors.ErrParse.WithMessage("bad version %q", rest).WithCause(err)
			}
			version = v
			hasVersion = true

		case tokenLatLon:
			p, err := parseLatLon(rest)
			if err != nil {
				return nil, err
			}
			points = append(points, p)

		case tokenTag:
			tag, ok := domain.ParseTag(rest)
			if !ok {
				return nil, errors.ErrParse.WithMessage("bad tag %q", rest)
			}
			tags = append(tags, tag)

		default:
			return nil, errors.ErrParse.WithMessage("unknown instruction %q", kind)
		}
	}

	if len(points) > 0 {
		entity.Shapes = []domain.NodeShape{domain.NewNodeShape(points)}
	}

	if hasVersion {
		entity.Rank = float64(version) + TagRankWeight*float64(len(tags))
	}

	if supercat, subcat, ok := b.table.Classify(tags); ok {
		entity.Supercat = supercat
		entity.Subcat = subcat
	}

	if err := validateDraft(entity); err != nil {
		return nil, err
	}

	return entity, nil
}

func parseLatLon(s string) (geo.Point, error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return geo.Point{}, errors.ErrParse.WithMessage("bad lat_lon %q", s)
	}

	lat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return geo.Point{}, errors.ErrParse.WithMessage("bad latitude %q", fields[0]).WithCause(err)
	}
	lon, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return geo.Point{}, errors.ErrParse.WithMessage("bad longitude %q", fields[1]).WithCause(err)
	}

	if !geo.ValidateCoordinates(lat, lon) {
		return geo.Point{}, errors.ErrParse.WithMessage("coordinates out of range: %v %v", lat, lon)
	}

	return geo.Point{Lon: lon, Lat: lat}, nil
}

func validateDraft(e *domain.GeoEntity) error {
	if e.IsComplete() {
		return nil
	}

	missing := make([]string, 0, 6)
	if e.SourceID == "" {
		missing = append(missing, "id")
	}
	if len([]rune(e.Name)) < domain.MinNameLength {
		missing = append(missing, "name")
	}
	if len(e.Shapes) == 0 {
		missing = append(missing, "shape")
	}
	if e.Rank == domain.NoRank {
		missing = append(missing, "rank")
	}
	if e.Supercat == "" || e.Subcat == "" {
		missing = append(missing, "category")
	}

	return errors.ErrBuildValidation.WithDetails(map[string]interface{}{
		"source_id": e.SourceID,
		"missing":   missing,
	})
}
