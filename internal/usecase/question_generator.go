package usecase

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/domain/repository"
	"github.com/geoquiz-service/internal/pkg/errors"
	"go.uber.org/zap"
)

const (
	MinDifficulty = 0
	MaxDifficulty = 4

	// MinAlternatives - минимальное число вариантов ответа для любого типа вопроса
	MinAlternatives = 2

	maxContentRedraws = 5
	maxTypeRedraws    = 10
)

// ClampDifficulty приводит сложность к диапазону [0, 4]
func ClampDifficulty(d int) int {
	return max(MinDifficulty, min(MaxDifficulty, d))
}

// AlternativeCount - число вариантов ответа для типа и сложности
func AlternativeCount(t domain.QuestionType, difficulty int) int {
	d := float64(ClampDifficulty(difficulty)) / MaxDifficulty

	switch t {
	case domain.PlaceIt:
		return 2 + int(math.Round(d*4))
	default:
		pairs := 1 + int(math.Round(d*2))
		return 2 * pairs
	}
}

// QuestionGenerator строит вопросы с вариантами ответа из объектов упражнения
type QuestionGenerator struct {
	entityRepo repository.GeoEntityRepository
	rng        *rand.Rand
	logger     *zap.Logger
}

func NewQuestionGenerator(
	entityRepo repository.GeoEntityRepository,
	rng *rand.Rand,
	logger *zap.Logger,
) *QuestionGenerator {
	return &QuestionGenerator{
		entityRepo: entityRepo,
		rng:        rng,
		logger:     logger,
	}
}

// Generate создает вопрос о target со случайным типом. Если предыдущий вопрос
// был о том же объекте и того же типа, тип выбирается заново.
func (g *QuestionGenerator) Generate(
	ctx context.Context,
	target *domain.GeoEntity,
	difficulty int,
	previous *domain.Question,
) (*domain.Question, error) {
	qType := g.drawType()
	if previous != nil && previous.GeoEntityID == target.ID {
		for i := 0; i < maxTypeRedraws && qType == previous.Type; i++ {
			qType = g.drawType()
		}
	}

	difficulty = ClampDifficulty(difficulty)

	content, err := g.GenerateContent(ctx, target, qType, difficulty)
	if err != nil {
		return nil, err
	}

	return &domain.Question{
		GeoEntityID: target.ID,
		Type:        qType,
		Difficulty:  difficulty,
		ContentIDs:  content,
	}, nil
}

func (g *QuestionGenerator) drawType() domain.QuestionType {
	return domain.QuestionTypes[g.rng.IntN(len(domain.QuestionTypes))]
}

// GenerateContent выбирает варианты ответа. Target всегда среди вариантов.
// Для name-it и pair-it набор с повторяющимися названиями перевыбирается.
func (g *QuestionGenerator) GenerateContent(
	ctx context.Context,
	target *domain.GeoEntity,
	qType domain.QuestionType,
	difficulty int,
) ([]int64, error) {
	want := AlternativeCount(qType, difficulty)

	var (
		sample []*domain.GeoEntity
		err    error
	)
	for attempt := 0; ; attempt++ {
		sample, err = g.entityRepo.GetRandom(ctx, target.ExerciseID, want)
		if err != nil {
			return nil, fmt.Errorf("load content pool: %w", err)
		}
		if len(sample) < MinAlternatives {
			return nil, errors.ErrContentGeneration.WithMessage(
				"exercise %d has %d entities, need at least %d", target.ExerciseID, len(sample), MinAlternatives)
		}

		sample = g.withTarget(sample, target)

		if qType == domain.PlaceIt || !hasDuplicateNames(sample) {
			break
		}
		if attempt >= maxContentRedraws {
			g.logger.Debug("Accepting content with duplicate names",
				zap.Int64("entity_id", target.ID),
				zap.String("type", qType.String()))
			break
		}
	}

	if qType == domain.PairIt && len(sample)%2 != 0 {
		sample = dropOneNonTarget(sample, target.ID)
	}
	if len(sample) < MinAlternatives {
		return nil, errors.ErrContentGeneration.WithMessage("not enough alternatives for %s", qType)
	}

	ids := make([]int64, len(sample))
	for i, e := range sample {
		ids[i] = e.ID
	}
	return ids, nil
}

// withTarget подставляет target в случайную позицию, если его нет в выборке
func (g *QuestionGenerator) withTarget(sample []*domain.GeoEntity, target *domain.GeoEntity) []*domain.GeoEntity {
	for _, e := range sample {
		if e.ID == target.ID {
			return sample
		}
	}
	out := make([]*domain.GeoEntity, len(sample))
	copy(out, sample)
	out[g.rng.IntN(len(out))] = target
	return out
}

func dropOneNonTarget(sample []*domain.GeoEntity, targetID int64) []*domain.GeoEntity {
	for i := len(sample) - 1; i >= 0; i-- {
		if sample[i].ID != targetID {
			return append(sample[:i:i], sample[i+1:]...)
		}
	}
	return sample
}

func hasDuplicateNames(entities []*domain.GeoEntity) bool {
	seen := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		key := strings.ToLower(e.Name)
		if _, ok := seen[key]; ok {
			return true
		}
		seen[key] = struct{}{}
	}
	return false
}
