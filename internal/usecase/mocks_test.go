package usecase_test

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/domain/repository"
	"github.com/geoquiz-service/internal/pkg/geo"
)

// MockGeoEntityRepository - мок для GeoEntityRepository
type MockGeoEntityRepository struct {
	mock.Mock
}

func (m *MockGeoEntityRepository) GetByID(ctx context.Context, id int64) (*domain.GeoEntity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeoEntity), args.Error(1)
}

func (m *MockGeoEntityRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.GeoEntity, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GeoEntity), args.Error(1)
}

func (m *MockGeoEntityRepository) FindBySimilarName(ctx context.Context, exerciseID int64, name string) ([]*domain.GeoEntity, error) {
	args := m.Called(ctx, exerciseID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GeoEntity), args.Error(1)
}

func (m *MockGeoEntityRepository) GetByLevel(ctx context.Context, levelID int64) ([]*domain.GeoEntity, error) {
	args := m.Called(ctx, levelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GeoEntity), args.Error(1)
}

func (m *MockGeoEntityRepository) GetIDsByLevels(ctx context.Context, levelIDs []int64) ([]int64, error) {
	args := m.Called(ctx, levelIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockGeoEntityRepository) GetRandom(ctx context.Context, exerciseID int64, n int) ([]*domain.GeoEntity, error) {
	args := m.Called(ctx, exerciseID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.GeoEntity), args.Error(1)
}

func (m *MockGeoEntityRepository) CountByExercise(ctx context.Context, exerciseID int64) (int, error) {
	args := m.Called(ctx, exerciseID)
	return args.Int(0), args.Error(1)
}

// MockExerciseRepository - мок для ExerciseRepository
type MockExerciseRepository struct {
	mock.Mock
}

func (m *MockExerciseRepository) Create(ctx context.Context, construction *domain.ExerciseConstruction) (*domain.Exercise, error) {
	args := m.Called(ctx, construction)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) List(ctx context.Context) ([]*domain.Exercise, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExerciseRepository) GetCategories(ctx context.Context, exerciseID int64) ([]*domain.CategoryGroup, error) {
	args := m.Called(ctx, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.CategoryGroup), args.Error(1)
}

func (m *MockExerciseRepository) GetCategory(ctx context.Context, exerciseID int64, supercat string) (*domain.CategoryGroup, error) {
	args := m.Called(ctx, exerciseID, supercat)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryGroup), args.Error(1)
}

func (m *MockExerciseRepository) GetCategoryByID(ctx context.Context, id int64) (*domain.CategoryGroup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryGroup), args.Error(1)
}

func (m *MockExerciseRepository) GetLevel(ctx context.Context, levelID int64) (*domain.Level, error) {
	args := m.Called(ctx, levelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Level), args.Error(1)
}

func (m *MockExerciseRepository) CountLevels(ctx context.Context, exerciseID int64) (int, int, error) {
	args := m.Called(ctx, exerciseID)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockExerciseRepository) ApplyQuizOutcome(ctx context.Context, outcome *domain.QuizOutcome) error {
	args := m.Called(ctx, outcome)
	return args.Error(0)
}

// MockQuizRepository - мок для QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) GetRunning(ctx context.Context, exerciseID int64) (*domain.RunningQuiz, error) {
	args := m.Called(ctx, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RunningQuiz), args.Error(1)
}

func (m *MockQuizRepository) Replace(ctx context.Context, quiz *domain.RunningQuiz, questions []*domain.Question) (*domain.RunningQuiz, error) {
	args := m.Called(ctx, quiz, questions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RunningQuiz), args.Error(1)
}

func (m *MockQuizRepository) Delete(ctx context.Context, exerciseID int64) error {
	args := m.Called(ctx, exerciseID)
	return args.Error(0)
}

func (m *MockQuizRepository) GetQuestions(ctx context.Context, runningQuizID int64) ([]*domain.Question, error) {
	args := m.Called(ctx, runningQuizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Question), args.Error(1)
}

func (m *MockQuizRepository) GetQuestion(ctx context.Context, runningQuizID, questionID int64) (*domain.Question, error) {
	args := m.Called(ctx, runningQuizID, questionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuizRepository) SetCurrentIndex(ctx context.Context, runningQuizID int64, index int) error {
	args := m.Called(ctx, runningQuizID, index)
	return args.Error(0)
}

func (m *MockQuizRepository) RecordAnswer(ctx context.Context, answer *domain.AnswerRecord) error {
	args := m.Called(ctx, answer)
	return args.Error(0)
}

// MockCacheRepository - мок для CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheRepository) GetProgress(ctx context.Context, exerciseID int64) (*domain.Progress, error) {
	args := m.Called(ctx, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Progress), args.Error(1)
}

func (m *MockCacheRepository) SetProgress(ctx context.Context, progress *domain.Progress, ttl time.Duration) error {
	args := m.Called(ctx, progress, ttl)
	return args.Error(0)
}

func (m *MockCacheRepository) DeleteProgress(ctx context.Context, exerciseID int64) error {
	args := m.Called(ctx, exerciseID)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJobStatus(ctx context.Context, jobID uuid.UUID) (*domain.BuildJobStatus, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BuildJobStatus), args.Error(1)
}

func (m *MockCacheRepository) SetJobStatus(ctx context.Context, status *domain.BuildJobStatus, ttl time.Duration) error {
	args := m.Called(ctx, status, ttl)
	return args.Error(0)
}

// MockStreamRepository - мок для StreamRepository
type MockStreamRepository struct {
	mock.Mock
}

func (m *MockStreamRepository) CreateConsumerGroup(ctx context.Context, stream, group string) error {
	args := m.Called(ctx, stream, group)
	return args.Error(0)
}

func (m *MockStreamRepository) ConsumeBatch(ctx context.Context, stream, group, consumer string, maxCount int) ([]domain.StreamMessage, error) {
	args := m.Called(ctx, stream, group, consumer, maxCount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StreamMessage), args.Error(1)
}

func (m *MockStreamRepository) AckMessage(ctx context.Context, stream, group, messageID string) error {
	args := m.Called(ctx, stream, group, messageID)
	return args.Error(0)
}

func (m *MockStreamRepository) AckMessages(ctx context.Context, stream, group string, messageIDs []string) error {
	args := m.Called(ctx, stream, group, messageIDs)
	return args.Error(0)
}

func (m *MockStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	args := m.Called(ctx, stream, data)
	return args.Error(0)
}

// fakeSource отдает заранее заданные записи
type fakeSource struct {
	records [][]string
	openErr error
	opened  bool
}

func (s *fakeSource) Open(ctx context.Context, area []geo.Point) (repository.RawRecordIterator, error) {
	s.opened = true
	if s.openErr != nil {
		return nil, s.openErr
	}
	return &fakeIterator{records: s.records}, nil
}

type fakeIterator struct {
	records [][]string
	pos     int
	closed  bool
}

func (it *fakeIterator) Next(ctx context.Context) ([]string, error) {
	if it.pos >= len(it.records) {
		return nil, nil
	}
	r := it.records[it.pos]
	it.pos++
	return r, nil
}

func (it *fakeIterator) Close() error {
	it.closed = true
	return nil
}

// record собирает инструкции для точки или линии
func record(id, name string, version int, tag string, points ...geo.Point) []string {
	tokens := []string{
		"id " + id,
		"name " + name,
		fmt.Sprintf("version %d", version),
	}
	for _, p := range points {
		tokens = append(tokens, fmt.Sprintf("lat_lon %v %v", p.Lat, p.Lon))
	}
	if tag != "" {
		tokens = append(tokens, "tag "+tag)
	}
	return tokens
}

// line - отрезок вдоль параллели длиной около meters
func line(lat, lon, meters float64) []geo.Point {
	return []geo.Point{{Lon: lon, Lat: lat}, {Lon: lon + lonDegrees(lat, meters), Lat: lat}}
}

func lonDegrees(lat, meters float64) float64 {
	return meters / (111195.0 * math.Cos(lat*math.Pi/180))
}

// entity - готовый объект для тестов
func entity(id int64, name string, rank float64, supercat, subcat string, points ...geo.Point) *domain.GeoEntity {
	e := domain.NewDraftGeoEntity()
	e.ID = id
	e.ExerciseID = 1
	e.SourceID = fmt.Sprintf("way/%d", id)
	e.Name = name
	e.Rank = rank
	e.Supercat = supercat
	e.Subcat = subcat
	e.Shapes = []domain.NodeShape{domain.NewNodeShape(points)}
	return e
}

// square - рабочая область вокруг точки
func square(lat, lon, d float64) []geo.Point {
	return []geo.Point{
		{Lon: lon - d, Lat: lat - d},
		{Lon: lon - d, Lat: lat + d},
		{Lon: lon + d, Lat: lat + d},
		{Lon: lon + d, Lat: lat - d},
	}
}
