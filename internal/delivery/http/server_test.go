package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/geoquiz-service/internal/config"
	httpDelivery "github.com/geoquiz-service/internal/delivery/http"
	"github.com/geoquiz-service/internal/delivery/http/handler"
	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/pkg/errors"
	"github.com/geoquiz-service/internal/usecase/dto"
)

// ============================================================================
// Mocks
// ============================================================================

type mockExerciseService struct {
	mock.Mock
}

func (m *mockExerciseService) BuildExercise(ctx context.Context, req dto.BuildExerciseRequest) (*dto.BuildExerciseResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BuildExerciseResponse), args.Error(1)
}

func (m *mockExerciseService) ListExercises(ctx context.Context) ([]dto.ExerciseResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.ExerciseResponse), args.Error(1)
}

func (m *mockExerciseService) GetExercise(ctx context.Context, id int64) (*dto.ExerciseResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ExerciseResponse), args.Error(1)
}

func (m *mockExerciseService) DeleteExercise(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockExerciseService) Progress(ctx context.Context, exerciseID int64) (*domain.Progress, error) {
	args := m.Called(ctx, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Progress), args.Error(1)
}

func (m *mockExerciseService) Categories(ctx context.Context, exerciseID int64) ([]dto.CategoryResponse, error) {
	args := m.Called(ctx, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.CategoryResponse), args.Error(1)
}

func (m *mockExerciseService) SearchEntities(ctx context.Context, exerciseID int64, req dto.EntitySearchRequest) ([]dto.EntityResponse, error) {
	args := m.Called(ctx, exerciseID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dto.EntityResponse), args.Error(1)
}

type mockBuildJobService struct {
	mock.Mock
}

func (m *mockBuildJobService) Enqueue(ctx context.Context, req dto.BuildExerciseRequest) (*dto.BuildJobResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BuildJobResponse), args.Error(1)
}

func (m *mockBuildJobService) Status(ctx context.Context, jobID uuid.UUID) (*domain.BuildJobStatus, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BuildJobStatus), args.Error(1)
}

type mockQuizService struct {
	mock.Mock
}

func (m *mockQuizService) StartQuiz(ctx context.Context, exerciseID int64, req dto.StartQuizRequest) (*dto.QuizResponse, error) {
	args := m.Called(ctx, exerciseID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *mockQuizService) GetQuiz(ctx context.Context, exerciseID int64) (*dto.QuizResponse, error) {
	args := m.Called(ctx, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuizResponse), args.Error(1)
}

func (m *mockQuizService) NextQuestion(ctx context.Context, exerciseID int64) (*dto.QuestionResponse, error) {
	args := m.Called(ctx, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.QuestionResponse), args.Error(1)
}

func (m *mockQuizService) ReportAnswer(ctx context.Context, exerciseID int64, req dto.ReportAnswerRequest) error {
	return m.Called(ctx, exerciseID, req).Error(0)
}

func (m *mockQuizService) FinishQuiz(ctx context.Context, exerciseID int64) (*domain.QuizFeedback, error) {
	args := m.Called(ctx, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizFeedback), args.Error(1)
}

func (m *mockQuizService) DeleteQuiz(ctx context.Context, exerciseID int64) error {
	return m.Called(ctx, exerciseID).Error(0)
}

type stubHealth struct {
	err error
}

func (s stubHealth) Health(context.Context) error {
	return s.err
}

// ============================================================================
// Helpers
// ============================================================================

type testServer struct {
	server    *httpDelivery.Server
	exercises *mockExerciseService
	jobs      *mockBuildJobService
	quiz      *mockQuizService
}

func newTestServer(t *testing.T, checks map[string]handler.HealthChecker) *testServer {
	t.Helper()

	logger := zap.NewNop()
	ts := &testServer{
		exercises: new(mockExerciseService),
		jobs:      new(mockBuildJobService),
		quiz:      new(mockQuizService),
	}
	cfg := &config.Config{Metrics: config.MetricsConfig{Enabled: false}}

	ts.server = httpDelivery.NewServer(
		cfg,
		logger,
		handler.NewExerciseHandler(ts.exercises, ts.jobs, logger),
		handler.NewQuizHandler(ts.quiz, logger),
		handler.NewHealthHandler(checks, logger),
	)
	return ts
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]any  `json:"meta"`
	Error *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func (ts *testServer) do(t *testing.T, method, path, body string) (*http.Response, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := ts.server.App().Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	var env envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp, env
}

const triangle = `{"name":"Stockholm","working_area":[
	{"lat":59.30,"lon":18.00},{"lat":59.35,"lon":18.10},{"lat":59.30,"lon":18.10}]}`

// ============================================================================
// Exercises
// ============================================================================

func TestBuildExercise_Created(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.exercises.On("BuildExercise", mock.Anything, mock.MatchedBy(func(req dto.BuildExerciseRequest) bool {
		return req.Name == "Stockholm" && len(req.WorkingArea) == 3
	})).Return(&dto.BuildExerciseResponse{ExerciseID: 7, EntityCount: 42}, nil)

	resp, env := ts.do(t, http.MethodPost, "/api/v1/exercises", triangle)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var result dto.BuildExerciseResponse
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, int64(7), result.ExerciseID)
	assert.Equal(t, 42, result.EntityCount)
	assert.EqualValues(t, 42, env.Meta["total"])
	ts.exercises.AssertExpectations(t)
}

func TestBuildExercise_ValidationError(t *testing.T) {
	ts := newTestServer(t, nil)

	body := `{"name":"Stockholm","working_area":[{"lat":59.30,"lon":18.00},{"lat":59.35,"lon":18.10}]}`
	resp, env := ts.do(t, http.MethodPost, "/api/v1/exercises", body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
	assert.Contains(t, env.Error.Details["fields"], "BuildExerciseRequest.WorkingArea")
	ts.exercises.AssertNotCalled(t, "BuildExercise", mock.Anything, mock.Anything)
}

func TestBuildExercise_BrokenBody(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, env := ts.do(t, http.MethodPost, "/api/v1/exercises", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
}

func TestBuildExercise_DomainErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"geometry", errors.ErrGeometryInvalid, http.StatusBadRequest, "GEOMETRY_INVALID"},
		{"interrupted", fmt.Errorf("build: %w", errors.ErrInterrupted), http.StatusServiceUnavailable, "INTERRUPTED"},
		{"supplier", errors.ErrSupplier.WithCause(io.ErrUnexpectedEOF), http.StatusBadGateway, "SUPPLIER_ERROR"},
		{"unknown", io.ErrUnexpectedEOF, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t, nil)
			ts.exercises.On("BuildExercise", mock.Anything, mock.Anything).Return(nil, tt.err)

			resp, env := ts.do(t, http.MethodPost, "/api/v1/exercises", triangle)

			assert.Equal(t, tt.status, resp.StatusCode)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestListExercises(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.exercises.On("ListExercises", mock.Anything).Return([]dto.ExerciseResponse{
		{ID: 1, Name: "Stockholm"},
		{ID: 2, Name: "Uppsala"},
	}, nil)

	resp, env := ts.do(t, http.MethodGet, "/api/v1/exercises", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var list []dto.ExerciseResponse
	require.NoError(t, json.Unmarshal(env.Data, &list))
	assert.Len(t, list, 2)
	assert.EqualValues(t, 2, env.Meta["total"])
}

func TestGetExercise(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		ts := newTestServer(t, nil)

		resp, env := ts.do(t, http.MethodGet, "/api/v1/exercises/abc", "")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
	})

	t.Run("not found", func(t *testing.T) {
		ts := newTestServer(t, nil)
		ts.exercises.On("GetExercise", mock.Anything, int64(5)).
			Return(nil, fmt.Errorf("get exercise: %w", errors.ErrExerciseNotFound))

		resp, env := ts.do(t, http.MethodGet, "/api/v1/exercises/5", "")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "EXERCISE_NOT_FOUND", env.Error.Code)
	})

	t.Run("found", func(t *testing.T) {
		ts := newTestServer(t, nil)
		ts.exercises.On("GetExercise", mock.Anything, int64(5)).
			Return(&dto.ExerciseResponse{ID: 5, Name: "Stockholm"}, nil)

		resp, env := ts.do(t, http.MethodGet, "/api/v1/exercises/5", "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(env.Data), `"Stockholm"`)
	})
}

func TestDeleteExercise(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.exercises.On("DeleteExercise", mock.Anything, int64(3)).Return(nil)

	resp, _ := ts.do(t, http.MethodDelete, "/api/v1/exercises/3", "")

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	ts.exercises.AssertExpectations(t)
}

func TestGetProgress(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.exercises.On("Progress", mock.Anything, int64(3)).Return(domain.NewProgress(3, 8, 2), nil)

	resp, env := ts.do(t, http.MethodGet, "/api/v1/exercises/3/progress", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var progress domain.Progress
	require.NoError(t, json.Unmarshal(env.Data, &progress))
	assert.Equal(t, 25, progress.Percentage)
}

func TestGetCategories(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.exercises.On("Categories", mock.Anything, int64(3)).Return([]dto.CategoryResponse{
		{ID: 10, Supercat: domain.SupercatSettlements},
	}, nil)

	resp, env := ts.do(t, http.MethodGet, "/api/v1/exercises/3/categories", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(env.Data), domain.SupercatSettlements)
}

func TestSearchEntities(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		ts := newTestServer(t, nil)

		resp, env := ts.do(t, http.MethodGet, "/api/v1/exercises/3/entities", "")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
	})

	t.Run("found", func(t *testing.T) {
		ts := newTestServer(t, nil)
		ts.exercises.On("SearchEntities", mock.Anything, int64(3), dto.EntitySearchRequest{Name: "Sveavägen"}).
			Return([]dto.EntityResponse{{ID: 1, Name: "Sveavägen"}}, nil)

		resp, env := ts.do(t, http.MethodGet, "/api/v1/exercises/3/entities?name=Sveav%C3%A4gen", "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.EqualValues(t, 1, env.Meta["total"])
		ts.exercises.AssertExpectations(t)
	})
}

// ============================================================================
// Build jobs
// ============================================================================

func TestEnqueueBuild(t *testing.T) {
	ts := newTestServer(t, nil)
	jobID := uuid.New()
	ts.jobs.On("Enqueue", mock.Anything, mock.Anything).
		Return(&dto.BuildJobResponse{JobID: jobID, Status: domain.JobQueued}, nil)

	resp, env := ts.do(t, http.MethodPost, "/api/v1/exercises/jobs", triangle)

	assert.Equal(t, http.StatusAccepted, resp.StatusCode)
	var job dto.BuildJobResponse
	require.NoError(t, json.Unmarshal(env.Data, &job))
	assert.Equal(t, jobID, job.JobID)
	ts.exercises.AssertNotCalled(t, "BuildExercise", mock.Anything, mock.Anything)
}

func TestGetBuildJob(t *testing.T) {
	t.Run("invalid uuid", func(t *testing.T) {
		ts := newTestServer(t, nil)

		resp, env := ts.do(t, http.MethodGet, "/api/v1/exercises/jobs/42", "")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
		ts.exercises.AssertNotCalled(t, "GetExercise", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		ts := newTestServer(t, nil)
		jobID := uuid.New()
		ts.jobs.On("Status", mock.Anything, jobID).Return(nil, errors.ErrJobNotFound)

		resp, env := ts.do(t, http.MethodGet, "/api/v1/exercises/jobs/"+jobID.String(), "")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "JOB_NOT_FOUND", env.Error.Code)
	})

	t.Run("done", func(t *testing.T) {
		ts := newTestServer(t, nil)
		jobID := uuid.New()
		ts.jobs.On("Status", mock.Anything, jobID).Return(&domain.BuildJobStatus{
			JobID:       jobID,
			Status:      domain.JobDone,
			ExerciseID:  9,
			EntityCount: 120,
		}, nil)

		resp, env := ts.do(t, http.MethodGet, "/api/v1/exercises/jobs/"+jobID.String(), "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var status domain.BuildJobStatus
		require.NoError(t, json.Unmarshal(env.Data, &status))
		assert.Equal(t, int64(9), status.ExerciseID)
		assert.Equal(t, domain.JobDone, status.Status)
	})
}

func TestBuildJobs_Disabled(t *testing.T) {
	logger := zap.NewNop()
	server := httpDelivery.NewServer(
		&config.Config{},
		logger,
		handler.NewExerciseHandler(new(mockExerciseService), nil, logger),
		handler.NewQuizHandler(new(mockQuizService), logger),
		handler.NewHealthHandler(nil, logger),
	)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/exercises/jobs", strings.NewReader(triangle))
	req.Header.Set("Content-Type", "application/json")
	resp, err := server.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

// ============================================================================
// Quiz
// ============================================================================

func TestStartQuiz(t *testing.T) {
	t.Run("level quiz needs supercat", func(t *testing.T) {
		ts := newTestServer(t, nil)

		resp, env := ts.do(t, http.MethodPost, "/api/v1/exercises/3/quiz", `{"type":"level"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
	})

	t.Run("unknown type", func(t *testing.T) {
		ts := newTestServer(t, nil)

		resp, _ := ts.do(t, http.MethodPost, "/api/v1/exercises/3/quiz", `{"type":"final_exam"}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("content generation failure", func(t *testing.T) {
		ts := newTestServer(t, nil)
		req := dto.StartQuizRequest{Type: "follow_up"}
		ts.quiz.On("StartQuiz", mock.Anything, int64(3), req).
			Return(nil, errors.ErrContentGeneration.WithMessage("no previous quiz"))

		resp, env := ts.do(t, http.MethodPost, "/api/v1/exercises/3/quiz", `{"type":"follow_up"}`)

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONTENT_GENERATION", env.Error.Code)
		assert.Equal(t, "no previous quiz", env.Error.Message)
	})

	t.Run("created", func(t *testing.T) {
		ts := newTestServer(t, nil)
		req := dto.StartQuizRequest{Type: "level", Supercat: domain.SupercatRoads}
		ts.quiz.On("StartQuiz", mock.Anything, int64(3), req).Return(&dto.QuizResponse{
			ID:           11,
			ExerciseID:   3,
			Type:         "level",
			State:        string(domain.QuizActive),
			CurrentIndex: domain.NotStarted,
			Total:        12,
		}, nil)

		resp, env := ts.do(t, http.MethodPost, "/api/v1/exercises/3/quiz", `{"type":"level","supercat":"roads"}`)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var quiz dto.QuizResponse
		require.NoError(t, json.Unmarshal(env.Data, &quiz))
		assert.Equal(t, 12, quiz.Total)
		ts.quiz.AssertExpectations(t)
	})
}

func TestGetAndDeleteQuiz(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.quiz.On("GetQuiz", mock.Anything, int64(3)).Return(nil, errors.ErrQuizNotFound)
	ts.quiz.On("DeleteQuiz", mock.Anything, int64(3)).Return(nil)

	resp, env := ts.do(t, http.MethodGet, "/api/v1/exercises/3/quiz", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "QUIZ_NOT_FOUND", env.Error.Code)

	resp, _ = ts.do(t, http.MethodDelete, "/api/v1/exercises/3/quiz", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestNextQuestion(t *testing.T) {
	t.Run("question", func(t *testing.T) {
		ts := newTestServer(t, nil)
		ts.quiz.On("NextQuestion", mock.Anything, int64(3)).Return(&dto.QuestionResponse{
			ID:     100,
			Index:  0,
			Total:  4,
			Type:   "pair_it",
			Target: dto.EntityResponse{ID: 1, Name: "Nacka"},
		}, nil)

		resp, env := ts.do(t, http.MethodPost, "/api/v1/exercises/3/quiz/next", "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var question dto.QuestionResponse
		require.NoError(t, json.Unmarshal(env.Data, &question))
		assert.Equal(t, int64(100), question.ID)
		assert.Equal(t, "Nacka", question.Target.Name)
	})

	t.Run("no question left", func(t *testing.T) {
		ts := newTestServer(t, nil)
		ts.quiz.On("NextQuestion", mock.Anything, int64(3)).Return(nil, nil)

		resp, _ := ts.do(t, http.MethodPost, "/api/v1/exercises/3/quiz/next", "")

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})
}

func TestReportAnswer(t *testing.T) {
	t.Run("missing question id", func(t *testing.T) {
		ts := newTestServer(t, nil)

		resp, _ := ts.do(t, http.MethodPost, "/api/v1/exercises/3/quiz/answers", `{"correct":true}`)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		ts.quiz.AssertNotCalled(t, "ReportAnswer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("recorded", func(t *testing.T) {
		ts := newTestServer(t, nil)
		req := dto.ReportAnswerRequest{QuestionID: 100, Correct: true}
		ts.quiz.On("ReportAnswer", mock.Anything, int64(3), req).Return(nil)

		resp, _ := ts.do(t, http.MethodPost, "/api/v1/exercises/3/quiz/answers", `{"question_id":100,"correct":true}`)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		ts.quiz.AssertExpectations(t)
	})

	t.Run("unknown question", func(t *testing.T) {
		ts := newTestServer(t, nil)
		ts.quiz.On("ReportAnswer", mock.Anything, int64(3), mock.Anything).Return(errors.ErrQuestionNotFound)

		resp, env := ts.do(t, http.MethodPost, "/api/v1/exercises/3/quiz/answers", `{"question_id":5,"correct":false}`)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "QUESTION_NOT_FOUND", env.Error.Code)
	})
}

func TestFinishQuiz(t *testing.T) {
	t.Run("not finished", func(t *testing.T) {
		ts := newTestServer(t, nil)
		ts.quiz.On("FinishQuiz", mock.Anything, int64(3)).Return(nil, errors.ErrQuizNotFinished)

		resp, env := ts.do(t, http.MethodPost, "/api/v1/exercises/3/quiz/finish", "")

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "QUIZ_NOT_FINISHED", env.Error.Code)
	})

	t.Run("feedback", func(t *testing.T) {
		ts := newTestServer(t, nil)
		level := 1
		ts.quiz.On("FinishQuiz", mock.Anything, int64(3)).Return(&domain.QuizFeedback{
			QuizType:       "level",
			TotalQuestions: 10,
			CorrectAnswers: 9,
			SuccessRate:    0.9,
			LevelPassed:    true,
			LevelIndex:     &level,
		}, nil)

		resp, env := ts.do(t, http.MethodPost, "/api/v1/exercises/3/quiz/finish", "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var feedback domain.QuizFeedback
		require.NoError(t, json.Unmarshal(env.Data, &feedback))
		assert.True(t, feedback.LevelPassed)
		assert.Equal(t, 9, feedback.CorrectAnswers)
	})
}

// ============================================================================
// Health / errors
// ============================================================================

func TestHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		ts := newTestServer(t, map[string]handler.HealthChecker{
			"postgres": stubHealth{},
			"redis":    stubHealth{},
		})

		resp, _ := ts.do(t, http.MethodGet, "/api/v1/health", "")

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("redis down", func(t *testing.T) {
		ts := newTestServer(t, map[string]handler.HealthChecker{
			"postgres": stubHealth{},
			"redis":    stubHealth{err: io.EOF},
		})

		req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
		resp, err := ts.server.App().Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "unhealthy", body["status"])
		assert.Equal(t, "EOF", body["dependencies"].(map[string]any)["redis"])
	})
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t, nil)

	resp, env := ts.do(t, http.MethodGet, "/api/v1/unknown", "")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "HTTP_ERROR", env.Error.Code)
}

func TestRequestIDHeader(t *testing.T) {
	ts := newTestServer(t, nil)
	ts.exercises.On("ListExercises", mock.Anything).Return([]dto.ExerciseResponse{}, nil)

	resp, _ := ts.do(t, http.MethodGet, "/api/v1/exercises", "")

	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
