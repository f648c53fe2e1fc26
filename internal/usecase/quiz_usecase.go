package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/domain/repository"
	"github.com/geoquiz-service/internal/pkg/errors"
	"github.com/geoquiz-service/internal/pkg/metrics"
	"github.com/geoquiz-service/internal/usecase/dto"
	"go.uber.org/zap"
)

// QuizUseCase управляет текущей викториной упражнения
type QuizUseCase struct {
	exerciseRepo repository.ExerciseRepository
	entityRepo   repository.GeoEntityRepository
	quizRepo     repository.QuizRepository
	cacheRepo    repository.CacheRepository
	newRand      RandFactory
	settings     SchedulerSettings
	now          func() time.Time
	logger       *zap.Logger
}

func NewQuizUseCase(
	exerciseRepo repository.ExerciseRepository,
	entityRepo repository.GeoEntityRepository,
	quizRepo repository.QuizRepository,
	cacheRepo repository.CacheRepository,
	newRand RandFactory,
	settings SchedulerSettings,
	logger *zap.Logger,
) *QuizUseCase {
	return &QuizUseCase{
		exerciseRepo: exerciseRepo,
		entityRepo:   entityRepo,
		quizRepo:     quizRepo,
		cacheRepo:    cacheRepo,
		newRand:      newRand,
		settings:     settings,
		now:          time.Now,
		logger:       logger,
	}
}

// StartQuiz создает новую викторину и заменяет предыдущую.
// Если вопросы построить не удалось, предыдущая викторина остается.
func (uc *QuizUseCase) StartQuiz(
	ctx context.Context,
	exerciseID int64,
	req dto.StartQuizRequest,
) (*dto.QuizResponse, error) {
	quizType, ok := domain.ParseRunningQuizType(req.Type)
	if !ok {
		return nil, errors.ErrInvalidRequest.WithMessage("unknown quiz type %q", req.Type)
	}

	if _, err := uc.exerciseRepo.GetByID(ctx, exerciseID); err != nil {
		return nil, err
	}

	quiz := &domain.RunningQuiz{
		ExerciseID:   exerciseID,
		Type:         quizType,
		CurrentIndex: domain.NotStarted,
	}

	var (
		questions []*domain.Question
		err       error
	)

	switch quizType {
	case domain.FollowUpQuiz:
		questions, err = uc.followUp(ctx, quiz)
	default:
		questions, err = uc.generate(ctx, quiz, req.Supercat)
	}
	if err != nil {
		return nil, err
	}

	created, err := uc.quizRepo.Replace(ctx, quiz, questions)
	if err != nil {
		return nil, err
	}

	metrics.QuizzesStarted.WithLabelValues(quizType.String()).Inc()
	uc.logger.Info("Quiz started",
		zap.Int64("exercise_id", exerciseID),
		zap.Int64("quiz_id", created.ID),
		zap.String("type", quizType.String()),
		zap.Int("questions", len(questions)))

	resp := dto.NewQuizResponse(created, questions)
	return &resp, nil
}

// generate выбирает объекты по типу викторины и строит вопросы
func (uc *QuizUseCase) generate(
	ctx context.Context,
	quiz *domain.RunningQuiz,
	supercat string,
) ([]*domain.Question, error) {
	var (
		entityIDs []int64
		err       error
	)

	switch quiz.Type {
	case domain.LevelQuiz:
		entityIDs, err = uc.levelEntities(ctx, quiz, supercat)
	case domain.CategoryReminderQuiz:
		entityIDs, err = uc.categoryReminderEntities(ctx, quiz, supercat)
	case domain.ExerciseReminderQuiz:
		entityIDs, err = uc.exerciseReminderEntities(ctx, quiz)
	default:
		return nil, errors.ErrInvariantViolation.WithMessage("unexpected quiz type %s", quiz.Type)
	}
	if err != nil {
		return nil, err
	}

	entities, err := uc.entityRepo.GetByIDs(ctx, entityIDs)
	if err != nil {
		return nil, fmt.Errorf("load quiz entities: %w", err)
	}
	byID := make(map[int64]*domain.GeoEntity, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
	}

	rng := uc.newRand()
	generator := NewQuestionGenerator(uc.entityRepo, rng, uc.logger)
	plan := PlanQuestions(rng, entityIDs, uc.settings)

	questions := make([]*domain.Question, 0, len(plan))
	var previous *domain.Question
	for _, p := range plan {
		target, ok := byID[p.EntityID]
		if !ok {
			return nil, errors.ErrInvariantViolation.WithMessage("entity %d not found", p.EntityID)
		}

		q, err := generator.Generate(ctx, target, p.Difficulty, previous)
		if err != nil {
			return nil, err
		}
		q.Index = p.Index
		questions = append(questions, q)
		previous = q
	}

	return questions, nil
}

func (uc *QuizUseCase) levelEntities(
	ctx context.Context,
	quiz *domain.RunningQuiz,
	supercat string,
) ([]int64, error) {
	category, err := uc.exerciseRepo.GetCategory(ctx, quiz.ExerciseID, supercat)
	if err != nil {
		return nil, err
	}

	level := category.NextLevel()
	if level == nil {
		return nil, errors.ErrContentGeneration.WithMessage("top level reached in %s", supercat)
	}
	if len(level.EntityIDs) == 0 {
		return nil, errors.ErrInvariantViolation.WithMessage("level %d has no entities", level.ID)
	}

	quiz.CategoryID = &category.ID
	quiz.LevelID = &level.ID
	return level.EntityIDs, nil
}

func (uc *QuizUseCase) categoryReminderEntities(
	ctx context.Context,
	quiz *domain.RunningQuiz,
	supercat string,
) ([]int64, error) {
	category, err := uc.exerciseRepo.GetCategory(ctx, quiz.ExerciseID, supercat)
	if err != nil {
		return nil, err
	}
	quiz.CategoryID = &category.ID

	levelIDs := category.PassedLevelIDs()
	if len(levelIDs) == 0 {
		return nil, errors.ErrContentGeneration.WithMessage("no passed levels in %s", supercat)
	}

	candidates, err := uc.entityRepo.GetIDsByLevels(ctx, levelIDs)
	if err != nil {
		return nil, err
	}
	return SelectReminderEntities(candidates, uc.settings)
}

func (uc *QuizUseCase) exerciseReminderEntities(
	ctx context.Context,
	quiz *domain.RunningQuiz,
) ([]int64, error) {
	categories, err := uc.exerciseRepo.GetCategories(ctx, quiz.ExerciseID)
	if err != nil {
		return nil, err
	}

	levelIDs := make([]int64, 0)
	for _, c := range categories {
		levelIDs = append(levelIDs, c.PassedLevelIDs()...)
	}
	if len(levelIDs) == 0 {
		return nil, errors.ErrContentGeneration.WithMessage("no passed levels in exercise %d", quiz.ExerciseID)
	}

	candidates, err := uc.entityRepo.GetIDsByLevels(ctx, levelIDs)
	if err != nil {
		return nil, err
	}
	return SelectReminderEntities(candidates, uc.settings)
}

// followUp повторяет ошибки только что завершенной викторины
func (uc *QuizUseCase) followUp(ctx context.Context, quiz *domain.RunningQuiz) ([]*domain.Question, error) {
	previous, questions, err := uc.load(ctx, quiz.ExerciseID)
	if err != nil {
		return nil, err
	}
	if domain.StateOf(previous, questions) != domain.QuizFinished {
		return nil, errors.ErrQuizNotFinished
	}

	quiz.CategoryID = previous.CategoryID
	quiz.LevelID = previous.LevelID
	return FollowUpQuestions(previous, questions)
}

// load возвращает текущую викторину с вопросами или ErrQuizNotFound
func (uc *QuizUseCase) load(ctx context.Context, exerciseID int64) (*domain.RunningQuiz, []*domain.Question, error) {
	quiz, err := uc.quizRepo.GetRunning(ctx, exerciseID)
	if err != nil {
		return nil, nil, err
	}
	if quiz == nil {
		return nil, nil, errors.ErrQuizNotFound
	}

	questions, err := uc.quizRepo.GetQuestions(ctx, quiz.ID)
	if err != nil {
		return nil, nil, err
	}
	return quiz, questions, nil
}

// GetQuiz возвращает состояние текущей викторины
func (uc *QuizUseCase) GetQuiz(ctx context.Context, exerciseID int64) (*dto.QuizResponse, error) {
	quiz, questions, err := uc.load(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewQuizResponse(quiz, questions)
	return &resp, nil
}

// State - состояние викторины упражнения: empty, active или finished
func (uc *QuizUseCase) State(ctx context.Context, exerciseID int64) (domain.QuizState, error) {
	quiz, err := uc.quizRepo.GetRunning(ctx, exerciseID)
	if err != nil {
		return "", err
	}
	if quiz == nil {
		return domain.QuizEmpty, nil
	}
	questions, err := uc.quizRepo.GetQuestions(ctx, quiz.ID)
	if err != nil {
		return "", err
	}
	return domain.StateOf(quiz, questions), nil
}

// NextQuestion выдает следующий вопрос. Возвращает nil, если вопросов больше нет.
func (uc *QuizUseCase) NextQuestion(ctx context.Context, exerciseID int64) (*dto.QuestionResponse, error) {
	quiz, questions, err := uc.load(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	next := quiz.CurrentIndex + 1
	if next >= len(questions) {
		return nil, nil
	}
	question := questions[next]

	if err := uc.quizRepo.SetCurrentIndex(ctx, quiz.ID, next); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(question.ContentIDs)+1)
	ids = append(ids, question.GeoEntityID)
	ids = append(ids, question.ContentIDs...)
	entities, err := uc.entityRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[int64]*domain.GeoEntity, len(entities))
	for _, e := range entities {
		byID[e.ID] = e
	}

	target, ok := byID[question.GeoEntityID]
	if !ok {
		return nil, errors.ErrInvariantViolation.WithMessage("question %d has no target", question.ID)
	}

	withShapes := question.Type != domain.NameIt
	alternatives := make([]dto.EntityResponse, 0, len(question.ContentIDs))
	for _, id := range question.ContentIDs {
		if e, ok := byID[id]; ok {
			alternatives = append(alternatives, dto.NewEntityResponse(e, withShapes))
		}
	}

	return &dto.QuestionResponse{
		ID:           question.ID,
		Index:        question.Index,
		Total:        len(questions),
		Type:         question.Type.String(),
		Difficulty:   question.Difficulty,
		Target:       dto.NewEntityResponse(target, true),
		Alternatives: alternatives,
	}, nil
}

// ReportAnswer записывает ответ и обновляет статистику объекта.
// Повторный ответ на тот же вопрос ничего не меняет.
func (uc *QuizUseCase) ReportAnswer(
	ctx context.Context,
	exerciseID int64,
	req dto.ReportAnswerRequest,
) error {
	quiz, err := uc.quizRepo.GetRunning(ctx, exerciseID)
	if err != nil {
		return err
	}
	if quiz == nil {
		return errors.ErrQuizNotFound
	}

	question, err := uc.quizRepo.GetQuestion(ctx, quiz.ID, req.QuestionID)
	if err != nil {
		return err
	}
	if question.Index > quiz.CurrentIndex {
		return errors.ErrInvalidRequest.WithMessage("question %d has not been drawn yet", question.ID)
	}
	if question.Answered {
		return nil
	}

	answer := &domain.AnswerRecord{
		QuestionID:  question.ID,
		GeoEntityID: question.GeoEntityID,
		Correct:     req.Correct,
		Weight:      question.AnswerWeight(quiz.Type),
		AnsweredAt:  uc.now(),
	}
	if err := uc.quizRepo.RecordAnswer(ctx, answer); err != nil {
		return err
	}

	metrics.AnswersReported.WithLabelValues(strconv.FormatBool(req.Correct)).Inc()
	return nil
}

// FinishQuiz подводит итог завершенной викторины и сохраняет изменения
// уровня и счетчиков напоминаний. Повторный вызов возвращает тот же итог.
func (uc *QuizUseCase) FinishQuiz(ctx context.Context, exerciseID int64) (*domain.QuizFeedback, error) {
	quiz, questions, err := uc.load(ctx, exerciseID)
	if err != nil {
		return nil, err
	}
	if domain.StateOf(quiz, questions) != domain.QuizFinished {
		return nil, errors.ErrQuizNotFinished
	}

	exercise, err := uc.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		return nil, err
	}

	var (
		category *domain.CategoryGroup
		level    *domain.Level
	)
	if quiz.CategoryID != nil {
		if category, err = uc.exerciseRepo.GetCategoryByID(ctx, *quiz.CategoryID); err != nil {
			return nil, err
		}
	}
	if quiz.LevelID != nil {
		if level, err = uc.exerciseRepo.GetLevel(ctx, *quiz.LevelID); err != nil {
			return nil, err
		}
	}

	correct, total, rate := Score(questions)
	passed := quiz.Type == domain.LevelQuiz && rate >= uc.settings.PassThreshold

	if !quiz.Finished {
		outcome, levelPassed, err := ApplyFinish(uc.newRand(), uc.settings, quiz, rate, exercise, category, level)
		if err != nil {
			return nil, err
		}
		if err := uc.exerciseRepo.ApplyQuizOutcome(ctx, outcome); err != nil {
			return nil, err
		}
		quiz.Finished = true
		passed = levelPassed

		if levelPassed {
			if err := uc.cacheRepo.DeleteProgress(ctx, exerciseID); err != nil {
				uc.logger.Warn("Failed to drop progress cache", zap.Int64("exercise_id", exerciseID), zap.Error(err))
			}
		}

		metrics.QuizzesFinished.WithLabelValues(quiz.Type.String(), metrics.Outcome(levelPassed)).Inc()
		uc.logger.Info("Quiz finished",
			zap.Int64("exercise_id", exerciseID),
			zap.Int64("quiz_id", quiz.ID),
			zap.String("type", quiz.Type.String()),
			zap.Float64("success_rate", rate),
			zap.Bool("level_passed", levelPassed))
	}

	feedback := &domain.QuizFeedback{
		QuizType:                  quiz.Type.String(),
		TotalQuestions:            total,
		CorrectAnswers:            correct,
		SuccessRate:               rate,
		LevelPassed:               passed,
		FollowUpAvailable:         quiz.Type != domain.FollowUpQuiz && HasIncorrect(questions),
		RequiredExerciseReminders: exercise.RequiredReminders,
	}
	if level != nil {
		idx := level.Index
		feedback.LevelIndex = &idx
	}
	if category != nil {
		reminders := category.RequiredReminders
		feedback.RequiredCategoryReminders = &reminders
	}
	return feedback, nil
}

// DeleteQuiz удаляет текущую викторину упражнения
func (uc *QuizUseCase) DeleteQuiz(ctx context.Context, exerciseID int64) error {
	return uc.quizRepo.Delete(ctx, exerciseID)
}
