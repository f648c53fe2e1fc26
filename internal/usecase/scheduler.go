package usecase

import (
	"math/rand/v2"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/pkg/errors"
)

// SchedulerSettings - параметры планирования викторин
type SchedulerSettings struct {
	QuestionsPerEntity int
	ExtraQuestions     int
	PassThreshold      float64

	// LevelsBeforeExerciseReminder - сколько уровней нужно пройти до напоминания по упражнению
	LevelsBeforeExerciseReminder int
	MinExerciseReminders         int
	MaxExerciseReminders         int
	MinCategoryReminders         int
	MaxCategoryReminders         int

	// MaxReminderEntities - сколько объектов берется в викторину-напоминание
	MaxReminderEntities int
}

// DefaultSchedulerSettings возвращает стандартные параметры
func DefaultSchedulerSettings() SchedulerSettings {
	return SchedulerSettings{
		QuestionsPerEntity:           4,
		ExtraQuestions:               3,
		PassThreshold:                0.85,
		LevelsBeforeExerciseReminder: 4,
		MinExerciseReminders:         2,
		MaxExerciseReminders:         5,
		MinCategoryReminders:         0,
		MaxCategoryReminders:         3,
		MaxReminderEntities:          MaxLevelSize * 4,
	}
}

// PlannedQuestion - позиция вопроса в викторине
type PlannedQuestion struct {
	EntityID   int64
	Index      int
	Difficulty int
}

// PlanQuestions распределяет вопросы по объектам: каждому QuestionsPerEntity,
// одному случайному еще ExtraQuestions. Затем вопросы выдаются случайным
// объектам с оставшейся квотой, сложность для объекта растет 0, 1, 2...
func PlanQuestions(rng *rand.Rand, entityIDs []int64, s SchedulerSettings) []PlannedQuestion {
	if len(entityIDs) == 0 {
		return nil
	}

	quota := make([]int, len(entityIDs))
	total := 0
	for i := range quota {
		quota[i] = s.QuestionsPerEntity
		total += s.QuestionsPerEntity
	}
	quota[rng.IntN(len(quota))] += s.ExtraQuestions
	total += s.ExtraQuestions

	tier := make([]int, len(entityIDs))
	open := make([]int, 0, len(entityIDs))
	for i, q := range quota {
		if q > 0 {
			open = append(open, i)
		}
	}

	plan := make([]PlannedQuestion, 0, total)
	for len(open) > 0 {
		k := rng.IntN(len(open))
		i := open[k]

		plan = append(plan, PlannedQuestion{
			EntityID:   entityIDs[i],
			Index:      len(plan),
			Difficulty: tier[i],
		})
		tier[i]++
		quota[i]--

		if quota[i] == 0 {
			open = append(open[:k], open[k+1:]...)
		}
	}
	return plan
}

// Score - число правильных ответов, всего вопросов и доля правильных
func Score(questions []*domain.Question) (correct, total int, rate float64) {
	total = len(questions)
	for _, q := range questions {
		if q.Answered && q.AnsweredCorrectly {
			correct++
		}
	}
	if total > 0 {
		rate = float64(correct) / float64(total)
	}
	return correct, total, rate
}

// HasIncorrect - есть вопросы без правильного ответа
func HasIncorrect(questions []*domain.Question) bool {
	for _, q := range questions {
		if !q.AnsweredCorrectly {
			return true
		}
	}
	return false
}

// FollowUpQuestions повторяет вопросы без правильного ответа с новыми индексами.
// Нельзя строить повтор повтора.
func FollowUpQuestions(previous *domain.RunningQuiz, questions []*domain.Question) ([]*domain.Question, error) {
	if previous.Type == domain.FollowUpQuiz {
		return nil, errors.ErrContentGeneration.WithMessage("follow-up of a follow-up quiz is not allowed")
	}

	repeated := make([]*domain.Question, 0)
	for _, q := range questions {
		if q.AnsweredCorrectly {
			continue
		}
		content := make([]int64, len(q.ContentIDs))
		copy(content, q.ContentIDs)
		repeated = append(repeated, &domain.Question{
			GeoEntityID: q.GeoEntityID,
			Index:       len(repeated),
			Type:        q.Type,
			Difficulty:  q.Difficulty,
			ContentIDs:  content,
		})
	}

	if len(repeated) == 0 {
		return nil, errors.ErrContentGeneration.WithMessage("no incorrectly answered questions")
	}
	return repeated, nil
}

// SelectReminderEntities берет первые MaxReminderEntities кандидатов в порядке хранилища.
// Взвешивание по давности и ошибкам не реализовано.
func SelectReminderEntities(candidates []int64, s SchedulerSettings) ([]int64, error) {
	if len(candidates) == 0 {
		return nil, errors.ErrContentGeneration.WithMessage("no passed levels to remind")
	}
	n := min(s.MaxReminderEntities, len(candidates))
	out := make([]int64, n)
	copy(out, candidates[:n])
	return out, nil
}

// ApplyFinish вычисляет изменения упражнения после викторины.
// Level и category изменяются на месте, результат содержит только то, что нужно сохранить.
func ApplyFinish(
	rng *rand.Rand,
	s SchedulerSettings,
	quiz *domain.RunningQuiz,
	rate float64,
	exercise *domain.Exercise,
	category *domain.CategoryGroup,
	level *domain.Level,
) (*domain.QuizOutcome, bool, error) {
	outcome := &domain.QuizOutcome{RunningQuizID: quiz.ID}

	switch quiz.Type {
	case domain.LevelQuiz:
		if level == nil || category == nil {
			return nil, false, errors.ErrInvariantViolation.WithMessage("level quiz %d without level", quiz.ID)
		}
		if rate < s.PassThreshold {
			return outcome, false, nil
		}

		level.Passed = true
		exercise.PassedSinceReminder++
		if exercise.PassedSinceReminder >= s.LevelsBeforeExerciseReminder {
			exercise.RequiredReminders = randBetween(rng, s.MinExerciseReminders, s.MaxExerciseReminders)
			exercise.PassedSinceReminder = 0
		}
		category.RequiredReminders = randBetween(rng, s.MinCategoryReminders, s.MaxCategoryReminders)

		outcome.Exercise = exercise
		outcome.Category = category
		outcome.Level = level
		return outcome, true, nil

	case domain.CategoryReminderQuiz:
		if category == nil {
			return nil, false, errors.ErrInvariantViolation.WithMessage("category reminder %d without category", quiz.ID)
		}
		category.RequiredReminders = max(0, category.RequiredReminders-1)
		outcome.Category = category
		return outcome, false, nil

	case domain.ExerciseReminderQuiz:
		exercise.RequiredReminders = max(0, exercise.RequiredReminders-1)
		outcome.Exercise = exercise
		return outcome, false, nil

	case domain.FollowUpQuiz:
		return outcome, false, nil
	}

	return nil, false, errors.ErrInvariantViolation.WithMessage("unknown quiz type %d", quiz.Type)
}

// randBetween - равномерное целое в [lo, hi]
func randBetween(rng *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
