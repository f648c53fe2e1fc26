package repository

import (
	"context"

	"github.com/geoquiz-service/internal/domain"
)

// QuizRepository определяет методы для текущей викторины и ее вопросов
type QuizRepository interface {
	// GetRunning возвращает викторину упражнения или nil, если ее нет
	GetRunning(ctx context.Context, exerciseID int64) (*domain.RunningQuiz, error)

	// Replace удаляет текущую викторину (любого упражнения) и создает новую с вопросами
	// в одной транзакции. Индексы вопросов должны идти подряд с нуля.
	Replace(ctx context.Context, quiz *domain.RunningQuiz, questions []*domain.Question) (*domain.RunningQuiz, error)

	// Delete удаляет викторину упражнения вместе с вопросами
	Delete(ctx context.Context, exerciseID int64) error

	// GetQuestions возвращает вопросы викторины по возрастанию индекса
	GetQuestions(ctx context.Context, runningQuizID int64) ([]*domain.Question, error)

	GetQuestion(ctx context.Context, runningQuizID, questionID int64) (*domain.Question, error)

	SetCurrentIndex(ctx context.Context, runningQuizID int64, index int) error

	// RecordAnswer отмечает вопрос и обновляет статистику объекта
	RecordAnswer(ctx context.Context, answer *domain.AnswerRecord) error
}
