package postgres

import (
	"context"
	"database/sql"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/domain/repository"
	"github.com/geoquiz-service/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type quizRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewQuizRepository(db *DB) repository.QuizRepository {
	return &quizRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const quizColumns = `id, exercise_id, quiz_type, category_id, level_id, current_index, finished, created_at`

func (r *quizRepository) GetRunning(ctx context.Context, exerciseID int64) (*domain.RunningQuiz, error) {
	var quiz domain.RunningQuiz
	err := r.db.GetContext(ctx, &quiz, `SELECT `+quizColumns+` FROM running_quizzes WHERE exercise_id = $1`, exerciseID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get running quiz", zap.Int64("exercise_id", exerciseID), zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}
	return &quiz, nil
}

// Replace заменяет текущую викторину: удаляются викторины всех упражнений,
// в хранилище остается одна. Вопросам назначаются идентификаторы.
func (r *quizRepository) Replace(
	ctx context.Context,
	quiz *domain.RunningQuiz,
	questions []*domain.Question,
) (*domain.RunningQuiz, error) {
	for i, q := range questions {
		if q.Index != i {
			return nil, errors.ErrInvariantViolation.WithMessage("question %d has index %d", i, q.Index)
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM running_quizzes`); err != nil {
		r.logger.Error("Failed to delete previous quiz", zap.Int64("exercise_id", quiz.ExerciseID), zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}

	created := *quiz
	created.Finished = false
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO running_quizzes (exercise_id, quiz_type, category_id, level_id, current_index)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		quiz.ExerciseID, int(quiz.Type), quiz.CategoryID, quiz.LevelID, quiz.CurrentIndex,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert quiz", zap.Int64("exercise_id", quiz.ExerciseID), zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}

	for _, q := range questions {
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO questions (running_quiz_id, geo_entity_id, question_index, question_type, difficulty, content_ids)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id`,
			created.ID, q.GeoEntityID, q.Index, int(q.Type), q.Difficulty, pq.Array(q.ContentIDs),
		).Scan(&q.ID)
		if err != nil {
			r.logger.Error("Failed to insert question", zap.Int64("quiz_id", created.ID), zap.Int("index", q.Index), zap.Error(err))
			return nil, errors.ErrDatabaseError.WithCause(err)
		}
		q.RunningQuizID = created.ID
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit quiz", zap.Int64("quiz_id", created.ID), zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}

	return &created, nil
}

func (r *quizRepository) Delete(ctx context.Context, exerciseID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM running_quizzes WHERE exercise_id = $1`, exerciseID)
	if err != nil {
		r.logger.Error("Failed to delete quiz", zap.Int64("exercise_id", exerciseID), zap.Error(err))
		return errors.ErrDatabaseError.WithCause(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrQuizNotFound
	}
	return nil
}

const questionColumns = `
	id, running_quiz_id, geo_entity_id, question_index, question_type, difficulty,
	content_ids, answered, answered_correctly`

func scanQuestion(row scanner) (*domain.Question, error) {
	var (
		q       domain.Question
		content pq.Int64Array
	)
	err := row.Scan(
		&q.ID, &q.RunningQuizID, &q.GeoEntityID, &q.Index, &q.Type, &q.Difficulty,
		&content, &q.Answered, &q.AnsweredCorrectly,
	)
	if err != nil {
		return nil, err
	}
	q.ContentIDs = []int64(content)
	return &q, nil
}

func (r *quizRepository) GetQuestions(ctx context.Context, runningQuizID int64) ([]*domain.Question, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+questionColumns+`
		FROM questions
		WHERE running_quiz_id = $1
		ORDER BY question_index`,
		runningQuizID,
	)
	if err != nil {
		r.logger.Error("Failed to get questions", zap.Int64("quiz_id", runningQuizID), zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}
	defer rows.Close()

	questions := make([]*domain.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			r.logger.Error("Failed to scan question", zap.Error(err))
			return nil, errors.ErrDatabaseError.WithCause(err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.ErrDatabaseError.WithCause(err)
	}
	return questions, nil
}

func (r *quizRepository) GetQuestion(ctx context.Context, runningQuizID, questionID int64) (*domain.Question, error) {
	q, err := scanQuestion(r.db.QueryRowContext(ctx, `
		SELECT`+questionColumns+`
		FROM questions
		WHERE running_quiz_id = $1 AND id = $2`,
		runningQuizID, questionID,
	))
	if err == sql.ErrNoRows {
		return nil, errors.ErrQuestionNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get question", zap.Int64("question_id", questionID), zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}
	return q, nil
}

func (r *quizRepository) SetCurrentIndex(ctx context.Context, runningQuizID int64, index int) error {
	_, err := r.db.ExecContext(ctx, `UPDATE running_quizzes SET current_index = $2 WHERE id = $1`, runningQuizID, index)
	if err != nil {
		r.logger.Error("Failed to set current index", zap.Int64("quiz_id", runningQuizID), zap.Error(err))
		return errors.ErrDatabaseError.WithCause(err)
	}
	return nil
}

// RecordAnswer отмечает вопрос и добавляет вес ответа к статистике объекта.
// Уже отвеченный вопрос не меняется.
func (r *quizRepository) RecordAnswer(ctx context.Context, answer *domain.AnswerRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError.WithCause(err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE questions SET answered = TRUE, answered_correctly = $2
		WHERE id = $1 AND NOT answered`,
		answer.QuestionID, answer.Correct,
	)
	if err != nil {
		r.logger.Error("Failed to mark question answered", zap.Int64("question_id", answer.QuestionID), zap.Error(err))
		return errors.ErrDatabaseError.WithCause(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil
	}

	correctWeight := 0.0
	var lastCorrect interface{}
	if answer.Correct {
		correctWeight = answer.Weight
		lastCorrect = answer.AnsweredAt
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE geo_entities
		SET times_asked = times_asked + $2,
			times_correct = times_correct + $3,
			last_correct_at = COALESCE($4, last_correct_at)
		WHERE id = $1`,
		answer.GeoEntityID, answer.Weight, correctWeight, lastCorrect,
	)
	if err != nil {
		r.logger.Error("Failed to update entity stats", zap.Int64("entity_id", answer.GeoEntityID), zap.Error(err))
		return errors.ErrDatabaseError.WithCause(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.ErrDatabaseError.WithCause(err)
	}
	return nil
}
