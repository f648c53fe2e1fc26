package postgres

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/geoquiz-service/internal/domain"
	"github.com/geoquiz-service/internal/domain/repository"
	"github.com/geoquiz-service/internal/pkg/errors"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

type exerciseRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewExerciseRepository(db *DB) repository.ExerciseRepository {
	return &exerciseRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// Create сохраняет упражнение, категории, уровни и объекты.
// Идентификаторы записываются обратно в черновики.
func (r *exerciseRepository) Create(
	ctx context.Context,
	construction *domain.ExerciseConstruction,
) (*domain.Exercise, error) {
	if err := checkConstruction(construction); err != nil {
		return nil, err
	}

	area, err := encodeRing(construction.Exercise.WorkingArea)
	if err != nil {
		return nil, errors.ErrInvariantViolation.WithCause(err)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}
	defer tx.Rollback()

	exercise := *construction.Exercise
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO exercises (name, display_index, working_area)
		VALUES ($1, (SELECT COALESCE(MAX(display_index) + 1, 0) FROM exercises), $2)
		RETURNING id, display_index, created_at`,
		exercise.Name, area,
	).Scan(&exercise.ID, &exercise.DisplayIndex, &exercise.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to insert exercise", zap.String("name", exercise.Name), zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}

	for _, category := range construction.Categories {
		if err := r.insertCategory(ctx, tx, exercise.ID, category); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("Failed to commit exercise", zap.Int64("exercise_id", exercise.ID), zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}

	construction.Exercise.ID = exercise.ID
	return &exercise, nil
}

func checkConstruction(c *domain.ExerciseConstruction) error {
	if c == nil || c.Exercise == nil {
		return errors.ErrInvariantViolation.WithMessage("empty exercise construction")
	}
	for _, category := range c.Categories {
		for i, level := range category.Levels {
			if len(level) == 0 {
				return errors.ErrInvariantViolation.WithMessage("level %d of %s is empty", i, category.Supercat)
			}
		}
	}
	return nil
}

func (r *exerciseRepository) insertCategory(
	ctx context.Context,
	tx *sqlx.Tx,
	exerciseID int64,
	category *domain.CategoryDraft,
) error {
	var categoryID int64
	err := tx.QueryRowxContext(ctx, `
		INSERT INTO category_groups (exercise_id, supercat, display_index)
		VALUES ($1, $2, $3)
		RETURNING id`,
		exerciseID, category.Supercat, category.DisplayIndex,
	).Scan(&categoryID)
	if err != nil {
		r.logger.Error("Failed to insert category", zap.String("supercat", category.Supercat), zap.Error(err))
		return errors.ErrDatabaseError.WithCause(err)
	}

	for index, level := range category.Levels {
		var levelID int64
		err := tx.QueryRowxContext(ctx, `
			INSERT INTO levels (category_id, level_index)
			VALUES ($1, $2)
			RETURNING id`,
			categoryID, index,
		).Scan(&levelID)
		if err != nil {
			r.logger.Error("Failed to insert level", zap.Int64("category_id", categoryID), zap.Error(err))
			return errors.ErrDatabaseError.WithCause(err)
		}

		for _, e := range level {
			shapes, err := encodeShapes(e.Shapes)
			if err != nil {
				return errors.ErrInvariantViolation.WithCause(err)
			}

			err = tx.QueryRowxContext(ctx, `
				INSERT INTO geo_entities (exercise_id, level_id, source_id, name, rank, supercat, subcat, shapes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
				RETURNING id`,
				exerciseID, levelID, e.SourceID, e.Name, e.Rank, e.Supercat, e.Subcat, shapes,
			).Scan(&e.ID)
			if err != nil {
				r.logger.Error("Failed to insert geo entity", zap.String("source_id", e.SourceID), zap.Error(err))
				return errors.ErrDatabaseError.WithCause(err)
			}
			e.ExerciseID = exerciseID
			e.LevelID = levelID
		}
	}

	return nil
}

const exerciseColumns = `id, name, display_index, working_area, required_reminders, passed_since_reminder, created_at`

func scanExercise(row scanner) (*domain.Exercise, error) {
	var (
		e       domain.Exercise
		areaRaw []byte
	)
	err := row.Scan(&e.ID, &e.Name, &e.DisplayIndex, &areaRaw, &e.RequiredReminders, &e.PassedSinceReminder, &e.CreatedAt)
	if err != nil {
		return nil, err
	}

	var ring [][2]float64
	if err := json.Unmarshal(areaRaw, &ring); err != nil {
		return nil, err
	}
	e.WorkingArea = decodeRing(ring)
	return &e, nil
}

func (r *exerciseRepository) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises WHERE id = $1`

	e, err := scanExercise(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, errors.ErrExerciseNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get exercise by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}
	return e, nil
}

func (r *exerciseRepository) List(ctx context.Context) ([]*domain.Exercise, error) {
	query := `SELECT ` + exerciseColumns + ` FROM exercises ORDER BY display_index, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("Failed to list exercises", zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}
	defer rows.Close()

	exercises := make([]*domain.Exercise, 0)
	for rows.Next() {
		e, err := scanExercise(rows)
		if err != nil {
			r.logger.Error("Failed to scan exercise", zap.Error(err))
			return nil, errors.ErrDatabaseError.WithCause(err)
		}
		exercises = append(exercises, e)
	}
	return exercises, rows.Err()
}

func (r *exerciseRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete exercise", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError.WithCause(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.ErrExerciseNotFound
	}
	return nil
}

const categoryColumns = `id, exercise_id, supercat, display_index, required_reminders`

func (r *exerciseRepository) GetCategories(ctx context.Context, exerciseID int64) ([]*domain.CategoryGroup, error) {
	categories := []*domain.CategoryGroup{}
	query := `SELECT ` + categoryColumns + ` FROM category_groups WHERE exercise_id = $1 ORDER BY display_index`
	if err := r.db.SelectContext(ctx, &categories, query, exerciseID); err != nil {
		r.logger.Error("Failed to get categories", zap.Int64("exercise_id", exerciseID), zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}

	if err := r.attachLevels(ctx, categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *exerciseRepository) GetCategory(
	ctx context.Context,
	exerciseID int64,
	supercat string,
) (*domain.CategoryGroup, error) {
	var category domain.CategoryGroup
	query := `SELECT ` + categoryColumns + ` FROM category_groups WHERE exercise_id = $1 AND supercat = $2`
	err := r.db.GetContext(ctx, &category, query, exerciseID, supercat)
	if err == sql.ErrNoRows {
		return nil, errors.ErrContentGeneration.WithMessage("exercise %d has no %s", exerciseID, supercat)
	}
	if err != nil {
		r.logger.Error("Failed to get category", zap.Int64("exercise_id", exerciseID), zap.String("supercat", supercat), zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}

	if err := r.attachLevels(ctx, []*domain.CategoryGroup{&category}); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *exerciseRepository) GetCategoryByID(ctx context.Context, id int64) (*domain.CategoryGroup, error) {
	var category domain.CategoryGroup
	err := r.db.GetContext(ctx, &category, `SELECT `+categoryColumns+` FROM category_groups WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, errors.ErrInvariantViolation.WithMessage("category %d not found", id)
	}
	if err != nil {
		r.logger.Error("Failed to get category by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}
	return &category, nil
}

const levelColumns = `id, category_id, level_index, passed, required_reminders`

func (r *exerciseRepository) GetLevel(ctx context.Context, levelID int64) (*domain.Level, error) {
	var level domain.Level
	err := r.db.GetContext(ctx, &level, `SELECT `+levelColumns+` FROM levels WHERE id = $1`, levelID)
	if err == sql.ErrNoRows {
		return nil, errors.ErrInvariantViolation.WithMessage("level %d not found", levelID)
	}
	if err != nil {
		r.logger.Error("Failed to get level", zap.Int64("level_id", levelID), zap.Error(err))
		return nil, errors.ErrDatabaseError.WithCause(err)
	}

	if err := r.attachEntityIDs(ctx, []*domain.Level{&level}); err != nil {
		return nil, err
	}
	return &level, nil
}

// attachLevels загружает уровни категорий по возрастанию индекса
func (r *exerciseRepository) attachLevels(ctx context.Context, categories []*domain.CategoryGroup) error {
	if len(categories) == 0 {
		return nil
	}

	ids := make([]int64, len(categories))
	byID := make(map[int64]*domain.CategoryGroup, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
		byID[c.ID] = c
		c.Levels = []*domain.Level{}
	}

	levels := []*domain.Level{}
	query := `SELECT ` + levelColumns + ` FROM levels WHERE category_id = ANY($1) ORDER BY category_id, level_index`
	if err := r.db.SelectContext(ctx, &levels, query, pq.Array(ids)); err != nil {
		r.logger.Error("Failed to get levels", zap.Error(err))
		return errors.ErrDatabaseError.WithCause(err)
	}

	for _, l := range levels {
		if c, ok := byID[l.CategoryID]; ok {
			c.Levels = append(c.Levels, l)
		}
	}

	return r.attachEntityIDs(ctx, levels)
}

// attachEntityIDs заполняет EntityIDs уровней по возрастанию ранга
func (r *exerciseRepository) attachEntityIDs(ctx context.Context, levels []*domain.Level) error {
	if len(levels) == 0 {
		return nil
	}

	ids := make([]int64, len(levels))
	byID := make(map[int64]*domain.Level, len(levels))
	for i, l := range levels {
		ids[i] = l.ID
		byID[l.ID] = l
		l.EntityIDs = []int64{}
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT level_id, id
		FROM geo_entities
		WHERE level_id = ANY($1)
		ORDER BY level_id, rank, source_id`,
		pq.Array(ids),
	)
	if err != nil {
		r.logger.Error("Failed to get level entities", zap.Error(err))
		return errors.ErrDatabaseError.WithCause(err)
	}
	defer rows.Close()

	for rows.Next() {
		var levelID, entityID int64
		if err := rows.Scan(&levelID, &entityID); err != nil {
			return errors.ErrDatabaseError.WithCause(err)
		}
		if l, ok := byID[levelID]; ok {
			l.EntityIDs = append(l.EntityIDs, entityID)
		}
	}
	return rows.Err()
}

func (r *exerciseRepository) CountLevels(ctx context.Context, exerciseID int64) (int, int, error) {
	var counts struct {
		Total  int `db:"total"`
		Passed int `db:"passed"`
	}
	err := r.db.GetContext(ctx, &counts, `
		SELECT COUNT(*) AS total, COUNT(*) FILTER (WHERE l.passed) AS passed
		FROM levels l
		JOIN category_groups c ON c.id = l.category_id
		WHERE c.exercise_id = $1`,
		exerciseID,
	)
	if err != nil {
		r.logger.Error("Failed to count levels", zap.Int64("exercise_id", exerciseID), zap.Error(err))
		return 0, 0, errors.ErrDatabaseError.WithCause(err)
	}
	return counts.Total, counts.Passed, nil
}

// ApplyQuizOutcome сохраняет счетчики и отмечает викторину завершенной
func (r *exerciseRepository) ApplyQuizOutcome(ctx context.Context, outcome *domain.QuizOutcome) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin transaction", zap.Error(err))
		return errors.ErrDatabaseError.WithCause(err)
	}
	defer tx.Rollback()

	if e := outcome.Exercise; e != nil {
		if _, err := tx.ExecContext(ctx, `
			UPDATE exercises SET required_reminders = $2, passed_since_reminder = $3 WHERE id = $1`,
			e.ID, e.RequiredReminders, e.PassedSinceReminder,
		); err != nil {
			r.logger.Error("Failed to update exercise", zap.Int64("exercise_id", e.ID), zap.Error(err))
			return errors.ErrDatabaseError.WithCause(err)
		}
	}

	if c := outcome.Category; c != nil {
		if _, err := tx.ExecContext(ctx, `
			UPDATE category_groups SET required_reminders = $2 WHERE id = $1`,
			c.ID, c.RequiredReminders,
		); err != nil {
			r.logger.Error("Failed to update category", zap.Int64("category_id", c.ID), zap.Error(err))
			return errors.ErrDatabaseError.WithCause(err)
		}
	}

	if l := outcome.Level; l != nil {
		if _, err := tx.ExecContext(ctx, `
			UPDATE levels SET passed = $2, required_reminders = $3 WHERE id = $1`,
			l.ID, l.Passed, l.RequiredReminders,
		); err != nil {
			r.logger.Error("Failed to update level", zap.Int64("level_id", l.ID), zap.Error(err))
			return errors.ErrDatabaseError.WithCause(err)
		}
	}

	if _, err := tx.ExecContext(ctx, `UPDATE running_quizzes SET finished = TRUE WHERE id = $1`, outcome.RunningQuizID); err != nil {
		r.logger.Error("Failed to finish quiz", zap.Int64("quiz_id", outcome.RunningQuizID), zap.Error(err))
		return errors.ErrDatabaseError.WithCause(err)
	}

	if err := tx.Commit(); err != nil {
		return errors.ErrDatabaseError.WithCause(err)
	}
	return nil
}
