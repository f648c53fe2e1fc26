package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/geoquiz-service/internal/pkg/errors"
	"github.com/geoquiz-service/internal/pkg/utils"
	"github.com/geoquiz-service/internal/pkg/validator"
	"github.com/geoquiz-service/internal/usecase/dto"
)

// ExerciseHandler - обработчик упражнений и задач построения
type ExerciseHandler struct {
	exerciseUC ExerciseService
	buildJobUC BuildJobService
	logger     *zap.Logger
}

// NewExerciseHandler - создание нового ExerciseHandler.
// buildJobUC может быть nil, тогда асинхронное построение недоступно.
func NewExerciseHandler(exerciseUC ExerciseService, buildJobUC BuildJobService, logger *zap.Logger) *ExerciseHandler {
	return &ExerciseHandler{
		exerciseUC: exerciseUC,
		buildJobUC: buildJobUC,
		logger:     logger,
	}
}

// BuildExercise godoc
// @Summary Построение упражнения
// @Description Загружает объекты OpenStreetMap внутри рабочей области, классифицирует, объединяет одноименные объекты и разбивает их на уровни. Выполняется синхронно.
// @Tags Exercises
// @Accept json
// @Produce json
// @Param request body dto.BuildExerciseRequest true "Название и полигон рабочей области"
// @Success 201 {object} utils.SuccessResponse{data=dto.BuildExerciseResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 422 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Failure 503 {object} utils.ErrorResponse
// @Router /api/v1/exercises [post]
func (h *ExerciseHandler) BuildExercise(c *fiber.Ctx) error {
	var req dto.BuildExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	start := time.Now()
	result, err := h.exerciseUC.BuildExercise(c.Context(), req)
	if err != nil {
		h.logger.Warn("Exercise build failed", zap.String("name", req.Name), zap.Error(err))
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse{
		Data: result,
		Meta: &utils.Meta{
			Total:    result.EntityCount,
			TimeMSec: float64(time.Since(start).Microseconds()) / 1000,
		},
	})
}

// EnqueueBuild godoc
// @Summary Асинхронное построение упражнения
// @Description Ставит задачу построения в очередь Redis Stream. Статус задачи доступен по job_id.
// @Tags Exercises
// @Accept json
// @Produce json
// @Param request body dto.BuildExerciseRequest true "Название и полигон рабочей области"
// @Success 202 {object} utils.SuccessResponse{data=dto.BuildJobResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/exercises/jobs [post]
func (h *ExerciseHandler) EnqueueBuild(c *fiber.Ctx) error {
	if h.buildJobUC == nil {
		return utils.SendError(c, errors.ErrInternalServer.WithMessage("build jobs are disabled"))
	}

	var req dto.BuildExerciseRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	job, err := h.buildJobUC.Enqueue(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(utils.SuccessResponse{Data: job})
}

// GetBuildJob godoc
// @Summary Статус задачи построения
// @Tags Exercises
// @Produce json
// @Param id path string true "ID задачи (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=domain.BuildJobStatus}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/exercises/jobs/{id} [get]
func (h *ExerciseHandler) GetBuildJob(c *fiber.Ctx) error {
	if h.buildJobUC == nil {
		return utils.SendError(c, errors.ErrJobNotFound)
	}

	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithMessage("invalid job id"))
	}

	status, err := h.buildJobUC.Status(c.Context(), jobID)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, status, nil)
}

// ListExercises godoc
// @Summary Список упражнений
// @Tags Exercises
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.ExerciseResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/exercises [get]
func (h *ExerciseHandler) ListExercises(c *fiber.Ctx) error {
	exercises, err := h.exerciseUC.ListExercises(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, exercises, &utils.Meta{Total: len(exercises)})
}

// GetExercise godoc
// @Summary Упражнение по ID
// @Tags Exercises
// @Produce json
// @Param id path int true "ID упражнения"
// @Success 200 {object} utils.SuccessResponse{data=dto.ExerciseResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *fiber.Ctx) error {
	id, err := exerciseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	exercise, err := h.exerciseUC.GetExercise(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, exercise, nil)
}

// DeleteExercise godoc
// @Summary Удаление упражнения
// @Description Удаляет упражнение вместе с категориями, уровнями, объектами и викториной.
// @Tags Exercises
// @Param id path int true "ID упражнения"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *fiber.Ctx) error {
	id, err := exerciseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.exerciseUC.DeleteExercise(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// GetProgress godoc
// @Summary Прогресс упражнения
// @Description Процент пройденных уровней. Значение кэшируется в Redis.
// @Tags Exercises
// @Produce json
// @Param id path int true "ID упражнения"
// @Success 200 {object} utils.SuccessResponse{data=domain.Progress}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/exercises/{id}/progress [get]
func (h *ExerciseHandler) GetProgress(c *fiber.Ctx) error {
	id, err := exerciseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	progress, err := h.exerciseUC.Progress(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, progress, nil)
}

// GetCategories godoc
// @Summary Категории упражнения
// @Description Надкатегории в порядке отображения, с уровнями и счетчиками напоминаний.
// @Tags Exercises
// @Produce json
// @Param id path int true "ID упражнения"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.CategoryResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/exercises/{id}/categories [get]
func (h *ExerciseHandler) GetCategories(c *fiber.Ctx) error {
	id, err := exerciseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	categories, err := h.exerciseUC.Categories(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, categories, &utils.Meta{Total: len(categories)})
}

// SearchEntities godoc
// @Summary Поиск объектов по названию
// @Description Регистронезависимое точное совпадение названия внутри упражнения.
// @Tags Exercises
// @Produce json
// @Param id path int true "ID упражнения"
// @Param name query string true "Название объекта"
// @Success 200 {object} utils.SuccessResponse{data=[]dto.EntityResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/exercises/{id}/entities [get]
func (h *ExerciseHandler) SearchEntities(c *fiber.Ctx) error {
	id, err := exerciseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.EntitySearchRequest
	if err := c.QueryParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithCause(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	entities, err := h.exerciseUC.SearchEntities(c.Context(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, entities, &utils.Meta{Total: len(entities)})
}
