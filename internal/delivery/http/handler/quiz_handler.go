package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/geoquiz-service/internal/pkg/utils"
	"github.com/geoquiz-service/internal/pkg/validator"
	"github.com/geoquiz-service/internal/usecase/dto"
)

// QuizHandler - обработчик викторины упражнения
type QuizHandler struct {
	quizUC QuizService
	logger *zap.Logger
}

// NewQuizHandler - создание нового QuizHandler
func NewQuizHandler(quizUC QuizService, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		quizUC: quizUC,
		logger: logger,
	}
}

// StartQuiz godoc
// @Summary Новая викторина
// @Description Генерирует вопросы и заменяет текущую викторину, даже если она начата в другом упражнении. Для level и category_reminder нужна надкатегория.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param id path int true "ID упражнения"
// @Param request body dto.StartQuizRequest true "Тип викторины"
// @Success 201 {object} utils.SuccessResponse{data=dto.QuizResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/exercises/{id}/quiz [post]
func (h *QuizHandler) StartQuiz(c *fiber.Ctx) error {
	id, err := exerciseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.StartQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	quiz, err := h.quizUC.StartQuiz(c.Context(), id, req)
	if err != nil {
		h.logger.Warn("Quiz creation failed",
			zap.Int64("exercise_id", id),
			zap.String("type", req.Type),
			zap.Error(err),
		)
		return utils.SendError(c, err)
	}

	return utils.SendCreated(c, quiz)
}

// GetQuiz godoc
// @Summary Текущая викторина
// @Tags Quiz
// @Produce json
// @Param id path int true "ID упражнения"
// @Success 200 {object} utils.SuccessResponse{data=dto.QuizResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/exercises/{id}/quiz [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	id, err := exerciseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	quiz, err := h.quizUC.GetQuiz(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, quiz, nil)
}

// DeleteQuiz godoc
// @Summary Удаление викторины
// @Tags Quiz
// @Param id path int true "ID упражнения"
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/exercises/{id}/quiz [delete]
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	id, err := exerciseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	if err := h.quizUC.DeleteQuiz(c.Context(), id); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// NextQuestion godoc
// @Summary Следующий вопрос
// @Description Выдает следующий вопрос викторины. Если вопросов не осталось, отвечает 204.
// @Tags Quiz
// @Produce json
// @Param id path int true "ID упражнения"
// @Success 200 {object} utils.SuccessResponse{data=dto.QuestionResponse}
// @Success 204
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/exercises/{id}/quiz/next [post]
func (h *QuizHandler) NextQuestion(c *fiber.Ctx) error {
	id, err := exerciseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	question, err := h.quizUC.NextQuestion(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	if question == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}

	return utils.SendSuccess(c, question, nil)
}

// ReportAnswer godoc
// @Summary Ответ на вопрос
// @Description Записывает результат ответа. Повторный ответ на тот же вопрос игнорируется.
// @Tags Quiz
// @Accept json
// @Param id path int true "ID упражнения"
// @Param request body dto.ReportAnswerRequest true "Результат ответа"
// @Success 204
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/exercises/{id}/quiz/answers [post]
func (h *QuizHandler) ReportAnswer(c *fiber.Ctx) error {
	id, err := exerciseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	var req dto.ReportAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, invalidBody(err))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	if err := h.quizUC.ReportAnswer(c.Context(), id, req); err != nil {
		return utils.SendError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// FinishQuiz godoc
// @Summary Завершение викторины
// @Description Подводит итог: процент верных ответов, пройден ли уровень и сколько напоминаний требуется.
// @Tags Quiz
// @Produce json
// @Param id path int true "ID упражнения"
// @Success 200 {object} utils.SuccessResponse{data=domain.QuizFeedback}
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/exercises/{id}/quiz/finish [post]
func (h *QuizHandler) FinishQuiz(c *fiber.Ctx) error {
	id, err := exerciseID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	feedback, err := h.quizUC.FinishQuiz(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	h.logger.Info("Quiz finished",
		zap.Int64("exercise_id", id),
		zap.String("type", feedback.QuizType),
		zap.Float64("success_rate", feedback.SuccessRate),
		zap.Bool("level_passed", feedback.LevelPassed),
	)

	return utils.SendSuccess(c, feedback, nil)
}
