package handler

import (
	"quiz-folio/internal/domain"
	"quiz-folio/internal/dto"
	"quiz-folio/internal/logger"
	"quiz-folio/internal/middleware"
	"quiz-folio/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuestionHandler serves the admin question workflow
type QuestionHandler struct {
	service service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(service service.QuestionService) *QuestionHandler {
	return &QuestionHandler{service: service}
}

// ListQuestions godoc
// @Summary List questions
// @Description Lists questions, optionally filtered by approval level
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param approvalLevel query string false "APPROVED, NEW, DISCARD or EDIT"
// @Success 200 {object} dto.QuestionListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /admin/questions [get]
func (h *QuestionHandler) ListQuestions(c *fiber.Ctx) error {
	level, _ := c.Locals(middleware.LocalApprovalLevel).(string)

	resp, err := h.service.ListQuestions(c.Context(), level)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuestion godoc
// @Summary Get a question
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{id} [get]
func (h *QuestionHandler) GetQuestion(c *fiber.Ctx) error {
	resp, err := h.service.GetQuestion(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateQuestion godoc
// @Summary Create a question
// @Description Stores a new question with approval level NEW
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.QuestionRequest true "Question"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /admin/questions [post]
func (h *QuestionHandler) CreateQuestion(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.CreateQuestion(c.Context(), &req)
	if err != nil {
		return err
	}
	logger.Get().Info("Question created by admin",
		zap.String("questionID", resp.ID),
		zap.String("admin", middleware.AdminEmail(c)))
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UpdateQuestion godoc
// @Summary Update a question
// @Description Overwrites a question. A question in EDIT goes back to NEW
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Question ID"
// @Param request body dto.QuestionRequest true "Question"
// @Success 200 {object} dto.QuestionResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{id} [put]
func (h *QuestionHandler) UpdateQuestion(c *fiber.Ctx) error {
	var req dto.QuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.UpdateQuestion(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DiscardQuestion godoc
// @Summary Discard a question
// @Description Moves the question to DISCARD. The row is kept
// @Tags admin
// @Security ApiKeyAuth
// @Param id path string true "Question ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{id} [delete]
func (h *QuestionHandler) DiscardQuestion(c *fiber.Ctx) error {
	if err := h.service.DiscardQuestion(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ChangeApprovalLevel godoc
// @Summary Change the approval level
// @Description Moves a question to another approval level and returns where the admin UI goes next
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Question ID"
// @Param request body dto.ChangeApprovalRequest true "Target level"
// @Success 200 {object} dto.ChangeApprovalResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/questions/{id}/approval [post]
func (h *QuestionHandler) ChangeApprovalLevel(c *fiber.Ctx) error {
	var req dto.ChangeApprovalRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.ChangeApprovalLevel(c.Context(), c.Params("id"), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GenerateQuestions godoc
// @Summary Draft questions with the LLM
// @Description Drafts questions for one category and stores them as NEW
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.GenerateQuestionsRequest true "Category and count"
// @Success 201 {object} dto.QuestionListResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /admin/questions/generate [post]
func (h *QuestionHandler) GenerateQuestions(c *fiber.Ctx) error {
	var req dto.GenerateQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.GenerateDrafts(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}
