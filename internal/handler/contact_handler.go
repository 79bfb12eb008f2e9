package handler

import (
	"quiz-folio/internal/domain"
	"quiz-folio/internal/dto"
	"quiz-folio/internal/middleware"
	"quiz-folio/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ContactHandler handles the public contact form and its admin listing
type ContactHandler struct {
	service service.ContactService
}

// NewContactHandler creates a new ContactHandler instance
func NewContactHandler(service service.ContactService) *ContactHandler {
	return &ContactHandler{service: service}
}

// SubmitContactQuery godoc
// @Summary Submit the contact form
// @Description Stores the query and queues a thank-you mail and an admin notification
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.ContactQueryRequest true "Contact form"
// @Success 201 {object} dto.ContactQueryResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /contact [post]
func (h *ContactHandler) SubmitContactQuery(c *fiber.Ctx) error {
	var req dto.ContactQueryRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.SubmitContactQuery(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// ListContactQueries godoc
// @Summary List contact queries
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param pageNumber query int false "1-based page"
// @Param pageSize query int false "Page size, at most 100"
// @Success 200 {object} dto.ContactQueryPageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /admin/contact-queries [get]
func (h *ContactHandler) ListContactQueries(c *fiber.Ctx) error {
	page, _ := c.Locals(middleware.LocalPage).(int)
	pageSize, _ := c.Locals(middleware.LocalPageSize).(int)

	resp, err := h.service.ListContactQueries(c.Context(), page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
