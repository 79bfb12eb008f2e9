package handler

import (
	"quiz-folio/internal/domain"
	"quiz-folio/internal/dto"
	"quiz-folio/internal/middleware"
	"quiz-folio/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

// HRContactHandler serves the HR outreach admin API
type HRContactHandler struct {
	service service.HRContactService
}

// NewHRContactHandler creates a new HRContactHandler instance
func NewHRContactHandler(service service.HRContactService) *HRContactHandler {
	return &HRContactHandler{service: service}
}

// parseHRContactRequest decodes the body and detaches its strings from the
// request buffer, which fasthttp reuses once the handler returns.
func parseHRContactRequest(c *fiber.Ctx) (*dto.HRContactRequest, error) {
	var req dto.HRContactRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, domain.NewInvalidInputError("Invalid request body")
	}
	req.HRName = utils.CopyString(req.HRName)
	req.HREmail = utils.CopyString(req.HREmail)
	req.Company = utils.CopyString(req.Company)
	req.JobTitle = utils.CopyString(req.JobTitle)
	req.Role = utils.CopyString(req.Role)
	req.JobURL = utils.CopyString(req.JobURL)
	req.AdvertisedOn = utils.CopyString(req.AdvertisedOn)
	req.EmailSubject = utils.CopyString(req.EmailSubject)
	return &req, nil
}

// SearchHRContacts godoc
// @Summary Search HR contacts
// @Description Case-insensitive search over id, name, company, job title, created date and advertised-on
// @Tags hr-contacts
// @Produce json
// @Security ApiKeyAuth
// @Param searchText query string false "Search text"
// @Param pageNumber query int false "1-based page"
// @Param pageSize query int false "Page size, at most 100"
// @Success 200 {object} dto.HRContactPageResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /admin/hr-contacts [get]
func (h *HRContactHandler) SearchHRContacts(c *fiber.Ctx) error {
	page, _ := c.Locals(middleware.LocalPage).(int)
	pageSize, _ := c.Locals(middleware.LocalPageSize).(int)

	resp, err := h.service.Search(c.Context(), c.Query("searchText"), page, pageSize)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CreateHRContact godoc
// @Summary Create an HR contact
// @Tags hr-contacts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.HRContactRequest true "HR contact"
// @Success 201 {object} dto.HRContactResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Router /admin/hr-contacts [post]
func (h *HRContactHandler) CreateHRContact(c *fiber.Ctx) error {
	req, err := parseHRContactRequest(c)
	if err != nil {
		return err
	}

	resp, err := h.service.Create(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// SaveAndSendResume godoc
// @Summary Create an HR contact and send the resume
// @Description Stores the contact and queues the resume mail. With wait=true the response carries the job outcome
// @Tags hr-contacts
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.HRContactRequest true "HR contact"
// @Success 202 {object} dto.SendResumeResponse
// @Success 200 {object} dto.SendResumeResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /admin/hr-contacts/send [post]
func (h *HRContactHandler) SaveAndSendResume(c *fiber.Ctx) error {
	req, err := parseHRContactRequest(c)
	if err != nil {
		return err
	}
	if c.QueryBool("wait") {
		req.Wait = true
	}

	resp, err := h.service.SaveAndSendResume(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(sendStatus(resp)).JSON(resp)
}

// GetHRContact godoc
// @Summary Get an HR contact with its send history
// @Tags hr-contacts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "HR contact ID"
// @Success 200 {object} dto.HRContactResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/hr-contacts/{id} [get]
func (h *HRContactHandler) GetHRContact(c *fiber.Ctx) error {
	resp, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// UpdateHRContact godoc
// @Summary Update an HR contact
// @Description Overwrites only the non-empty fields
// @Tags hr-contacts
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "HR contact ID"
// @Param request body dto.HRContactRequest true "Fields to change"
// @Success 200 {object} dto.HRContactResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/hr-contacts/{id} [put]
func (h *HRContactHandler) UpdateHRContact(c *fiber.Ctx) error {
	req, err := parseHRContactRequest(c)
	if err != nil {
		return err
	}

	resp, err := h.service.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteHRContact godoc
// @Summary Delete an HR contact and its send history
// @Tags hr-contacts
// @Security ApiKeyAuth
// @Param id path string true "HR contact ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /admin/hr-contacts/{id} [delete]
func (h *HRContactHandler) DeleteHRContact(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SendResume godoc
// @Summary Send the resume to an existing HR contact
// @Tags hr-contacts
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "HR contact ID"
// @Param wait query bool false "Wait for the mail job to finish"
// @Success 202 {object} dto.SendResumeResponse
// @Success 200 {object} dto.SendResumeResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /admin/hr-contacts/{id}/send [post]
func (h *HRContactHandler) SendResume(c *fiber.Ctx) error {
	resp, err := h.service.SendResume(c.Context(), c.Params("id"), c.QueryBool("wait"))
	if err != nil {
		return err
	}
	return c.Status(sendStatus(resp)).JSON(resp)
}

// ExportHRContacts godoc
// @Summary Export HR contacts
// @Description Downloads every contact matching the search text as a spreadsheet
// @Tags hr-contacts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security ApiKeyAuth
// @Param searchText query string false "Search text"
// @Success 200 {file} file
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/hr-contacts/export [get]
func (h *HRContactHandler) ExportHRContacts(c *fiber.Ctx) error {
	data, err := h.service.ExportXLSX(c.Context(), c.Query("searchText"))
	if err != nil {
		return err
	}

	c.Attachment("hr-contacts.xlsx")
	c.Set(fiber.HeaderContentType, contentTypeXLSX)
	return c.Send(data)
}

// sendStatus is 202 while the job is still queued and 200 once it has an outcome.
func sendStatus(resp *dto.SendResumeResponse) int {
	if resp.Status == dto.MailJobQueued {
		return fiber.StatusAccepted
	}
	return fiber.StatusOK
}
