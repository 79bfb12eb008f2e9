package middleware

import (
	"strconv"
	"strings"

	"quiz-folio/internal/domain"
	"quiz-folio/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by ValidationMiddleware.
const (
	LocalID            = "validated_id"
	LocalPage          = "validated_page"
	LocalPageSize      = "validated_page_size"
	LocalApprovalLevel = "validated_approval_level"
	LocalLimit         = "validated_limit"
	LocalExportFormat  = "validated_export_format"
)

const (
	maxLeaderboardLimit = 100

	ExportFormatXLSX = "xlsx"
	ExportFormatPDF  = "pdf"
)

// ValidationMiddleware validates path and query parameters before the handlers run
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateID checks the :id path parameter is a ULID.
func (vm *ValidationMiddleware) ValidateID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if errors := vm.validator.ValidateID("id", id); len(errors) > 0 {
			return errors
		}
		c.Locals(LocalID, id)
		return c.Next()
	}
}

// ValidatePagination parses pageNumber and pageSize. Missing values fall back to the defaults.
func (vm *ValidationMiddleware) ValidatePagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var errors domain.ValidationErrors

		page, ok := parseOptionalInt(c.Query("pageNumber"))
		if !ok {
			errors = append(errors, domain.NewInvalidFormatError("pageNumber", c.Query("pageNumber")))
		}
		size, ok := parseOptionalInt(c.Query("pageSize"))
		if !ok {
			errors = append(errors, domain.NewInvalidFormatError("pageSize", c.Query("pageSize")))
		}
		if len(errors) > 0 {
			return errors
		}

		window := domain.PageWindow{Page: page, PageSize: size}.Normalize()
		c.Locals(LocalPage, window.Page)
		c.Locals(LocalPageSize, window.PageSize)
		return c.Next()
	}
}

// ValidateApprovalLevel checks the optional approvalLevel filter.
func (vm *ValidationMiddleware) ValidateApprovalLevel() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Query("approvalLevel"))
		if raw == "" {
			c.Locals(LocalApprovalLevel, "")
			return c.Next()
		}

		level, err := domain.ParseApprovalLevel(raw)
		if err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("approvalLevel", raw)}
		}
		c.Locals(LocalApprovalLevel, level.String())
		return c.Next()
	}
}

// ValidateLeaderboardLimit checks the optional limit. Zero means the configured default.
func (vm *ValidationMiddleware) ValidateLeaderboardLimit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Query("limit")
		limit, ok := parseOptionalInt(raw)
		if !ok {
			return domain.ValidationErrors{domain.NewInvalidFormatError("limit", raw)}
		}
		if limit < 0 || limit > maxLeaderboardLimit {
			return domain.ValidationErrors{domain.NewOutOfRangeError("limit", limit, 0, maxLeaderboardLimit)}
		}
		c.Locals(LocalLimit, limit)
		return c.Next()
	}
}

// ValidateExportFormat accepts xlsx (the default) or pdf.
func (vm *ValidationMiddleware) ValidateExportFormat() fiber.Handler {
	return func(c *fiber.Ctx) error {
		format := strings.ToLower(strings.TrimSpace(c.Query("format", ExportFormatXLSX)))
		if format != ExportFormatXLSX && format != ExportFormatPDF {
			return domain.ValidationErrors{domain.NewInvalidFormatError("format", format)}
		}
		c.Locals(LocalExportFormat, format)
		return c.Next()
	}
}

// parseOptionalInt returns 0 for an empty string and false when raw is not a number.
func parseOptionalInt(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return n, true
}
