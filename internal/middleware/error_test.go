package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz-folio/internal/domain"
	"quiz-folio/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorApp(err error) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get("/", func(c *fiber.Ctx) error {
		return err
	})
	return app
}

func doGet(t *testing.T, app *fiber.App) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestErrorHandler_DomainCodes(t *testing.T) {
	tests := []struct {
		err    *domain.DomainError
		status int
	}{
		{domain.NewNotFoundError("missing"), http.StatusNotFound},
		{domain.NewQuestionNotFoundError("q1"), http.StatusNotFound},
		{domain.NewHRContactNotFoundError("h1"), http.StatusNotFound},
		{domain.NewInvalidInputError("bad"), http.StatusBadRequest},
		{domain.NewValidationError("bad"), http.StatusBadRequest},
		{domain.NewInvalidCategoryError("POETRY"), http.StatusBadRequest},
		{domain.NewInvalidApprovalLevelError("MAYBE"), http.StatusBadRequest},
		{domain.NewUnauthorizedError("no"), http.StatusUnauthorized},
		{domain.NewError(domain.CodeConflict, "dup", nil), http.StatusConflict},
		{domain.NewMailDeliveryError("smtp down", errors.New("dial tcp")), http.StatusBadGateway},
		{domain.NewMailQueueFullError(), http.StatusServiceUnavailable},
		{domain.NewQuestionGenerationError(errors.New("llm")), http.StatusServiceUnavailable},
		{domain.NewInternalError("boom", errors.New("db")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			status, body := doGet(t, newErrorApp(tt.err))
			assert.Equal(t, tt.status, status)

			var resp middleware.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &resp))
			assert.Equal(t, string(tt.err.Code), resp.Code)
			assert.Equal(t, tt.err.Message, resp.Message)
			assert.Equal(t, tt.status, resp.Status)
		})
	}
}

func TestErrorHandler_WrappedDomainErrorKeepsContext(t *testing.T) {
	err := fmt.Errorf("handler: %w", domain.NewHRContactNotFoundError("01ABC").WithContext("id", "01ABC"))

	status, body := doGet(t, newErrorApp(err))
	assert.Equal(t, http.StatusNotFound, status)

	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, string(domain.CodeHRContactNotFound), resp.Code)
	assert.Equal(t, "01ABC", resp.Details["id"])
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	err := domain.ValidationErrors{
		domain.NewMissingFieldError("hrName"),
		domain.NewInvalidFormatError("hrEmail", "nope"),
	}

	status, body := doGet(t, newErrorApp(err))
	assert.Equal(t, http.StatusBadRequest, status)

	var resp middleware.ValidationErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, string(domain.CodeValidation), resp.Code)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, "hrName can't be null or empty", resp.Errors[0].Message)
	assert.Equal(t, "hrEmail", resp.Errors[1].Field)
}

func TestErrorHandler_FiberError(t *testing.T) {
	status, body := doGet(t, newErrorApp(fiber.NewError(fiber.StatusMethodNotAllowed, "nope")))
	assert.Equal(t, http.StatusMethodNotAllowed, status)

	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "HTTP_ERROR", resp.Code)
}

func TestErrorHandler_UnknownError(t *testing.T) {
	status, body := doGet(t, newErrorApp(errors.New("raw driver failure")))
	assert.Equal(t, http.StatusInternalServerError, status)

	var resp middleware.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, string(domain.CodeInternal), resp.Code)
	assert.Equal(t, "Internal server error", resp.Message)
}
