package middleware_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quiz-folio/internal/middleware"
	"quiz-folio/internal/util"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidationApp(path string, handlers ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Get(path, handlers...)
	return app
}

func get(t *testing.T, app *fiber.App, target string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestValidatePagination(t *testing.T) {
	vm := middleware.NewValidationMiddleware()
	app := newValidationApp("/contacts", vm.ValidatePagination(), func(c *fiber.Ctx) error {
		return c.SendString(fmt.Sprintf("%d/%d", c.Locals(middleware.LocalPage), c.Locals(middleware.LocalPageSize)))
	})

	tests := []struct {
		query  string
		status int
		body   string
	}{
		{"", http.StatusOK, "1/10"},
		{"?pageNumber=3&pageSize=25", http.StatusOK, "3/25"},
		{"?pageNumber=0&pageSize=-4", http.StatusOK, "1/10"},
		{"?pageSize=500", http.StatusOK, "1/100"},
		{"?pageNumber=two", http.StatusBadRequest, ""},
		{"?pageSize=1.5", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			status, body := get(t, app, "/contacts"+tt.query)
			assert.Equal(t, tt.status, status)
			if tt.status == http.StatusOK {
				assert.Equal(t, tt.body, body)
			}
		})
	}
}

func TestValidateApprovalLevel(t *testing.T) {
	vm := middleware.NewValidationMiddleware()
	app := newValidationApp("/questions", vm.ValidateApprovalLevel(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(middleware.LocalApprovalLevel).(string))
	})

	status, body := get(t, app, "/questions")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body)

	status, body = get(t, app, "/questions?approvalLevel=new")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "NEW", body)

	status, body = get(t, app, "/questions?approvalLevel=0")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "APPROVED", body)

	status, body = get(t, app, "/questions?approvalLevel=PENDING")
	assert.Equal(t, http.StatusBadRequest, status)

	var resp middleware.ValidationErrorResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, "approvalLevel", resp.Errors[0].Field)
}

func TestValidateID(t *testing.T) {
	vm := middleware.NewValidationMiddleware()
	app := newValidationApp("/questions/:id", vm.ValidateID(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(middleware.LocalID).(string))
	})

	id := util.NewULID()
	status, body := get(t, app, "/questions/"+id)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, id, body)

	status, _ = get(t, app, "/questions/not-a-ulid")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestValidateLeaderboardLimit(t *testing.T) {
	vm := middleware.NewValidationMiddleware()
	app := newValidationApp("/leaderboard", vm.ValidateLeaderboardLimit(), func(c *fiber.Ctx) error {
		return c.SendString(fmt.Sprint(c.Locals(middleware.LocalLimit)))
	})

	status, body := get(t, app, "/leaderboard")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "0", body)

	status, body = get(t, app, "/leaderboard?limit=5")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "5", body)

	status, _ = get(t, app, "/leaderboard?limit=101")
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = get(t, app, "/leaderboard?limit=abc")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestValidateExportFormat(t *testing.T) {
	vm := middleware.NewValidationMiddleware()
	app := newValidationApp("/export", vm.ValidateExportFormat(), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals(middleware.LocalExportFormat).(string))
	})

	status, body := get(t, app, "/export")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, middleware.ExportFormatXLSX, body)

	status, body = get(t, app, "/export?format=PDF")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, middleware.ExportFormatPDF, body)

	status, _ = get(t, app, "/export?format=csv")
	assert.Equal(t, http.StatusBadRequest, status)
}
