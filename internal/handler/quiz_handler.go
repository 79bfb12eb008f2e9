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

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
)

// QuizHandler handles quiz-taking and leaderboard requests
type QuizHandler struct {
	quiz        service.QuizService
	leaderboard service.LeaderboardService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(quiz service.QuizService, leaderboard service.LeaderboardService) *QuizHandler {
	return &QuizHandler{
		quiz:        quiz,
		leaderboard: leaderboard,
	}
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description Returns a set of random approved questions without their answers
// @Tags quiz
// @Produce json
// @Success 200 {object} dto.QuizResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.quiz.GetQuiz(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// SubmitQuiz godoc
// @Summary Submit a quiz
// @Description Scores the answer sheet and stores the submission
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.SubmitQuizRequest true "Answer sheet"
// @Success 200 {object} dto.SubmitQuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	var req dto.SubmitQuizRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Get().Warn("Failed to parse quiz submission", zap.Error(err))
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.quiz.SubmitQuiz(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// CheckAnswer godoc
// @Summary Check one answer
// @Description Returns a score of 1 when the opted option is correct and 0 otherwise
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.CheckAnswerRequest true "Answer details"
// @Success 200 {object} dto.CheckAnswerResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /quiz/check [post]
func (h *QuizHandler) CheckAnswer(c *fiber.Ctx) error {
	var req dto.CheckAnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.quiz.CheckAnswer(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetLeaderboard godoc
// @Summary Get the leaderboard
// @Description Returns the top submissions by score, earliest first on ties
// @Tags leaderboard
// @Produce json
// @Param limit query int false "Number of entries, 0 for the default"
// @Success 200 {object} dto.LeaderboardResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /leaderboard [get]
func (h *QuizHandler) GetLeaderboard(c *fiber.Ctx) error {
	limit, _ := c.Locals(middleware.LocalLimit).(int)

	resp, err := h.leaderboard.TopPerformers(c.Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ExportLeaderboard godoc
// @Summary Export the leaderboard
// @Description Downloads the leaderboard as a spreadsheet or a PDF
// @Tags admin
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Security ApiKeyAuth
// @Param format query string false "xlsx or pdf" Enums(xlsx, pdf)
// @Param limit query int false "Number of entries, 0 for the default"
// @Success 200 {file} file
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /admin/leaderboard/export [get]
func (h *QuizHandler) ExportLeaderboard(c *fiber.Ctx) error {
	limit, _ := c.Locals(middleware.LocalLimit).(int)
	format, _ := c.Locals(middleware.LocalExportFormat).(string)

	var (
		data        []byte
		err         error
		contentType = contentTypeXLSX
	)
	if format == middleware.ExportFormatPDF {
		data, err = h.leaderboard.ExportPDF(c.Context(), limit)
		contentType = contentTypePDF
	} else {
		format = middleware.ExportFormatXLSX
		data, err = h.leaderboard.ExportXLSX(c.Context(), limit)
	}
	if err != nil {
		return err
	}

	c.Attachment("leaderboard." + format)
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}
