package handler

import (
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/middleware"
	"wiki-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Version is reported by the root endpoint.
const Version = "1.0.0"

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service    service.QuizService
	validation *middleware.ValidationMiddleware
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:    service,
		validation: middleware.NewValidationMiddleware(),
	}
}

// RegisterRoutes mounts the root endpoint and the /api group on app.
func (h *QuizHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.Root)

	api := app.Group("/api")
	api.Post("/quiz/generate", h.validation.ValidateGenerateQuizBody(), h.GenerateQuiz)
	api.Get("/quiz/:id", h.validation.ValidateQuizIDParam(), h.GetQuiz)
	api.Delete("/quiz/:id", h.validation.ValidateQuizIDParam(), h.DeleteQuiz)
	api.Get("/quizzes", h.ListQuizzes)
}

// Root godoc
// @Summary Service information
// @Description Returns the service name, version and available endpoints
// @Tags meta
// @Produce json
// @Success 200 {object} dto.ServiceInfoResponse
// @Router / [get]
func (h *QuizHandler) Root(c *fiber.Ctx) error {
	return c.JSON(dto.ServiceInfoResponse{
		Message: "Wiki Quiz Generator API",
		Version: Version,
		Endpoints: map[string]string{
			"generate": "POST /api/quiz/generate",
			"get_quiz": "GET /api/quiz/{id}",
			"history":  "GET /api/quizzes",
			"delete":   "DELETE /api/quiz/{id}",
			"docs":     "GET /swagger/index.html",
		},
	})
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a Wikipedia article
// @Description Fetches the article, generates multiple-choice questions and stores them. A URL that was already processed returns the stored quiz.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Article URL"
// @Success 200 {object} dto.QuizRecordResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/quiz/generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	req := c.Locals(middleware.LocalGenerateRequest).(*dto.GenerateQuizRequest)

	resp, err := h.service.GenerateQuiz(c.UserContext(), req.URL)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Tags quiz
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.QuizRecordResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/quiz/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	id := c.Locals(middleware.LocalQuizID).(int64)

	resp, err := h.service.GetQuiz(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ListQuizzes godoc
// @Summary Quiz history
// @Description Lists every stored quiz, newest first
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.QuizSummaryResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /api/quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	resp, err := h.service.ListQuizzes(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Tags quiz
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /api/quiz/{id} [delete]
func (h *QuizHandler) DeleteQuiz(c *fiber.Ctx) error {
	id := c.Locals(middleware.LocalQuizID).(int64)

	resp, err := h.service.DeleteQuiz(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
