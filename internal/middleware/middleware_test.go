package middleware

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(RequestLogger())
	app.Get("/fail", handler)
	return app
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, v), string(body))
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	tests := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.NewInvalidInputError("bad url"), http.StatusBadRequest, "INVALID_INPUT"},
		{domain.NewFetchFailedError("https://en.wikipedia.org/wiki/X", errors.New("404")), http.StatusBadRequest, "FETCH_FAILED"},
		{domain.NewInsufficientContentError(10, 200), http.StatusBadRequest, "INSUFFICIENT_CONTENT"},
		{domain.NewInsufficientQuestionsError(2, 3), http.StatusInternalServerError, "INSUFFICIENT_QUESTIONS"},
		{domain.NewModelFormatError("no object", nil), http.StatusInternalServerError, "MODEL_FORMAT_ERROR"},
		{domain.NewLLMServiceError(errors.New("quota")), http.StatusInternalServerError, "LLM_SERVICE_ERROR"},
		{domain.NewQuizNotFoundError(3), http.StatusNotFound, "QUIZ_NOT_FOUND"},
		{domain.NewInternalError("db down", errors.New("dial tcp")), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.wantCode, func(t *testing.T) {
			app := newTestApp(func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			var body ErrorResponse
			decodeBody(t, resp, &body)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.NotEmpty(t, body.Detail)
		})
	}
}

func TestErrorHandler_ServerErrorsHideContext(t *testing.T) {
	app := newTestApp(func(c *fiber.Ctx) error {
		return domain.NewInternalError("save failed", nil).WithContext("dsn", "postgres://secret")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body ErrorResponse
	decodeBody(t, resp, &body)
	assert.Nil(t, body.Context)
}

func TestErrorHandler_UnknownAndFiberErrors(t *testing.T) {
	app := newTestApp(func(c *fiber.Ctx) error { return errors.New("boom") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	var body ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "Internal server error", body.Detail)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	decodeBody(t, resp, &body)
	assert.Equal(t, "HTTP_ERROR", body.Code)
}

func TestValidationMiddleware_GenerateBody(t *testing.T) {
	vm := NewValidationMiddleware()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Post("/generate", vm.ValidateGenerateQuizBody(), func(c *fiber.Ctx) error {
		req := c.Locals(LocalGenerateRequest).(*dto.GenerateQuizRequest)
		return c.SendString(req.URL)
	})

	send := func(body string) *http.Response {
		req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(body))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		resp, err := app.Test(req)
		require.NoError(t, err)
		return resp
	}

	resp := send(`{"url":"  https://en.wikipedia.org/wiki/Alan_Turing "}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	got, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Alan_Turing", string(got))

	for _, body := range []string{`{}`, `{"url":"https://fr.wikipedia.org/wiki/Paris"}`, `{"url":`} {
		resp := send(body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
		var verr ValidationErrorResponse
		decodeBody(t, resp, &verr)
		assert.Equal(t, "VALIDATION_ERROR", verr.Code)
		assert.Len(t, verr.Errors, 1)
	}
}

func TestValidationMiddleware_QuizIDParam(t *testing.T) {
	vm := NewValidationMiddleware()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Get("/quiz/:id", vm.ValidateQuizIDParam(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": c.Locals(LocalQuizID).(int64)})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/quiz/17", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/quiz/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
