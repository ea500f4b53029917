package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/handler"

	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type emptyQuizService struct{}

func (emptyQuizService) GenerateQuiz(context.Context, string) (*dto.QuizRecordResponse, error) {
	return nil, nil
}

func (emptyQuizService) GetQuiz(context.Context, int64) (*dto.QuizRecordResponse, error) {
	return nil, nil
}

func (emptyQuizService) ListQuizzes(context.Context) ([]dto.QuizSummaryResponse, error) {
	return []dto.QuizSummaryResponse{}, nil
}

func (emptyQuizService) DeleteQuiz(context.Context, int64) (*dto.MessageResponse, error) {
	return nil, nil
}

func testApp() *fiber.App {
	return newApp(config.ServerConfig{
		ReadTimeout:    time.Second,
		WriteTimeout:   time.Second,
		BodyLimit:      1024 * 1024,
		AllowedOrigins: []string{"http://localhost:5173"},
	}, handler.NewQuizHandler(emptyQuizService{}))
}

func TestNewApp_RequestIDAndCORS(t *testing.T) {
	app := testApp()

	req := httptest.NewRequest(http.MethodGet, "/api/quizzes", nil)
	req.Header.Set(fiber.HeaderOrigin, "http://localhost:5173")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	_, err = ulid.ParseStrict(resp.Header.Get(fiber.HeaderXRequestID))
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:5173", resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

func TestNewApp_MetricsEndpoint(t *testing.T) {
	app := testApp()

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "wikiquiz_http_requests_total")
}
