package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	response string
	err      error

	calls   int
	prompt  string
	options llms.CallOptions
}

func (m *fakeModel) Call(_ context.Context, prompt string, options ...llms.CallOption) (string, error) {
	m.calls++
	m.prompt = prompt
	m.options = llms.CallOptions{}
	for _, opt := range options {
		opt(&m.options)
	}
	return m.response, m.err
}

func testArticle() domain.ExtractedArticle {
	return domain.ExtractedArticle{
		URL:   "https://en.wikipedia.org/wiki/Alan_Turing",
		Title: "Alan Turing",
		Body:  strings.Repeat("Alan Turing was an English mathematician and computer scientist. ", 10),
	}
}

func validResponse(n int) string {
	qs := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		qs = append(qs, fmt.Sprintf(
			`{"question": "Q%d?", "options": ["a%d", "b", "c", "d"], "answer": "a%d", "difficulty": "medium", "explanation": "x"}`,
			i, i, i))
	}
	return "```json\n{\"questions\": [" + strings.Join(qs, ",") + "], \"related_topics\": [\"Enigma machine\"]}\n```"
}

var testQuizConfig = config.QuizConfig{DefaultQuestions: 7, MinQuestions: 5, MaxQuestions: 10}

func TestGeminiQuizGenerator_GenerateQuiz(t *testing.T) {
	model := &fakeModel{response: validResponse(7)}
	gen := NewQuizGenerator(model, testQuizConfig)

	quiz, err := gen.GenerateQuiz(context.Background(), testArticle(), 7)
	require.NoError(t, err)
	assert.Len(t, quiz.Questions, 7)
	assert.Equal(t, []string{"Enigma machine"}, quiz.RelatedTopics)

	assert.Equal(t, 1, model.calls)
	assert.Contains(t, model.prompt, "Article Title: Alan Turing")
	assert.Contains(t, model.prompt, "1. Create 7 multiple-choice questions")
	assert.Contains(t, model.prompt, testArticle().Body)

	assert.InDelta(t, 0.7, model.options.Temperature, 1e-9)
	assert.InDelta(t, 0.95, model.options.TopP, 1e-9)
	assert.Equal(t, 40, model.options.TopK)
	assert.Equal(t, 8192, model.options.MaxTokens)
}

func TestGeminiQuizGenerator_ClampsRequestedCount(t *testing.T) {
	tests := []struct {
		requested int
		want      string
	}{
		{requested: 2, want: "Create 5 multiple-choice questions"},
		{requested: 8, want: "Create 8 multiple-choice questions"},
		{requested: 25, want: "Create 10 multiple-choice questions"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.requested), func(t *testing.T) {
			model := &fakeModel{response: validResponse(3)}
			gen := NewQuizGenerator(model, testQuizConfig)

			quiz, err := gen.GenerateQuiz(context.Background(), testArticle(), tt.requested)
			require.NoError(t, err)
			assert.Len(t, quiz.Questions, 3)
			assert.Contains(t, model.prompt, tt.want)
		})
	}
}

func TestGeminiQuizGenerator_Errors(t *testing.T) {
	tests := []struct {
		name     string
		model    *fakeModel
		wantCode domain.ErrorCode
	}{
		{
			name:     "model failure",
			model:    &fakeModel{err: errors.New("quota exceeded")},
			wantCode: domain.ErrLLMServiceError,
		},
		{
			name:     "unparseable reply",
			model:    &fakeModel{response: "I'm sorry, I can't do that."},
			wantCode: domain.ErrModelFormat,
		},
		{
			name:     "too few valid questions",
			model:    &fakeModel{response: validResponse(2)},
			wantCode: domain.ErrInsufficientQuestions,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := NewQuizGenerator(tt.model, testQuizConfig)
			quiz, err := gen.GenerateQuiz(context.Background(), testArticle(), 7)
			require.Error(t, err)
			assert.Nil(t, quiz)
			assert.Equal(t, tt.wantCode, domain.CodeOf(err))
			assert.Equal(t, 1, tt.model.calls, "model must not be retried")
		})
	}
}

func TestNewGeminiQuizGenerator_RequiresCredentials(t *testing.T) {
	_, err := NewGeminiQuizGenerator(context.Background(), config.LLMConfig{Model: "gemini-2.5-flash"}, testQuizConfig)
	assert.ErrorContains(t, err, "API key cannot be empty")

	_, err = NewGeminiQuizGenerator(context.Background(), config.LLMConfig{APIKey: "key"}, testQuizConfig)
	assert.ErrorContains(t, err, "model name cannot be empty")
}

func TestNewQuizGenerator_DefaultBounds(t *testing.T) {
	gen := NewQuizGenerator(&fakeModel{}, config.QuizConfig{})
	assert.Equal(t, 5, gen.minQuestions)
	assert.Equal(t, 10, gen.maxQuestions)
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	a := BuildPrompt("Title", "Body text", 6)
	b := BuildPrompt("Title", "Body text", 6)
	assert.Equal(t, a, b)
	assert.Contains(t, a, "Create 6 multiple-choice questions")
	assert.NotContains(t, a, "%!")
}
