package quizgen

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"wiki-quiz/internal/config"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/metrics"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// Sampling parameters sent with every generation request.
const (
	temperature = 0.7
	topP        = 0.95
	topK        = 40
	maxTokens   = 8192
)

// TextModel is the single-prompt completion call used for generation.
// *googleai.GoogleAI satisfies it.
type TextModel interface {
	Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)
}

// GeminiQuizGenerator implements domain.QuizGenerationService on a Gemini text model.
type GeminiQuizGenerator struct {
	model        TextModel
	minQuestions int
	maxQuestions int
}

// NewGeminiQuizGenerator connects to Google AI with the configured key and model.
func NewGeminiQuizGenerator(ctx context.Context, llmCfg config.LLMConfig, quizCfg config.QuizConfig) (*GeminiQuizGenerator, error) {
	if llmCfg.APIKey == "" {
		return nil, errors.New("gemini API key cannot be empty")
	}
	if llmCfg.Model == "" {
		return nil, errors.New("gemini model name cannot be empty")
	}

	client, err := googleai.New(ctx,
		googleai.WithAPIKey(llmCfg.APIKey),
		googleai.WithDefaultModel(llmCfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}

	logger.Get().Info("Initialized Gemini quiz generator", zap.String("model", llmCfg.Model))
	return NewQuizGenerator(client, quizCfg), nil
}

// NewQuizGenerator wraps an existing model. Zero question bounds fall back to 5 and 10.
func NewQuizGenerator(model TextModel, quizCfg config.QuizConfig) *GeminiQuizGenerator {
	minQ, maxQ := quizCfg.MinQuestions, quizCfg.MaxQuestions
	if minQ <= 0 {
		minQ = 5
	}
	if maxQ < minQ {
		maxQ = max(minQ, 10)
	}
	return &GeminiQuizGenerator{model: model, minQuestions: minQ, maxQuestions: maxQ}
}

// GenerateQuiz makes exactly one model call. The call is bounded only by ctx and is never retried.
func (g *GeminiQuizGenerator) GenerateQuiz(ctx context.Context, article domain.ExtractedArticle, numQuestions int) (*domain.GeneratedQuiz, error) {
	l := logger.Get()
	count := ClampQuestionCount(numQuestions, g.minQuestions, g.maxQuestions)
	prompt := BuildPrompt(article.Title, article.Body, count)

	l.Info("Sending prompt to model",
		zap.String("url", article.URL),
		zap.Int("question_count", count),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
	)

	start := time.Now()
	raw, err := g.model.Call(ctx, prompt,
		llms.WithTemperature(temperature),
		llms.WithTopP(topP),
		llms.WithTopK(topK),
		llms.WithMaxTokens(maxTokens),
	)
	metrics.RecordLLMCall(err == nil, time.Since(start))
	if err != nil {
		l.Error("Model call failed", zap.String("url", article.URL), zap.Error(err))
		return nil, domain.NewLLMServiceError(err)
	}

	l.Info("Received model response", zap.String("url", article.URL), zap.Int("response_length", utf8.RuneCountInString(raw)))
	l.Debug("Raw model response", zap.String("response", raw))

	parsed, err := ParseResponse(raw)
	if err != nil {
		l.Error("Failed to parse model response", zap.String("url", article.URL), zap.Error(err))
		return nil, err
	}

	quiz, err := ValidateQuiz(parsed, count)
	if err != nil {
		metrics.RecordQuestionsValidated(0, CountCandidates(parsed))
		l.Error("Generated quiz failed validation", zap.String("url", article.URL), zap.Error(err))
		return nil, err
	}
	metrics.RecordQuestionsValidated(len(quiz.Questions), CountCandidates(parsed)-len(quiz.Questions))

	return quiz, nil
}

var _ domain.QuizGenerationService = (*GeminiQuizGenerator)(nil)
