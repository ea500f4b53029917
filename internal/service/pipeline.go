package service

import (
	"context"
	"time"
	"unicode/utf8"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/metrics"

	"go.uber.org/zap"
)

// MinArticleContentLength is the shortest extracted body, in characters, worth sending to the model.
const MinArticleContentLength = 200

// QuizPipeline runs fetch, extract and generate for one URL. It holds no per-request state.
type QuizPipeline struct {
	fetcher      domain.ArticleFetcher
	extractor    domain.ArticleExtractor
	generator    domain.QuizGenerationService
	numQuestions int
}

func NewQuizPipeline(
	fetcher domain.ArticleFetcher,
	extractor domain.ArticleExtractor,
	generator domain.QuizGenerationService,
	numQuestions int,
) *QuizPipeline {
	return &QuizPipeline{
		fetcher:      fetcher,
		extractor:    extractor,
		generator:    generator,
		numQuestions: numQuestions,
	}
}

// ExtractArticle fetches url and extracts its structured content.
func (p *QuizPipeline) ExtractArticle(ctx context.Context, url string) (domain.ExtractedArticle, error) {
	start := time.Now()
	raw, err := p.fetcher.Fetch(ctx, url)
	metrics.RecordStageDuration(metrics.StageFetch, time.Since(start))
	if err != nil {
		return domain.ExtractedArticle{}, err
	}

	start = time.Now()
	article := p.extractor.Extract(url, raw)
	metrics.RecordStageDuration(metrics.StageExtract, time.Since(start))

	contentLength := utf8.RuneCountInString(article.Body)
	metrics.RecordArticleContentLength(contentLength)
	logger.Get().Info("Extracted article",
		zap.String("url", url),
		zap.String("title", article.Title),
		zap.Int("content_length", contentLength),
		zap.Int("sections", len(article.Sections)),
	)
	return article, nil
}

// Run executes the whole pipeline. Articles shorter than MinArticleContentLength fail with
// INSUFFICIENT_CONTENT before the model is called.
func (p *QuizPipeline) Run(ctx context.Context, url string) (domain.ExtractedArticle, *domain.GeneratedQuiz, error) {
	article, err := p.ExtractArticle(ctx, url)
	if err != nil {
		return domain.ExtractedArticle{}, nil, err
	}

	if n := utf8.RuneCountInString(article.Body); n < MinArticleContentLength {
		return article, nil, domain.NewInsufficientContentError(n, MinArticleContentLength)
	}

	quiz, err := p.generator.GenerateQuiz(ctx, article, p.numQuestions)
	if err != nil {
		return article, nil, err
	}

	logger.Get().Info("Generated quiz",
		zap.String("url", url),
		zap.Int("question_count", len(quiz.Questions)),
		zap.Int("related_topics", len(quiz.RelatedTopics)),
	)
	return article, quiz, nil
}
