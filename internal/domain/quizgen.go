package domain

import (
	"context"
)

// ArticleFetcher retrieves the raw markup of an article page.
type ArticleFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ArticleExtractor turns raw markup into structured article content.
type ArticleExtractor interface {
	Extract(url, rawMarkup string) ExtractedArticle
}

// QuizGenerationService produces a validated quiz for an article.
type QuizGenerationService interface {
	// GenerateQuiz asks the model for numQuestions questions about the article.
	// numQuestions only shapes the prompt; any count of at least three valid questions is accepted.
	GenerateQuiz(ctx context.Context, article ExtractedArticle, numQuestions int) (*GeneratedQuiz, error)
}
