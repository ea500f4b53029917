package service

import (
	"context"

	"wiki-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockQuizRepository ---
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) Create(ctx context.Context, record *domain.QuizRecord) (*domain.QuizRecord, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizRecord), args.Error(1)
}

func (m *MockQuizRepository) GetByID(ctx context.Context, id int64) (*domain.QuizRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizRecord), args.Error(1)
}

func (m *MockQuizRepository) GetByURL(ctx context.Context, url string) (*domain.QuizRecord, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.QuizRecord), args.Error(1)
}

func (m *MockQuizRepository) List(ctx context.Context) ([]domain.QuizSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QuizSummary), args.Error(1)
}

func (m *MockQuizRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- MockArticleFetcher ---
type MockArticleFetcher struct {
	mock.Mock
}

func (m *MockArticleFetcher) Fetch(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

// --- MockArticleExtractor ---
type MockArticleExtractor struct {
	mock.Mock
}

func (m *MockArticleExtractor) Extract(url, rawMarkup string) domain.ExtractedArticle {
	args := m.Called(url, rawMarkup)
	return args.Get(0).(domain.ExtractedArticle)
}

// --- MockQuizGenerationService ---
type MockQuizGenerationService struct {
	mock.Mock
}

func (m *MockQuizGenerationService) GenerateQuiz(ctx context.Context, article domain.ExtractedArticle, numQuestions int) (*domain.GeneratedQuiz, error) {
	args := m.Called(ctx, article, numQuestions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedQuiz), args.Error(1)
}
