package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"wiki-quiz/internal/adapter/wikipedia"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	// GenerateQuiz returns the stored quiz for url, running the pipeline only when none exists.
	GenerateQuiz(ctx context.Context, url string) (*dto.QuizRecordResponse, error)
	GetQuiz(ctx context.Context, id int64) (*dto.QuizRecordResponse, error)
	ListQuizzes(ctx context.Context) ([]dto.QuizSummaryResponse, error)
	DeleteQuiz(ctx context.Context, id int64) (*dto.MessageResponse, error)
}

// quizService implements QuizService
type quizService struct {
	repo     domain.QuizRepository
	pipeline *QuizPipeline
	inflight singleflight.Group
}

// NewQuizService creates a new instance of quizService
func NewQuizService(repo domain.QuizRepository, pipeline *QuizPipeline) QuizService {
	return &quizService{
		repo:     repo,
		pipeline: pipeline,
	}
}

// GenerateQuiz implements QuizService
func (s *quizService) GenerateQuiz(ctx context.Context, rawURL string) (*dto.QuizRecordResponse, error) {
	url := strings.TrimSpace(rawURL)
	if err := wikipedia.ValidateURL(url); err != nil {
		metrics.RecordQuizGenerationError(string(domain.CodeOf(err)))
		return nil, err
	}

	existing, err := s.repo.GetByURL(ctx, url)
	if err != nil {
		metrics.RecordQuizGenerationError(string(domain.ErrInternal))
		return nil, domain.NewInternalError("Failed to look up quiz", err).WithContext("url", url)
	}
	if existing != nil {
		logger.Get().Info("Returning cached quiz", zap.String("url", url), zap.Int64("quiz_id", existing.ID))
		metrics.RecordQuizGeneration(metrics.ResultCached)
		return dto.NewQuizRecordResponse(existing), nil
	}

	// Concurrent requests for the same URL share one pipeline run, which must
	// not end when whichever caller started it goes away.
	v, err, shared := s.inflight.Do(url, func() (interface{}, error) {
		return s.generateAndStore(context.WithoutCancel(ctx), url)
	})
	if err != nil {
		metrics.RecordQuizGenerationError(string(domain.CodeOf(err)))
		return nil, err
	}
	if shared {
		logger.Get().Debug("Joined in-flight quiz generation", zap.String("url", url))
	}

	metrics.RecordQuizGeneration(metrics.ResultGenerated)
	return dto.NewQuizRecordResponse(v.(*domain.QuizRecord)), nil
}

func (s *quizService) generateAndStore(ctx context.Context, url string) (*domain.QuizRecord, error) {
	l := logger.Get()

	article, quiz, err := s.pipeline.Run(ctx, url)
	if err != nil {
		fields := []zap.Field{
			zap.String("url", url),
			zap.String("code", string(domain.CodeOf(err))),
			zap.Error(err),
		}
		if domain.IsInsufficientContent(err) {
			l.Warn("Article cannot support a quiz", fields...)
		} else {
			l.Error("Quiz generation failed", fields...)
		}
		return nil, err
	}

	start := time.Now()
	saved, err := s.repo.Create(ctx, domain.NewQuizRecord(article, *quiz))
	metrics.RecordStageDuration(metrics.StagePersist, time.Since(start))
	if err != nil {
		l.Error("Failed to save generated quiz", zap.String("url", url), zap.Error(err))
		return nil, domain.NewInternalError("Failed to save quiz", err).WithContext("url", url)
	}

	l.Info("Saved quiz",
		zap.Int64("quiz_id", saved.ID),
		zap.String("url", url),
		zap.Int("question_count", len(saved.Questions)),
	)
	return saved, nil
}

// GetQuiz implements QuizService
func (s *quizService) GetQuiz(ctx context.Context, id int64) (*dto.QuizRecordResponse, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to get quiz", err)
	}
	if rec == nil {
		return nil, domain.NewQuizNotFoundError(id)
	}
	return dto.NewQuizRecordResponse(rec), nil
}

// ListQuizzes implements QuizService
func (s *quizService) ListQuizzes(ctx context.Context) ([]dto.QuizSummaryResponse, error) {
	summaries, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}
	return dto.NewQuizSummaryResponses(summaries), nil
}

// DeleteQuiz implements QuizService
func (s *quizService) DeleteQuiz(ctx context.Context, id int64) (*dto.MessageResponse, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		if domain.CodeOf(err) == domain.ErrQuizNotFound {
			return nil, err
		}
		return nil, domain.NewInternalError("Failed to delete quiz", err)
	}
	logger.Get().Info("Deleted quiz", zap.Int64("quiz_id", id))
	return &dto.MessageResponse{Message: fmt.Sprintf("Quiz %d deleted successfully", id)}, nil
}
