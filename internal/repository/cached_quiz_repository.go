package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"wiki-quiz/internal/cache"
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/metrics"

	"go.uber.org/zap"
)

// CachedQuizRepository is a read-through cache in front of another QuizRepository.
// Cache failures never fail a request; they are logged and the underlying repository answers.
type CachedQuizRepository struct {
	next  domain.QuizRepository
	cache domain.Cache
	ttl   time.Duration
}

func NewCachedQuizRepository(next domain.QuizRepository, quizCache domain.Cache, ttl time.Duration) *CachedQuizRepository {
	return &CachedQuizRepository{next: next, cache: quizCache, ttl: ttl}
}

func (r *CachedQuizRepository) Create(ctx context.Context, record *domain.QuizRecord) (*domain.QuizRecord, error) {
	saved, err := r.next.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	r.store(ctx, saved)
	return saved, nil
}

func (r *CachedQuizRepository) GetByID(ctx context.Context, id int64) (*domain.QuizRecord, error) {
	return r.readThrough(ctx, cache.QuizByIDKey(id), func() (*domain.QuizRecord, error) {
		return r.next.GetByID(ctx, id)
	})
}

func (r *CachedQuizRepository) GetByURL(ctx context.Context, url string) (*domain.QuizRecord, error) {
	return r.readThrough(ctx, cache.QuizByURLKey(url), func() (*domain.QuizRecord, error) {
		return r.next.GetByURL(ctx, url)
	})
}

// List is not cached.
func (r *CachedQuizRepository) List(ctx context.Context) ([]domain.QuizSummary, error) {
	return r.next.List(ctx)
}

func (r *CachedQuizRepository) Delete(ctx context.Context, id int64) error {
	existing, err := r.next.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.NewQuizNotFoundError(id)
	}
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.invalidate(ctx, existing)
	return nil
}

func (r *CachedQuizRepository) readThrough(ctx context.Context, key string, load func() (*domain.QuizRecord, error)) (*domain.QuizRecord, error) {
	l := logger.Get()

	cached, err := r.cache.Get(ctx, key)
	switch {
	case err == nil:
		var rec domain.QuizRecord
		jsonErr := json.Unmarshal([]byte(cached), &rec)
		if jsonErr == nil {
			metrics.RecordCacheLookup(metrics.CacheHit)
			return &rec, nil
		}
		l.Warn("Discarding undecodable cached quiz", zap.String("key", key), zap.Error(jsonErr))
		metrics.RecordCacheLookup(metrics.CacheError)
	case errors.Is(err, domain.ErrCacheMiss):
		metrics.RecordCacheLookup(metrics.CacheMiss)
	default:
		l.Warn("Quiz cache lookup failed", zap.String("key", key), zap.Error(err))
		metrics.RecordCacheLookup(metrics.CacheError)
	}

	rec, err := load()
	if err != nil || rec == nil {
		return rec, err
	}
	r.store(ctx, rec)
	return rec, nil
}

func (r *CachedQuizRepository) store(ctx context.Context, rec *domain.QuizRecord) {
	data, err := json.Marshal(rec)
	if err != nil {
		logger.Get().Warn("Failed to encode quiz for cache", zap.Int64("id", rec.ID), zap.Error(err))
		return
	}
	for _, key := range []string{cache.QuizByIDKey(rec.ID), cache.QuizByURLKey(rec.URL)} {
		if err := r.cache.Set(ctx, key, string(data), r.ttl); err != nil {
			logger.Get().Warn("Failed to cache quiz", zap.String("key", key), zap.Error(err))
		}
	}
}

func (r *CachedQuizRepository) invalidate(ctx context.Context, rec *domain.QuizRecord) {
	for _, key := range []string{cache.QuizByIDKey(rec.ID), cache.QuizByURLKey(rec.URL)} {
		if err := r.cache.Delete(ctx, key); err != nil {
			logger.Get().Warn("Failed to invalidate cached quiz", zap.String("key", key), zap.Error(err))
		}
	}
}

var _ domain.QuizRepository = (*CachedQuizRepository)(nil)
