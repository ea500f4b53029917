package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/repository/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const quizColumns = `id, url, title, summary, content, key_entities, sections, quiz, related_topics, created_at, updated_at`

// QuizRecordRepository implements domain.QuizRepository on Postgres.
type QuizRecordRepository struct {
	db *sqlx.DB
	tm *TransactionManager
}

func NewQuizRecordRepository(db *sqlx.DB) *QuizRecordRepository {
	return &QuizRecordRepository{db: db, tm: NewTransactionManager(db)}
}

// Create inserts the record unless one already exists for its URL, in which case the
// stored record is returned unchanged.
func (r *QuizRecordRepository) Create(ctx context.Context, record *domain.QuizRecord) (*domain.QuizRecord, error) {
	if record == nil {
		return nil, domain.NewInternalError("cannot save nil quiz record", nil)
	}
	m := toModelQuizRecord(record)

	var saved *domain.QuizRecord
	err := r.tm.WithTransaction(ctx, func(ctx context.Context) error {
		exec := GetExecutor(ctx, r.db)

		var inserted struct {
			ID        int64     `db:"id"`
			CreatedAt time.Time `db:"created_at"`
		}
		err := exec.GetContext(ctx, &inserted, `
			INSERT INTO quizzes (url, title, summary, content, key_entities, sections, quiz, related_topics)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (url) DO NOTHING
			RETURNING id, created_at`,
			m.URL, m.Title, m.Summary, m.Content, m.KeyEntities, m.Sections, m.Quiz, m.RelatedTopics,
		)
		switch {
		case err == nil:
			m.ID = inserted.ID
			m.CreatedAt = inserted.CreatedAt
			saved = toDomainQuizRecord(m)
			return nil
		case errors.Is(err, sql.ErrNoRows):
			logger.Get().Info("Quiz already stored for URL, returning existing record", zap.String("url", m.URL))
			existing, err := r.getOne(ctx, `WHERE url = $1`, m.URL)
			if err != nil {
				return err
			}
			if existing == nil {
				return domain.NewInternalError("quiz record vanished after URL conflict", nil).WithContext("url", m.URL)
			}
			saved = existing
			return nil
		default:
			return fmt.Errorf("failed to insert quiz record: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *QuizRecordRepository) GetByID(ctx context.Context, id int64) (*domain.QuizRecord, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

func (r *QuizRecordRepository) GetByURL(ctx context.Context, url string) (*domain.QuizRecord, error) {
	return r.getOne(ctx, `WHERE url = $1`, url)
}

func (r *QuizRecordRepository) getOne(ctx context.Context, where string, arg interface{}) (*domain.QuizRecord, error) {
	var m models.QuizRecord
	query := `SELECT ` + quizColumns + ` FROM quizzes ` + where
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz record: %w", err)
	}
	return toDomainQuizRecord(&m), nil
}

// List returns every stored quiz, newest first.
func (r *QuizRecordRepository) List(ctx context.Context) ([]domain.QuizSummary, error) {
	var rows []models.QuizSummary
	err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, `
		SELECT id, url, title, created_at, jsonb_array_length(quiz) AS question_count
		FROM quizzes
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list quiz records: %w", err)
	}

	summaries := make([]domain.QuizSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, domain.QuizSummary{
			ID:            row.ID,
			URL:           row.URL,
			Title:         row.Title,
			CreatedAt:     row.CreatedAt,
			QuestionCount: row.QuestionCount,
		})
	}
	return summaries, nil
}

func (r *QuizRecordRepository) Delete(ctx context.Context, id int64) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete quiz record %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected deleting quiz record %d: %w", id, err)
	}
	if affected == 0 {
		return domain.NewQuizNotFoundError(id)
	}
	return nil
}

func toModelQuizRecord(r *domain.QuizRecord) *models.QuizRecord {
	return &models.QuizRecord{
		ID:            r.ID,
		URL:           r.URL,
		Title:         r.Title,
		Summary:       r.Summary,
		Content:       r.Content,
		KeyEntities:   models.Entities(r.Entities),
		Sections:      models.StringSlice(r.Sections),
		Quiz:          models.Questions(r.Questions),
		RelatedTopics: models.StringSlice(r.RelatedTopics),
		CreatedAt:     r.CreatedAt,
	}
}

func toDomainQuizRecord(m *models.QuizRecord) *domain.QuizRecord {
	sections := []string(m.Sections)
	if sections == nil {
		sections = []string{}
	}
	questions := []domain.QuizQuestion(m.Quiz)
	if questions == nil {
		questions = []domain.QuizQuestion{}
	}
	topics := []string(m.RelatedTopics)
	if topics == nil {
		topics = []string{}
	}
	return &domain.QuizRecord{
		ID:            m.ID,
		URL:           m.URL,
		Title:         m.Title,
		Summary:       m.Summary,
		Content:       m.Content,
		Entities:      domain.Entities(m.KeyEntities).Normalized(),
		Sections:      sections,
		Questions:     questions,
		RelatedTopics: topics,
		CreatedAt:     m.CreatedAt,
	}
}

var _ domain.QuizRepository = (*QuizRecordRepository)(nil)
