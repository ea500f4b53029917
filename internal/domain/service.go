package domain

import "context"

// QuizRepository defines the interface for quiz record persistence.
// Lookups return (nil, nil) when no row matches.
type QuizRepository interface {
	// Create stores a record. If a record for the same URL already exists,
	// the existing record is returned instead and nothing is written.
	Create(ctx context.Context, record *QuizRecord) (*QuizRecord, error)

	GetByID(ctx context.Context, id int64) (*QuizRecord, error)

	GetByURL(ctx context.Context, url string) (*QuizRecord, error)

	// List returns summaries ordered newest first.
	List(ctx context.Context) ([]QuizSummary, error)

	// Delete removes a record, returning a QUIZ_NOT_FOUND error if none matched.
	Delete(ctx context.Context, id int64) error
}
