package models

import "time"

// QuizRecord maps a row of the quizzes table.
type QuizRecord struct {
	ID            int64       `db:"id"`
	URL           string      `db:"url"`
	Title         string      `db:"title"`
	Summary       string      `db:"summary"`
	Content       string      `db:"content"`
	KeyEntities   Entities    `db:"key_entities"`
	Sections      StringSlice `db:"sections"`
	Quiz          Questions   `db:"quiz"`
	RelatedTopics StringSlice `db:"related_topics"`
	CreatedAt     time.Time   `db:"created_at"`
	UpdatedAt     time.Time   `db:"updated_at"`
}

func (QuizRecord) TableName() string {
	return "quizzes"
}

// QuizSummary is the projection used by the history listing.
type QuizSummary struct {
	ID            int64     `db:"id"`
	URL           string    `db:"url"`
	Title         string    `db:"title"`
	CreatedAt     time.Time `db:"created_at"`
	QuestionCount int       `db:"question_count"`
}
