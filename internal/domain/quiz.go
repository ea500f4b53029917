package domain

import (
	"strings"
	"time"
)

// Difficulty is the level assigned to a generated question.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty matches case-insensitively against easy, medium and hard.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch d := Difficulty(strings.ToLower(s)); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, true
	default:
		return "", false
	}
}

// QuestionOptionCount is the number of answer options every question carries.
const QuestionOptionCount = 4

// QuizQuestion is one multiple-choice question. After validation Answer is always one of Options.
type QuizQuestion struct {
	Question    string     `json:"question"`
	Options     []string   `json:"options"`
	Answer      string     `json:"answer"`
	Difficulty  Difficulty `json:"difficulty"`
	Explanation string     `json:"explanation"`
}

// HasAnswerInOptions reports whether the answer matches one option exactly.
func (q QuizQuestion) HasAnswerInOptions() bool {
	for _, opt := range q.Options {
		if opt == q.Answer {
			return true
		}
	}
	return false
}

// GeneratedQuiz is the validated output of one model call.
type GeneratedQuiz struct {
	Questions     []QuizQuestion `json:"questions"`
	RelatedTopics []string       `json:"related_topics"`
}

// QuizRecord is a persisted quiz: the article it was generated from plus the questions.
type QuizRecord struct {
	ID            int64
	URL           string
	Title         string
	Summary       string
	Content       string
	Entities      Entities
	Sections      []string
	Questions     []QuizQuestion
	RelatedTopics []string
	CreatedAt     time.Time
}

// NewQuizRecord combines an article and its generated quiz into an unsaved record.
func NewQuizRecord(article ExtractedArticle, quiz GeneratedQuiz) *QuizRecord {
	return &QuizRecord{
		URL:           article.URL,
		Title:         article.Title,
		Summary:       article.Summary,
		Content:       article.Body,
		Entities:      article.Entities,
		Sections:      article.Sections,
		Questions:     quiz.Questions,
		RelatedTopics: quiz.RelatedTopics,
	}
}

// QuizSummary is the history-list view of a QuizRecord.
type QuizSummary struct {
	ID            int64
	URL           string
	Title         string
	CreatedAt     time.Time
	QuestionCount int
}
