package dto

import (
	"time"

	"wiki-quiz/internal/domain"
)

// GenerateQuizRequest is the body of POST /api/quiz/generate
// @Description Wikipedia article to build a quiz from
type GenerateQuizRequest struct {
	URL string `json:"url" example:"https://en.wikipedia.org/wiki/Alan_Turing"`
}

// QuizQuestionResponse is one multiple-choice question
type QuizQuestionResponse struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Difficulty  string   `json:"difficulty" enums:"easy,medium,hard"`
	Explanation string   `json:"explanation"`
}

// KeyEntitiesResponse groups link texts found in the article
type KeyEntitiesResponse struct {
	People        []string `json:"people"`
	Organizations []string `json:"organizations"`
	Locations     []string `json:"locations"`
}

// QuizRecordResponse is a stored quiz with the article it was generated from
// @Description Generated quiz
type QuizRecordResponse struct {
	ID            int64                  `json:"id"`
	URL           string                 `json:"url"`
	Title         string                 `json:"title"`
	Summary       string                 `json:"summary"`
	KeyEntities   KeyEntitiesResponse    `json:"key_entities"`
	Sections      []string               `json:"sections"`
	Quiz          []QuizQuestionResponse `json:"quiz"`
	RelatedTopics []string               `json:"related_topics"`
	CreatedAt     time.Time              `json:"created_at"`
}

// QuizSummaryResponse is one entry of the quiz history
type QuizSummaryResponse struct {
	ID            int64     `json:"id"`
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"created_at"`
	QuestionCount int       `json:"question_count"`
}

// MessageResponse carries a confirmation message
type MessageResponse struct {
	Message string `json:"message"`
}

// ServiceInfoResponse is returned by the root endpoint
type ServiceInfoResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// NewQuizRecordResponse converts a stored record into its API shape.
func NewQuizRecordResponse(rec *domain.QuizRecord) *QuizRecordResponse {
	entities := rec.Entities.Normalized()
	questions := make([]QuizQuestionResponse, 0, len(rec.Questions))
	for _, q := range rec.Questions {
		questions = append(questions, QuizQuestionResponse{
			Question:    q.Question,
			Options:     q.Options,
			Answer:      q.Answer,
			Difficulty:  string(q.Difficulty),
			Explanation: q.Explanation,
		})
	}
	return &QuizRecordResponse{
		ID:      rec.ID,
		URL:     rec.URL,
		Title:   rec.Title,
		Summary: rec.Summary,
		KeyEntities: KeyEntitiesResponse{
			People:        entities.People,
			Organizations: entities.Organizations,
			Locations:     entities.Locations,
		},
		Sections:      nonNil(rec.Sections),
		Quiz:          questions,
		RelatedTopics: nonNil(rec.RelatedTopics),
		CreatedAt:     rec.CreatedAt,
	}
}

// NewQuizSummaryResponses keeps the order of the given summaries.
func NewQuizSummaryResponses(summaries []domain.QuizSummary) []QuizSummaryResponse {
	out := make([]QuizSummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, QuizSummaryResponse{
			ID:            s.ID,
			URL:           s.URL,
			Title:         s.Title,
			CreatedAt:     s.CreatedAt,
			QuestionCount: s.QuestionCount,
		})
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
