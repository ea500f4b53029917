package dto

import (
	"encoding/json"
	"testing"
	"time"

	"wiki-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuizRecordResponse(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := &domain.QuizRecord{
		ID:    9,
		URL:   "https://en.wikipedia.org/wiki/Go_(programming_language)",
		Title: "Go (programming language)",
		Questions: []domain.QuizQuestion{{
			Question:    "Who designed Go?",
			Options:     []string{"Griesemer, Pike, Thompson", "Ritchie", "Stroustrup", "Wirth"},
			Answer:      "Griesemer, Pike, Thompson",
			Difficulty:  domain.DifficultyMedium,
			Explanation: "Designed at Google in 2007.",
		}},
		CreatedAt: created,
	}

	resp := NewQuizRecordResponse(rec)
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, float64(9), decoded["id"])
	assert.Equal(t, []interface{}{}, decoded["sections"])
	assert.Equal(t, []interface{}{}, decoded["related_topics"])
	assert.Equal(t, map[string]interface{}{
		"people": []interface{}{}, "organizations": []interface{}{}, "locations": []interface{}{},
	}, decoded["key_entities"])
	assert.Equal(t, "2025-03-01T12:00:00Z", decoded["created_at"])

	quiz := decoded["quiz"].([]interface{})
	require.Len(t, quiz, 1)
	assert.Equal(t, "medium", quiz[0].(map[string]interface{})["difficulty"])
}

func TestNewQuizSummaryResponses(t *testing.T) {
	out := NewQuizSummaryResponses(nil)
	assert.NotNil(t, out)
	assert.Empty(t, out)

	out = NewQuizSummaryResponses([]domain.QuizSummary{{ID: 2, Title: "B", QuestionCount: 6}, {ID: 1, Title: "A", QuestionCount: 5}})
	require.Len(t, out, 2)
	assert.Equal(t, int64(2), out[0].ID)
	assert.Equal(t, 5, out[1].QuestionCount)
}
