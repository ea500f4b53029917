package quizgen

import (
	"fmt"
	"strings"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"
)

const (
	// MinValidQuestions is the fewest well-formed questions a quiz may have.
	MinValidQuestions = 3
	maxRelatedTopics  = 7
)

// questionSchema describes one entry of the model's "questions" list.
const questionSchema = `{
  "type": "object",
  "required": ["question", "options", "answer", "difficulty", "explanation"],
  "properties": {
    "options": {"type": "array", "minItems": 4, "maxItems": 4}
  }
}`

var compiledQuestionSchema = mustCompileSchema(questionSchema)

func mustCompileSchema(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("quizgen: invalid question schema: %v", err))
	}
	return s
}

// ValidateQuiz filters the parsed model output down to well-formed questions.
// Malformed entries are dropped silently; fewer than MinValidQuestions survivors fails the whole quiz.
// requestedCount is informational only and never pads or trims the result.
func ValidateQuiz(parsed map[string]any, requestedCount int) (*domain.GeneratedQuiz, error) {
	candidates, _ := parsed["questions"].([]any)

	questions := make([]domain.QuizQuestion, 0, len(candidates))
	for i, candidate := range candidates {
		q, reason := validateQuestion(candidate)
		if reason != "" {
			logger.Get().Debug("Dropping generated question", zap.Int("index", i), zap.String("reason", reason))
			continue
		}
		questions = append(questions, q)
	}

	logger.Get().Info("Validated generated questions",
		zap.Int("requested", requestedCount),
		zap.Int("candidates", len(candidates)),
		zap.Int("accepted", len(questions)),
	)

	if len(questions) < MinValidQuestions {
		return nil, domain.NewInsufficientQuestionsError(len(questions), MinValidQuestions).
			WithContext("candidates", len(candidates))
	}

	return &domain.GeneratedQuiz{
		Questions:     questions,
		RelatedTopics: relatedTopics(parsed["related_topics"]),
	}, nil
}

// CountCandidates returns how many entries the model put in its "questions" list.
func CountCandidates(parsed map[string]any) int {
	candidates, _ := parsed["questions"].([]any)
	return len(candidates)
}

// validateQuestion returns the normalized question, or a non-empty rejection reason.
func validateQuestion(candidate any) (domain.QuizQuestion, string) {
	entry, ok := candidate.(map[string]any)
	if !ok {
		return domain.QuizQuestion{}, "entry is not an object"
	}

	result, err := compiledQuestionSchema.Validate(gojsonschema.NewGoLoader(entry))
	if err != nil {
		return domain.QuizQuestion{}, err.Error()
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return domain.QuizQuestion{}, strings.Join(msgs, "; ")
	}

	// Scalar fields may come back as numbers, e.g. years; compare them as text.
	rawOptions := entry["options"].([]any)
	options := make([]string, len(rawOptions))
	for i, opt := range rawOptions {
		options[i] = stringify(opt)
	}

	answer := stringify(entry["answer"])
	q := domain.QuizQuestion{Options: options, Answer: answer}
	if !q.HasAnswerInOptions() {
		return domain.QuizQuestion{}, "answer is not one of the options"
	}

	difficulty, ok := domain.ParseDifficulty(stringify(entry["difficulty"]))
	if !ok {
		return domain.QuizQuestion{}, fmt.Sprintf("unknown difficulty %q", entry["difficulty"])
	}

	for i := range options {
		options[i] = strings.TrimSpace(options[i])
	}
	return domain.QuizQuestion{
		Question:    strings.TrimSpace(stringify(entry["question"])),
		Options:     options,
		Answer:      strings.TrimSpace(answer),
		Difficulty:  difficulty,
		Explanation: strings.TrimSpace(stringify(entry["explanation"])),
	}, ""
}

func relatedTopics(raw any) []string {
	list, ok := raw.([]any)
	if !ok {
		return []string{}
	}
	topics := make([]string, 0, min(len(list), maxRelatedTopics))
	for _, item := range list {
		if len(topics) == maxRelatedTopics {
			break
		}
		topics = append(topics, strings.TrimSpace(stringify(item)))
	}
	return topics
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return ""
	default:
		return fmt.Sprint(t)
	}
}
