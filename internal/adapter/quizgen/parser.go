package quizgen

import (
	"encoding/json"
	"strings"

	"wiki-quiz/internal/domain"
)

const (
	jsonFenceOpener = "```json"
	fence           = "```"
)

// ParseResponse isolates the JSON object in raw model output and decodes it.
// Surrounding code fences and prose are tolerated; anything that still fails to decode
// is a MODEL_FORMAT_ERROR.
func ParseResponse(raw string) (map[string]any, error) {
	text := stripFences(raw)

	candidate := text
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		candidate = text[start : end+1]
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, domain.NewModelFormatError("no decodable JSON object in response", err).
			WithContext("response_preview", preview(text, 500))
	}
	if parsed == nil {
		// "null" decodes without error into a nil map.
		return nil, domain.NewModelFormatError("response was null", nil)
	}
	return parsed, nil
}

func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if strings.HasPrefix(text, jsonFenceOpener) {
		text = text[len(jsonFenceOpener):]
	} else if strings.HasPrefix(text, fence) {
		text = text[len(fence):]
	}
	text = strings.TrimSuffix(text, fence)
	return strings.TrimSpace(text)
}

func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
