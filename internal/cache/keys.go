package cache

import (
	"strconv"
	"strings"
)

const (
	GlobalKeyPrefix = "wikiquiz"

	quizService = "quiz"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuizByURLKey is the key of a cached quiz record looked up by its source article URL.
func QuizByURLKey(url string) string {
	return GenerateCacheKey(quizService, "url", url)
}

// QuizByIDKey is the key of a cached quiz record looked up by id.
func QuizByIDKey(id int64) string {
	return GenerateCacheKey(quizService, "id", strconv.FormatInt(id, 10))
}
