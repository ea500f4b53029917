package wikipedia

import (
	"regexp"

	"wiki-quiz/internal/domain"
)

var articleURLPattern = regexp.MustCompile(`^https?://(en\.)?wikipedia\.org/wiki/.+`)

// IsValidArticleURL reports whether url points at an English Wikipedia article.
func IsValidArticleURL(url string) bool {
	return articleURLPattern.MatchString(url)
}

// ValidateURL fails with INVALID_INPUT for anything IsValidArticleURL rejects.
func ValidateURL(url string) error {
	if !IsValidArticleURL(url) {
		return domain.NewInvalidInputError("Invalid Wikipedia URL. Must be like: https://en.wikipedia.org/wiki/Article_Name").
			WithContext("url", url)
	}
	return nil
}
