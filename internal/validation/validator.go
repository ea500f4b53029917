package validation

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"wiki-quiz/internal/adapter/wikipedia"
	"wiki-quiz/internal/domain"
)

// MaxURLLength matches the width of the url column.
const MaxURLLength = 500

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest validates the generate request URL
func (v *Validator) ValidateGenerateQuizRequest(url string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	url = strings.TrimSpace(url)
	switch {
	case url == "":
		errors = append(errors, domain.NewMissingFieldError("url"))
	case utf8.RuneCountInString(url) > MaxURLLength:
		errors = append(errors, domain.NewTooLongError("url", utf8.RuneCountInString(url), MaxURLLength))
	case !wikipedia.IsValidArticleURL(url):
		errors = append(errors, domain.NewInvalidFormatError("url", url))
	}

	return errors
}

// ParseQuizID parses a positive numeric quiz id path parameter
func (v *Validator) ParseQuizID(raw string) (int64, domain.ValidationErrors) {
	if strings.TrimSpace(raw) == "" {
		return 0, domain.ValidationErrors{domain.NewMissingFieldError("id")}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("id", raw)}
	}
	return id, nil
}
