package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	ErrInternal     ErrorCode = "INTERNAL_ERROR"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Pipeline errors
	ErrFetchFailed           ErrorCode = "FETCH_FAILED"
	ErrInsufficientContent   ErrorCode = "INSUFFICIENT_CONTENT"
	ErrInsufficientQuestions ErrorCode = "INSUFFICIENT_QUESTIONS"
	ErrModelFormat           ErrorCode = "MODEL_FORMAT_ERROR"
	ErrLLMServiceError       ErrorCode = "LLM_SERVICE_ERROR"

	ErrQuizNotFound ErrorCode = "QUIZ_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Err     error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a detail value rendered alongside the error response.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(ErrInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewFetchFailedError(url string, err error) *DomainError {
	return NewError(ErrFetchFailed, "Failed to fetch Wikipedia page", err).WithContext("url", url)
}

// NewInsufficientContentError reports an article whose extracted body is too short to quiz on.
func NewInsufficientContentError(contentLength, minimum int) *DomainError {
	return NewError(ErrInsufficientContent,
		"Failed to extract sufficient content from Wikipedia article. The article may be too short or unavailable.", nil).
		WithContext("content_length", contentLength).
		WithContext("minimum", minimum)
}

// NewInsufficientQuestionsError reports a model reply with too few well-formed questions.
func NewInsufficientQuestionsError(valid, minimum int) *DomainError {
	return NewError(ErrInsufficientQuestions,
		fmt.Sprintf("Generated only %d valid questions, need at least %d", valid, minimum), nil).
		WithContext("valid_questions", valid)
}

func NewModelFormatError(reason string, err error) *DomainError {
	return NewError(ErrModelFormat, fmt.Sprintf("Model did not return valid JSON format: %s", reason), err)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to process with LLM service", err)
}

func NewQuizNotFoundError(quizID int64) *DomainError {
	return NewError(ErrQuizNotFound, fmt.Sprintf("Quiz with ID %d not found", quizID), nil)
}

// CodeOf returns the code of the first DomainError in err's chain, or ErrInternal.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return ErrInternal
}

// IsInsufficientContent reports whether err is either flavour of the insufficient-content failure.
func IsInsufficientContent(err error) bool {
	code := CodeOf(err)
	return code == ErrInsufficientContent || code == ErrInsufficientQuestions
}
