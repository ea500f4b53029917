package middleware

import (
	"errors"
	"net/http"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Detail  string                 `json:"detail"`
	Status  int                    `json:"status"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// ValidationErrorResponse represents validation error response
type ValidationErrorResponse struct {
	Code   string                   `json:"code"`
	Detail string                   `json:"detail"`
	Status int                      `json:"status"`
	Errors []domain.ValidationError `json:"errors"`
}

// ErrorHandler is the single place where failures become HTTP responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()

		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Warn("Validation errors occurred",
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
				Code:   string(domain.ErrValidation),
				Detail: validationErrs.Error(),
				Status: http.StatusBadRequest,
				Errors: validationErrs,
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := StatusForCode(domainErr.Code)

			fields := []zap.Field{
				zap.String("code", string(domainErr.Code)),
				zap.String("detail", domainErr.Message),
				zap.Int("status", statusCode),
				zap.String("path", c.Path()),
				zap.Error(domainErr.Err),
			}
			if statusCode >= http.StatusInternalServerError {
				log.Error("Request failed", append(fields, zap.Any("context", domainErr.Context))...)
			} else {
				log.Warn("Request rejected", fields...)
			}

			response := ErrorResponse{
				Code:   string(domainErr.Code),
				Detail: domainErr.Message,
				Status: statusCode,
			}
			if statusCode < http.StatusInternalServerError && len(domainErr.Context) > 0 {
				response.Context = domainErr.Context
			}
			return c.Status(statusCode).JSON(response)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:   "HTTP_ERROR",
				Detail: fiberErr.Message,
				Status: fiberErr.Code,
			})
		}

		log.Error("Unknown error occurred",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:   string(domain.ErrInternal),
			Detail: "Internal server error",
			Status: http.StatusInternalServerError,
		})
	}
}

// StatusForCode maps domain error codes to HTTP status codes
func StatusForCode(code domain.ErrorCode) int {
	switch code {
	case domain.ErrQuizNotFound:
		return http.StatusNotFound
	case domain.ErrInvalidInput, domain.ErrValidation, domain.ErrFetchFailed, domain.ErrInsufficientContent:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
