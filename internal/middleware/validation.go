package middleware

import (
	"strings"

	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	// LocalGenerateRequest holds the validated *dto.GenerateQuizRequest.
	LocalGenerateRequest = "validated_generate_request"
	// LocalQuizID holds the validated int64 quiz id.
	LocalQuizID = "validated_quiz_id"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateGenerateQuizBody parses and validates the generate request body
func (vm *ValidationMiddleware) ValidateGenerateQuizBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.GenerateQuizRequest
		if err := c.BodyParser(&req); err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("body", "malformed JSON")}
		}
		req.URL = strings.TrimSpace(req.URL)

		if errors := vm.validator.ValidateGenerateQuizRequest(req.URL); len(errors) > 0 {
			return errors
		}

		c.Locals(LocalGenerateRequest, &req)
		return c.Next()
	}
}

// ValidateQuizIDParam validates the :id path parameter
func (vm *ValidationMiddleware) ValidateQuizIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, errors := vm.validator.ParseQuizID(c.Params("id"))
		if len(errors) > 0 {
			return errors
		}
		c.Locals(LocalQuizID, id)
		return c.Next()
	}
}
