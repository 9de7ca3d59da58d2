package middleware

import (
	"github.com/gofiber/fiber/v2"

	"quiz-league/internal/domain"
	"quiz-league/internal/validation"
)

// ValidatedIDKey holds the parsed :id path parameter.
const ValidatedIDKey = "validated_id"

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

// ValidateIDParam rejects requests whose :id is not a positive integer.
func (vm *ValidationMiddleware) ValidateIDParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := validation.ParseID("id", c.Params("id"))
		if err != nil {
			return err
		}
		c.Locals(ValidatedIDKey, id)
		return c.Next()
	}
}

// BindJSON decodes the request body into out and validates it.
func (vm *ValidationMiddleware) BindJSON(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return domain.ValidationErrors{domain.NewInvalidFormatError("body", nil)}
	}
	return vm.validator.Struct(out)
}

// ValidatedID returns the id stored by ValidateIDParam.
func ValidatedID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(ValidatedIDKey).(int64)
	return id
}
