package middleware

import (
	"strconv"

	"lingo-days/internal/domain"
	"lingo-days/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const validatedDayKey = "validated_day"

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

// ValidateDayParam checks the :day path parameter and stores it for handlers.
func (vm *ValidationMiddleware) ValidateDayParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("day")
		day, err := strconv.Atoi(raw)
		if err != nil {
			return domain.ValidationErrors{domain.NewInvalidFormatError("day", raw)}
		}
		if errs := vm.validator.ValidateDay(day); len(errs) > 0 {
			return errs
		}

		c.Locals(validatedDayKey, day)
		return c.Next()
	}
}

// Day returns the day validated by ValidateDayParam.
func Day(c *fiber.Ctx) int {
	day, _ := c.Locals(validatedDayKey).(int)
	return day
}
