package validation

import (
	"errors"
	"reflect"
	"strings"

	"lingo-days/internal/domain"

	"github.com/go-playground/validator/v10"
)

const (
	MinScore = 0
	MaxScore = 100
	// MaxTimeSpent caps a single completion at one day of study minutes.
	MaxTimeSpent = 24 * 60
)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct runs the validate tags of a request DTO and converts failures to domain.ValidationErrors.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.ValidationErrors{domain.NewValidationError(err.Error())}
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, toDomain(fe))
	}
	return out
}

func toDomain(fe validator.FieldError) domain.ValidationError {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(field)
	case "email":
		return domain.NewInvalidFormatError(field, fe.Value())
	case "min", "max", "gte", "lte":
		return domain.ValidationError{
			Field:   field,
			Code:    domain.CodeOutOfRange,
			Message: "value violates " + fe.Tag() + "=" + fe.Param(),
		}
	default:
		return domain.ValidationError{
			Field:   field,
			Code:    domain.CodeValidation,
			Message: "failed on the '" + fe.Tag() + "' rule",
		}
	}
}

// ValidateDay checks that day is a course day.
func (v *Validator) ValidateDay(day int) domain.ValidationErrors {
	if !domain.ValidDay(day) {
		return domain.ValidationErrors{domain.NewOutOfRangeError("day", day, 1, domain.MaxDay)}
	}
	return nil
}

// ValidateCompletion validates the numeric inputs of a lesson completion.
func (v *Validator) ValidateCompletion(day, score, timeSpent int) domain.ValidationErrors {
	errs := v.ValidateDay(day)

	if score < MinScore || score > MaxScore {
		errs = append(errs, domain.NewOutOfRangeError("score", score, MinScore, MaxScore))
	}
	if timeSpent < 0 || timeSpent > MaxTimeSpent {
		errs = append(errs, domain.NewOutOfRangeError("timeSpent", timeSpent, 0, MaxTimeSpent))
	}

	return errs
}
