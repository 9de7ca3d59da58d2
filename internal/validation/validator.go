package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"quiz-league/internal/domain"
)

// Validator checks request DTOs against their `validate` struct tags and
// reports problems as domain.ValidationErrors keyed by JSON field name.
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s. It returns nil or a non-empty domain.ValidationErrors.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.NewValidationError(err.Error())
	}

	out := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, toFieldError(fe))
	}
	return out
}

// ParseID parses a positive numeric path parameter.
func ParseID(field, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError(field, raw)}
	}
	return id, nil
}

func toFieldError(fe validator.FieldError) domain.FieldError {
	field := fieldPath(fe)
	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(field)
	case "min", "max", "gt", "gte", "lt", "lte":
		return domain.FieldError{
			Code:    domain.CodeOutOfRange,
			Field:   field,
			Message: field + " must satisfy " + fe.Tag() + "=" + fe.Param(),
			Value:   fe.Value(),
		}
	case "unique":
		return domain.FieldError{
			Code:    domain.CodeInvalidFormat,
			Field:   field,
			Message: field + " must not contain duplicates",
		}
	default:
		return domain.NewInvalidFormatError(field, fe.Value())
	}
}

// fieldPath drops the top-level struct name from the namespace, so
// CreateQuestionRequest.options[1] becomes options[1].
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}
