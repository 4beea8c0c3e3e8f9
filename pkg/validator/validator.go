package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"

	apperrors "supply-service/pkg/errors"
)

const (
	jsonTagName  = "json"
	jsonTagSkip  = "-"
	fieldSepJoin = "; "

	errFieldRequiredFmt = "is required"
	errFieldMinFmt      = "must be at least %s"
	errFieldMaxFmt      = "must be at most %s"
	errFieldGteFmt      = "must be greater than or equal to %s"
	errFieldLteFmt      = "must be less than or equal to %s"
	errFieldOneOfFmt    = "must be one of: %s"
	errFieldDefaultFmt  = "failed validation on %s"
	errFieldMessageFmt  = "%s %s"
	errNotStructFmt     = "invalid request payload"
)

// FieldError describes one rejected request field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every rejected field of a request.
// It unwraps to errors.ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf(errFieldMessageFmt, f.Field, f.Message))
	}
	return strings.Join(parts, fieldSepJoin)
}

func (e *ValidationError) Unwrap() error {
	return apperrors.ErrValidation
}

// Validator adapts go-playground/validator to echo's Validator interface
type Validator struct {
	validate *playground.Validate
}

func New() *Validator {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get(jsonTagName), ",", 2)[0]
		if name == jsonTagSkip {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &Validator{validate: v}
}

// Validate checks struct tags on i and reports every failing field
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var invalid *playground.InvalidValidationError
	if errors.As(err, &invalid) {
		return apperrors.BadRequest(errNotStructFmt)
	}

	var fieldErrs playground.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return apperrors.Validation(err.Error())
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{
			Field:   fe.Field(),
			Message: FormatValidationError(fe),
		})
	}
	return out
}

// FormatValidationError formats a field error into a user-facing message
func FormatValidationError(err playground.FieldError) string {
	switch err.Tag() {
	case "required":
		return errFieldRequiredFmt
	case "min":
		return fmt.Sprintf(errFieldMinFmt, err.Param())
	case "max":
		return fmt.Sprintf(errFieldMaxFmt, err.Param())
	case "gte":
		return fmt.Sprintf(errFieldGteFmt, err.Param())
	case "lte":
		return fmt.Sprintf(errFieldLteFmt, err.Param())
	case "oneof":
		return fmt.Sprintf(errFieldOneOfFmt, err.Param())
	default:
		return fmt.Sprintf(errFieldDefaultFmt, err.Tag())
	}
}
