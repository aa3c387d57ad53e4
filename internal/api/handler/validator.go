package handler

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/raingor/anime-site-api/internal/core/ports"
)

// RequestValidator wraps go-playground/validator. Besides satisfying the
// echo.Validator interface it can report failures as an ordered
// ports.ValidationResult, which is what the account service consumes.
type RequestValidator struct {
	v *validator.Validate
}

// NewValidator returns a RequestValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() *RequestValidator {
	return &RequestValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface.
func (rv *RequestValidator) Validate(i any) error {
	result := rv.FieldErrors(i)
	if !result.HasErrors() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors))
	for _, fe := range result.Errors {
		msgs = append(msgs, fe.Field+" "+fe.Message)
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// FieldErrors validates i and returns the field-level failures in the order
// the validator reports them. A clean struct yields an empty result.
func (rv *RequestValidator) FieldErrors(i any) ports.ValidationResult {
	err := rv.v.Struct(i)
	if err == nil {
		return ports.ValidationResult{}
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return ports.ValidationResult{Errors: []ports.FieldError{{Field: "payload", Message: err.Error()}}}
	}

	fieldErrs := make([]ports.FieldError, 0, len(ve))
	for _, fe := range ve {
		fieldErrs = append(fieldErrs, ports.FieldError{
			Field:   strings.ToLower(fe.Field()),
			Message: fieldMessage(fe),
		})
	}
	return ports.ValidationResult{Errors: fieldErrs}
}

// fieldMessage converts a single ValidationError into a human-readable message.
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed validation (%s)", fe.Tag())
	}
}
