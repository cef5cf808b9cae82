package middleware

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"

	"github.com/easybill/backend/internal/domain/shared"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// SetupValidator makes validation errors report JSON field names
func SetupValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			return name
		})
	}
}

// BindingError converts a request binding failure into a VALIDATION_FAILED
// domain error with per-field details.
func BindingError(err error) *shared.DomainError {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make([]shared.FieldError, 0, len(validationErrors))
		for _, e := range validationErrors {
			fields = append(fields, shared.FieldError{
				Field:   fieldPath(e),
				Message: getValidationMessage(e),
			})
		}
		return shared.NewValidationError(fields...)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return shared.NewValidationError(shared.FieldError{
			Field:   typeErr.Field,
			Message: "Must be a " + typeErr.Type.String(),
		})
	}

	return &shared.DomainError{
		Code:    shared.CodeValidationFailed,
		Message: "Invalid request body",
	}
}

// fieldPath strips the top-level struct name: "CreateBillRequest.items[0].description"
// becomes "items[0].description".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

// getValidationMessage returns a human-readable validation message
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "min":
		if e.Type().Kind() == reflect.String {
			return "Must be at least " + e.Param() + " characters"
		}
		return "Must be at least " + e.Param()
	case "max":
		if e.Type().Kind() == reflect.String {
			return "Must be at most " + e.Param() + " characters"
		}
		return "Must be at most " + e.Param()
	case "oneof":
		return "Must be one of: " + e.Param()
	case "gte":
		return "Must be greater than or equal to " + e.Param()
	case "numeric":
		return "Must be numeric"
	default:
		return "Invalid value"
	}
}
