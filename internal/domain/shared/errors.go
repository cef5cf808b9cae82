package shared

import "errors"

// Error codes shared by every bounded context. The HTTP layer maps them to status codes.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeInvalidReference = "INVALID_REFERENCE"
	CodeDuplicateKey     = "DUPLICATE_KEY"
	CodeNotFound         = "NOT_FOUND"
	CodeInternal         = "INTERNAL_ERROR"
)

// FieldError describes a problem with a single input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// DomainError represents a domain-level error
type DomainError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"errors,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so wrapped sentinels compare equal
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewFieldError creates a domain error carrying a single field detail
func NewFieldError(code, message, field, fieldMessage string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Fields:  []FieldError{{Field: field, Message: fieldMessage}},
	}
}

// NewValidationError creates a VALIDATION_FAILED error from field details
func NewValidationError(fields ...FieldError) *DomainError {
	return &DomainError{
		Code:    CodeValidationFailed,
		Message: "Validation failed",
		Fields:  fields,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError(CodeNotFound, "Resource not found")
	ErrDuplicateKey     = NewDomainError(CodeDuplicateKey, "Resource already exists")
	ErrInvalidReference = NewDomainError(CodeInvalidReference, "Referenced resource does not exist")
	ErrValidation       = NewDomainError(CodeValidationFailed, "Validation failed")
	ErrUnauthorized     = NewDomainError(CodeUnauthorized, "Unauthorized")
)

// IsNotFound reports whether err is a NOT_FOUND domain error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateKey reports whether err is a DUPLICATE_KEY domain error
func IsDuplicateKey(err error) bool {
	return errors.Is(err, ErrDuplicateKey)
}
