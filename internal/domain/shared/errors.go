package shared

import "fmt"

// DomainError represents a domain-level error. Field names the offending
// input (for conflicts and validation failures) when there is one.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is matches domain errors by code so that errors.Is(err, ErrNotFound)
// holds for every not-found error regardless of message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
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

// NewNotFoundError reports a missing (or foreign-owned) resource
func NewNotFoundError(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// NewConflictError reports a uniqueness violation on field
func NewConflictError(field, message string) *DomainError {
	return &DomainError{Code: CodeAlreadyExists, Message: message, Field: field}
}

// NewValidationError reports invalid input on field
func NewValidationError(field, format string, args ...any) *DomainError {
	return &DomainError{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...), Field: field}
}

// Domain error codes
const (
	CodeNotFound           = "NOT_FOUND"
	CodeAlreadyExists      = "ALREADY_EXISTS"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
)

// Common domain errors
var (
	ErrNotFound           = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists      = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput       = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrUnauthorized       = NewDomainError(CodeUnauthorized, "Not authorized to perform this action")
	ErrInvalidCredentials = NewDomainError(CodeInvalidCredentials, "Credenciais inválidas")
)
