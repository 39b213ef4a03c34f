package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target carries the same code, so a contextual error
// built with Withf still matches the sentinel it came from.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Withf returns a copy of the error with a more specific message
func (e *DomainError) Withf(format string, args ...any) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: fmt.Sprintf(format, args...),
	}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes
const (
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeAlreadyDeleted      = "ALREADY_DELETED"
	CodeAlreadyActive       = "ALREADY_ACTIVE"
	CodeAlreadyResolved     = "ALREADY_RESOLVED"
	CodeStillConflicting    = "STILL_CONFLICTING"
	CodeValidation          = "VALIDATION_ERROR"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeUnavailable         = "SERVICE_UNAVAILABLE"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrAlreadyDeleted      = NewDomainError(CodeAlreadyDeleted, "Record is already deleted")
	ErrAlreadyActive       = NewDomainError(CodeAlreadyActive, "Record is already active")
	ErrAlreadyResolved     = NewDomainError(CodeAlreadyResolved, "Conflict is already resolved")
	ErrStillConflicting    = NewDomainError(CodeStillConflicting, "Record still collides with an active record")
	ErrValidation          = NewDomainError(CodeValidation, "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource is being modified by another process")
	ErrUnauthorized        = NewDomainError(CodeUnauthorized, "Authentication required")
	ErrForbidden           = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrUnavailable         = NewDomainError(CodeUnavailable, "Storage temporarily unavailable, retry later")
)
