package dto

import (
	"net/http"

	"github.com/erp/papelera/internal/domain/shared"
)

// Wire error codes. Domain codes pass through unchanged; the rest are
// produced by the transport itself.
const (
	ErrCodeNotFound            = shared.CodeNotFound
	ErrCodeAlreadyExists       = shared.CodeAlreadyExists
	ErrCodeAlreadyDeleted      = shared.CodeAlreadyDeleted
	ErrCodeAlreadyActive       = shared.CodeAlreadyActive
	ErrCodeAlreadyResolved     = shared.CodeAlreadyResolved
	ErrCodeStillConflicting    = shared.CodeStillConflicting
	ErrCodeValidation          = shared.CodeValidation
	ErrCodeConcurrencyConflict = shared.CodeConcurrencyConflict
	ErrCodeUnauthorized        = shared.CodeUnauthorized
	ErrCodeForbidden           = shared.CodeForbidden
	ErrCodeUnavailable         = shared.CodeUnavailable

	ErrCodeBadRequest      = "BAD_REQUEST"
	ErrCodeInvalidJSON     = "INVALID_JSON"
	ErrCodeTokenExpired    = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid    = "INVALID_TOKEN"
	ErrCodeRequestTooLarge = "REQUEST_TOO_LARGE"
	ErrCodeInternal        = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeNotFound: http.StatusNotFound,

	// state conflicts; the client can re-read and decide
	ErrCodeAlreadyExists:    http.StatusConflict,
	ErrCodeAlreadyDeleted:   http.StatusConflict,
	ErrCodeAlreadyActive:    http.StatusConflict,
	ErrCodeAlreadyResolved:  http.StatusConflict,
	ErrCodeStillConflicting: http.StatusConflict,
	// retryable
	ErrCodeConcurrencyConflict: http.StatusConflict,
	ErrCodeUnavailable:         http.StatusServiceUnavailable,

	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeInternal:        http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// IsRetryable reports whether a client may resend the same request unchanged
func IsRetryable(code string) bool {
	return code == ErrCodeConcurrencyConflict || code == ErrCodeUnavailable
}
