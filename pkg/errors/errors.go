package errors

import (
	"fmt"
	"net/http"
)

// ErrorType is the closed set of error kinds surfaced by the core services.
// Callers branch on the type; the message is for humans.
type ErrorType string

const (
	ErrorTypeUnauthorized        ErrorType = "unauthorized"
	ErrorTypeRegistrationClosed  ErrorType = "registration_closed"
	ErrorTypeSizeOutOfRange      ErrorType = "size_out_of_range"
	ErrorTypeResourceUnavailable ErrorType = "resource_unavailable"
	ErrorTypeAlreadyRegistered   ErrorType = "already_registered"
	ErrorTypeAlreadyCompleted    ErrorType = "already_completed"
	ErrorTypeGatewayFailure      ErrorType = "gateway_failure"
	ErrorTypeInvalidInput        ErrorType = "invalid_input"
	ErrorTypeNotFound            ErrorType = "not_found"
	ErrorTypeAuthentication      ErrorType = "authentication"
	ErrorTypeInternal            ErrorType = "internal"
)

// AppError represents a structured application error
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	StatusCode int                    `json:"status_code"`
	Internal   error                  `json:"-"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Internal != nil {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, e.Internal.Error())
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Internal
}

// Is lets errors.Is match two AppErrors by type
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Type == e.Type
}

// NewUnauthorizedError creates an authorization error (missing role or team ownership)
func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewAuthenticationError creates an error for missing or invalid credentials
func NewAuthenticationError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeAuthentication,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

// NewRegistrationClosedError creates an error for the closed registration window
func NewRegistrationClosedError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeRegistrationClosed,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// NewSizeOutOfRangeError creates a team-size validation error
func NewSizeOutOfRangeError(message string, details map[string]interface{}) *AppError {
	return &AppError{
		Type:       ErrorTypeSizeOutOfRange,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// NewResourceUnavailableError creates an error for a fully booked ingredient or booth
func NewResourceUnavailableError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeResourceUnavailable,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewAlreadyRegisteredError creates an error for a second registration by the same user
func NewAlreadyRegisteredError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeAlreadyRegistered,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewAlreadyCompletedError creates an error for transitions on a paid or verified team
func NewAlreadyCompletedError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeAlreadyCompleted,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewGatewayFailureError creates an error for payment gateway failures
func NewGatewayFailureError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeGatewayFailure,
		Message:    message,
		StatusCode: http.StatusBadGateway,
		Internal:   internal,
	}
}

// NewInvalidInputError creates a request validation error
func NewInvalidInputError(message string, details map[string]interface{}) *AppError {
	return &AppError{
		Type:       ErrorTypeInvalidInput,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details:    details,
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

// NewInternalError creates a new internal server error
func NewInternalError(message string, internal error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Internal:   internal,
	}
}

// FromError returns err as an *AppError, wrapping unknown errors as internal
func FromError(err error) *AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return NewInternalError("Unexpected error", err)
}

// ErrorResponse represents the JSON error response
type ErrorResponse struct {
	Error struct {
		Type      ErrorType              `json:"type"`
		Message   string                 `json:"message"`
		Details   map[string]interface{} `json:"details,omitempty"`
		RequestID string                 `json:"request_id,omitempty"`
		Timestamp string                 `json:"timestamp"`
	} `json:"error"`
}
