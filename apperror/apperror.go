// Package apperror defines a centralized system for application-specific errors.
// Every layer of the application returns errors from this taxonomy so that the
// HTTP boundary can map them to status codes and response bodies in one place.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType enumerates the categories of application errors.
type ErrorType int

const (
	// UnknownError is for unspecified errors.
	UnknownError ErrorType = iota
	// DatabaseError represents an error originating from the database.
	DatabaseError
	// ConfigError represents an error related to application configuration.
	ConfigError
	// AuthError represents an authentication failure: wrong credentials at
	// login, or any problem with a presented bearer token. All causes map to
	// the same 401 so the response never reveals which check failed.
	AuthError
	// NotFoundError represents a resource that is absent, or one that exists
	// under a different owner. The two cases are deliberately identical.
	NotFoundError
	// ValidationError represents an input validation failure. Unlike the
	// security-sensitive types it may carry field-level detail.
	ValidationError
	// BadRequestError represents a malformed request (e.g. unparseable JSON).
	BadRequestError
	// InternalError represents a generic internal server error.
	InternalError
	// ConflictError represents a uniqueness conflict, e.g. an email address
	// that is already registered.
	ConflictError
)

// AppError is the application's error type. It satisfies the standard error
// interface and optionally wraps an underlying error for debugging. For
// validation failures, Fields holds per-field messages keyed by field name.
type AppError struct {
	Type    ErrorType
	Message string
	Fields  map[string]string
	Err     error // underlying error, never exposed to clients
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error, supporting errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode returns the HTTP status code appropriate for the error type.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case AuthError:
		return http.StatusUnauthorized
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError, BadRequestError:
		return http.StatusBadRequest
	case ConflictError:
		return http.StatusConflict
	case DatabaseError, ConfigError, InternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new AppError. Prefer the typed constructors below;
// this generic factory exists for cases where the type is chosen dynamically.
func NewAppError(errType ErrorType, message string, underlyingError error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     underlyingError,
	}
}

// NewDatabaseError creates a new DatabaseError.
func NewDatabaseError(message string, underlyingError error) *AppError {
	return NewAppError(DatabaseError, message, underlyingError)
}

// NewConfigError creates a new ConfigError.
func NewConfigError(message string, underlyingError error) *AppError {
	return NewAppError(ConfigError, message, underlyingError)
}

// NewAuthError creates a new AuthError. The message is client-visible, so
// callers must use a uniform phrasing that does not leak the failure cause.
func NewAuthError(message string, underlyingError error) *AppError {
	return NewAppError(AuthError, message, underlyingError)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(message string, underlyingError error) *AppError {
	return NewAppError(NotFoundError, message, underlyingError)
}

// NewValidationError creates a new ValidationError without field detail.
func NewValidationError(message string, underlyingError error) *AppError {
	return NewAppError(ValidationError, message, underlyingError)
}

// NewFieldValidationError creates a ValidationError carrying per-field
// messages. Validation detail carries no security sensitivity, so it is the
// one error type allowed to be specific.
func NewFieldValidationError(message string, fields map[string]string) *AppError {
	return &AppError{
		Type:    ValidationError,
		Message: message,
		Fields:  fields,
	}
}

// NewBadRequestError creates a new BadRequestError.
func NewBadRequestError(message string, underlyingError error) *AppError {
	return NewAppError(BadRequestError, message, underlyingError)
}

// NewInternalError creates a new InternalError.
func NewInternalError(message string, underlyingError error) *AppError {
	return NewAppError(InternalError, message, underlyingError)
}

// NewConflictError creates a new ConflictError.
func NewConflictError(message string, underlyingError error) *AppError {
	return NewAppError(ConflictError, message, underlyingError)
}

// ErrorResponse is the JSON envelope for all API error responses.
type ErrorResponse struct {
	Error string `json:"error" example:"a description of the error"`
	// Details holds field-level validation messages, present only for
	// validation errors.
	Details map[string]string `json:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse suitable for clients.
// Only Message and Fields are included; the wrapped error stays server-side.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message, Details: e.Fields}
}

// FromError attempts to convert a generic error to an *AppError.
func FromError(err error) (*AppError, bool) {
	if err == nil {
		return nil, false
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// IsNotFound checks if an error is a NotFound error.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == NotFoundError
}

// IsAuthError checks if an error is an AuthError.
func IsAuthError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == AuthError
}

// IsValidationError checks if an error is a Validation error.
func IsValidationError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ValidationError
}

// IsConflictError checks if an error is a Conflict error.
func IsConflictError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Type == ConflictError
}
