// Package errors provides the unified application error type for the
// service. Errors carry a machine-readable code, the HTTP status they map
// to, and an optional details map that is safe to expose to clients.
package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the HTTP status code this error maps to.
	HTTPStatus int `json:"-"`
	// Details contains additional client-safe context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error. Never serialized.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// --- Auth error constructors ---

// NoToken indicates the primary authorization header is missing.
func NoToken(scope string) *AppError {
	return &AppError{
		Code: ErrCodeNoToken, Message: fmt.Sprintf("Authentication required: %s", scope),
		HTTPStatus: http.StatusUnauthorized,
	}
}

// NoRefreshToken indicates the refresh token header is missing.
func NoRefreshToken(scope string) *AppError {
	return &AppError{
		Code: ErrCodeNoRefreshToken, Message: fmt.Sprintf("Refresh token required for %s", scope),
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidToken indicates a token failed verification. The reason is
// client-safe (e.g. "invalid token type", "user not found") and is carried
// in details; underlying library errors never reach the client.
func InvalidToken(tokenType, reason string) *AppError {
	e := &AppError{
		Code: ErrCodeInvalidToken, Message: fmt.Sprintf("Invalid %s token", tokenType),
		HTTPStatus: http.StatusUnauthorized,
	}
	if reason != "" {
		e = e.WithDetail("reason", reason)
	}
	return e
}

// TokenExpired indicates a token is past its expiry.
func TokenExpired() *AppError {
	return &AppError{
		Code: ErrCodeTokenExpired, Message: "Token expired",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// TokenRevoked indicates a token was invalidated before its expiry.
func TokenRevoked() *AppError {
	return &AppError{
		Code: ErrCodeTokenRevoked, Message: "Token revoked",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// SessionExpired indicates the session as a whole is no longer valid.
func SessionExpired() *AppError {
	return &AppError{
		Code: ErrCodeSessionExpired, Message: "Session expired",
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidAuthMethod indicates an unsupported authentication scheme.
func InvalidAuthMethod() *AppError {
	return &AppError{
		Code: ErrCodeInvalidAuthMethod, Message: "Invalid authentication method",
		HTTPStatus: http.StatusBadRequest,
	}
}

// PermissionDenied indicates the caller is authenticated but not allowed.
func PermissionDenied(reason string) *AppError {
	if reason == "" {
		reason = "You don't have permission to perform this action."
	}
	return &AppError{
		Code: ErrCodePermissionDenied, Message: fmt.Sprintf("Permission denied: %s", reason),
		HTTPStatus: http.StatusForbidden,
	}
}

// --- User error constructors ---

// UserNotFound indicates no user matches the given identifier.
func UserNotFound(id string) *AppError {
	return &AppError{
		Code: ErrCodeUserNotFound, Message: "User not found",
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"id": id},
	}
}

// UserAlreadyExists indicates a signup collides with an existing account.
func UserAlreadyExists() *AppError {
	return &AppError{
		Code: ErrCodeUserAlreadyExists, Message: "User already exists",
		HTTPStatus: http.StatusConflict,
	}
}

// InvalidPassword indicates a login attempt with a wrong password.
func InvalidPassword() *AppError {
	return &AppError{
		Code: ErrCodeInvalidPassword, Message: "Invalid password",
		HTTPStatus: http.StatusBadRequest,
	}
}

// HashingFailed indicates the password hashing task could not complete.
// Never retried automatically.
func HashingFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeHashingFailed, Message: "Failed to hash password",
		HTTPStatus: http.StatusBadRequest, Cause: cause,
	}
}

// TokenBuildFailed indicates token pair issuance failed. No partial pair is
// ever surfaced alongside this error.
func TokenBuildFailed(cause error) *AppError {
	return &AppError{
		Code: ErrCodeTokenBuildFailed, Message: "Failed to build tokens",
		HTTPStatus: http.StatusBadRequest, Cause: cause,
	}
}

// --- Generic constructors ---

// Validation creates an AppError for request validation failures.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingField creates an AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest,
		Details:    map[string]any{"field": field},
	}
}

// NotFound creates an AppError for a missing resource.
func NotFound(resource string) *AppError {
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"resource": resource},
	}
}

// Internal creates an AppError for an unexpected server-side failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred. Please try again.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
