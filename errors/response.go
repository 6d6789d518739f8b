package errors

import (
	stderrors "errors"
)

// ErrorResponse is the JSON body returned to clients for any failed request.
type ErrorResponse struct {
	Message string         `json:"message"`
	Code    ErrorCode      `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// ToResponse converts an AppError to the client-facing response body.
// The Cause is deliberately excluded.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Message: e.Message,
		Code:    e.Code,
		Details: e.Details,
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
