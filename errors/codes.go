package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Authentication errors
const (
	// ErrCodeNoToken indicates the authorization header is absent.
	ErrCodeNoToken ErrorCode = "AUTH_NO_TOKEN"
	// ErrCodeNoRefreshToken indicates the refresh token header is absent.
	ErrCodeNoRefreshToken ErrorCode = "AUTH_NO_REFRESH_TOKEN"
	// ErrCodeInvalidToken indicates the token failed verification.
	ErrCodeInvalidToken ErrorCode = "AUTH_INVALID_TOKEN"
	// ErrCodeTokenExpired indicates the token is past its expiry.
	ErrCodeTokenExpired ErrorCode = "AUTH_TOKEN_EXPIRED"
	// ErrCodeTokenRevoked indicates the token was invalidated.
	ErrCodeTokenRevoked ErrorCode = "AUTH_TOKEN_REVOKED"
	// ErrCodeSessionExpired indicates the session is no longer valid.
	ErrCodeSessionExpired ErrorCode = "AUTH_SESSION_EXPIRED"
	// ErrCodeInvalidAuthMethod indicates an unsupported auth scheme.
	ErrCodeInvalidAuthMethod ErrorCode = "AUTH_INVALID_METHOD"
	// ErrCodePermissionDenied indicates the caller lacks permission.
	ErrCodePermissionDenied ErrorCode = "AUTH_PERMISSION_DENIED"
)

// User errors
const (
	// ErrCodeUserNotFound indicates no user matches the identifier.
	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"
	// ErrCodeUserAlreadyExists indicates a duplicate signup.
	ErrCodeUserAlreadyExists ErrorCode = "USER_ALREADY_EXISTS"
	// ErrCodeInvalidPassword indicates a wrong password at login.
	ErrCodeInvalidPassword ErrorCode = "USER_INVALID_PASSWORD"
	// ErrCodeHashingFailed indicates password hashing could not complete.
	ErrCodeHashingFailed ErrorCode = "USER_HASHING_FAILED"
	// ErrCodeTokenBuildFailed indicates token pair issuance failed.
	ErrCodeTokenBuildFailed ErrorCode = "USER_TOKEN_BUILD_FAILED"
)

// Generic errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)
