package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   ErrorCode
		status int
	}{
		{"no token", NoToken("user"), ErrCodeNoToken, http.StatusUnauthorized},
		{"no refresh token", NoRefreshToken("user"), ErrCodeNoRefreshToken, http.StatusUnauthorized},
		{"invalid token", InvalidToken("jwt", "invalid token type"), ErrCodeInvalidToken, http.StatusUnauthorized},
		{"token expired", TokenExpired(), ErrCodeTokenExpired, http.StatusUnauthorized},
		{"token revoked", TokenRevoked(), ErrCodeTokenRevoked, http.StatusUnauthorized},
		{"session expired", SessionExpired(), ErrCodeSessionExpired, http.StatusUnauthorized},
		{"invalid auth method", InvalidAuthMethod(), ErrCodeInvalidAuthMethod, http.StatusBadRequest},
		{"permission denied", PermissionDenied(""), ErrCodePermissionDenied, http.StatusForbidden},
		{"user not found", UserNotFound("42"), ErrCodeUserNotFound, http.StatusNotFound},
		{"user already exists", UserAlreadyExists(), ErrCodeUserAlreadyExists, http.StatusConflict},
		{"invalid password", InvalidPassword(), ErrCodeInvalidPassword, http.StatusBadRequest},
		{"hashing failed", HashingFailed(stderrors.New("x")), ErrCodeHashingFailed, http.StatusBadRequest},
		{"token build failed", TokenBuildFailed(stderrors.New("x")), ErrCodeTokenBuildFailed, http.StatusBadRequest},
		{"internal", Internal(stderrors.New("x")), ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, tc.err.Code)
			}
			if tc.err.HTTPStatus != tc.status {
				t.Errorf("expected status %d, got %d", tc.status, tc.err.HTTPStatus)
			}
		})
	}
}

func TestInvalidTokenCarriesReason(t *testing.T) {
	err := InvalidToken("jwt", "parse token error")
	if got := err.Details["reason"]; got != "parse token error" {
		t.Errorf("expected reason detail, got %v", got)
	}

	err = InvalidToken("jwt", "")
	if _, ok := err.Details["reason"]; ok {
		t.Error("expected no reason detail for empty reason")
	}
}

func TestUnwrapAndErrorsIs(t *testing.T) {
	cause := stderrors.New("disk on fire")
	err := Internal(cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to find AppError through wrapping")
	}
	if appErr.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", appErr.Code)
	}
}

func TestToResponseExcludesCause(t *testing.T) {
	err := HashingFailed(stderrors.New("argon2 blew up"))
	resp := err.ToResponse()

	if resp.Code != ErrCodeHashingFailed {
		t.Errorf("unexpected code: %s", resp.Code)
	}
	if resp.Message != err.Message {
		t.Errorf("unexpected message: %s", resp.Message)
	}
	// No field of the response may leak the internal cause.
	for _, v := range resp.Details {
		if s, ok := v.(string); ok && s == "argon2 blew up" {
			t.Error("cause leaked into response details")
		}
	}
}

func TestSeverityOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Severity
	}{
		{"expired token is routine", TokenExpired(), SeverityWarn},
		{"revoked token is routine", TokenRevoked(), SeverityWarn},
		{"wrong password is routine", InvalidPassword(), SeverityWarn},
		{"permission denied is suspicious", PermissionDenied("no"), SeverityError},
		{"internal failure", Internal(stderrors.New("x")), SeverityError},
		{"unknown error", stderrors.New("x"), SeverityError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SeverityOf(tc.err); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestWithDetail(t *testing.T) {
	err := Validation("bad input").WithDetail("field", "email")
	if err.Details["field"] != "email" {
		t.Errorf("expected detail to be set, got %v", err.Details)
	}
}
