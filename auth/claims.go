// Package auth implements the credential lifecycle for the service: signed
// access/refresh token pairs, verification against signature, expiry and a
// redis-backed revocation list, and the request-admission middleware that
// gates authenticated routes.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenKind discriminates access tokens from refresh tokens. The kind is
// embedded in the signed payload and is immutable once issued.
type TokenKind string

const (
	// KindAccess is the short-lived token authorizing requests.
	KindAccess TokenKind = "access"
	// KindRefresh is the longer-lived token proving an active session.
	KindRefresh TokenKind = "refresh"
)

// TokenClaims is the signed token payload. RegisteredClaims supplies the
// standard `iat`/`exp` fields as Unix seconds; `user_id` and `kind` ride
// alongside them, so the wire format is
// {"user_id": "...", "kind": "access"|"refresh", "iat": n, "exp": n}.
type TokenClaims struct {
	UserID string    `json:"user_id"`
	Kind   TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// TokenPair is an access/refresh credential pair. Both tokens are always
// issued together for the same subject and are never reissued individually.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
