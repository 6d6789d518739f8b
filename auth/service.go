package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/bondiano/social-network-higload/errors"
	"github.com/bondiano/social-network-higload/logger"
	"github.com/bondiano/social-network-higload/observability"
	"github.com/bondiano/social-network-higload/workpool"
)

// revocationGrace keeps blacklist entries alive past the token's natural
// expiry, so a check shortly after expiry still reports "expired" instead of
// falling through to a missing entry.
const revocationGrace = 60 * time.Second

// TokenService issues, verifies and revokes signed token pairs.
//
// A token's life is Issued -> Valid -> {Expired | Revoked}; there is no
// transition back to Valid. Verification runs the cheap local checks
// (signature, expiry) before consulting the revocation store, so provably
// invalid tokens never cost a network round trip.
type TokenService struct {
	cfg        Config
	revocation RevocationStore
	pool       *workpool.Pool
	log        *logger.Logger
	tracer     trace.Tracer
}

// NewTokenService creates a TokenService. The worker pool is shared with
// password hashing; signing a pair is offloaded there.
func NewTokenService(cfg Config, revocation RevocationStore, pool *workpool.Pool, log *logger.Logger) (*TokenService, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("auth: %w", err)
	}
	return &TokenService{
		cfg:        cfg,
		revocation: revocation,
		pool:       pool,
		log:        log.WithComponent("token"),
		tracer:     observability.Tracer("auth"),
	}, nil
}

// IssueAccessToken signs a new access token for the subject.
func (s *TokenService) IssueAccessToken(userID string) (string, error) {
	return s.sign(userID, KindAccess, s.cfg.AccessTTL())
}

// IssueRefreshToken signs a new refresh token for the subject.
func (s *TokenService) IssueRefreshToken(userID string) (string, error) {
	return s.sign(userID, KindRefresh, s.cfg.RefreshTTL())
}

func (s *TokenService) sign(userID string, kind TokenKind, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		UserID: userID,
		Kind:   kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("auth: sign %s token: %w", kind, err)
	}
	return signed, nil
}

// IssueTokenPair signs both tokens of a credential pair on the worker pool
// and joins the results. The call fails atomically: if either signing task
// fails, TokenBuildFailed is returned and no partial pair is surfaced.
func (s *TokenService) IssueTokenPair(ctx context.Context, userID string) (TokenPair, error) {
	ctx, span := s.tracer.Start(ctx, "auth.issue_token_pair")
	defer span.End()

	accessCh := workpool.Submit(s.pool, func() (string, error) {
		return s.IssueAccessToken(userID)
	})
	refreshCh := workpool.Submit(s.pool, func() (string, error) {
		return s.IssueRefreshToken(userID)
	})

	var access, refresh workpool.Result[string]
	select {
	case access = <-accessCh:
	case <-ctx.Done():
		return TokenPair{}, ctx.Err()
	}
	select {
	case refresh = <-refreshCh:
	case <-ctx.Done():
		return TokenPair{}, ctx.Err()
	}

	if access.Err != nil || refresh.Err != nil {
		err := errors.Join(access.Err, refresh.Err)
		s.log.Error("token pair build failed", logger.ErrorFields("issue_token_pair", err))
		observability.SetSpanError(ctx, err)
		return TokenPair{}, apperrors.TokenBuildFailed(err)
	}

	return TokenPair{AccessToken: access.Value, RefreshToken: refresh.Value}, nil
}

// Verify decodes token and checks, in order: signature and payload shape,
// expiry, then the revocation list. It returns the claims on success, or
// one of InvalidToken, TokenExpired, TokenRevoked.
func (s *TokenService) Verify(ctx context.Context, token string) (*TokenClaims, error) {
	ctx, span := s.tracer.Start(ctx, "auth.verify")
	defer span.End()

	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.TokenExpired()
		}
		return nil, apperrors.InvalidToken("jwt", "signature or payload invalid").WithCause(err)
	}
	if !parsed.Valid {
		return nil, apperrors.InvalidToken("jwt", "signature or payload invalid")
	}

	// Only now pay for the remote lookup.
	if s.revocation.IsRevoked(ctx, token) {
		s.log.Warn("revoked token presented", map[string]interface{}{
			logger.FieldUserID: claims.UserID,
		})
		return nil, apperrors.TokenRevoked()
	}

	return claims, nil
}

// Invalidate blacklists token until its natural expiry plus the grace
// window. An undecodable token fails with InvalidToken — garbage needs no
// blacklist entry. A token already past expiry is a no-op.
func (s *TokenService) Invalidate(ctx context.Context, token string) error {
	ctx, span := s.tracer.Start(ctx, "auth.invalidate")
	defer span.End()

	claims := &TokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		// Expired tokens still decode; Revoke drops non-positive TTLs.
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || !parsed.Valid {
		return apperrors.InvalidToken("jwt", "signature or payload invalid").WithCause(err)
	}
	if claims.ExpiresAt == nil {
		return apperrors.InvalidToken("jwt", "signature or payload invalid")
	}

	ttl := time.Until(claims.ExpiresAt.Time) + revocationGrace
	return s.revocation.Revoke(ctx, token, ttl)
}

func (s *TokenService) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, fmt.Errorf("auth: unexpected signing method: %s", t.Method.Alg())
	}
	return []byte(s.cfg.Secret), nil
}
