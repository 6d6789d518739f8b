package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	apperrors "github.com/bondiano/social-network-higload/errors"
	"github.com/bondiano/social-network-higload/logger"
	"github.com/bondiano/social-network-higload/redis"
	"github.com/bondiano/social-network-higload/workpool"
)

func newTestService(t *testing.T, cfg Config) (*TokenService, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	log := logger.NewDefault("test")

	client, err := redis.New(redis.Config{Addr: mr.Addr()}, log)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	pool := workpool.New(2)
	t.Cleanup(pool.Close)

	if cfg.Secret == "" {
		cfg.Secret = "test-secret"
	}
	svc, err := NewTokenService(cfg, NewRevocationStore(client, log), pool, log)
	if err != nil {
		t.Fatalf("token service: %v", err)
	}
	return svc, mr
}

func appCode(t *testing.T, err error) apperrors.ErrorCode {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	ctx := context.Background()

	pair, err := svc.IssueTokenPair(ctx, "42")
	if err != nil {
		t.Fatalf("IssueTokenPair: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Error("access and refresh tokens must differ")
	}

	access, err := svc.Verify(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("Verify access: %v", err)
	}
	if access.UserID != "42" || access.Kind != KindAccess {
		t.Errorf("unexpected access claims: %+v", access)
	}

	refresh, err := svc.Verify(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Verify refresh: %v", err)
	}
	if refresh.UserID != "42" || refresh.Kind != KindRefresh {
		t.Errorf("unexpected refresh claims: %+v", refresh)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t, Config{})

	for _, token := range []string{"", "not.a.jwt", "aaaa.bbbb.cccc"} {
		if code := appCode(t, errOf(svc.Verify(context.Background(), token))); code != apperrors.ErrCodeInvalidToken {
			t.Errorf("token %q: expected AUTH_INVALID_TOKEN, got %s", token, code)
		}
	}
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	issuer, _ := newTestService(t, Config{Secret: "one-secret"})
	verifier, _ := newTestService(t, Config{Secret: "another-secret"})

	token, err := issuer.IssueAccessToken("42")
	if err != nil {
		t.Fatal(err)
	}

	if code := appCode(t, errOf(verifier.Verify(context.Background(), token))); code != apperrors.ErrCodeInvalidToken {
		t.Errorf("expected AUTH_INVALID_TOKEN, got %s", code)
	}
}

func TestVerifyReportsExpiry(t *testing.T) {
	svc, _ := newTestService(t, Config{AccessExpirationSeconds: 1})

	token, err := svc.IssueAccessToken("42")
	if err != nil {
		t.Fatal(err)
	}

	time.Sleep(1500 * time.Millisecond)

	if code := appCode(t, errOf(svc.Verify(context.Background(), token))); code != apperrors.ErrCodeTokenExpired {
		t.Errorf("expected AUTH_TOKEN_EXPIRED, got %s", code)
	}
}

func TestInvalidateBlacklistsToken(t *testing.T) {
	svc, mr := newTestService(t, Config{})
	ctx := context.Background()

	token, err := svc.IssueAccessToken("42")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Verify(ctx, token); err != nil {
		t.Fatalf("token should verify before revocation: %v", err)
	}

	if err := svc.Invalidate(ctx, token); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}

	if code := appCode(t, errOf(svc.Verify(ctx, token))); code != apperrors.ErrCodeTokenRevoked {
		t.Errorf("expected AUTH_TOKEN_REVOKED, got %s", code)
	}

	// The entry lives under the raw token key with the literal marker and a
	// TTL past the token's natural expiry.
	key := "jwt_blacklist:" + token
	got, err := mr.Get(key)
	if err != nil {
		t.Fatalf("expected blacklist entry at %s: %v", key, err)
	}
	if got != "true" {
		t.Errorf("expected marker %q at %s, got %q", "true", key, got)
	}
	if ttl := mr.TTL(key); ttl <= 0 {
		t.Errorf("expected positive TTL on blacklist entry, got %v", ttl)
	}
}

func TestInvalidateRejectsGarbage(t *testing.T) {
	svc, mr := newTestService(t, Config{})

	err := svc.Invalidate(context.Background(), "not-a-token")
	if code := appCode(t, err); code != apperrors.ErrCodeInvalidToken {
		t.Errorf("expected AUTH_INVALID_TOKEN, got %s", code)
	}
	if len(mr.Keys()) != 0 {
		t.Errorf("garbage must not be blacklisted, found keys: %v", mr.Keys())
	}
}

func TestVerifyFailsOpenOnStoreOutage(t *testing.T) {
	svc, mr := newTestService(t, Config{})
	ctx := context.Background()

	token, err := svc.IssueAccessToken("42")
	if err != nil {
		t.Fatal(err)
	}

	mr.Close()

	claims, err := svc.Verify(ctx, token)
	if err != nil {
		t.Fatalf("expected fail-open verification, got %v", err)
	}
	if claims.UserID != "42" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestInvalidateFailsOnStoreOutage(t *testing.T) {
	svc, mr := newTestService(t, Config{})
	ctx := context.Background()

	token, err := svc.IssueAccessToken("42")
	if err != nil {
		t.Fatal(err)
	}

	mr.Close()

	// Revocation is a write; unlike lookups it must not silently succeed.
	if err := svc.Invalidate(ctx, token); err == nil {
		t.Error("expected revocation to fail when the store is down")
	}
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	mr := miniredis.RunT(t)
	log := logger.NewDefault("test")
	client, err := redis.New(redis.Config{Addr: mr.Addr()}, log)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { client.Close() })

	pool := workpool.New(1)
	t.Cleanup(pool.Close)

	if _, err := NewTokenService(Config{}, NewRevocationStore(client, log), pool, log); err == nil {
		t.Error("expected error for missing secret")
	}
}

// errOf drops the value of a two-result call, keeping the error.
func errOf[T any](_ T, err error) error { return err }
