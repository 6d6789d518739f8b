package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bondiano/social-network-higload/auth/authctx"
	apperrors "github.com/bondiano/social-network-higload/errors"
	"github.com/bondiano/social-network-higload/logger"
)

type gateUser struct {
	ID    uint64
	Email string
}

func newGateRouter(t *testing.T, svc *TokenService, load UserLoader[*gateUser]) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if load == nil {
		load = func(ctx context.Context, id uint64) (*gateUser, error) {
			return &gateUser{ID: id, Email: fmt.Sprintf("u%d@example.com", id)}, nil
		}
	}

	engine := gin.New()
	engine.GET("/me", RequireUser(svc, load, logger.NewDefault("test")), func(c *gin.Context) {
		identity := authctx.MustGet[Identity[*gateUser]](c.Request.Context())
		c.JSON(http.StatusOK, gin.H{
			"id":      identity.User.ID,
			"access":  identity.Tokens.AccessToken,
			"refresh": identity.Tokens.RefreshToken,
		})
	})
	return engine
}

func doGet(router *gin.Engine, access, refresh string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if access != "" {
		req.Header.Set("Authorization", access)
	}
	if refresh != "" {
		req.Header.Set(RefreshAuthHeader, refresh)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apperrors.ErrorResponse {
	t.Helper()
	var resp apperrors.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestGateAdmitsValidPair(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	router := newGateRouter(t, svc, nil)

	pair, err := svc.IssueTokenPair(context.Background(), "42")
	if err != nil {
		t.Fatal(err)
	}

	rec := doGet(router, "Bearer "+pair.AccessToken, "Bearer "+pair.RefreshToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		ID      uint64 `json:"id"`
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.ID != 42 {
		t.Errorf("expected user 42, got %d", body.ID)
	}
	if body.Access != pair.AccessToken || body.Refresh != pair.RefreshToken {
		t.Error("identity must carry the exact presented tokens")
	}
}

func TestGateRequiresAccessHeader(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	router := newGateRouter(t, svc, nil)

	rec := doGet(router, "", "Bearer whatever")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != apperrors.ErrCodeNoToken {
		t.Errorf("expected AUTH_NO_TOKEN, got %s", resp.Code)
	}
}

func TestGateRejectsNonBearerScheme(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	router := newGateRouter(t, svc, nil)

	rec := doGet(router, "Basic dXNlcjpwYXNz", "Bearer whatever")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != apperrors.ErrCodeNoToken {
		t.Errorf("expected AUTH_NO_TOKEN, got %s", resp.Code)
	}
}

func TestGateRequiresRefreshHeader(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	router := newGateRouter(t, svc, nil)

	token, err := svc.IssueAccessToken("42")
	if err != nil {
		t.Fatal(err)
	}

	rec := doGet(router, "Bearer "+token, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Code != apperrors.ErrCodeNoRefreshToken {
		t.Errorf("expected AUTH_NO_REFRESH_TOKEN, got %s", resp.Code)
	}
}

func TestGateRejectsRefreshTokenAsAccess(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	router := newGateRouter(t, svc, nil)

	pair, err := svc.IssueTokenPair(context.Background(), "42")
	if err != nil {
		t.Fatal(err)
	}

	// Swap the tokens: the refresh token verifies but carries the wrong kind.
	rec := doGet(router, "Bearer "+pair.RefreshToken, "Bearer "+pair.AccessToken)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Code != apperrors.ErrCodeInvalidToken {
		t.Errorf("expected AUTH_INVALID_TOKEN, got %s", resp.Code)
	}
	if reason := resp.Details["reason"]; reason != "invalid token type" {
		t.Errorf("expected reason %q, got %v", "invalid token type", reason)
	}
}

func TestGateRejectsRevokedToken(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	router := newGateRouter(t, svc, nil)

	pair, err := svc.IssueTokenPair(context.Background(), "42")
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Invalidate(context.Background(), pair.AccessToken); err != nil {
		t.Fatal(err)
	}

	rec := doGet(router, "Bearer "+pair.AccessToken, "Bearer "+pair.RefreshToken)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Code != apperrors.ErrCodeInvalidToken {
		t.Errorf("expected AUTH_INVALID_TOKEN, got %s", resp.Code)
	}
	if reason := resp.Details["reason"]; reason != "token revoked" {
		t.Errorf("expected reason %q, got %v", "token revoked", reason)
	}
}

func TestGateRejectsNonNumericSubject(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	router := newGateRouter(t, svc, nil)

	access, err := svc.sign("not-a-number", KindAccess, svc.cfg.AccessTTL())
	if err != nil {
		t.Fatal(err)
	}
	refresh, err := svc.IssueRefreshToken("42")
	if err != nil {
		t.Fatal(err)
	}

	rec := doGet(router, "Bearer "+access, "Bearer "+refresh)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	resp := decodeError(t, rec)
	if reason := resp.Details["reason"]; reason != "parse token error" {
		t.Errorf("expected reason %q, got %v", "parse token error", reason)
	}
}

func TestGateMasksUnknownUser(t *testing.T) {
	svc, _ := newTestService(t, Config{})
	router := newGateRouter(t, svc, func(ctx context.Context, id uint64) (*gateUser, error) {
		return nil, apperrors.UserNotFound("42")
	})

	pair, err := svc.IssueTokenPair(context.Background(), "42")
	if err != nil {
		t.Fatal(err)
	}

	rec := doGet(router, "Bearer "+pair.AccessToken, "Bearer "+pair.RefreshToken)
	// A 404 here would confirm account existence; the gate answers 401.
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Code != apperrors.ErrCodeInvalidToken {
		t.Errorf("expected AUTH_INVALID_TOKEN, got %s", resp.Code)
	}
	if reason := resp.Details["reason"]; reason != "user not found" {
		t.Errorf("expected reason %q, got %v", "user not found", reason)
	}
}
