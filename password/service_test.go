package password

import (
	"context"
	"testing"

	apperrors "github.com/bondiano/social-network-higload/errors"
	"github.com/bondiano/social-network-higload/logger"
	"github.com/bondiano/social-network-higload/workpool"
)

func newTestService(t *testing.T) (*Service, *workpool.Pool) {
	t.Helper()
	pool := workpool.New(2)
	t.Cleanup(pool.Close)
	svc := NewService(pool, logger.NewDefault("test"), WithMemory(8*1024))
	return svc, pool
}

func TestServiceHashAndVerify(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	hash, err := svc.Hash(ctx, "hunter42")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if !svc.Verify(ctx, "hunter42", hash) {
		t.Error("expected matching password to verify")
	}
	if svc.Verify(ctx, "hunter43", hash) {
		t.Error("expected wrong password to fail")
	}
}

func TestServiceVerifyFailsClosed(t *testing.T) {
	svc, _ := newTestService(t)

	if svc.Verify(context.Background(), "secret", "not-a-valid-hash") {
		t.Error("expected malformed hash to fail verification")
	}
}

func TestServiceHashAfterPoolClose(t *testing.T) {
	svc, pool := newTestService(t)
	pool.Close()

	_, err := svc.Hash(context.Background(), "secret")
	if err == nil {
		t.Fatal("expected error after pool shutdown")
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.Code != apperrors.ErrCodeHashingFailed {
		t.Errorf("expected %s, got %s", apperrors.ErrCodeHashingFailed, appErr.Code)
	}
}

func TestServiceHashHonorsContext(t *testing.T) {
	svc, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Hash(ctx, "secret")
	if err == nil {
		t.Fatal("expected error for canceled context")
	}
}
