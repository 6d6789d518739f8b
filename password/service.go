package password

import (
	"context"

	apperrors "github.com/bondiano/social-network-higload/errors"
	"github.com/bondiano/social-network-higload/logger"
	"github.com/bondiano/social-network-higload/workpool"
)

// Service hashes and verifies passwords on a shared worker pool.
type Service struct {
	hasher *Argon2Hasher
	pool   *workpool.Pool
	log    *logger.Logger
}

// NewService creates a pool-backed password service.
func NewService(pool *workpool.Pool, log *logger.Logger, opts ...Option) *Service {
	return &Service{
		hasher: NewArgon2Hasher(opts...),
		pool:   pool,
		log:    log.WithComponent("password"),
	}
}

// Hash computes the argon2id hash of password on the worker pool. A pool
// shutdown or hashing failure surfaces as HashingFailed; it is never
// retried here.
func (s *Service) Hash(ctx context.Context, password string) (string, error) {
	hash, err := workpool.Do(ctx, s.pool, func() (string, error) {
		return s.hasher.Hash(password)
	})
	if err != nil {
		s.log.Error("password hashing failed", logger.ErrorFields("hash", err))
		return "", apperrors.HashingFailed(err)
	}
	return hash, nil
}

// Verify checks password against hash on the worker pool. A wrong password
// returns false; so does any malformed hash or pool failure (fail closed).
func (s *Service) Verify(ctx context.Context, password, hash string) bool {
	ok, err := workpool.Do(ctx, s.pool, func() (bool, error) {
		return s.hasher.Verify(password, hash)
	})
	if err != nil {
		s.log.Warn("password verification failed", logger.ErrorFields("verify", err))
		return false
	}
	return ok
}
