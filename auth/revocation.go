package auth

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/bondiano/social-network-higload/errors"
	"github.com/bondiano/social-network-higload/logger"
	"github.com/bondiano/social-network-higload/redis"
)

// blacklistPrefix namespaces revocation entries in the shared keyspace.
const blacklistPrefix = "jwt_blacklist:"

// revokedMarker is the value stored for a revoked token.
const revokedMarker = "true"

// RevocationStore is the deny-list of otherwise-still-valid tokens, keyed by
// raw token value with a TTL covering the token's remaining lifetime plus a
// grace window.
type RevocationStore interface {
	// IsRevoked reports whether token has been revoked.
	IsRevoked(ctx context.Context, token string) bool
	// Revoke blacklists token for ttl. A ttl <= 0 means the token is
	// already expired and nothing is stored.
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

// redisRevocationStore implements RevocationStore on the shared Redis
// client. Lookups fail OPEN: if the store is unreachable the token is
// admitted and the condition is logged, so a Redis outage cannot lock every
// session out — expiry remains the backstop. This is a deliberate,
// documented trade-off, not a default.
type redisRevocationStore struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRevocationStore creates the Redis-backed revocation store.
func NewRevocationStore(client *redis.Client, log *logger.Logger) RevocationStore {
	return &redisRevocationStore{
		client: client,
		log:    log.WithComponent("revocation"),
	}
}

func (s *redisRevocationStore) IsRevoked(ctx context.Context, token string) bool {
	val, err := s.client.Get(ctx, blacklistPrefix+token)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("revocation lookup failed, failing open", logger.ErrorFields("is_revoked", err))
		}
		return false
	}
	return val == revokedMarker
}

func (s *redisRevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already past expiry; the store would evict it immediately anyway.
		return nil
	}
	if err := s.client.SetWithTTL(ctx, blacklistPrefix+token, revokedMarker, ttl); err != nil {
		s.log.Error("revocation write failed", logger.ErrorFields("revoke", err))
		return apperrors.Internal(err)
	}
	return nil
}
