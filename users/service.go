package users

import (
	"context"
	"strconv"

	"github.com/bondiano/social-network-higload/auth"
	apperrors "github.com/bondiano/social-network-higload/errors"
	"github.com/bondiano/social-network-higload/logger"
	"github.com/bondiano/social-network-higload/password"
)

// Service implements the signup and login flows.
type Service struct {
	store     Store
	passwords *password.Service
	tokens    *auth.TokenService
	log       *logger.Logger
}

// NewService creates the user service.
func NewService(store Store, passwords *password.Service, tokens *auth.TokenService, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		passwords: passwords,
		tokens:    tokens,
		log:       log.WithComponent("users"),
	}
}

// ByID returns the user with the given id.
func (s *Service) ByID(ctx context.Context, id uint64) (*User, error) {
	return s.store.ByID(ctx, id)
}

// SignUp hashes the password, creates the account and issues its first
// credential pair. The caller provides the profile fields on user; the
// plain-text password never touches the store.
func (s *Service) SignUp(ctx context.Context, user *User, plainPassword string) (*User, auth.TokenPair, error) {
	hash, err := s.passwords.Hash(ctx, plainPassword)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}
	user.Password = hash

	if err := s.store.Create(ctx, user); err != nil {
		return nil, auth.TokenPair{}, err
	}

	pair, err := s.tokens.IssueTokenPair(ctx, strconv.FormatUint(user.ID, 10))
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	s.log.Info("user registered", map[string]interface{}{
		logger.FieldUserID: user.ID,
	})
	return user, pair, nil
}

// Login verifies the password for the account registered under email and
// issues a fresh credential pair.
func (s *Service) Login(ctx context.Context, email, plainPassword string) (*User, auth.TokenPair, error) {
	user, err := s.store.ByEmail(ctx, email)
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	if !s.passwords.Verify(ctx, plainPassword, user.Password) {
		s.log.Warn("login rejected", map[string]interface{}{
			logger.FieldUserID: user.ID,
		})
		return nil, auth.TokenPair{}, apperrors.InvalidPassword()
	}

	pair, err := s.tokens.IssueTokenPair(ctx, strconv.FormatUint(user.ID, 10))
	if err != nil {
		return nil, auth.TokenPair{}, err
	}

	return user, pair, nil
}
