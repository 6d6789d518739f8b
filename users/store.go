package users

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	apperrors "github.com/bondiano/social-network-higload/errors"
)

// Store is the narrow storage contract the auth flows consume. The token
// and middleware layers only ever read through it.
type Store interface {
	// ByID returns the user with the given id, or UserNotFound.
	ByID(ctx context.Context, id uint64) (*User, error)
	// ByEmail returns the user with the given email, or UserNotFound.
	ByEmail(ctx context.Context, email string) (*User, error)
	// Create inserts a new user. A duplicate email yields UserAlreadyExists.
	Create(ctx context.Context, user *User) error
}

// gormStore implements Store on a gorm Postgres connection.
type gormStore struct {
	db *gorm.DB
}

// NewStore creates the gorm-backed user store and ensures the schema.
func NewStore(db *gorm.DB) (Store, error) {
	if err := db.AutoMigrate(&User{}); err != nil {
		return nil, err
	}
	return &gormStore{db: db}, nil
}

func (s *gormStore) ByID(ctx context.Context, id uint64) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.UserNotFound(strconv.FormatUint(id, 10))
		}
		return nil, apperrors.Internal(err)
	}
	return &user, nil
}

func (s *gormStore) ByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.UserNotFound(email)
		}
		return nil, apperrors.Internal(err)
	}
	return &user, nil
}

func (s *gormStore) Create(ctx context.Context, user *User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.UserAlreadyExists()
		}
		return apperrors.Internal(err)
	}
	return nil
}
