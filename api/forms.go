// Package api wires the public HTTP endpoints: registration, login, logout,
// profile lookup, and health.
package api

import (
	"time"

	apperrors "github.com/bondiano/social-network-higload/errors"
	"github.com/bondiano/social-network-higload/users"
)

const birthDateLayout = "2006-01-02"

// SignUpForm is the registration request body.
type SignUpForm struct {
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=6"`
	FirstName  *string `json:"firstName,omitempty"`
	SecondName *string `json:"secondName,omitempty"`
	BirthDate  *string `json:"birthDate,omitempty" binding:"omitempty,birthdate"`
	Gender     *string `json:"gender,omitempty"`
	City       *string `json:"city,omitempty"`
	Biography  *string `json:"biography,omitempty"`
}

// ToUser converts the form into a user record. The password stays out; the
// service hashes and attaches it.
func (f *SignUpForm) ToUser() (*users.User, error) {
	user := &users.User{
		Email:      f.Email,
		FirstName:  f.FirstName,
		SecondName: f.SecondName,
		Gender:     f.Gender,
		City:       f.City,
		Biography:  f.Biography,
	}
	if f.BirthDate != nil {
		t, err := time.Parse(birthDateLayout, *f.BirthDate)
		if err != nil {
			return nil, apperrors.Validation("birthDate must be formatted as YYYY-MM-DD")
		}
		user.BirthDate = &t
	}
	return user, nil
}

// LoginForm is the login request body.
type LoginForm struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// AuthResponse carries the user together with a fresh credential pair.
type AuthResponse struct {
	User   *users.User  `json:"user"`
	Tokens TokenPairDTO `json:"tokens"`
}

// TokenPairDTO is the wire shape of an issued pair.
type TokenPairDTO struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
