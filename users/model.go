// Package users owns the user records of the social network: the model,
// the storage interface, and the signup/login flows that sit on top of the
// password and token services.
package users

import "time"

// User is a registered account. The password field holds the argon2id hash
// and never serializes.
type User struct {
	ID       uint64 `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	FirstName  *string    `json:"firstName,omitempty"`
	SecondName *string    `json:"secondName,omitempty"`
	BirthDate  *time.Time `json:"birthDate,omitempty"`
	Gender     *string    `json:"gender,omitempty"`
	City       *string    `json:"city,omitempty"`
	Biography  *string    `json:"biography,omitempty"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// TableName pins the table name used by the original schema.
func (User) TableName() string { return "users" }
