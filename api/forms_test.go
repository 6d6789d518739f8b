package api

import (
	"testing"

	apperrors "github.com/bondiano/social-network-higload/errors"
)

func strPtr(s string) *string { return &s }

func TestSignUpFormToUser(t *testing.T) {
	form := SignUpForm{
		Email:     "a@example.com",
		Password:  "hunter42",
		FirstName: strPtr("Ada"),
		BirthDate: strPtr("1990-06-15"),
		City:      strPtr("London"),
	}

	user, err := form.ToUser()
	if err != nil {
		t.Fatalf("ToUser: %v", err)
	}
	if user.Email != "a@example.com" {
		t.Errorf("unexpected email: %q", user.Email)
	}
	if user.Password != "" {
		t.Error("form must not place the raw password on the user")
	}
	if user.BirthDate == nil || user.BirthDate.Year() != 1990 {
		t.Errorf("unexpected birth date: %v", user.BirthDate)
	}
	if user.FirstName == nil || *user.FirstName != "Ada" {
		t.Errorf("unexpected first name: %v", user.FirstName)
	}
}

func TestSignUpFormRejectsBadBirthDate(t *testing.T) {
	form := SignUpForm{
		Email:     "a@example.com",
		Password:  "hunter42",
		BirthDate: strPtr("15/06/1990"),
	}

	_, err := form.ToUser()
	appErr, ok := apperrors.AsAppError(err)
	if !ok || appErr.Code != apperrors.ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestSignUpFormOptionalFieldsStayNil(t *testing.T) {
	form := SignUpForm{Email: "a@example.com", Password: "hunter42"}

	user, err := form.ToUser()
	if err != nil {
		t.Fatal(err)
	}
	if user.BirthDate != nil || user.FirstName != nil || user.Biography != nil {
		t.Error("expected optional fields to stay nil")
	}
}
