// Package users implements account registration, login, and profile
// management.
package users

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/live-gallery/pkg/handlers"
)

const (
	usernameMinLength = 3
	usernameMaxLength = 30
	passwordMinLength = 6
)

// User is the public account projection. Credential data never leaves
// the repository.
type User struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthResult pairs an account with its freshly issued access token.
type AuthResult struct {
	User        User   `json:"user"`
	AccessToken string `json:"accessToken"`
}

// RegisterRequest carries the fields for creating an account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate normalizes and checks the request, returning field-level
// failures.
func (r *RegisterRequest) Validate() *handlers.ValidationError {
	r.Username = strings.TrimSpace(r.Username)

	errs := handlers.NewValidationError()

	switch {
	case r.Username == "":
		errs.Add("username", "Username is required")
	case len(r.Username) < usernameMinLength || len(r.Username) > usernameMaxLength:
		errs.Add("username", "Username must be between 3 and 30 characters")
	}

	switch {
	case r.Password == "":
		errs.Add("password", "Password is required")
	case len(r.Password) < passwordMinLength:
		errs.Add("password", "Password must be at least 6 characters")
	}

	if errs.Empty() {
		return nil
	}
	return errs
}

// LoginRequest carries the credentials for authentication.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() *handlers.ValidationError {
	r.Username = strings.TrimSpace(r.Username)

	errs := handlers.NewValidationError()

	if r.Username == "" {
		errs.Add("username", "Username is required")
	}
	if r.Password == "" {
		errs.Add("password", "Password is required")
	}

	if errs.Empty() {
		return nil
	}
	return errs
}

// UpdateProfileRequest carries a username change.
type UpdateProfileRequest struct {
	Username string `json:"username"`
}

func (r *UpdateProfileRequest) Validate() *handlers.ValidationError {
	r.Username = strings.TrimSpace(r.Username)

	errs := handlers.NewValidationError()

	switch {
	case r.Username == "":
		errs.Add("username", "Username is required")
	case len(r.Username) < usernameMinLength || len(r.Username) > usernameMaxLength:
		errs.Add("username", "Username must be between 3 and 30 characters")
	}

	if errs.Empty() {
		return nil
	}
	return errs
}
