package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewUser creates an active, non-admin user with a normalized email
func NewUser(email, name string) *User {
	return &User{
		ID:        uuid.New(),
		Email:     NormalizeEmail(email),
		Name:      strings.TrimSpace(name),
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}
}

// NormalizeEmail trims and lower-cases an email so it can be used as identity
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// DisplayName returns the name when set, the email otherwise
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}

func (u *User) Validate() error {
	if u.Email == "" || !strings.Contains(u.Email, "@") {
		return &ValidationError{Field: "email", Message: "A valid email is required"}
	}
	if u.PasswordHash == "" {
		return &ValidationError{Field: "password", Message: "Password is required"}
	}
	return nil
}
