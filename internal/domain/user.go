package domain

import (
	"context"
	"time"
)

// User represents a domain user object. Identity originates from the
// external auth provider; ExternalID is the provider's opaque identifier.
type User struct {
	ID               string
	ExternalID       string
	Email            string
	DisplayName      string
	TargetLanguageID string // empty until the user picks a language to contribute to
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time
}

// NewUser creates a new User instance
func NewUser(externalID, email string) *User {
	now := time.Now()
	return &User{
		ExternalID: externalID,
		Email:      email,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Validate validates the user
func (u *User) Validate() error {
	var errs ValidationErrors
	if u.ExternalID == "" {
		errs = append(errs, NewMissingFieldError("external_id"))
	}
	if u.Email == "" {
		errs = append(errs, NewMissingFieldError("email"))
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UserRepository defines the interface for user data persistence.
// Lookups return (nil, nil) when no row matches.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByExternalID(ctx context.Context, externalID string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	SetTargetLanguage(ctx context.Context, userID, languageID string) error
}
