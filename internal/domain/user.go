package domain

import (
	"context"
	"strings"
	"time"
)

const DefaultLevel = "A1"

// User represents a domain user object
type User struct {
	ID              string
	Email           string
	PasswordHash    string
	Name            string
	PasswordChanged bool
	TermsAccepted   bool
	TermsAcceptedAt *time.Time
	LastLoginAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser creates a new User instance
func NewUser(email, passwordHash, name string) *User {
	now := time.Now()
	return &User{
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Name:         strings.TrimSpace(name),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NormalizeEmail lower-cases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate validates the user
func (u *User) Validate() error {
	if u.Email == "" {
		return NewMissingFieldError("email")
	}
	if u.PasswordHash == "" {
		return NewMissingFieldError("password")
	}
	return nil
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, userID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	UpdatePassword(ctx context.Context, userID, passwordHash string) error
	AcceptTerms(ctx context.Context, userID string, at time.Time) error
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}

// ProfileRepository defines persistence for the per-user learning aggregates.
type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *Profile) error
	GetProfile(ctx context.Context, userID string) (*Profile, error)
	// GetProfileForUpdate locks the row until the surrounding transaction ends.
	GetProfileForUpdate(ctx context.Context, userID string) (*Profile, error)
	UpdateProfile(ctx context.Context, profile *Profile) error
	ResetProfile(ctx context.Context, userID string) error
}
