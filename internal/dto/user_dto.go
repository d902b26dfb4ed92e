package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// GoogleUserInfo holds user information obtained from Google.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
}

// AuthClaims defines the custom claims for the session JWT.
type AuthClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RegisterRequest is the body of POST /api/auth/register.
// @Description Request body for account registration
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=320"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"omitempty,max=100"`
}

// LoginRequest is the body of POST /api/auth/login.
// @Description Request body for password login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest is the body of PUT /api/auth/change-password.
// @Description Request body for changing the current password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}

// UserResponse is the public view of a user. The password hash never leaves the service.
type UserResponse struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Name            string     `json:"name,omitempty"`
	PasswordChanged bool       `json:"password_changed"`
	TermsAccepted   bool       `json:"terms_accepted"`
	TermsAcceptedAt *time.Time `json:"terms_accepted_at,omitempty"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ProfileResponse is the learning-progress aggregate of a user.
type ProfileResponse struct {
	Level             string     `json:"level"`
	CurrentDay        int        `json:"current_day"`
	ListeningScore    int        `json:"listening_score"`
	ReadingScore      int        `json:"reading_score"`
	SpeakingScore     int        `json:"speaking_score"`
	GrammarScore      int        `json:"grammar_score"`
	TotalStudyMinutes int        `json:"total_study_minutes"`
	StreakDays        int        `json:"streak_days"`
	LastStudyDate     *time.Time `json:"last_study_date,omitempty"`
}

// MeResponse merges the user with its profile, as returned by GET /api/auth/me.
type MeResponse struct {
	Success bool `json:"success"`
	UserResponse
	ProfileResponse
}

// AuthResponse is returned by register, login and the OAuth callback.
// @Description Authenticated user and session token
type AuthResponse struct {
	Success bool         `json:"success"`
	User    UserResponse `json:"user"`
	Token   string       `json:"token"`
}

// MessageResponse represents a generic message response.
// @Description Generic message response
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// SallaOrderWebhook is the subset of a Salla order event the service reads.
type SallaOrderWebhook struct {
	Event    string `json:"event"`
	Merchant int64  `json:"merchant"`
	Data     struct {
		ID       int64 `json:"id"`
		Customer struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Email     string `json:"email"`
		} `json:"customer"`
	} `json:"data"`
}

// ProvisionResponse answers the commerce webhook. TemporaryPassword is only set when created.
// @Description Result of provisioning an account from an order
type ProvisionResponse struct {
	Success           bool   `json:"success"`
	Created           bool   `json:"created"`
	UserID            string `json:"user_id"`
	Email             string `json:"email"`
	TemporaryPassword string `json:"temporary_password,omitempty"`
}
