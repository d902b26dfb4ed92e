package models

import (
	"database/sql"
	"time"
)

// User represents a row of the users table.
type User struct {
	ID              string         `db:"id"`               // ULID
	Email           string         `db:"email"`            // Lower-cased, unique
	PasswordHash    string         `db:"password_hash"`    // bcrypt hash
	Name            sql.NullString `db:"name"`             // Display name
	PasswordChanged bool           `db:"password_changed"` // False while a provisioned temporary password is in use
	TermsAccepted   bool           `db:"terms_accepted"`
	TermsAcceptedAt sql.NullTime   `db:"terms_accepted_at"`
	LastLoginAt     sql.NullTime   `db:"last_login_at"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

// UserProfile represents a row of the user_profiles table.
type UserProfile struct {
	UserID            string       `db:"user_id"`
	Level             string       `db:"level"`
	CurrentDay        int          `db:"current_day"`
	ListeningScore    int          `db:"listening_score"`
	ReadingScore      int          `db:"reading_score"`
	SpeakingScore     int          `db:"speaking_score"`
	GrammarScore      int          `db:"grammar_score"`
	TotalStudyMinutes int          `db:"total_study_minutes"`
	StreakDays        int          `db:"streak_days"`
	LastStudyDate     sql.NullTime `db:"last_study_date"`
	CreatedAt         time.Time    `db:"created_at"`
	UpdatedAt         time.Time    `db:"updated_at"`
}
