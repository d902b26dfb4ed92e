package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lingo-days/internal/domain"
	"lingo-days/internal/repository/models"
	"lingo-days/internal/util"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, email, password_hash, name, password_changed, terms_accepted, terms_accepted_at, last_login_at, created_at, updated_at`

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:              m.ID,
		Email:           m.Email,
		PasswordHash:    m.PasswordHash,
		Name:            util.NullStringToString(m.Name),
		PasswordChanged: m.PasswordChanged,
		TermsAccepted:   m.TermsAccepted,
		TermsAcceptedAt: util.NullTimeToPtr(m.TermsAcceptedAt),
		LastLoginAt:     util.NullTimeToPtr(m.LastLoginAt),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:              u.ID,
		Email:           u.Email,
		PasswordHash:    u.PasswordHash,
		Name:            util.StringToNullString(u.Name),
		PasswordChanged: u.PasswordChanged,
		TermsAccepted:   u.TermsAccepted,
		TermsAcceptedAt: util.PtrToNullTime(u.TermsAcceptedAt),
		LastLoginAt:     util.PtrToNullTime(u.LastLoginAt),
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

// CreateUser inserts a new user. A duplicate email yields a CodeEmailTaken domain error.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = util.NewULID()
	}
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	m := fromDomainUser(user)
	query := `INSERT INTO users (id, email, password_hash, name, password_changed, terms_accepted, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		m.ID, m.Email, m.PasswordHash, m.Name, m.PasswordChanged, m.TermsAccepted, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewEmailTakenError(user.Email)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by their internal ID. It returns (nil, nil) when not found.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, userID)
}

// GetUserByEmail retrieves a user by (normalized) email. It returns (nil, nil) when not found.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, domain.NormalizeEmail(email))
}

func (r *sqlxUserRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.User, error) {
	var m models.User
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomainUser(&m), nil
}

// UpdatePassword stores a new hash and marks the password as user-chosen.
func (r *sqlxUserRepository) UpdatePassword(ctx context.Context, userID, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, password_changed = TRUE, updated_at = $3 WHERE id = $1`
	return r.execOne(ctx, userID, query, userID, passwordHash, time.Now())
}

// AcceptTerms records the terms-and-conditions acceptance.
func (r *sqlxUserRepository) AcceptTerms(ctx context.Context, userID string, at time.Time) error {
	query := `UPDATE users SET terms_accepted = TRUE, terms_accepted_at = $2, updated_at = $2 WHERE id = $1`
	return r.execOne(ctx, userID, query, userID, at)
}

// TouchLastLogin refreshes the login timestamp.
func (r *sqlxUserRepository) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	query := `UPDATE users SET last_login_at = $2 WHERE id = $1`
	return r.execOne(ctx, userID, query, userID, at)
}

func (r *sqlxUserRepository) execOne(ctx context.Context, userID, query string, args ...interface{}) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewUserNotFoundError(userID)
	}
	return nil
}
