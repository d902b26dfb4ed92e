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

const profileColumns = `user_id, level, current_day, listening_score, reading_score, speaking_score, grammar_score, total_study_minutes, streak_days, last_study_date, created_at, updated_at`

type sqlxProfileRepository struct {
	db *sqlx.DB
}

// NewSQLXProfileRepository creates a ProfileRepository backed by the user_profiles table.
func NewSQLXProfileRepository(db *sqlx.DB) domain.ProfileRepository {
	return &sqlxProfileRepository{db: db}
}

func toDomainProfile(m *models.UserProfile) *domain.Profile {
	if m == nil {
		return nil
	}
	return &domain.Profile{
		UserID:            m.UserID,
		Level:             m.Level,
		CurrentDay:        m.CurrentDay,
		ListeningScore:    m.ListeningScore,
		ReadingScore:      m.ReadingScore,
		SpeakingScore:     m.SpeakingScore,
		GrammarScore:      m.GrammarScore,
		TotalStudyMinutes: m.TotalStudyMinutes,
		StreakDays:        m.StreakDays,
		LastStudyDate:     util.NullTimeToPtr(m.LastStudyDate),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func (r *sqlxProfileRepository) CreateProfile(ctx context.Context, p *domain.Profile) error {
	query := `INSERT INTO user_profiles (user_id, level, current_day, listening_score, reading_score, speaking_score, grammar_score, total_study_minutes, streak_days, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		p.UserID, p.Level, p.CurrentDay,
		p.ListeningScore, p.ReadingScore, p.SpeakingScore, p.GrammarScore,
		p.TotalStudyMinutes, p.StreakDays, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user profile: %w", err)
	}
	return nil
}

// GetProfile returns (nil, nil) when the user has no profile row.
func (r *sqlxProfileRepository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	return r.get(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1`, userID)
}

// GetProfileForUpdate locks the profile row for the rest of the transaction in ctx.
// Without one the lock would be released at once, so the call is refused.
func (r *sqlxProfileRepository) GetProfileForUpdate(ctx context.Context, userID string) (*domain.Profile, error) {
	if _, ok := txFromContext(ctx); !ok {
		return nil, ErrNoTransaction
	}
	return r.get(ctx, `SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1 FOR UPDATE`, userID)
}

func (r *sqlxProfileRepository) get(ctx context.Context, query, userID string) (*domain.Profile, error) {
	var m models.UserProfile
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return toDomainProfile(&m), nil
}

func (r *sqlxProfileRepository) UpdateProfile(ctx context.Context, p *domain.Profile) error {
	query := `UPDATE user_profiles SET
	            level = $2,
	            current_day = $3,
	            listening_score = $4,
	            reading_score = $5,
	            speaking_score = $6,
	            grammar_score = $7,
	            total_study_minutes = $8,
	            streak_days = $9,
	            last_study_date = $10,
	            updated_at = $11
	          WHERE user_id = $1`

	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now()
	}
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		p.UserID, p.Level, p.CurrentDay,
		p.ListeningScore, p.ReadingScore, p.SpeakingScore, p.GrammarScore,
		p.TotalStudyMinutes, p.StreakDays, util.PtrToNullTime(p.LastStudyDate), p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update user profile: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return domain.NewUserNotFoundError(p.UserID)
	}
	return nil
}

// ResetProfile puts the aggregates back to their registration defaults.
func (r *sqlxProfileRepository) ResetProfile(ctx context.Context, userID string) error {
	query := `UPDATE user_profiles SET
	            level = $2, current_day = 1,
	            listening_score = 0, reading_score = 0, speaking_score = 0, grammar_score = 0,
	            total_study_minutes = 0, streak_days = 0, last_study_date = NULL,
	            updated_at = NOW()
	          WHERE user_id = $1`

	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, userID, domain.DefaultLevel); err != nil {
		return fmt.Errorf("failed to reset user profile: %w", err)
	}
	return nil
}
