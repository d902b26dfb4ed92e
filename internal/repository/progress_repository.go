package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"lingo-days/internal/domain"
	"lingo-days/internal/repository/models"
	"lingo-days/internal/util"

	"github.com/jmoiron/sqlx"
)

const progressColumns = `id, user_id, lesson_id, day, completed, score, time_spent, answers, completed_at, created_at, updated_at`

type sqlxProgressRepository struct {
	db *sqlx.DB
}

// NewSQLXProgressRepository creates a ProgressRepository backed by the lesson_progress table.
func NewSQLXProgressRepository(db *sqlx.DB) domain.ProgressRepository {
	return &sqlxProgressRepository{db: db}
}

func toDomainProgress(m *models.LessonProgress) *domain.LessonProgress {
	if m == nil {
		return nil
	}
	p := &domain.LessonProgress{
		ID:          m.ID,
		UserID:      m.UserID,
		LessonID:    m.LessonID,
		Day:         m.Day,
		Completed:   m.Completed,
		Score:       m.Score,
		TimeSpent:   m.TimeSpent,
		CompletedAt: util.NullTimeToPtr(m.CompletedAt),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Answers.Valid {
		p.Answers = json.RawMessage(m.Answers.JSONText)
	}
	return p
}

// UpsertCompletion relies on the (user_id, day) unique constraint: concurrent completions
// for the same pair merge into one row under PostgreSQL's row lock.
func (r *sqlxProgressRepository) UpsertCompletion(ctx context.Context, in domain.CompletionInput) (*domain.LessonProgress, error) {
	query := `INSERT INTO lesson_progress (id, user_id, lesson_id, day, completed, score, time_spent, answers, completed_at, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, TRUE, $5, $6, NULL, NOW(), NOW(), NOW())
	          ON CONFLICT (user_id, day) DO UPDATE SET
	            lesson_id = EXCLUDED.lesson_id,
	            completed = TRUE,
	            score = GREATEST(lesson_progress.score, EXCLUDED.score),
	            time_spent = lesson_progress.time_spent + EXCLUDED.time_spent,
	            answers = NULL,
	            completed_at = NOW(),
	            updated_at = NOW()
	          RETURNING ` + progressColumns

	var m models.LessonProgress
	err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query,
		util.NewULID(), in.UserID, in.LessonID, in.Day, in.Score, in.TimeSpent)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert lesson completion for day %d: %w", in.Day, err)
	}
	return toDomainProgress(&m), nil
}

// UpsertAnswers writes only the answers blob and refresh timestamp.
func (r *sqlxProgressRepository) UpsertAnswers(ctx context.Context, userID, lessonID string, day int, answers json.RawMessage) error {
	query := `INSERT INTO lesson_progress (id, user_id, lesson_id, day, completed, score, time_spent, answers, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, FALSE, 0, 0, $5, NOW(), NOW())
	          ON CONFLICT (user_id, day) DO UPDATE SET
	            answers = EXCLUDED.answers,
	            updated_at = NOW()`

	_, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, util.NewULID(), userID, lessonID, day, string(answers))
	if err != nil {
		return fmt.Errorf("failed to save lesson answers for day %d: %w", day, err)
	}
	return nil
}

// GetProgress returns (nil, nil) when the user has not started day.
func (r *sqlxProgressRepository) GetProgress(ctx context.Context, userID string, day int) (*domain.LessonProgress, error) {
	var m models.LessonProgress
	query := `SELECT ` + progressColumns + ` FROM lesson_progress WHERE user_id = $1 AND day = $2`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, userID, day); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lesson progress for day %d: %w", day, err)
	}
	return toDomainProgress(&m), nil
}

func (r *sqlxProgressRepository) ListProgress(ctx context.Context, userID string) ([]domain.LessonProgress, error) {
	var rows []models.LessonProgress
	query := `SELECT ` + progressColumns + ` FROM lesson_progress WHERE user_id = $1 ORDER BY day`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list lesson progress: %w", err)
	}
	out := make([]domain.LessonProgress, len(rows))
	for i := range rows {
		out[i] = *toDomainProgress(&rows[i])
	}
	return out, nil
}

// DeleteAllForUser is used by the administrative reset only.
func (r *sqlxProgressRepository) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM lesson_progress WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete lesson progress: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
