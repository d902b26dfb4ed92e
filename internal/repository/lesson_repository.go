package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"lingo-days/internal/content"
	"lingo-days/internal/domain"
	"lingo-days/internal/repository/models"
	"lingo-days/internal/util"

	"github.com/jmoiron/sqlx"
)

const lessonColumns = `id, day, title, description, level, video_url, audio_url, content, created_at, updated_at`

type sqlxLessonRepository struct {
	db *sqlx.DB
}

// NewSQLXLessonRepository creates a LessonRepository backed by the lessons table.
func NewSQLXLessonRepository(db *sqlx.DB) domain.LessonRepository {
	return &sqlxLessonRepository{db: db}
}

func toDomainLesson(m *models.Lesson) (*domain.Lesson, error) {
	if m == nil {
		return nil, nil
	}
	c := domain.EmptyContent()
	if len(m.Content) > 0 {
		if err := json.Unmarshal(m.Content, &c); err != nil {
			return nil, fmt.Errorf("decode content of lesson day %d: %w", m.Day, err)
		}
	}
	return &domain.Lesson{
		ID:          m.ID,
		Day:         m.Day,
		Title:       m.Title,
		Description: m.Description,
		Level:       m.Level,
		VideoURL:    m.VideoURL.String,
		AudioURL:    m.AudioURL.String,
		Content:     c,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}

// GetLessonByDay returns (nil, nil) when no lesson has been authored for day.
func (r *sqlxLessonRepository) GetLessonByDay(ctx context.Context, day int) (*domain.Lesson, error) {
	var m models.Lesson
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE day = $1`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &m, query, day); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get lesson for day %d: %w", day, err)
	}
	return toDomainLesson(&m)
}

// GetLessonIDByDay returns "" when no lesson exists for day.
func (r *sqlxLessonRepository) GetLessonIDByDay(ctx context.Context, day int) (string, error) {
	var id string
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &id, `SELECT id FROM lessons WHERE day = $1`, day); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to resolve lesson id for day %d: %w", day, err)
	}
	return id, nil
}

func (r *sqlxLessonRepository) ListLessonSummaries(ctx context.Context) ([]domain.LessonSummary, error) {
	query := `SELECT id, day, title, description, level, video_url,
	                 COALESCE(jsonb_array_length(content->'vocabulary'), 0) AS vocabulary_count,
	                 COALESCE(jsonb_array_length(content->'quiz'), 0) AS quiz_count
	          FROM lessons
	          ORDER BY day`

	var rows []models.LessonSummary
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}

	summaries := make([]domain.LessonSummary, len(rows))
	for i, m := range rows {
		summaries[i] = domain.LessonSummary{
			ID:              m.ID,
			Day:             m.Day,
			Title:           m.Title,
			Description:     m.Description,
			Level:           m.Level,
			VideoURL:        m.VideoURL.String,
			VocabularyCount: m.VocabularyCount,
			QuizCount:       m.QuizCount,
		}
	}
	return summaries, nil
}

func (r *sqlxLessonRepository) ListDaysWithVocabulary(ctx context.Context) ([]int, error) {
	query := `SELECT day FROM lessons WHERE jsonb_array_length(content->'vocabulary') > 0 ORDER BY day`
	var days []int
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &days, query); err != nil {
		return nil, fmt.Errorf("failed to list days with vocabulary: %w", err)
	}
	return days, nil
}

// UpsertLesson inserts or replaces the lesson for lesson.Day. Content is validated
// against the content schema before it is written. lesson.ID is set to the stored id.
func (r *sqlxLessonRepository) UpsertLesson(ctx context.Context, lesson *domain.Lesson) error {
	raw, err := content.Encode(lesson.Content)
	if err != nil {
		return err
	}
	if lesson.ID == "" {
		lesson.ID = util.NewULID()
	}
	now := time.Now()

	query := `INSERT INTO lessons (id, day, title, description, level, video_url, audio_url, content, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
	          ON CONFLICT (day) DO UPDATE SET
	            title = EXCLUDED.title,
	            description = EXCLUDED.description,
	            level = EXCLUDED.level,
	            video_url = EXCLUDED.video_url,
	            audio_url = EXCLUDED.audio_url,
	            content = EXCLUDED.content,
	            updated_at = EXCLUDED.updated_at
	          RETURNING id`

	var id string
	err = GetExecutor(ctx, r.db).GetContext(ctx, &id, query,
		lesson.ID, lesson.Day, lesson.Title, lesson.Description, lesson.Level,
		util.StringToNullString(lesson.VideoURL), util.StringToNullString(lesson.AudioURL),
		string(raw), now)
	if err != nil {
		return fmt.Errorf("failed to upsert lesson for day %d: %w", lesson.Day, err)
	}
	lesson.ID = id
	return nil
}
