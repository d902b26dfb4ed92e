package models

import (
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx/types"
)

// Lesson represents a row of the lessons table. Content is the JSONB lesson document.
type Lesson struct {
	ID          string         `db:"id"`
	Day         int            `db:"day"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Level       string         `db:"level"`
	VideoURL    sql.NullString `db:"video_url"`
	AudioURL    sql.NullString `db:"audio_url"`
	Content     types.JSONText `db:"content"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

// LessonSummary is the projection used by list endpoints; content is reduced to counts.
type LessonSummary struct {
	ID              string         `db:"id"`
	Day             int            `db:"day"`
	Title           string         `db:"title"`
	Description     string         `db:"description"`
	Level           string         `db:"level"`
	VideoURL        sql.NullString `db:"video_url"`
	VocabularyCount int            `db:"vocabulary_count"`
	QuizCount       int            `db:"quiz_count"`
}

// LessonProgress represents a row of the lesson_progress table.
type LessonProgress struct {
	ID          string             `db:"id"`
	UserID      string             `db:"user_id"`
	LessonID    string             `db:"lesson_id"`
	Day         int                `db:"day"`
	Completed   bool               `db:"completed"`
	Score       int                `db:"score"`
	TimeSpent   int                `db:"time_spent"`
	Answers     types.NullJSONText `db:"answers"`
	CompletedAt sql.NullTime       `db:"completed_at"`
	CreatedAt   time.Time          `db:"created_at"`
	UpdatedAt   time.Time          `db:"updated_at"`
}
