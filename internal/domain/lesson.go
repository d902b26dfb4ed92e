package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ContentVersion is the only lesson content layout the store accepts.
const ContentVersion = 1

// LessonContent is the embedded JSON document carried by every lesson.
type LessonContent struct {
	Version    int              `json:"version"`
	Vocabulary []VocabularyItem `json:"vocabulary"`
	Quiz       []QuizQuestion   `json:"quiz"`
	Flashcards []Flashcard      `json:"flashcards"`
}

type VocabularyItem struct {
	Word          string `json:"word"`
	Translation   string `json:"translation"`
	Pronunciation string `json:"pronunciation,omitempty"`
	Example       string `json:"example,omitempty"`
	AudioURL      string `json:"audio_url,omitempty"`
}

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionFillBlank      QuestionType = "fill_blank"
	QuestionTrueFalse      QuestionType = "true_false"
)

type QuizQuestion struct {
	ID          string       `json:"id"`
	Type        QuestionType `json:"type"`
	Question    string       `json:"question"`
	Options     []string     `json:"options,omitempty"`
	Answer      string       `json:"answer"`
	Explanation string       `json:"explanation,omitempty"`
}

type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
	Hint  string `json:"hint,omitempty"`
}

// EmptyContent returns a valid document with no blocks.
func EmptyContent() LessonContent {
	return LessonContent{
		Version:    ContentVersion,
		Vocabulary: []VocabularyItem{},
		Quiz:       []QuizQuestion{},
		Flashcards: []Flashcard{},
	}
}

// Lesson is one day of the course.
type Lesson struct {
	ID          string
	Day         int
	Title       string
	Description string
	Level       string
	VideoURL    string
	AudioURL    string
	Content     LessonContent
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LessonSummary is the lesson metadata without the heavy content document.
type LessonSummary struct {
	ID              string `json:"id"`
	Day             int    `json:"day"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Level           string `json:"level"`
	VideoURL        string `json:"video_url,omitempty"`
	VocabularyCount int    `json:"vocabulary_count"`
	QuizCount       int    `json:"quiz_count"`
}

// PlaceholderLessonID is stored on progress rows for days that have no authored lesson yet.
func PlaceholderLessonID(day int) string {
	return fmt.Sprintf("placeholder-day-%d", day)
}

// PlaceholderLesson stands in for a day with saved progress but no authored lesson.
func PlaceholderLesson(day int) *Lesson {
	return &Lesson{ID: PlaceholderLessonID(day), Day: day, Content: EmptyContent()}
}

// ValidDay reports whether day is inside the course.
func ValidDay(day int) bool {
	return day >= 1 && day <= MaxDay
}

// LessonStatus is the per-user lesson state. Transitions only move forward.
type LessonStatus string

const (
	StatusNotStarted LessonStatus = "not_started"
	StatusInProgress LessonStatus = "in_progress"
	StatusCompleted  LessonStatus = "completed"
)

// LessonProgress is the single (user, day) progress row.
type LessonProgress struct {
	ID          string
	UserID      string
	LessonID    string
	Day         int
	Completed   bool
	Score       int
	TimeSpent   int
	Answers     json.RawMessage
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Status derives the lesson state from the stored row. A nil row means not started.
func (p *LessonProgress) Status() LessonStatus {
	switch {
	case p == nil:
		return StatusNotStarted
	case p.Completed:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// LessonRepository defines read and write access to lesson content.
type LessonRepository interface {
	GetLessonByDay(ctx context.Context, day int) (*Lesson, error)
	GetLessonIDByDay(ctx context.Context, day int) (string, error)
	ListLessonSummaries(ctx context.Context) ([]LessonSummary, error)
	ListDaysWithVocabulary(ctx context.Context) ([]int, error)
	UpsertLesson(ctx context.Context, lesson *Lesson) error
}

// CompletionInput is the data recorded when a user finishes a lesson.
type CompletionInput struct {
	UserID    string
	LessonID  string
	Day       int
	Score     int
	TimeSpent int
}

// ProgressRepository defines persistence for lesson progress rows.
type ProgressRepository interface {
	// UpsertCompletion merges a completion into the (user, day) row: completed is set,
	// the greater score is kept, time is summed and saved answers are cleared.
	UpsertCompletion(ctx context.Context, in CompletionInput) (*LessonProgress, error)
	// UpsertAnswers stores in-progress answers without touching completion or score.
	UpsertAnswers(ctx context.Context, userID, lessonID string, day int, answers json.RawMessage) error
	GetProgress(ctx context.Context, userID string, day int) (*LessonProgress, error)
	ListProgress(ctx context.Context, userID string) ([]LessonProgress, error)
	DeleteAllForUser(ctx context.Context, userID string) (int64, error)
}
