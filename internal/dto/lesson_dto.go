package dto

import (
	"encoding/json"
	"time"

	"lingo-days/internal/domain"
)

// CompleteLessonRequest is the body of POST /api/lessons/:day/complete.
// @Description Score and minutes spent for a finished lesson
type CompleteLessonRequest struct {
	Score     *int `json:"score" validate:"required"`
	TimeSpent *int `json:"timeSpent" validate:"required"`
}

// SaveProgressRequest is the body of POST /api/lessons/:day/save.
// @Description In-progress answers to keep for resume
type SaveProgressRequest struct {
	Answers json.RawMessage `json:"answers" swaggertype:"object"`
}

// ProgressResponse is a (user, day) progress row.
type ProgressResponse struct {
	LessonID    string              `json:"lesson_id"`
	Day         int                 `json:"day"`
	Status      domain.LessonStatus `json:"status"`
	Completed   bool                `json:"completed"`
	Score       int                 `json:"score"`
	TimeSpent   int                 `json:"time_spent"`
	Answers     json.RawMessage     `json:"answers,omitempty" swaggertype:"object"`
	CompletedAt *time.Time          `json:"completed_at,omitempty"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// LessonDetail is one lesson with its full content document.
type LessonDetail struct {
	ID          string                  `json:"id"`
	Day         int                     `json:"day"`
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Level       string                  `json:"level"`
	VideoURL    string                  `json:"video_url,omitempty"`
	AudioURL    string                  `json:"audio_url,omitempty"`
	Vocabulary  []domain.VocabularyItem `json:"vocabulary"`
	Exercises   []domain.QuizQuestion   `json:"exercises"`
	Flashcards  []domain.Flashcard      `json:"flashcards"`
}

// LessonDetailResponse is returned by GET /api/lessons/:day.
type LessonDetailResponse struct {
	Success  bool              `json:"success"`
	Lesson   LessonDetail      `json:"lesson"`
	Progress *ProgressResponse `json:"progress"`
}

// LessonListResponse is returned by GET /api/lessons.
type LessonListResponse struct {
	Success bool                   `json:"success"`
	Lessons []domain.LessonSummary `json:"lessons"`
}

// BulkInitialDataResponse is returned by GET /api/lessons/bulk/initial-data.
// Progress is keyed by day.
type BulkInitialDataResponse struct {
	Success  bool                     `json:"success"`
	Lessons  []domain.LessonSummary   `json:"lessons"`
	Progress map[int]ProgressResponse `json:"progress"`
	Profile  ProfileResponse          `json:"profile"`
}

// CompleteLessonResponse is returned by POST /api/lessons/:day/complete.
type CompleteLessonResponse struct {
	Success  bool             `json:"success"`
	Progress ProgressResponse `json:"progress"`
	Profile  ProfileResponse  `json:"profile"`
}

// VocabularyGameResponse is returned by GET /api/lessons/vocabulary/game.
type VocabularyGameResponse struct {
	Success bool                    `json:"success"`
	Day     int                     `json:"day"`
	Words   []domain.VocabularyItem `json:"words"`
}

// FromUser converts a domain user into its public view.
func FromUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		PasswordChanged: u.PasswordChanged,
		TermsAccepted:   u.TermsAccepted,
		TermsAcceptedAt: u.TermsAcceptedAt,
		LastLoginAt:     u.LastLoginAt,
		CreatedAt:       u.CreatedAt,
	}
}

// FromProfile converts a domain profile into its response form.
func FromProfile(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		Level:             p.Level,
		CurrentDay:        p.CurrentDay,
		ListeningScore:    p.ListeningScore,
		ReadingScore:      p.ReadingScore,
		SpeakingScore:     p.SpeakingScore,
		GrammarScore:      p.GrammarScore,
		TotalStudyMinutes: p.TotalStudyMinutes,
		StreakDays:        p.StreakDays,
		LastStudyDate:     p.LastStudyDate,
	}
}

// FromProgress converts a progress row. A nil row yields nil.
func FromProgress(p *domain.LessonProgress) *ProgressResponse {
	if p == nil {
		return nil
	}
	return &ProgressResponse{
		LessonID:    p.LessonID,
		Day:         p.Day,
		Status:      p.Status(),
		Completed:   p.Completed,
		Score:       p.Score,
		TimeSpent:   p.TimeSpent,
		Answers:     p.Answers,
		CompletedAt: p.CompletedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// FromLesson flattens a lesson and its content document.
func FromLesson(l *domain.Lesson) LessonDetail {
	return LessonDetail{
		ID:          l.ID,
		Day:         l.Day,
		Title:       l.Title,
		Description: l.Description,
		Level:       l.Level,
		VideoURL:    l.VideoURL,
		AudioURL:    l.AudioURL,
		Vocabulary:  l.Content.Vocabulary,
		Exercises:   l.Content.Quiz,
		Flashcards:  l.Content.Flashcards,
	}
}
