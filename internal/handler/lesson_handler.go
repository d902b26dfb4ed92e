package handler

import (
	"lingo-days/internal/domain"
	"lingo-days/internal/dto"
	"lingo-days/internal/logger"
	"lingo-days/internal/middleware"
	"lingo-days/internal/service"
	"lingo-days/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LessonHandler handles lesson and progress requests. Every route requires a session.
type LessonHandler struct {
	service   service.LessonService
	validator *validation.Validator
}

// NewLessonHandler creates a new LessonHandler instance
func NewLessonHandler(service service.LessonService) *LessonHandler {
	return &LessonHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// ListLessons godoc
// @Summary List lessons
// @Description Returns the metadata of every lesson ordered by day
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.LessonListResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /lessons [get]
func (h *LessonHandler) ListLessons(c *fiber.Ctx) error {
	lessons, err := h.service.ListLessons(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.LessonListResponse{Success: true, Lessons: lessons})
}

// BulkInitialData godoc
// @Summary Start-up data
// @Description Returns the lesson list, the caller's progress keyed by day and the profile
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.BulkInitialDataResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /lessons/bulk/initial-data [get]
func (h *LessonHandler) BulkInitialData(c *fiber.Ctx) error {
	data, err := h.service.BulkInitialData(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}

	progress := make(map[int]dto.ProgressResponse, len(data.Progress))
	for i := range data.Progress {
		progress[data.Progress[i].Day] = *dto.FromProgress(&data.Progress[i])
	}
	return c.JSON(dto.BulkInitialDataResponse{
		Success:  true,
		Lessons:  data.Lessons,
		Progress: progress,
		Profile:  dto.FromProfile(data.Profile),
	})
}

// VocabularyGame godoc
// @Summary Vocabulary game
// @Description Returns the current day's words shuffled, or another day's when the current one has none
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.VocabularyGameResponse
// @Failure 404 {object} middleware.ErrorResponse "No vocabulary is available"
// @Router /lessons/vocabulary/game [get]
func (h *LessonHandler) VocabularyGame(c *fiber.Ctx) error {
	day, words, err := h.service.VocabularyGame(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.VocabularyGameResponse{Success: true, Day: day, Words: words})
}

// GetLesson godoc
// @Summary Lesson detail
// @Description Returns one lesson with its content and the caller's progress on it
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param day path int true "Lesson day (1-30)"
// @Success 200 {object} dto.LessonDetailResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /lessons/{day} [get]
func (h *LessonHandler) GetLesson(c *fiber.Ctx) error {
	lesson, progress, err := h.service.GetLesson(c.UserContext(), middleware.UserID(c), middleware.Day(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.LessonDetailResponse{
		Success:  true,
		Lesson:   dto.FromLesson(lesson),
		Progress: dto.FromProgress(progress),
	})
}

// CompleteLesson godoc
// @Summary Complete a lesson
// @Description Records the score and time spent and advances the profile
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param day path int true "Lesson day (1-30)"
// @Param request body dto.CompleteLessonRequest true "Score and minutes"
// @Success 200 {object} dto.CompleteLessonResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /lessons/{day}/complete [post]
func (h *LessonHandler) CompleteLesson(c *fiber.Ctx) error {
	var req dto.CompleteLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if err := h.validator.Struct(&req); err != nil {
		return err
	}

	progress, profile, err := h.service.CompleteLesson(c.UserContext(), domain.CompletionInput{
		UserID:    middleware.UserID(c),
		Day:       middleware.Day(c),
		Score:     *req.Score,
		TimeSpent: *req.TimeSpent,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.CompleteLessonResponse{
		Success:  true,
		Progress: *dto.FromProgress(progress),
		Profile:  dto.FromProfile(profile),
	})
}

// SaveProgress godoc
// @Summary Save answers
// @Description Stores in-progress answers for resume. Completion clears them.
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param day path int true "Lesson day (1-30)"
// @Param request body dto.SaveProgressRequest true "Answers"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /lessons/{day}/save [post]
func (h *LessonHandler) SaveProgress(c *fiber.Ctx) error {
	var req dto.SaveProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	userID := middleware.UserID(c)
	day := middleware.Day(c)
	if err := h.service.SaveProgress(c.UserContext(), userID, day, req.Answers); err != nil {
		return err
	}
	logger.Get().Debug("Progress saved", zap.String("userID", userID), zap.Int("day", day))
	return c.JSON(dto.MessageResponse{Success: true, Message: "Progress saved"})
}
