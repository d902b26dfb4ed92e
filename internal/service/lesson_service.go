package service

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"time"

	"lingo-days/internal/domain"
	"lingo-days/internal/logger"
	"lingo-days/internal/validation"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// BulkData is everything the client needs on start-up in one read.
type BulkData struct {
	Lessons  []domain.LessonSummary
	Progress []domain.LessonProgress
	Profile  *domain.Profile
}

// LessonService defines lesson delivery and progress operations.
type LessonService interface {
	ListLessons(ctx context.Context) ([]domain.LessonSummary, error)
	GetLesson(ctx context.Context, userID string, day int) (*domain.Lesson, *domain.LessonProgress, error)
	BulkInitialData(ctx context.Context, userID string) (*BulkData, error)
	CompleteLesson(ctx context.Context, in domain.CompletionInput) (*domain.LessonProgress, *domain.Profile, error)
	SaveProgress(ctx context.Context, userID string, day int, answers json.RawMessage) error
	VocabularyGame(ctx context.Context, userID string) (int, []domain.VocabularyItem, error)
}

type lessonServiceImpl struct {
	lessonRepo   domain.LessonRepository
	progressRepo domain.ProgressRepository
	profileRepo  domain.ProfileRepository
	txManager    domain.TransactionManager
	cache        LessonCache
	validator    *validation.Validator
	now          func() time.Time
}

// NewLessonService creates a new lesson service.
func NewLessonService(
	lessonRepo domain.LessonRepository,
	progressRepo domain.ProgressRepository,
	profileRepo domain.ProfileRepository,
	txManager domain.TransactionManager,
	cache LessonCache,
) LessonService {
	if cache == nil {
		cache = noopLessonCache{}
	}
	return &lessonServiceImpl{
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		profileRepo:  profileRepo,
		txManager:    txManager,
		cache:        cache,
		validator:    validation.NewValidator(),
		now:          time.Now,
	}
}

func (s *lessonServiceImpl) ListLessons(ctx context.Context) ([]domain.LessonSummary, error) {
	if cached, ok := s.cache.GetSummaries(ctx); ok {
		return cached, nil
	}
	summaries, err := s.lessonRepo.ListLessonSummaries(ctx)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []domain.LessonSummary{}
	}
	s.cache.PutSummaries(ctx, summaries)
	return summaries, nil
}

// lessonByDay returns (nil, nil) when day has no authored lesson.
func (s *lessonServiceImpl) lessonByDay(ctx context.Context, day int) (*domain.Lesson, error) {
	if cached, ok := s.cache.GetLesson(ctx, day); ok {
		return cached, nil
	}
	lesson, err := s.lessonRepo.GetLessonByDay(ctx, day)
	if err != nil {
		return nil, err
	}
	s.cache.PutLesson(ctx, lesson)
	return lesson, nil
}

func (s *lessonServiceImpl) GetLesson(ctx context.Context, userID string, day int) (*domain.Lesson, *domain.LessonProgress, error) {
	if errs := s.validator.ValidateDay(day); len(errs) > 0 {
		return nil, nil, errs
	}

	var (
		lesson   *domain.Lesson
		progress *domain.LessonProgress
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lesson, err = s.lessonByDay(gctx, day)
		return err
	})
	g.Go(func() error {
		var err error
		progress, err = s.progressRepo.GetProgress(gctx, userID, day)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	if lesson == nil {
		if progress == nil {
			return nil, nil, domain.NewLessonNotFoundError(day)
		}
		// Saved or completed before the content was authored.
		lesson = domain.PlaceholderLesson(day)
	}
	return lesson, progress, nil
}

func (s *lessonServiceImpl) BulkInitialData(ctx context.Context, userID string) (*BulkData, error) {
	data := &BulkData{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		data.Lessons, err = s.ListLessons(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		data.Progress, err = s.progressRepo.ListProgress(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		data.Profile, err = s.profileRepo.GetProfile(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if data.Profile == nil {
		return nil, domain.NewUserNotFoundError(userID)
	}
	return data, nil
}

// resolveLessonID returns the stored lesson id for day, or its placeholder id.
func (s *lessonServiceImpl) resolveLessonID(ctx context.Context, day int) (string, error) {
	id, err := s.lessonRepo.GetLessonIDByDay(ctx, day)
	if err != nil {
		return "", err
	}
	if id == "" {
		return domain.PlaceholderLessonID(day), nil
	}
	return id, nil
}

// CompleteLesson records the completion and advances the profile in one transaction.
// The profile row is locked first so concurrent completions for a user serialize.
func (s *lessonServiceImpl) CompleteLesson(ctx context.Context, in domain.CompletionInput) (*domain.LessonProgress, *domain.Profile, error) {
	if errs := s.validator.ValidateCompletion(in.Day, in.Score, in.TimeSpent); len(errs) > 0 {
		return nil, nil, errs
	}

	var (
		progress *domain.LessonProgress
		profile  *domain.Profile
	)
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		profile, err = s.profileRepo.GetProfileForUpdate(txCtx, in.UserID)
		if err != nil {
			return err
		}
		if profile == nil {
			return domain.NewUserNotFoundError(in.UserID)
		}

		in.LessonID, err = s.resolveLessonID(txCtx, in.Day)
		if err != nil {
			return err
		}

		progress, err = s.progressRepo.UpsertCompletion(txCtx, in)
		if err != nil {
			return err
		}

		profile.ApplyCompletion(in.Day, in.TimeSpent, s.now())
		return s.profileRepo.UpdateProfile(txCtx, profile)
	})
	if err != nil {
		return nil, nil, err
	}

	logger.Get().Info("Lesson completed",
		zap.String("userID", in.UserID),
		zap.Int("day", in.Day),
		zap.Int("score", progress.Score),
		zap.Int("currentDay", profile.CurrentDay))
	return progress, profile, nil
}

func (s *lessonServiceImpl) SaveProgress(ctx context.Context, userID string, day int, answers json.RawMessage) error {
	if errs := s.validator.ValidateDay(day); len(errs) > 0 {
		return errs
	}
	if len(answers) == 0 || string(answers) == "null" {
		return domain.ValidationErrors{domain.NewMissingFieldError("answers")}
	}
	if !json.Valid(answers) {
		return domain.ValidationErrors{domain.NewInvalidFormatError("answers", nil)}
	}

	lessonID, err := s.resolveLessonID(ctx, day)
	if err != nil {
		return err
	}
	return s.progressRepo.UpsertAnswers(ctx, userID, lessonID, day, answers)
}

// VocabularyGame returns the current day's words shuffled. When the current day has no
// vocabulary a random day that has some is used instead.
func (s *lessonServiceImpl) VocabularyGame(ctx context.Context, userID string) (int, []domain.VocabularyItem, error) {
	profile, err := s.profileRepo.GetProfile(ctx, userID)
	if err != nil {
		return 0, nil, err
	}
	if profile == nil {
		return 0, nil, domain.NewUserNotFoundError(userID)
	}

	day := profile.CurrentDay
	lesson, err := s.lessonByDay(ctx, day)
	if err != nil {
		return 0, nil, err
	}

	if lesson == nil || len(lesson.Content.Vocabulary) == 0 {
		days, err := s.lessonRepo.ListDaysWithVocabulary(ctx)
		if err != nil {
			return 0, nil, err
		}
		if len(days) == 0 {
			return 0, nil, domain.NewNotFoundError("No vocabulary is available yet")
		}
		day = days[rand.IntN(len(days))]
		logger.Get().Debug("Vocabulary game falling back to another day",
			zap.String("userID", userID), zap.Int("currentDay", profile.CurrentDay), zap.Int("day", day))

		lesson, err = s.lessonByDay(ctx, day)
		if err != nil {
			return 0, nil, err
		}
		if lesson == nil {
			return 0, nil, domain.NewLessonNotFoundError(day)
		}
	}

	words := make([]domain.VocabularyItem, len(lesson.Content.Vocabulary))
	copy(words, lesson.Content.Vocabulary)
	rand.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
	return day, words, nil
}
