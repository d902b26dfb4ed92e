package service

import (
	"context"
	"strings"

	"lingo-days/internal/domain"
	"lingo-days/internal/logger"

	"go.uber.org/zap"
)

// AdminService holds the operator tasks run from the admin CLI.
type AdminService interface {
	SeedLessons(ctx context.Context, lessons []domain.Lesson) (int, error)
	ImportVocabulary(ctx context.Context, day int, items []domain.VocabularyItem, replace bool) (int, error)
	ResetProgress(ctx context.Context, email string) (int64, error)
}

type adminServiceImpl struct {
	lessonRepo   domain.LessonRepository
	progressRepo domain.ProgressRepository
	profileRepo  domain.ProfileRepository
	userRepo     domain.UserRepository
	txManager    domain.TransactionManager
	cache        LessonCache
}

// NewAdminService creates a new admin service.
func NewAdminService(
	lessonRepo domain.LessonRepository,
	progressRepo domain.ProgressRepository,
	profileRepo domain.ProfileRepository,
	userRepo domain.UserRepository,
	txManager domain.TransactionManager,
	cache LessonCache,
) AdminService {
	if cache == nil {
		cache = noopLessonCache{}
	}
	return &adminServiceImpl{
		lessonRepo:   lessonRepo,
		progressRepo: progressRepo,
		profileRepo:  profileRepo,
		userRepo:     userRepo,
		txManager:    txManager,
		cache:        cache,
	}
}

// SeedLessons upserts every lesson by day in a single transaction, then drops cached reads.
func (s *adminServiceImpl) SeedLessons(ctx context.Context, lessons []domain.Lesson) (int, error) {
	days := make([]int, 0, len(lessons))
	err := s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for i := range lessons {
			if err := s.lessonRepo.UpsertLesson(txCtx, &lessons[i]); err != nil {
				return err
			}
			days = append(days, lessons[i].Day)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := s.cache.Invalidate(ctx, days...); err != nil {
		logger.Get().Warn("Seeded lessons but could not invalidate cache", zap.Error(err))
	}
	logger.Get().Info("Seeded lessons", zap.Int("count", len(days)))
	return len(days), nil
}

// ImportVocabulary adds items to the lesson for day. Words already present (case-insensitive)
// are skipped unless replace is set, in which case the whole block is overwritten.
func (s *adminServiceImpl) ImportVocabulary(ctx context.Context, day int, items []domain.VocabularyItem, replace bool) (int, error) {
	if !domain.ValidDay(day) {
		return 0, domain.ValidationErrors{domain.NewOutOfRangeError("day", day, 1, domain.MaxDay)}
	}

	lesson, err := s.lessonRepo.GetLessonByDay(ctx, day)
	if err != nil {
		return 0, err
	}
	if lesson == nil {
		return 0, domain.NewLessonNotFoundError(day)
	}

	added := 0
	if replace {
		lesson.Content.Vocabulary = items
		added = len(items)
	} else {
		seen := make(map[string]bool, len(lesson.Content.Vocabulary))
		for _, v := range lesson.Content.Vocabulary {
			seen[strings.ToLower(v.Word)] = true
		}
		for _, v := range items {
			key := strings.ToLower(v.Word)
			if seen[key] {
				continue
			}
			seen[key] = true
			lesson.Content.Vocabulary = append(lesson.Content.Vocabulary, v)
			added++
		}
	}

	if err := s.lessonRepo.UpsertLesson(ctx, lesson); err != nil {
		return 0, err
	}
	if err := s.cache.Invalidate(ctx, day); err != nil {
		logger.Get().Warn("Imported vocabulary but could not invalidate cache", zap.Error(err))
	}
	return added, nil
}

// ResetProgress deletes every progress row of a user and resets the profile aggregates.
func (s *adminServiceImpl) ResetProgress(ctx context.Context, email string) (int64, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, domain.NewNotFoundError("No user with that email").WithContext("email", email)
	}

	var deleted int64
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		var err error
		if deleted, err = s.progressRepo.DeleteAllForUser(txCtx, user.ID); err != nil {
			return err
		}
		return s.profileRepo.ResetProfile(txCtx, user.ID)
	})
	if err != nil {
		return 0, err
	}

	logger.Get().Info("Progress reset", zap.String("userID", user.ID), zap.Int64("rows", deleted))
	return deleted, nil
}
