package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"lingo-days/internal/cache"
	"lingo-days/internal/domain"
	"lingo-days/internal/logger"

	"go.uber.org/zap"
)

// LessonCache stores lesson reads as JSON strings. A miss or a cache failure returns ok=false
// and the caller falls back to the database.
type LessonCache interface {
	GetSummaries(ctx context.Context) ([]domain.LessonSummary, bool)
	PutSummaries(ctx context.Context, summaries []domain.LessonSummary)
	GetLesson(ctx context.Context, day int) (*domain.Lesson, bool)
	PutLesson(ctx context.Context, lesson *domain.Lesson)
	// Invalidate drops the summary list and the given days.
	Invalidate(ctx context.Context, days ...int) error
}

type lessonCacheImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewLessonCache wraps a domain.Cache. A nil cache gives a cache that always misses.
func NewLessonCache(c domain.Cache, ttl time.Duration) LessonCache {
	if c == nil {
		logger.Get().Warn("LessonCache initialized with nil cache. Lesson reads will not be cached.")
		return noopLessonCache{}
	}
	return &lessonCacheImpl{cache: c, ttl: ttl}
}

func summariesKey() string {
	return cache.GenerateCacheKey("lesson", "summaries", "all")
}

func lessonKey(day int) string {
	return cache.GenerateCacheKey("lesson", "day", strconv.Itoa(day))
}

func (s *lessonCacheImpl) GetSummaries(ctx context.Context) ([]domain.LessonSummary, bool) {
	var out []domain.LessonSummary
	if !s.get(ctx, summariesKey(), &out) {
		return nil, false
	}
	return out, true
}

func (s *lessonCacheImpl) PutSummaries(ctx context.Context, summaries []domain.LessonSummary) {
	s.put(ctx, summariesKey(), summaries)
}

func (s *lessonCacheImpl) GetLesson(ctx context.Context, day int) (*domain.Lesson, bool) {
	var l domain.Lesson
	if !s.get(ctx, lessonKey(day), &l) {
		return nil, false
	}
	return &l, true
}

func (s *lessonCacheImpl) PutLesson(ctx context.Context, lesson *domain.Lesson) {
	if lesson == nil {
		return
	}
	s.put(ctx, lessonKey(lesson.Day), lesson)
}

func (s *lessonCacheImpl) Invalidate(ctx context.Context, days ...int) error {
	keys := make([]string, 0, len(days)+1)
	keys = append(keys, summariesKey())
	for _, d := range days {
		keys = append(keys, lessonKey(d))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		return domain.NewInternalError("failed to invalidate lesson cache", err)
	}
	logger.Get().Debug("Invalidated lesson cache", zap.Strings("keys", keys))
	return nil
}

func (s *lessonCacheImpl) get(ctx context.Context, key string, dest interface{}) bool {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrCacheMiss) {
			logger.Get().Warn("Failed to read lesson cache", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if data == "" {
		return false
	}
	if err := json.Unmarshal([]byte(data), dest); err != nil {
		logger.Get().Warn("Discarding undecodable lesson cache entry", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *lessonCacheImpl) put(ctx context.Context, key string, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Get().Error("Failed to marshal lesson cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Warn("Failed to write lesson cache", zap.String("key", key), zap.Error(err))
	}
}

type noopLessonCache struct{}

func (noopLessonCache) GetSummaries(context.Context) ([]domain.LessonSummary, bool) {
	return nil, false
}
func (noopLessonCache) PutSummaries(context.Context, []domain.LessonSummary) {}
func (noopLessonCache) GetLesson(context.Context, int) (*domain.Lesson, bool) {
	return nil, false
}
func (noopLessonCache) PutLesson(context.Context, *domain.Lesson) {}
func (noopLessonCache) Invalidate(context.Context, ...int) error  { return nil }
