package content

import (
	"encoding/json"
	"fmt"
	"os"

	"lingo-days/internal/domain"
)

// SeedLesson is one entry of a lessons seed file.
type SeedLesson struct {
	Day         int             `json:"day"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Level       string          `json:"level"`
	VideoURL    string          `json:"video_url"`
	AudioURL    string          `json:"audio_url"`
	Content     json.RawMessage `json:"content"`
}

// LoadSeedFile reads a JSON array of lessons and validates every entry.
func LoadSeedFile(path string) ([]domain.Lesson, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}
	return ParseSeed(raw)
}

// ParseSeed decodes and validates seed lessons. Days must be unique and inside the course.
func ParseSeed(raw []byte) ([]domain.Lesson, error) {
	var entries []SeedLesson
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode seed lessons: %w", err)
	}

	seen := make(map[int]bool, len(entries))
	lessons := make([]domain.Lesson, 0, len(entries))
	for i, e := range entries {
		if !domain.ValidDay(e.Day) {
			return nil, fmt.Errorf("seed entry %d: day %d outside 1..%d", i, e.Day, domain.MaxDay)
		}
		if seen[e.Day] {
			return nil, fmt.Errorf("seed entry %d: duplicate day %d", i, e.Day)
		}
		seen[e.Day] = true
		if e.Title == "" {
			return nil, fmt.Errorf("seed entry %d (day %d): title is required", i, e.Day)
		}

		c := domain.EmptyContent()
		if len(e.Content) > 0 {
			parsed, err := Parse(e.Content)
			if err != nil {
				return nil, fmt.Errorf("seed entry %d (day %d): %w", i, e.Day, err)
			}
			c = parsed
		}

		level := e.Level
		if level == "" {
			level = domain.DefaultLevel
		}
		lessons = append(lessons, domain.Lesson{
			Day:         e.Day,
			Title:       e.Title,
			Description: e.Description,
			Level:       level,
			VideoURL:    e.VideoURL,
			AudioURL:    e.AudioURL,
			Content:     c,
		})
	}
	return lessons, nil
}
