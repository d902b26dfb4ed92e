package domain

import "time"

const (
	// MaxDay is the last day of the course.
	MaxDay = 30

	MaxSkillScore   = 100
	FocusSkillBoost = 5
	OtherSkillBoost = 1
)

// Skill indexes the four tracked skills in rotation order.
type Skill int

const (
	SkillListening Skill = iota
	SkillReading
	SkillSpeaking
	SkillGrammar
	skillCount
)

func (s Skill) String() string {
	switch s {
	case SkillListening:
		return "listening"
	case SkillReading:
		return "reading"
	case SkillSpeaking:
		return "speaking"
	case SkillGrammar:
		return "grammar"
	default:
		return "unknown"
	}
}

// FocusSkill returns the skill a given course day concentrates on.
func FocusSkill(day int) Skill {
	idx := (day - 1) % int(skillCount)
	if idx < 0 {
		idx += int(skillCount)
	}
	return Skill(idx)
}

// Profile holds a user's learning aggregates. It changes only through ApplyCompletion
// (and the administrative reset).
type Profile struct {
	UserID            string
	Level             string
	CurrentDay        int
	ListeningScore    int
	ReadingScore      int
	SpeakingScore     int
	GrammarScore      int
	TotalStudyMinutes int
	StreakDays        int
	LastStudyDate     *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewProfile returns the starting profile for a freshly registered user.
func NewProfile(userID string) *Profile {
	now := time.Now()
	return &Profile{
		UserID:     userID,
		Level:      DefaultLevel,
		CurrentDay: 1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (p *Profile) skillScore(s Skill) *int {
	switch s {
	case SkillListening:
		return &p.ListeningScore
	case SkillReading:
		return &p.ReadingScore
	case SkillSpeaking:
		return &p.SpeakingScore
	default:
		return &p.GrammarScore
	}
}

// SkillScore returns the current score for s.
func (p *Profile) SkillScore(s Skill) int {
	return *p.skillScore(s)
}

// ApplyCompletion advances the profile for a completed lesson on the given day.
// now is the completion time; only its calendar date matters for the streak.
func (p *Profile) ApplyCompletion(day, timeSpent int, now time.Time) {
	p.TotalStudyMinutes += timeSpent

	if day == p.CurrentDay && p.CurrentDay < MaxDay {
		p.CurrentDay++
	}

	focus := FocusSkill(day)
	for s := SkillListening; s < skillCount; s++ {
		boost := OtherSkillBoost
		if s == focus {
			boost = FocusSkillBoost
		}
		score := p.skillScore(s)
		*score = clamp(*score+boost, 0, MaxSkillScore)
	}

	p.applyStreak(now)
	p.UpdatedAt = now
}

func (p *Profile) applyStreak(now time.Time) {
	today := truncateToDate(now)
	switch {
	case p.LastStudyDate == nil:
		p.StreakDays = 1
	case truncateToDate(*p.LastStudyDate).Equal(today):
		if p.StreakDays == 0 {
			p.StreakDays = 1
		}
	case truncateToDate(*p.LastStudyDate).AddDate(0, 0, 1).Equal(today):
		p.StreakDays++
	default:
		p.StreakDays = 1
	}
	p.LastStudyDate = &today
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
