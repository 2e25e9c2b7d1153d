package learner

import (
	"time"

	"github.com/vidyayathra/tutor/internal/review"
)

// Level is the learner's current mastery band.
type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// Promote returns the next band up. Moves one band at a time.
func (l Level) Promote() Level {
	switch l {
	case LevelBeginner:
		return LevelIntermediate
	case LevelIntermediate:
		return LevelAdvanced
	}
	return l
}

// Demote returns the next band down. Moves one band at a time.
func (l Level) Demote() Level {
	switch l {
	case LevelAdvanced:
		return LevelIntermediate
	case LevelIntermediate:
		return LevelBeginner
	}
	return l
}

// Streak holds run-length counters for consecutive outcomes.
// At most one of the two counters is positive at any time.
type Streak struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// Misconception records a detected reasoning pattern worth revisiting.
// The misconception list is append-only.
type Misconception struct {
	Topic     string    `json:"topic"`
	Pattern   string    `json:"pattern"`
	Timestamp time.Time `json:"timestamp"`
}

// Profile is the mutable per-learner state ("working memory") that drives
// question selection. One Profile exists per learner id.
type Profile struct {
	Level          Level           `json:"level"`
	Confidence     float64         `json:"confidence"`
	Streak         Streak          `json:"streak"`
	WeakTopics     []string        `json:"weakTopics"`
	Misconceptions []Misconception `json:"misconceptions"`
	LastTopic      string          `json:"lastTopic,omitempty"`

	// Reviews tracks the spaced review schedule per topic.
	Reviews map[string]*review.State `json:"reviews,omitempty"`
}

// NewProfile returns a Profile with first-turn defaults.
func NewProfile() *Profile {
	return &Profile{
		Level:          LevelBeginner,
		Confidence:     0.5,
		WeakTopics:     []string{},
		Misconceptions: []Misconception{},
	}
}

// QuestionCount is the cumulative number of questions served, derived
// from the streak counters.
func (p *Profile) QuestionCount() int {
	return p.Streak.Correct + p.Streak.Incorrect
}

// Clone returns a deep copy of the profile.
func (p *Profile) Clone() *Profile {
	cp := *p
	cp.WeakTopics = append([]string(nil), p.WeakTopics...)
	cp.Misconceptions = append([]Misconception(nil), p.Misconceptions...)
	if p.Reviews != nil {
		cp.Reviews = make(map[string]*review.State, len(p.Reviews))
		for topic, st := range p.Reviews {
			s := *st
			cp.Reviews[topic] = &s
		}
	}
	return &cp
}

// markCorrect increments the correct streak and clears the incorrect one.
func (p *Profile) markCorrect() {
	p.Streak.Correct++
	p.Streak.Incorrect = 0
}

// markIncorrect increments the incorrect streak and clears the correct one.
func (p *Profile) markIncorrect() {
	p.Streak.Incorrect++
	p.Streak.Correct = 0
}

// addWeakTopic inserts topic into the weak-topic set if absent.
func (p *Profile) addWeakTopic(topic string) {
	for _, t := range p.WeakTopics {
		if t == topic {
			return
		}
	}
	p.WeakTopics = append(p.WeakTopics, topic)
}

// removeWeakTopic deletes topic from the weak-topic set.
func (p *Profile) removeWeakTopic(topic string) {
	out := p.WeakTopics[:0]
	for _, t := range p.WeakTopics {
		if t != topic {
			out = append(out, t)
		}
	}
	p.WeakTopics = out
}

// clampConfidence bounds c to [0, 1].
func clampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
