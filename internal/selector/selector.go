package selector

import (
	"math/rand/v2"

	"github.com/vidyayathra/tutor/internal/learner"
)

// QuestionType tags the interaction style of a generated question.
type QuestionType string

const (
	TypeMCQ                QuestionType = "MCQ"
	TypeFillInBlank        QuestionType = "FillInBlank"
	TypeMultipleAnswers    QuestionType = "MultipleAnswers"
	TypeMultipleBlanksFill QuestionType = "MultipleBlanksFill"
	TypePuzzle             QuestionType = "Puzzle"
	TypeConfidenceBased    QuestionType = "ConfidenceBased"
	TypeEvidenceBased      QuestionType = "EvidenceBased"
	TypeCriticalThinking   QuestionType = "CriticalThinking"
	TypeClarification      QuestionType = "Clarification"
)

// AllTypes returns the full question type rotation in canonical order.
func AllTypes() []QuestionType {
	return []QuestionType{
		TypeMCQ,
		TypeFillInBlank,
		TypeMultipleAnswers,
		TypeMultipleBlanksFill,
		TypePuzzle,
		TypeConfidenceBased,
		TypeEvidenceBased,
		TypeCriticalThinking,
		TypeClarification,
	}
}

// HasOptions reports whether questions of this type carry a 4-option
// choice list.
func (t QuestionType) HasOptions() bool {
	switch t {
	case TypeFillInBlank, TypeClarification, TypeMultipleBlanksFill:
		return false
	}
	return true
}

const (
	// maxTypeHistory bounds the per-learner type FIFO.
	maxTypeHistory = 8

	// excludeWindow is how many trailing history entries are blocked
	// from reselection.
	excludeWindow = 3
)

// History is a bounded FIFO of recently served question types. The zero
// value is ready to use. Not safe for concurrent use; the session
// registry serializes access.
type History struct {
	types []QuestionType
}

// Push appends t, evicting the oldest entry past the bound.
func (h *History) Push(t QuestionType) {
	h.types = append(h.types, t)
	if len(h.types) > maxTypeHistory {
		h.types = h.types[len(h.types)-maxTypeHistory:]
	}
}

// Len returns the number of retained entries.
func (h *History) Len() int {
	return len(h.types)
}

// Recent returns the last n entries, oldest first.
func (h *History) Recent(n int) []QuestionType {
	if n > len(h.types) {
		n = len(h.types)
	}
	return h.types[len(h.types)-n:]
}

// Picker chooses an index in [0, n). Pluggable so tests can pin the
// choice; the default is uniform random.
type Picker func(n int) int

// Selection is the outcome of one selector pass.
type Selection struct {
	Type       QuestionType
	Difficulty learner.Level
}

// Selector picks a question type and difficulty band for the next turn.
type Selector struct {
	pick Picker
}

// New returns a Selector with a uniform random picker.
func New() *Selector {
	return NewWithPicker(rand.IntN)
}

// NewWithPicker returns a Selector using the given pick policy.
func NewWithPicker(pick Picker) *Selector {
	return &Selector{pick: pick}
}

// Select chooses the next question type and difficulty band, and records
// the chosen type in h. Always returns a valid Selection.
//
// Type choice excludes the last three served types once the history has
// at least three entries, falling back to the full rotation if the
// exclusion empties the candidate set. The difficulty band follows the
// question-count ladder, then at most one confidence-driven adjustment.
func (s *Selector) Select(confidence float64, questionCount int, h *History) Selection {
	candidates := AllTypes()
	if h.Len() >= excludeWindow {
		recent := h.Recent(excludeWindow)
		filtered := candidates[:0:0]
		for _, t := range candidates {
			if !containsType(recent, t) {
				filtered = append(filtered, t)
			}
		}
		if len(filtered) > 0 {
			candidates = filtered
		} else {
			candidates = AllTypes()
		}
	}

	chosen := candidates[s.pick(len(candidates))]
	h.Push(chosen)

	return Selection{
		Type:       chosen,
		Difficulty: difficultyFor(confidence, questionCount),
	}
}

// difficultyFor maps question count to a band, then applies at most one
// confidence-driven step up or down.
func difficultyFor(confidence float64, questionCount int) learner.Level {
	var band learner.Level
	switch {
	case questionCount < 10:
		band = learner.LevelBeginner
	case questionCount < 25:
		band = learner.LevelIntermediate
	default:
		band = learner.LevelAdvanced
	}

	switch {
	case confidence > 0.8 && band == learner.LevelBeginner && questionCount >= 5:
		band = learner.LevelIntermediate
	case confidence > 0.9 && band == learner.LevelIntermediate && questionCount >= 15:
		band = learner.LevelAdvanced
	case confidence < 0.3 && band == learner.LevelIntermediate && questionCount >= 10:
		band = learner.LevelBeginner
	case confidence < 0.4 && band == learner.LevelAdvanced:
		band = learner.LevelIntermediate
	}

	return band
}

func containsType(ts []QuestionType, t QuestionType) bool {
	for _, v := range ts {
		if v == t {
			return true
		}
	}
	return false
}
