package questiongen

import (
	"github.com/vidyayathra/tutor/internal/learner"
	"github.com/vidyayathra/tutor/internal/retrieval"
	"github.com/vidyayathra/tutor/internal/selector"
)

// Blank is one gap in a MultipleBlanksFill question. The first option is
// the correct one; CorrectAnswer repeats it for the dashboard.
type Blank struct {
	ID            int      `json:"id"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
}

// GeneratedQuestion is a parsed question ready to return to the client.
// Options is present only for option-bearing types; Blanks only for
// MultipleBlanksFill.
type GeneratedQuestion struct {
	Type              selector.QuestionType `json:"questionType"`
	Difficulty        learner.Level         `json:"difficulty"`
	Question          string                `json:"question"`
	Options           []string              `json:"options,omitempty"`
	Blanks            []Blank               `json:"blanks,omitempty"`
	CorrectAnswer     string                `json:"correctAnswer,omitempty"`
	ExpectsConfidence bool                  `json:"expectsConfidence"`
}

// GenerateInput holds all context needed to generate a question.
type GenerateInput struct {
	// Type is the interaction style chosen by the selector.
	Type selector.QuestionType

	// Difficulty is the band chosen by the selector.
	Difficulty learner.Level

	// Topic is the active learning topic.
	Topic string

	// RAGSignals are retrieval hints grounding the question in ingested
	// material. May be empty.
	RAGSignals []retrieval.RAGSignal
}
