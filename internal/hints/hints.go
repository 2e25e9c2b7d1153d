// Package hints generates single-shot hints for a question the learner
// is stuck on. Hint generation sits outside the learner-state loop: it
// reads nothing from the profile and writes nothing back.
package hints

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/vidyayathra/tutor/internal/llm"
)

// Request identifies the question to hint at.
type Request struct {
	// Question is the full question text shown to the learner.
	Question string

	// Topic is the active learning topic, for framing.
	Topic string

	// Difficulty is the question's difficulty band label.
	Difficulty string
}

// Hint is a generated nudge toward the answer.
type Hint struct {
	// Hint points the learner in the right direction without revealing
	// the answer.
	Hint string `json:"hint"`

	// Approach names the reasoning strategy to apply (one short phrase).
	Approach string `json:"approach"`
}

// Config controls hint generation.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the recommended hint settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.3,
	}
}

// HintSchema defines the JSON schema for hint generation.
var HintSchema = &llm.Schema{
	Name:        "tutor-hint",
	Description: "A hint that nudges the learner toward the answer without revealing it",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hint": map[string]any{
				"type":        "string",
				"description": "One or two sentences pointing at the key idea. Never states the answer.",
			},
			"approach": map[string]any{
				"type":        "string",
				"description": "Short phrase naming the reasoning strategy (e.g. 'eliminate options', 'work backwards')",
			},
		},
		"required":             []any{"hint", "approach"},
		"additionalProperties": false,
	},
}

const systemPrompt = `You are a Socratic tutor. The learner is stuck on a question and asked for a hint.

Rules:
- Point at the key concept or first step, never the answer itself.
- Do not name, quote, or paraphrase any answer option.
- One or two short sentences. Encouraging, not condescending.
- Match the difficulty level: gentler scaffolding for Beginner, a sharper nudge for Advanced.`

// Service generates hints through the LLM provider.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a hint generation service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

// Hint generates one hint for the given question.
func (s *Service) Hint(ctx context.Context, req Request) (*Hint, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, fmt.Errorf("hint: empty question")
	}

	ctx = llm.WithPurpose(ctx, "hint")

	llmReq := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req)},
		},
		Schema:      HintSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	}

	resp, err := s.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, fmt.Errorf("hint generation: %w", err)
	}

	var h Hint
	if err := json.Unmarshal(resp.Content, &h); err != nil {
		return nil, fmt.Errorf("parse hint response: %w", err)
	}
	return &h, nil
}

func buildUserMessage(req Request) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", req.Question)
	if req.Topic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	}
	if req.Difficulty != "" {
		fmt.Fprintf(&b, "Difficulty: %s\n", req.Difficulty)
	}
	b.WriteString("\nGive one hint.")
	return b.String()
}
