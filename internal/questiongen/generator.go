package questiongen

import (
	"context"
	"log/slog"

	"github.com/vidyayathra/tutor/internal/llm"
)

// Generator produces questions through the LLM provider with duplicate
// guarding against a per-learner RecentLog.
type Generator struct {
	provider llm.Provider
	config   Config
	logger   *slog.Logger
}

// New creates a Generator. logger may be nil.
func New(provider llm.Provider, cfg Config, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{provider: provider, config: cfg, logger: logger}
}

// Generate produces one question for the given input. Duplicates against
// log are regenerated up to MaxDedupRetries times, after which the
// question is accepted anyway so the learner always gets something.
// The accepted question is recorded in log. Parse failures are returned
// as *GenerationError with no fallback.
func (g *Generator) Generate(ctx context.Context, in GenerateInput, log *RecentLog) (*GeneratedQuestion, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	var q *GeneratedQuestion
	for attempt := 0; ; attempt++ {
		req := llm.Request{
			System: BuildSystemPrompt(in, log),
			Messages: []llm.Message{
				{Role: llm.RoleUser, Content: BuildUserPrompt(in, log)},
			},
			MaxTokens:   g.config.MaxTokens,
			Temperature: g.config.Temperature,
		}

		resp, err := g.provider.Generate(ctx, req)
		if err != nil {
			return nil, &GenerationError{Reason: "provider call failed", Err: err}
		}

		q, err = ParseQuestion(string(resp.Content))
		if err != nil {
			return nil, err
		}

		if !log.IsDuplicate(q.Question, q.CorrectAnswer) {
			break
		}
		if attempt >= g.config.MaxDedupRetries {
			g.logger.Warn("accepting duplicate question after retries",
				"attempts", attempt+1, "type", in.Type)
			break
		}
		g.logger.Info("duplicate question, regenerating",
			"attempt", attempt+1, "type", in.Type)
	}

	log.Add(q.Question, q.CorrectAnswer)
	return q, nil
}
