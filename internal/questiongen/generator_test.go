package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/vidyayathra/tutor/internal/learner"
	"github.com/vidyayathra/tutor/internal/llm"
	"github.com/vidyayathra/tutor/internal/selector"
)

func mcqResponse(question, answer string) llm.MockResponse {
	payload := map[string]any{
		"questionType":      "MCQ",
		"difficulty":        "Beginner",
		"question":          question,
		"options":           []string{answer, "Wrong 1", "Wrong 2", "Wrong 3"},
		"correctAnswer":     answer,
		"expectsConfidence": true,
	}
	raw, _ := json.Marshal(payload)
	return llm.MockResponse{Content: raw}
}

func testInput() GenerateInput {
	return GenerateInput{
		Type:       selector.TypeMCQ,
		Difficulty: learner.LevelBeginner,
		Topic:      "Photosynthesis",
	}
}

func TestGenerator_Success(t *testing.T) {
	provider := llm.NewMockProvider(mcqResponse("What is chlorophyll?", "A pigment"))
	g := New(provider, DefaultConfig(), nil)
	var log RecentLog

	q, err := g.Generate(context.Background(), testInput(), &log)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if q.Question != "What is chlorophyll?" {
		t.Errorf("question = %q", q.Question)
	}
	if provider.CallCount() != 1 {
		t.Errorf("calls = %d, want 1", provider.CallCount())
	}
	// Accepted question recorded for future dedup.
	if log.Len() != 1 {
		t.Errorf("log Len = %d, want 1", log.Len())
	}
}

func TestGenerator_RetriesOnDuplicate(t *testing.T) {
	provider := llm.NewMockProvider(
		mcqResponse("What is chlorophyll?", "A pigment"),
		mcqResponse("Where does photosynthesis happen?", "Chloroplast"),
	)
	g := New(provider, DefaultConfig(), nil)

	var log RecentLog
	log.Add("What is chlorophyll?", "A pigment")

	q, err := g.Generate(context.Background(), testInput(), &log)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if q.Question != "Where does photosynthesis happen?" {
		t.Errorf("question = %q, want the regenerated one", q.Question)
	}
	if provider.CallCount() != 2 {
		t.Errorf("calls = %d, want 2", provider.CallCount())
	}
}

func TestGenerator_AcceptsDuplicateAfterMaxRetries(t *testing.T) {
	// Every response is the same duplicate.
	provider := llm.NewMockProvider(
		mcqResponse("What is chlorophyll?", "A pigment"),
		mcqResponse("What is chlorophyll?", "A pigment"),
		mcqResponse("What is chlorophyll?", "A pigment"),
	)
	g := New(provider, DefaultConfig(), nil)

	var log RecentLog
	log.Add("What is chlorophyll?", "A pigment")

	q, err := g.Generate(context.Background(), testInput(), &log)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if q == nil {
		t.Fatal("expected a question even when duplicates persist")
	}
	// Initial attempt plus MaxDedupRetries regenerations.
	if provider.CallCount() != 3 {
		t.Errorf("calls = %d, want 3", provider.CallCount())
	}
	if log.Len() != 2 {
		t.Errorf("log Len = %d, want 2 (accepted entry recorded)", log.Len())
	}
}

func TestGenerator_ParseFailureNoRetry(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`I refuse to answer in JSON today.`)})
	g := New(provider, DefaultConfig(), nil)
	var log RecentLog

	_, err := g.Generate(context.Background(), testInput(), &log)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want *GenerationError", err)
	}
	if provider.CallCount() != 1 {
		t.Errorf("calls = %d, want 1 (parse failures are not retried)", provider.CallCount())
	}
	if log.Len() != 0 {
		t.Errorf("log Len = %d, want 0 (failed generations not recorded)", log.Len())
	}
}

func TestGenerator_ProviderErrorWrapped(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	g := New(provider, DefaultConfig(), nil)
	var log RecentLog

	_, err := g.Generate(context.Background(), testInput(), &log)
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want *GenerationError", err)
	}
	var rateLimit *llm.ErrRateLimit
	if !errors.As(err, &rateLimit) {
		t.Error("provider error should be unwrappable")
	}
}

func TestGenerator_SendsAvoidListInPrompt(t *testing.T) {
	provider := llm.NewMockProvider(mcqResponse("Fresh question?", "Fresh answer"))
	g := New(provider, DefaultConfig(), nil)

	var log RecentLog
	log.Add("Old question?", "Old answer")

	if _, err := g.Generate(context.Background(), testInput(), &log); err != nil {
		t.Fatalf("generate: %v", err)
	}

	req := provider.Calls[0]
	if req.Schema != nil {
		t.Error("question generation should request raw text, not structured output")
	}
	if !strings.Contains(req.System, "Old question?") {
		t.Error("system prompt should carry the avoid list")
	}
}
