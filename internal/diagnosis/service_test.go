package diagnosis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/vidyayathra/tutor/internal/llm"
)

func TestService_RuleBasedIsSynchronous(t *testing.T) {
	s := NewService(nil)

	result := s.Diagnose(context.Background(), &ClassifyInput{
		Topic:              "fractions",
		Answer:             "no idea",
		ReportedConfidence: 0.1,
	}, nil)

	if result.Category != CategoryGuess {
		t.Errorf("category = %q, want guess", result.Category)
	}
}

func TestService_NoProviderReturnsUnclassified(t *testing.T) {
	s := NewService(nil)

	result := s.Diagnose(context.Background(), &ClassifyInput{
		Topic:              "fractions",
		ReportedConfidence: 0.6,
		ProfileConfidence:  0.5,
	}, nil)

	if result.Category != CategoryUnclassified {
		t.Errorf("category = %q, want unclassified", result.Category)
	}
	if result.ClassifierName != "none" {
		t.Errorf("classifier = %q, want none", result.ClassifierName)
	}
}

func TestService_LLMResultArrivesViaCallback(t *testing.T) {
	provider := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"misconception_id": "math-bigger-denominator", "confidence": 0.9, "reasoning": "Denominator size ranking."}`),
	})
	s := NewService(provider)
	defer s.Close()

	results := make(chan *DiagnosisResult, 1)
	sync := s.Diagnose(context.Background(), &ClassifyInput{
		Topic:              "fractions",
		Question:           "Which is larger, 1/4 or 1/8?",
		Answer:             "1/8",
		ReportedConfidence: 0.6,
		ProfileConfidence:  0.5,
	}, func(r *DiagnosisResult) { results <- r })

	if sync.Category != CategoryUnclassified {
		t.Errorf("sync category = %q, want unclassified", sync.Category)
	}

	select {
	case r := <-results:
		if r.Category != CategoryMisconception {
			t.Errorf("async category = %q, want misconception", r.Category)
		}
		if r.MisconceptionID != "math-bigger-denominator" {
			t.Errorf("misconception = %q", r.MisconceptionID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("callback never fired")
	}
}

// cancelAwareProvider fails like a real HTTP client does when its
// context is already canceled.
type cancelAwareProvider struct {
	inner *llm.MockProvider
}

func (p *cancelAwareProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return p.inner.Generate(ctx, req)
}

func (p *cancelAwareProvider) ModelID() string { return p.inner.ModelID() }

func TestService_DiagnosisOutlivesDispatchingContext(t *testing.T) {
	provider := &cancelAwareProvider{inner: llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"misconception_id": "math-bigger-denominator", "confidence": 0.9, "reasoning": "Denominator size ranking."}`),
	})}
	s := NewService(provider)
	defer s.Close()

	// A request-scoped context is typically canceled by the time the
	// worker picks up the job. Cancel before dispatch to pin that order.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := make(chan *DiagnosisResult, 1)
	s.Diagnose(ctx, &ClassifyInput{
		Topic:              "fractions",
		Question:           "Which is larger, 1/4 or 1/8?",
		Answer:             "1/8",
		ReportedConfidence: 0.6,
		ProfileConfidence:  0.5,
	}, func(r *DiagnosisResult) { results <- r })

	select {
	case r := <-results:
		if r.Category != CategoryMisconception {
			t.Errorf("async category = %q, want misconception", r.Category)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("callback never fired after dispatching context was canceled")
	}
}

func TestService_RulesShortCircuitLLM(t *testing.T) {
	provider := llm.NewMockProvider()
	s := NewService(provider)
	defer s.Close()

	s.Diagnose(context.Background(), &ClassifyInput{
		Topic:              "fractions",
		ReportedConfidence: 0.1,
	}, nil)

	// Give the worker a moment: no job should have been dispatched.
	time.Sleep(50 * time.Millisecond)
	if provider.CallCount() != 0 {
		t.Errorf("llm calls = %d, want 0", provider.CallCount())
	}
}
