// Package diagnosis classifies failed answers: cheap rule-based
// classifiers run first, and inconclusive cases go to an LLM that
// matches the error against a misconception taxonomy.
package diagnosis

import (
	"context"
	"time"

	"github.com/vidyayathra/tutor/internal/llm"
)

// llmDiagnosisTimeout bounds each queued LLM diagnosis. Jobs run detached
// from the dispatching request, so this is their only deadline.
const llmDiagnosisTimeout = 30 * time.Second

// Service coordinates error diagnosis using rule-based classifiers and
// optional LLM-based misconception identification.
type Service struct {
	classifiers []Classifier
	diagnoser   *Diagnoser
	pending     chan diagnosisJob
}

type diagnosisJob struct {
	ctx context.Context
	req *DiagnosisRequest
	cb  func(*DiagnosisResult)
}

// NewService creates a diagnosis service. If provider is nil, only rule-based
// classification is available.
func NewService(provider llm.Provider) *Service {
	s := &Service{
		classifiers: DefaultClassifiers(),
		pending:     make(chan diagnosisJob, 32),
	}
	if provider != nil {
		s.diagnoser = NewDiagnoser(provider, DefaultDiagnoserConfig())
		go s.processLoop()
	}
	return s
}

// Diagnose classifies a failed answer. Rule-based classification is
// synchronous. If rules are inconclusive and an LLM is available, async
// LLM diagnosis is dispatched and the callback fires when the result is
// ready. Returns the synchronous result immediately.
func (s *Service) Diagnose(ctx context.Context, input *ClassifyInput, cb func(*DiagnosisResult)) *DiagnosisResult {
	// Phase 1: Rule-based (synchronous).
	cat, conf, name := RunClassifiers(s.classifiers, input)
	if cat != "" {
		return &DiagnosisResult{
			Category:       cat,
			Confidence:     conf,
			ClassifierName: name,
		}
	}

	// Phase 2: LLM (async).
	if s.diagnoser != nil {
		s.dispatchLLM(ctx, input, cb)
	}

	// Return unclassified immediately; the LLM result arrives via callback.
	return &DiagnosisResult{
		Category:       CategoryUnclassified,
		Confidence:     0,
		ClassifierName: "none",
	}
}

func (s *Service) dispatchLLM(ctx context.Context, input *ClassifyInput, cb func(*DiagnosisResult)) {
	candidates := MisconceptionsByCategory(CategoryFor(input.Topic))
	if len(candidates) == 0 {
		return
	}

	req := &DiagnosisRequest{
		Topic:         input.Topic,
		QuestionText:  input.Question,
		LearnerAnswer: input.Answer,
		Candidates:    candidates,
	}

	// The job outlives the dispatching request (an HTTP handler returns
	// long before the worker runs), so it must not inherit cancellation.
	select {
	case s.pending <- diagnosisJob{ctx: context.WithoutCancel(ctx), req: req, cb: cb}:
	default:
		// Channel full. Drop the diagnosis silently, it is not critical.
	}
}

func (s *Service) processLoop() {
	for job := range s.pending {
		ctx, cancel := context.WithTimeout(job.ctx, llmDiagnosisTimeout)
		result, err := s.diagnoser.Diagnose(ctx, job.req)
		cancel()
		if err != nil || result == nil {
			continue
		}
		if job.cb != nil {
			job.cb(result)
		}
	}
}

// Close shuts down the async processing loop.
func (s *Service) Close() {
	close(s.pending)
}
