// Package tutor orchestrates a tutoring turn: load the learner profile,
// pick a question type and difficulty, gather retrieval context,
// generate a deduplicated question, fold the turn back into the profile,
// and persist it.
package tutor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vidyayathra/tutor/internal/diagnosis"
	"github.com/vidyayathra/tutor/internal/hints"
	"github.com/vidyayathra/tutor/internal/learner"
	"github.com/vidyayathra/tutor/internal/questiongen"
	"github.com/vidyayathra/tutor/internal/retrieval"
	"github.com/vidyayathra/tutor/internal/review"
	"github.com/vidyayathra/tutor/internal/selector"
	"github.com/vidyayathra/tutor/internal/store"
)

// DefaultLearnerID is used when a request carries no learner id.
const DefaultLearnerID = "default-learner"

// ErrEmptyMessage rejects turns without a message.
var ErrEmptyMessage = errors.New("message is required")

// TurnRequest is one learner turn: an opening topic statement, an
// answer, or a next-question request.
type TurnRequest struct {
	LearnerID string `json:"learnerId"`
	Message   string `json:"message"`
	Topic     string `json:"topic,omitempty"`
}

// TurnResponse carries the next question. Evaluation is always null on
// this path: the dashboard grades the previous answer locally against
// the CorrectAnswer it already holds.
type TurnResponse struct {
	TurnID        string                         `json:"turnId"`
	Question      *questiongen.GeneratedQuestion `json:"question"`
	Evaluation    *learner.Evaluation            `json:"evaluation"`
	CorrectAnswer string                         `json:"correctAnswer,omitempty"`
}

// EvaluateRequest scores a free-text answer against the profile.
type EvaluateRequest struct {
	LearnerID  string  `json:"learnerId"`
	Question   string  `json:"question"`
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
}

// EvaluateResponse returns the evaluation and the profile it produced.
type EvaluateResponse struct {
	Evaluation learner.Evaluation `json:"evaluation"`
	Profile    *learner.Profile   `json:"profile"`
}

// Service wires the turn loop together. All collaborators are injected;
// retriever and diag may be nil when no matching provider is configured.
type Service struct {
	profiles  store.ProfileRepo
	sessions  *Sessions
	selector  *selector.Selector
	retriever *retrieval.Retriever
	generator *questiongen.Generator
	hints     *hints.Service
	evaluator learner.Evaluator
	diag      *diagnosis.Service
	logger    *slog.Logger
	now       func() time.Time
}

// NewService builds the turn orchestrator.
func NewService(
	profiles store.ProfileRepo,
	sel *selector.Selector,
	retriever *retrieval.Retriever,
	generator *questiongen.Generator,
	hintSvc *hints.Service,
	evaluator learner.Evaluator,
	diag *diagnosis.Service,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		profiles:  profiles,
		sessions:  NewSessions(),
		selector:  sel,
		retriever: retriever,
		generator: generator,
		hints:     hintSvc,
		evaluator: evaluator,
		diag:      diag,
		logger:    logger,
		now:       time.Now,
	}
}

// HandleTurn runs one pass of the selection/generation loop and returns
// the next question.
func (s *Service) HandleTurn(ctx context.Context, req TurnRequest) (*TurnResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}
	learnerID := req.LearnerID
	if learnerID == "" {
		learnerID = DefaultLearnerID
	}

	sess := s.sessions.Get(learnerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	profile, err := s.loadProfile(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	if req.Topic != "" {
		profile.LastTopic = req.Topic
	}

	questionCount := profile.QuestionCount()
	sel := s.selector.Select(profile.Confidence, questionCount, &sess.TypeHistory)

	topic := req.Topic
	if topic == "" {
		topic = profile.LastTopic
	}

	var signals []retrieval.RAGSignal
	if s.retriever != nil {
		signals = s.retriever.Retrieve(ctx, req.Message, topicOrGeneral(topic), string(sel.Difficulty), 5)
	}

	question, err := s.generator.Generate(ctx, questiongen.GenerateInput{
		Type:       sel.Type,
		Difficulty: sel.Difficulty,
		Topic:      topic,
		RAGSignals: signals,
	}, &sess.RecentLog)
	if err != nil {
		return nil, err
	}

	learner.ApplyTurn(profile, req.Message, req.Topic)

	if err := s.profiles.Save(ctx, learnerID, profile); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}

	s.logger.Info("turn served",
		"learner", learnerID,
		"type", sel.Type,
		"difficulty", sel.Difficulty,
		"questionCount", profile.QuestionCount(),
		"confidence", profile.Confidence,
	)

	return &TurnResponse{
		TurnID:        uuid.NewString(),
		Question:      question,
		Evaluation:    nil,
		CorrectAnswer: question.CorrectAnswer,
	}, nil
}

// Hint generates a hint for a question. Stateless with respect to the
// learner profile.
func (s *Service) Hint(ctx context.Context, req hints.Request) (*hints.Hint, error) {
	return s.hints.Hint(ctx, req)
}

// Evaluate scores a free-text answer, folds it into the profile, and
// persists the result.
func (s *Service) Evaluate(ctx context.Context, req EvaluateRequest) (*EvaluateResponse, error) {
	if strings.TrimSpace(req.Answer) == "" {
		return nil, errors.New("answer is required")
	}
	learnerID := req.LearnerID
	if learnerID == "" {
		learnerID = DefaultLearnerID
	}

	sess := s.sessions.Get(learnerID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	profile, err := s.loadProfile(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	ev := s.evaluator.Evaluate(req.Question, req.Answer, req.Confidence)

	// Diagnose failed answers before the evaluation blends the profile
	// confidence. A rule-based verdict comes back immediately; a
	// misconception match from the LLM lands via the callback.
	if s.diag != nil && !ev.Passed() {
		topic := topicOrGeneral(profile.LastTopic)
		verdict := s.diag.Diagnose(ctx, &diagnosis.ClassifyInput{
			Question:           req.Question,
			Topic:              topic,
			Answer:             req.Answer,
			ReportedConfidence: req.Confidence,
			ProfileConfidence:  profile.Confidence,
		}, s.recordMisconception(learnerID, topic))
		s.logger.Info("answer diagnosed",
			"learner", learnerID,
			"category", verdict.Category,
			"classifier", verdict.ClassifierName,
		)
	}

	learner.ApplyEvaluation(profile, ev, req.Confidence, s.now())

	sched := review.NewScheduler(profile.Reviews)
	sched.Observe(topicOrGeneral(profile.LastTopic), ev.Passed(), s.now())
	profile.Reviews = sched.States()

	if err := s.profiles.Save(ctx, learnerID, profile); err != nil {
		return nil, fmt.Errorf("persist profile: %w", err)
	}

	return &EvaluateResponse{Evaluation: ev, Profile: profile}, nil
}

// recordMisconception returns the async diagnosis callback. It re-loads
// the profile under the session lock because the evaluate call that
// dispatched the diagnosis has long since returned.
func (s *Service) recordMisconception(learnerID, topic string) func(*diagnosis.DiagnosisResult) {
	return func(r *diagnosis.DiagnosisResult) {
		if r.Category != diagnosis.CategoryMisconception {
			return
		}
		m := diagnosis.GetMisconception(r.MisconceptionID)
		if m == nil {
			return
		}

		ctx := context.Background()
		sess := s.sessions.Get(learnerID)
		sess.mu.Lock()
		defer sess.mu.Unlock()

		profile, err := s.loadProfile(ctx, learnerID)
		if err != nil {
			s.logger.Warn("record misconception", "learner", learnerID, "error", err)
			return
		}
		profile.Misconceptions = append(profile.Misconceptions, learner.Misconception{
			Topic:     topic,
			Pattern:   m.Label,
			Timestamp: s.now(),
		})
		if err := s.profiles.Save(ctx, learnerID, profile); err != nil {
			s.logger.Warn("record misconception", "learner", learnerID, "error", err)
			return
		}
		s.logger.Info("misconception recorded",
			"learner", learnerID,
			"misconception", r.MisconceptionID,
			"confidence", r.Confidence,
		)
	}
}

// ReviewPlan returns the learner's spaced review schedule, due topics
// first.
func (s *Service) ReviewPlan(ctx context.Context, learnerID string) ([]review.TopicStatus, error) {
	if learnerID == "" {
		learnerID = DefaultLearnerID
	}
	profile, err := s.loadProfile(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	return review.NewScheduler(profile.Reviews).Plan(s.now()), nil
}

// Profile returns the learner's current profile, a fresh one if none is
// stored yet.
func (s *Service) Profile(ctx context.Context, learnerID string) (*learner.Profile, error) {
	if learnerID == "" {
		learnerID = DefaultLearnerID
	}
	return s.loadProfile(ctx, learnerID)
}

// Reset clears the learner's durable profile and live session state.
func (s *Service) Reset(ctx context.Context, learnerID string) error {
	if learnerID == "" {
		learnerID = DefaultLearnerID
	}
	s.sessions.Reset(learnerID)
	return s.profiles.Delete(ctx, learnerID)
}

func (s *Service) loadProfile(ctx context.Context, learnerID string) (*learner.Profile, error) {
	profile, err := s.profiles.Load(ctx, learnerID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		profile = learner.NewProfile()
	}
	return profile, nil
}

func topicOrGeneral(topic string) string {
	if topic == "" {
		return "general"
	}
	return topic
}
