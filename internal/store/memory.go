package store

import (
	"context"
	"sync"

	"github.com/vidyayathra/tutor/internal/learner"
)

// MemoryProfileRepo is an in-memory ProfileRepo. Suitable for tests and
// for running the server without a database file.
type MemoryProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*learner.Profile
}

// NewMemoryProfileRepo returns an empty in-memory ProfileRepo.
func NewMemoryProfileRepo() *MemoryProfileRepo {
	return &MemoryProfileRepo{profiles: make(map[string]*learner.Profile)}
}

func (r *MemoryProfileRepo) Load(_ context.Context, learnerID string) (*learner.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[learnerID]
	if !ok {
		return nil, nil
	}
	return p.Clone(), nil
}

func (r *MemoryProfileRepo) Save(_ context.Context, learnerID string, p *learner.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[learnerID] = p.Clone()
	return nil
}

func (r *MemoryProfileRepo) Delete(_ context.Context, learnerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.profiles, learnerID)
	return nil
}

// MemoryEventRepo is an in-memory EventRepo that records appended events.
// Query methods operate over the recorded slice; aggregation methods are
// intentionally minimal.
type MemoryEventRepo struct {
	mu     sync.Mutex
	events []*LLMEvent
}

// NewMemoryEventRepo returns an empty in-memory EventRepo.
func NewMemoryEventRepo() *MemoryEventRepo {
	return &MemoryEventRepo{}
}

func (r *MemoryEventRepo) AppendLLMRequest(_ context.Context, data LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, &LLMEvent{
		ID:                  len(r.events) + 1,
		LLMRequestEventData: data,
	})
	return nil
}

func (r *MemoryEventRepo) QueryLLMEvents(_ context.Context, opts QueryOpts) ([]*LLMEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*LLMEvent
	for i := len(r.events) - 1; i >= 0; i-- {
		e := r.events[i]
		if opts.Purpose != "" && e.Purpose != opts.Purpose {
			continue
		}
		out = append(out, e)
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out, nil
}

func (r *MemoryEventRepo) GetLLMEvent(_ context.Context, id int) (*LLMEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *MemoryEventRepo) LLMUsageByPurpose(_ context.Context) ([]UsageByPurpose, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byPurpose := make(map[string]*UsageByPurpose)
	var order []string
	for _, e := range r.events {
		u, ok := byPurpose[e.Purpose]
		if !ok {
			u = &UsageByPurpose{Purpose: e.Purpose}
			byPurpose[e.Purpose] = u
			order = append(order, e.Purpose)
		}
		u.Calls++
		u.InputTokens += e.InputTokens
		u.OutputTokens += e.OutputTokens
	}
	out := make([]UsageByPurpose, 0, len(order))
	for _, p := range order {
		out = append(out, *byPurpose[p])
	}
	return out, nil
}

func (r *MemoryEventRepo) LLMUsageByModel(_ context.Context) ([]UsageByModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	byModel := make(map[string]*UsageByModel)
	var order []string
	for _, e := range r.events {
		u, ok := byModel[e.Model]
		if !ok {
			u = &UsageByModel{Model: e.Model}
			byModel[e.Model] = u
			order = append(order, e.Model)
		}
		u.Calls++
		u.InputTokens += e.InputTokens
		u.OutputTokens += e.OutputTokens
	}
	out := make([]UsageByModel, 0, len(order))
	for _, m := range order {
		out = append(out, *byModel[m])
	}
	return out, nil
}
