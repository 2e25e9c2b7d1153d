package tutor

import (
	"sync"

	"github.com/vidyayathra/tutor/internal/questiongen"
	"github.com/vidyayathra/tutor/internal/selector"
)

// Session is the per-learner in-process state that does not belong in
// the durable profile: the question type rotation history and the
// duplicate-guard log. Lock is held for the duration of a turn so
// concurrent turns for the same learner serialize.
type Session struct {
	mu          sync.Mutex
	TypeHistory selector.History
	RecentLog   questiongen.RecentLog
}

// Sessions is the registry of live sessions keyed by learner id.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessions returns an empty registry.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*Session)}
}

// Get returns the learner's session, creating it on first use.
func (s *Sessions) Get(learnerID string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[learnerID]
	if !ok {
		sess = &Session{}
		s.sessions[learnerID] = sess
	}
	return sess
}

// Reset drops the learner's session state.
func (s *Sessions) Reset(learnerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, learnerID)
}
