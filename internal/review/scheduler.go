package review

import (
	"sort"
	"time"
)

// Scheduler manages the review schedule for one learner. It operates on
// the state map stored in the profile; callers persist States() after
// each update.
type Scheduler struct {
	states map[string]*State
}

// NewScheduler wraps a learner's review states. A nil map is treated as
// an empty schedule.
func NewScheduler(states map[string]*State) *Scheduler {
	if states == nil {
		states = make(map[string]*State)
	}
	return &Scheduler{states: states}
}

// Observe folds one evaluated answer into the schedule. A topic enters
// the schedule on its first cleared answer; a miss restarts its ladder
// with an early resurface.
func (s *Scheduler) Observe(topic string, passed bool, now time.Time) {
	st := s.states[topic]
	if st == nil {
		if !passed {
			return
		}
		s.states[topic] = &State{
			Topic:      topic,
			Stage:      0,
			NextReview: now.AddDate(0, 0, BaseIntervals[0]),
			LastReview: now,
		}
		return
	}

	st.LastReview = now

	if passed {
		st.ConsecutiveHits++
		if !st.Graduated {
			st.Stage++
			if st.ConsecutiveHits >= GraduationHits {
				st.Graduated = true
			}
		}
		st.NextReview = now.AddDate(0, 0, st.CurrentIntervalDays())
		return
	}

	st.ConsecutiveHits = 0
	st.Stage = 0
	st.Graduated = false
	st.NextReview = now.AddDate(0, 0, BaseIntervals[0])
}

// DueTopics returns topics due for review, most overdue first.
func (s *Scheduler) DueTopics(now time.Time) []string {
	type dueTopic struct {
		topic   string
		overdue float64
	}
	var due []dueTopic

	for topic, st := range s.states {
		if st.IsDue(now) {
			due = append(due, dueTopic{topic: topic, overdue: st.OverdueDays(now)})
		}
	}

	sort.Slice(due, func(i, j int) bool {
		if due[i].overdue != due[j].overdue {
			return due[i].overdue > due[j].overdue
		}
		return due[i].topic < due[j].topic
	})

	topics := make([]string, len(due))
	for i, d := range due {
		topics[i] = d.topic
	}
	return topics
}

// Get returns the review state for a topic, or nil if not tracked.
func (s *Scheduler) Get(topic string) *State {
	return s.states[topic]
}

// States returns the backing state map for persistence.
func (s *Scheduler) States() map[string]*State {
	return s.states
}

// TopicStatus describes one topic's position in the schedule.
type TopicStatus struct {
	Topic       string    `json:"topic"`
	Status      Status    `json:"status"`
	NextReview  time.Time `json:"nextReview"`
	DaysUntil   int       `json:"daysUntil"`
	OverdueDays float64   `json:"overdueDays,omitempty"`
}

// Plan returns the full schedule: due topics first (most overdue at the
// top), then upcoming topics by soonest review date.
func (s *Scheduler) Plan(now time.Time) []TopicStatus {
	out := make([]TopicStatus, 0, len(s.states))
	for _, st := range s.states {
		out = append(out, TopicStatus{
			Topic:       st.Topic,
			Status:      st.CurrentStatus(now),
			NextReview:  st.NextReview,
			DaysUntil:   st.DaysUntilReview(now),
			OverdueDays: st.OverdueDays(now),
		})
	}

	sort.Slice(out, func(i, j int) bool {
		di, dj := out[i].OverdueDays > 0 || out[i].DaysUntil == 0, out[j].OverdueDays > 0 || out[j].DaysUntil == 0
		if di != dj {
			return di
		}
		if di {
			if out[i].OverdueDays != out[j].OverdueDays {
				return out[i].OverdueDays > out[j].OverdueDays
			}
		} else if !out[i].NextReview.Equal(out[j].NextReview) {
			return out[i].NextReview.Before(out[j].NextReview)
		}
		return out[i].Topic < out[j].Topic
	})
	return out
}
