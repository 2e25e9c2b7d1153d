// Package review schedules topic reviews on an expanding interval
// ladder. A topic enters the schedule when the learner first clears it
// and resurfaces at increasing intervals until it graduates.
package review

import "time"

// BaseIntervals defines the expanding interval schedule in days.
// Stage 0 = first review after a topic is cleared.
var BaseIntervals = []int{1, 3, 7, 14, 30, 60}

// GraduationHits is the consecutive-hit count at which a topic graduates.
// A topic graduates after completing all 6 stages (0-5) successfully.
const GraduationHits = 6

// GraduatedIntervalDays is the review interval for graduated topics.
const GraduatedIntervalDays = 90

// State holds the review schedule for a single topic. It is embedded in
// the learner profile document, so field tags are part of the stored
// format.
type State struct {
	Topic           string    `json:"topic"`
	Stage           int       `json:"stage"`
	NextReview      time.Time `json:"nextReview"`
	ConsecutiveHits int       `json:"consecutiveHits"`
	Graduated       bool      `json:"graduated"`
	LastReview      time.Time `json:"lastReview"`
}

// IsDue returns true if the topic is due for review (at or past the review date).
func (st *State) IsDue(now time.Time) bool {
	return !now.Before(st.NextReview)
}

// OverdueDays returns how many days past due the topic is. Returns 0 if not yet due.
func (st *State) OverdueDays(now time.Time) float64 {
	if now.Before(st.NextReview) {
		return 0
	}
	return now.Sub(st.NextReview).Hours() / 24.0
}

// isOverdueThreshold returns true once the topic has exceeded its grace
// period of half the current interval.
func (st *State) isOverdueThreshold(now time.Time) bool {
	if !st.IsDue(now) {
		return false
	}
	graceHours := float64(st.CurrentIntervalDays()) * 0.5 * 24.0
	threshold := st.NextReview.Add(time.Duration(graceHours * float64(time.Hour)))
	return now.After(threshold)
}

// CurrentIntervalDays returns the current interval in days.
func (st *State) CurrentIntervalDays() int {
	if st.Graduated {
		return GraduatedIntervalDays
	}
	if st.Stage >= len(BaseIntervals) {
		return BaseIntervals[len(BaseIntervals)-1]
	}
	return BaseIntervals[st.Stage]
}

// Status describes a topic's review status for display.
type Status string

const (
	StatusNotDue    Status = "not_due"
	StatusDue       Status = "due"
	StatusOverdue   Status = "overdue"
	StatusGraduated Status = "graduated"
)

// CurrentStatus returns the review status at the given time.
func (st *State) CurrentStatus(now time.Time) Status {
	if st.Graduated && !st.IsDue(now) {
		return StatusGraduated
	}
	if st.isOverdueThreshold(now) {
		return StatusOverdue
	}
	if st.IsDue(now) {
		return StatusDue
	}
	if st.Graduated {
		return StatusGraduated
	}
	return StatusNotDue
}

// DaysUntilReview returns the number of days until the next review.
// Returns 0 if already due.
func (st *State) DaysUntilReview(now time.Time) int {
	if st.IsDue(now) {
		return 0
	}
	return int(st.NextReview.Sub(now).Hours()/24.0) + 1
}
