package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_FirstClearStartsTracking(t *testing.T) {
	s := NewScheduler(nil)

	s.Observe("fractions", true, baseTime)

	st := s.Get("fractions")
	require.NotNil(t, st, "topic tracked after first clear")
	assert.Equal(t, 0, st.Stage)
	assert.Equal(t, baseTime.AddDate(0, 0, 1), st.NextReview)
}

func TestScheduler_MissWithoutTrackingIsIgnored(t *testing.T) {
	s := NewScheduler(nil)

	s.Observe("fractions", false, baseTime)

	assert.Nil(t, s.Get("fractions"), "a miss on an untracked topic should not start tracking")
}

func TestScheduler_HitsClimbTheLadder(t *testing.T) {
	s := NewScheduler(nil)
	now := baseTime

	s.Observe("fractions", true, now)
	now = now.AddDate(0, 0, 1)
	s.Observe("fractions", true, now)

	st := s.Get("fractions")
	assert.Equal(t, 1, st.Stage)
	assert.Equal(t, now.AddDate(0, 0, 3), st.NextReview)
}

func TestScheduler_Graduation(t *testing.T) {
	s := NewScheduler(nil)
	now := baseTime

	s.Observe("fractions", true, now)
	for i := 0; i < GraduationHits; i++ {
		now = now.AddDate(0, 0, 30)
		s.Observe("fractions", true, now)
	}

	st := s.Get("fractions")
	require.True(t, st.Graduated, "topic graduates after sustained hits")
	assert.Equal(t, now.AddDate(0, 0, GraduatedIntervalDays), st.NextReview)
}

func TestScheduler_MissRestartsLadder(t *testing.T) {
	s := NewScheduler(nil)
	now := baseTime

	s.Observe("fractions", true, now)
	now = now.AddDate(0, 0, 1)
	s.Observe("fractions", true, now)
	now = now.AddDate(0, 0, 3)
	s.Observe("fractions", false, now)

	st := s.Get("fractions")
	assert.Equal(t, 0, st.Stage)
	assert.Equal(t, 0, st.ConsecutiveHits)
	assert.Equal(t, now.AddDate(0, 0, 1), st.NextReview, "missed topic resurfaces early")
}

func TestScheduler_DueTopicsSortedByOverdue(t *testing.T) {
	now := baseTime
	s := NewScheduler(map[string]*State{
		"algebra":   {Topic: "algebra", NextReview: now.AddDate(0, 0, -1)},
		"fractions": {Topic: "fractions", NextReview: now.AddDate(0, 0, -5)},
		"geometry":  {Topic: "geometry", NextReview: now.AddDate(0, 0, 2)},
	})

	assert.Equal(t, []string{"fractions", "algebra"}, s.DueTopics(now))
}

func TestScheduler_PlanOrdersDueBeforeUpcoming(t *testing.T) {
	now := baseTime
	s := NewScheduler(map[string]*State{
		"algebra":   {Topic: "algebra", NextReview: now.AddDate(0, 0, 5)},
		"fractions": {Topic: "fractions", NextReview: now.AddDate(0, 0, -2)},
		"geometry":  {Topic: "geometry", NextReview: now.AddDate(0, 0, 1)},
	})

	plan := s.Plan(now)
	require.Len(t, plan, 3)
	assert.Equal(t, "fractions", plan[0].Topic, "overdue topic first")
	assert.Equal(t, "geometry", plan[1].Topic, "then soonest upcoming")
	assert.Equal(t, "algebra", plan[2].Topic)
}
