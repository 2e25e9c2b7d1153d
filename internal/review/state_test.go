package review

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestState_IsDue(t *testing.T) {
	st := &State{Topic: "fractions", NextReview: baseTime}

	assert.False(t, st.IsDue(baseTime.Add(-time.Hour)), "not due before the review date")
	assert.True(t, st.IsDue(baseTime), "due exactly at the review date")
	assert.True(t, st.IsDue(baseTime.Add(time.Hour)), "due after the review date")
}

func TestState_OverdueDays(t *testing.T) {
	st := &State{NextReview: baseTime}

	assert.Equal(t, 0.0, st.OverdueDays(baseTime.Add(-time.Hour)))
	assert.Equal(t, 2.0, st.OverdueDays(baseTime.AddDate(0, 0, 2)))
}

func TestState_CurrentIntervalDays(t *testing.T) {
	tests := []struct {
		name      string
		stage     int
		graduated bool
		want      int
	}{
		{"first stage", 0, false, 1},
		{"mid ladder", 2, false, 7},
		{"top of ladder", 5, false, 60},
		{"beyond ladder", 9, false, 60},
		{"graduated", 0, true, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &State{Stage: tt.stage, Graduated: tt.graduated}
			assert.Equal(t, tt.want, st.CurrentIntervalDays())
		})
	}
}

func TestState_CurrentStatus(t *testing.T) {
	st := &State{Stage: 2, NextReview: baseTime} // 7 day interval, 3.5 day grace

	assert.Equal(t, StatusNotDue, st.CurrentStatus(baseTime.AddDate(0, 0, -1)))
	assert.Equal(t, StatusDue, st.CurrentStatus(baseTime.AddDate(0, 0, 1)), "inside grace")
	assert.Equal(t, StatusOverdue, st.CurrentStatus(baseTime.AddDate(0, 0, 4)), "past grace")

	grad := &State{Graduated: true, NextReview: baseTime.AddDate(0, 0, 30)}
	assert.Equal(t, StatusGraduated, grad.CurrentStatus(baseTime))
}

func TestState_DaysUntilReview(t *testing.T) {
	st := &State{NextReview: baseTime.AddDate(0, 0, 3)}

	assert.Equal(t, 4, st.DaysUntilReview(baseTime))
	assert.Equal(t, 0, st.DaysUntilReview(baseTime.AddDate(0, 0, 5)), "due topics report zero")
}
