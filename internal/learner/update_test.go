package learner

import "testing"

func TestIsInitialMessage(t *testing.T) {
	tests := []struct {
		message string
		want    bool
	}{
		{"I want to learn about Photosynthesis", true},
		{"Teach me calculus", true},
		{"hi", true}, // too short
		{"next question please", false},
		{"The mitochondria produces ATP through cellular respiration", false},
	}
	for _, tt := range tests {
		if got := IsInitialMessage(tt.message); got != tt.want {
			t.Errorf("IsInitialMessage(%q) = %v, want %v", tt.message, got, tt.want)
		}
	}
}

func TestApplyTurn_InitialMessage_SetsTopicOnly(t *testing.T) {
	p := NewProfile()
	ApplyTurn(p, "I want to learn about Photosynthesis", "Photosynthesis")

	if p.LastTopic != "Photosynthesis" {
		t.Errorf("LastTopic = %q, want Photosynthesis", p.LastTopic)
	}
	if p.Streak.Correct != 0 || p.Streak.Incorrect != 0 {
		t.Errorf("Streak = %+v, want untouched", p.Streak)
	}
	if p.Confidence != 0.5 {
		t.Errorf("Confidence = %v, want untouched", p.Confidence)
	}
	if p.Level != LevelBeginner {
		t.Errorf("Level = %s, want Beginner", p.Level)
	}
}

func TestApplyTurn_Continuation_CountsQuestion(t *testing.T) {
	p := NewProfile()
	ApplyTurn(p, "next question please", "")
	ApplyTurn(p, "next question please", "")

	if p.Streak.Correct != 2 {
		t.Errorf("Streak.Correct = %d, want 2", p.Streak.Correct)
	}
	if p.Streak.Incorrect != 0 {
		t.Errorf("Streak.Incorrect = %d, want 0", p.Streak.Incorrect)
	}
	if p.QuestionCount() != 2 {
		t.Errorf("QuestionCount = %d, want 2", p.QuestionCount())
	}
}

func TestApplyTurn_TopicChange_Continuation(t *testing.T) {
	p := NewProfile()
	p.LastTopic = "Algebra"
	ApplyTurn(p, "next question please", "Geometry")

	if p.LastTopic != "Geometry" {
		t.Errorf("LastTopic = %q, want Geometry", p.LastTopic)
	}
	if p.Streak.Correct != 1 {
		t.Errorf("Streak.Correct = %d, want 1", p.Streak.Correct)
	}
}

func TestApplyTurn_StreakExclusivityInvariant(t *testing.T) {
	p := NewProfile()
	p.Streak.Incorrect = 3
	ApplyTurn(p, "next question please", "")

	if p.Streak.Correct > 0 && p.Streak.Incorrect > 0 {
		t.Errorf("Streak = %+v, counters must be mutually exclusive", p.Streak)
	}
}
