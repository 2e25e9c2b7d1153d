package learner

import "testing"

func TestNewProfile_Defaults(t *testing.T) {
	p := NewProfile()
	if p.Level != LevelBeginner {
		t.Errorf("Level = %s, want Beginner", p.Level)
	}
	if p.Confidence != 0.5 {
		t.Errorf("Confidence = %v, want 0.5", p.Confidence)
	}
	if p.Streak.Correct != 0 || p.Streak.Incorrect != 0 {
		t.Errorf("Streak = %+v, want zeros", p.Streak)
	}
	if len(p.WeakTopics) != 0 {
		t.Errorf("WeakTopics = %v, want empty", p.WeakTopics)
	}
	if len(p.Misconceptions) != 0 {
		t.Errorf("Misconceptions = %v, want empty", p.Misconceptions)
	}
}

func TestLevel_PromoteDemote_SingleStep(t *testing.T) {
	if got := LevelBeginner.Promote(); got != LevelIntermediate {
		t.Errorf("Beginner.Promote() = %s", got)
	}
	if got := LevelIntermediate.Promote(); got != LevelAdvanced {
		t.Errorf("Intermediate.Promote() = %s", got)
	}
	if got := LevelAdvanced.Promote(); got != LevelAdvanced {
		t.Errorf("Advanced.Promote() = %s, want Advanced (cap)", got)
	}
	if got := LevelAdvanced.Demote(); got != LevelIntermediate {
		t.Errorf("Advanced.Demote() = %s", got)
	}
	if got := LevelBeginner.Demote(); got != LevelBeginner {
		t.Errorf("Beginner.Demote() = %s, want Beginner (floor)", got)
	}
}

func TestStreak_MutualExclusivity(t *testing.T) {
	p := NewProfile()
	p.markIncorrect()
	p.markIncorrect()
	p.markCorrect()
	if p.Streak.Correct != 1 || p.Streak.Incorrect != 0 {
		t.Errorf("Streak = %+v after correct, want {1 0}", p.Streak)
	}
	p.markIncorrect()
	if p.Streak.Correct != 0 || p.Streak.Incorrect != 1 {
		t.Errorf("Streak = %+v after incorrect, want {0 1}", p.Streak)
	}
}

func TestWeakTopics_SetSemantics(t *testing.T) {
	p := NewProfile()
	p.addWeakTopic("Photosynthesis")
	p.addWeakTopic("Photosynthesis")
	if len(p.WeakTopics) != 1 {
		t.Fatalf("WeakTopics = %v, want single entry", p.WeakTopics)
	}
	p.removeWeakTopic("Photosynthesis")
	if len(p.WeakTopics) != 0 {
		t.Errorf("WeakTopics = %v after remove, want empty", p.WeakTopics)
	}
}

func TestClone_IsDeep(t *testing.T) {
	p := NewProfile()
	p.addWeakTopic("Algebra")
	cp := p.Clone()
	cp.addWeakTopic("Geometry")
	cp.Confidence = 0.9
	if len(p.WeakTopics) != 1 {
		t.Errorf("original WeakTopics = %v, want unchanged", p.WeakTopics)
	}
	if p.Confidence != 0.5 {
		t.Errorf("original Confidence = %v, want unchanged", p.Confidence)
	}
}
