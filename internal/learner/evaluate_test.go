package learner

import (
	"testing"
	"time"
)

func TestLexicalEvaluator_LengthBuckets(t *testing.T) {
	e := LexicalEvaluator{}

	short := e.Evaluate("Why?", "plants", 0.5)
	if short.Understanding != 0.2 {
		t.Errorf("short answer understanding = %v, want 0.2", short.Understanding)
	}

	long := e.Evaluate("Why?",
		"Photosynthesis converts light energy into chemical energy because chlorophyll "+
			"absorbs photons and therefore drives electron transport, for example in the "+
			"thylakoid membrane where the relationship between light and ATP output is direct "+
			"and the consequence of shading is reduced sugar production in the plant overall "+
			"which matters for crop yield and for the wider ecosystem too",
		0.5)
	if long.Understanding <= short.Understanding {
		t.Errorf("long analytical answer (%v) should score above short answer (%v)",
			long.Understanding, short.Understanding)
	}
}

func TestLexicalEvaluator_ShallowPenalty(t *testing.T) {
	e := LexicalEvaluator{}
	base := "the cell membrane controls what enters and leaves the cell and keeps the inside stable"
	confident := e.Evaluate("Q", base, 0.5)
	hedged := e.Evaluate("Q", "i guess "+base, 0.5)
	if hedged.Understanding >= confident.Understanding {
		t.Errorf("hedged = %v, confident = %v; hedging must lower the score",
			hedged.Understanding, confident.Understanding)
	}
}

func TestLexicalEvaluator_EvidenceBonus(t *testing.T) {
	e := LexicalEvaluator{}
	base := "the cell membrane controls what enters and leaves the cell and keeps the inside stable"
	plain := e.Evaluate("Q", base, 0.5)
	cited := e.Evaluate("Q", base+" as a famous experiment demonstrated", 0.5)
	if !cited.HasEvidence {
		t.Fatal("HasEvidence = false for answer citing an experiment")
	}
	if cited.Understanding <= plain.Understanding {
		t.Errorf("cited = %v, plain = %v; evidence must raise the score",
			cited.Understanding, plain.Understanding)
	}
}

func TestLexicalEvaluator_MisconceptionFlag(t *testing.T) {
	e := LexicalEvaluator{}
	ev := e.Evaluate("Q", "mutations are always harmful and never help an organism survive at all", 0.5)
	if !ev.HasMisconceptions {
		t.Error("HasMisconceptions = false for absolute claims")
	}
}

func TestApplyEvaluation_ConfidenceBlend(t *testing.T) {
	now := time.Now()

	// Calibrated: gap <= 0.3, three-way blend.
	p := NewProfile()
	ApplyEvaluation(p, Evaluation{Understanding: 0.6}, 0.7, now)
	want := 0.5*0.5 + 0.6*0.3 + 0.7*0.2
	if diff := p.Confidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("calibrated blend = %v, want %v", p.Confidence, want)
	}

	// Miscalibrated: gap > 0.3, self-report ignored.
	p = NewProfile()
	ApplyEvaluation(p, Evaluation{Understanding: 0.2}, 0.9, now)
	want = 0.5*0.7 + 0.2*0.3
	if diff := p.Confidence - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("miscalibrated blend = %v, want %v", p.Confidence, want)
	}
}

func TestApplyEvaluation_Promotion(t *testing.T) {
	now := time.Now()
	p := NewProfile()
	p.Streak.Correct = 4
	p.Confidence = 0.75

	ApplyEvaluation(p, Evaluation{Understanding: 0.9}, 0.9, now)
	if p.Level != LevelIntermediate {
		t.Fatalf("Level = %s, want Intermediate after streak 5 and conf > 0.7", p.Level)
	}
	if p.Streak.Correct != 0 {
		t.Errorf("Streak.Correct = %d, want reset on transition", p.Streak.Correct)
	}
}

func TestApplyEvaluation_AdvancedNeedsHigherBar(t *testing.T) {
	now := time.Now()
	p := NewProfile()
	p.Level = LevelIntermediate
	p.Streak.Correct = 4
	p.Confidence = 0.72 // above 0.7 but the blend keeps it under 0.8

	ApplyEvaluation(p, Evaluation{Understanding: 0.65}, 0.65, now)
	if p.Level != LevelIntermediate {
		t.Errorf("Level = %s, want Intermediate (Advanced needs conf > 0.8)", p.Level)
	}
}

func TestApplyEvaluation_Demotion(t *testing.T) {
	now := time.Now()
	p := NewProfile()
	p.Level = LevelAdvanced
	p.Streak.Incorrect = 3
	p.Confidence = 0.3

	ApplyEvaluation(p, Evaluation{Understanding: 0.1}, 0.1, now)
	if p.Level != LevelIntermediate {
		t.Fatalf("Level = %s, want Intermediate after streak 4 and conf < 0.4", p.Level)
	}
	if p.Streak.Incorrect != 0 {
		t.Errorf("Streak.Incorrect = %d, want reset on transition", p.Streak.Incorrect)
	}
}

func TestApplyEvaluation_WeakTopics(t *testing.T) {
	now := time.Now()
	p := NewProfile()
	p.LastTopic = "Photosynthesis"

	ApplyEvaluation(p, Evaluation{Understanding: 0.3}, 0.3, now)
	if len(p.WeakTopics) != 1 || p.WeakTopics[0] != "Photosynthesis" {
		t.Fatalf("WeakTopics = %v, want [Photosynthesis]", p.WeakTopics)
	}

	ApplyEvaluation(p, Evaluation{Understanding: 0.9}, 0.9, now)
	if len(p.WeakTopics) != 0 {
		t.Errorf("WeakTopics = %v, want cleared after strong answer", p.WeakTopics)
	}
}

func TestApplyEvaluation_MisconceptionAppend(t *testing.T) {
	now := time.Now()
	p := NewProfile()
	p.LastTopic = "Evolution"

	ApplyEvaluation(p, Evaluation{Understanding: 0.5, HasMisconceptions: true}, 0.5, now)
	ApplyEvaluation(p, Evaluation{Understanding: 0.5, HasMisconceptions: true}, 0.5, now)
	if len(p.Misconceptions) != 2 {
		t.Fatalf("Misconceptions = %d entries, want 2 (append-only)", len(p.Misconceptions))
	}
	if p.Misconceptions[0].Topic != "Evolution" {
		t.Errorf("Topic = %q, want Evolution", p.Misconceptions[0].Topic)
	}
}
