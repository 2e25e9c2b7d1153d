package selector

import (
	"testing"

	"github.com/vidyayathra/tutor/internal/learner"
)

// pickFirst always chooses the first candidate, making selection
// deterministic for tests.
func pickFirst(int) int { return 0 }

func TestAllTypes_Count(t *testing.T) {
	if got := len(AllTypes()); got != 9 {
		t.Errorf("len(AllTypes()) = %d, want 9", got)
	}
}

func TestHistory_Bounded(t *testing.T) {
	var h History
	for _, typ := range AllTypes() {
		h.Push(typ)
	}
	if h.Len() != maxTypeHistory {
		t.Errorf("Len = %d, want %d", h.Len(), maxTypeHistory)
	}
	// Oldest entry (MCQ) evicted.
	recent := h.Recent(maxTypeHistory)
	if recent[0] != TypeFillInBlank {
		t.Errorf("oldest retained = %s, want FillInBlank", recent[0])
	}
}

func TestSelect_ExcludesRecentTypes(t *testing.T) {
	s := NewWithPicker(pickFirst)
	var h History
	h.Push(TypeMCQ)
	h.Push(TypeFillInBlank)
	h.Push(TypeMultipleAnswers)

	sel := s.Select(0.5, 0, &h)
	if sel.Type == TypeMCQ || sel.Type == TypeFillInBlank || sel.Type == TypeMultipleAnswers {
		t.Errorf("Select returned recently used type %s", sel.Type)
	}
	// First non-excluded type in canonical order.
	if sel.Type != TypeMultipleBlanksFill {
		t.Errorf("Type = %s, want MultipleBlanksFill", sel.Type)
	}
}

func TestSelect_ShortHistoryUsesFullSet(t *testing.T) {
	s := NewWithPicker(pickFirst)
	var h History
	h.Push(TypeMCQ)
	h.Push(TypeFillInBlank)

	sel := s.Select(0.5, 0, &h)
	if sel.Type != TypeMCQ {
		t.Errorf("Type = %s, want MCQ (no exclusion below 3 entries)", sel.Type)
	}
}

func TestSelect_RecordsChoiceInHistory(t *testing.T) {
	s := NewWithPicker(pickFirst)
	var h History

	sel := s.Select(0.5, 0, &h)
	if h.Len() != 1 {
		t.Fatalf("history Len = %d, want 1", h.Len())
	}
	if h.Recent(1)[0] != sel.Type {
		t.Errorf("history tail = %s, want %s", h.Recent(1)[0], sel.Type)
	}
}

func TestSelect_AlwaysReturnsValidType(t *testing.T) {
	s := New()
	var h History
	valid := make(map[QuestionType]bool)
	for _, typ := range AllTypes() {
		valid[typ] = true
	}
	for i := 0; i < 100; i++ {
		sel := s.Select(0.5, i, &h)
		if !valid[sel.Type] {
			t.Fatalf("turn %d: invalid type %q", i, sel.Type)
		}
		if sel.Difficulty == "" {
			t.Fatalf("turn %d: empty difficulty", i)
		}
	}
}

func TestDifficultyLadder(t *testing.T) {
	tests := []struct {
		name       string
		confidence float64
		count      int
		want       learner.Level
	}{
		{"early default", 0.5, 0, learner.LevelBeginner},
		{"ladder boundary 10", 0.5, 10, learner.LevelIntermediate},
		{"ladder boundary 25", 0.5, 25, learner.LevelAdvanced},
		{"high conf early promote", 0.85, 5, learner.LevelIntermediate},
		{"high conf too early", 0.85, 4, learner.LevelBeginner},
		{"very high conf promote to advanced", 0.95, 15, learner.LevelAdvanced},
		{"low conf advanced steps down", 0.35, 30, learner.LevelIntermediate},
		{"very low conf intermediate steps down", 0.25, 12, learner.LevelBeginner},
		{"very low conf advanced steps down one band only", 0.1, 30, learner.LevelIntermediate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := difficultyFor(tt.confidence, tt.count); got != tt.want {
				t.Errorf("difficultyFor(%v, %d) = %s, want %s",
					tt.confidence, tt.count, got, tt.want)
			}
		})
	}
}

func TestQuestionType_HasOptions(t *testing.T) {
	if TypeFillInBlank.HasOptions() {
		t.Error("FillInBlank should not carry options")
	}
	if TypeClarification.HasOptions() {
		t.Error("Clarification should not carry options")
	}
	if !TypeMCQ.HasOptions() {
		t.Error("MCQ should carry options")
	}
}
