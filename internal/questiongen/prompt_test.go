package questiongen

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/vidyayathra/tutor/internal/learner"
	"github.com/vidyayathra/tutor/internal/retrieval"
	"github.com/vidyayathra/tutor/internal/selector"
)

func baseInput(typ selector.QuestionType, topic string) GenerateInput {
	return GenerateInput{
		Type:       typ,
		Difficulty: learner.LevelBeginner,
		Topic:      topic,
	}
}

func TestBuildSystemPrompt_StandardGrammar(t *testing.T) {
	var l RecentLog
	p := BuildSystemPrompt(baseInput(selector.TypeMCQ, "Photosynthesis"), &l)

	if !strings.Contains(p, `"questionType": "MCQ"`) {
		t.Error("missing standard grammar with question type")
	}
	if !strings.Contains(p, "MUST BE FIRST") {
		t.Error("missing first-option rule")
	}
	if strings.Contains(p, "MultipleBlanksFill questions, use this format") {
		t.Error("standard type should not get the blanks grammar")
	}
	if !strings.Contains(p, "first question - start with foundational concepts") {
		t.Error("empty log should produce the first-question continuity note")
	}
}

func TestBuildSystemPrompt_MultipleBlanksGrammar(t *testing.T) {
	var l RecentLog
	p := BuildSystemPrompt(baseInput(selector.TypeMultipleBlanksFill, "C++"), &l)

	if !strings.Contains(p, "_____1_____") {
		t.Error("missing blanks placeholder format")
	}
	if !strings.Contains(p, `"blanks"`) {
		t.Error("missing blanks field in grammar")
	}
}

func TestBuildSystemPrompt_TopicCategories(t *testing.T) {
	var l RecentLog
	tests := []struct {
		topic string
		want  string
	}{
		{"circle", "GEOMETRIC SHAPE"},
		{"calculus", "MATHEMATICAL CONCEPT"},
		{"python", "PROGRAMMING TOPIC"},
		{"French Revolution", "learning subject"},
	}
	for _, tt := range tests {
		p := BuildSystemPrompt(baseInput(selector.TypeMCQ, tt.topic), &l)
		if !strings.Contains(p, tt.want) {
			t.Errorf("topic %q: prompt missing %q", tt.topic, tt.want)
		}
	}
}

func TestBuildSystemPrompt_GeometryBeatsMath(t *testing.T) {
	var l RecentLog
	// "geometry" matches both patterns; the shape framing must win.
	p := BuildSystemPrompt(baseInput(selector.TypeMCQ, "sphere geometry"), &l)
	if !strings.Contains(p, "GEOMETRIC SHAPE") {
		t.Error("geometry topic should get the shape framing")
	}
}

func TestBuildSystemPrompt_FormattingRules(t *testing.T) {
	var l RecentLog
	p := BuildSystemPrompt(baseInput(selector.TypeMCQ, "python"), &l)

	if !strings.Contains(p, "PROGRAMMING QUESTIONS") {
		t.Error("missing code formatting rules")
	}
	if !strings.Contains(p, "```language\\ncode\\n```") {
		t.Error("missing fenced code block format")
	}
	if !strings.Contains(p, "MATHEMATICAL/GEOMETRY QUESTIONS") {
		t.Error("missing diagram rules")
	}
	if !strings.Contains(p, `viewBox="0 0 600 600"`) {
		t.Error("missing SVG diagram format")
	}
}

func TestBuildSystemPrompt_ContinuityAndAvoidList(t *testing.T) {
	var l RecentLog
	for i := 0; i < 7; i++ {
		l.Add("Question number "+string(rune('A'+i)), "Answer "+string(rune('A'+i)))
	}

	p := BuildSystemPrompt(baseInput(selector.TypeMCQ, "Biology"), &l)
	if !strings.Contains(p, "PREVIOUS QUESTION CONTEXT") {
		t.Error("missing continuity section")
	}
	if !strings.Contains(p, "Question number G") {
		t.Error("continuity should quote the latest question")
	}
	if !strings.Contains(p, "ALREADY TESTED") {
		t.Error("missing avoid list")
	}
	// Avoid list holds only the last 5.
	if strings.Contains(p, "Question number B\"") && !strings.Contains(p, "Question number C") {
		t.Error("avoid list window wrong")
	}
	if strings.Contains(p, `Q: "Question number A`) {
		t.Error("avoid list should not include entries older than 5")
	}
}

func TestBuildSystemPrompt_RAGSignals(t *testing.T) {
	var l RecentLog
	in := baseInput(selector.TypeMCQ, "Photosynthesis")
	in.RAGSignals = []retrieval.RAGSignal{
		{Topic: "Photosynthesis", Snippet: "Chlorophyll absorbs red and blue light.", Difficulty: "Beginner"},
	}

	p := BuildSystemPrompt(in, &l)
	if !strings.Contains(p, "REFERENCE MATERIAL") {
		t.Error("missing RAG section")
	}
	if !strings.Contains(p, "Chlorophyll absorbs red and blue light.") {
		t.Error("missing RAG snippet")
	}
}

func TestBuildUserPrompt(t *testing.T) {
	var l RecentLog
	p := BuildUserPrompt(baseInput(selector.TypePuzzle, "Gravity"), &l)

	if !strings.Contains(p, "Beginner level Puzzle question") {
		t.Error("missing difficulty and type line")
	}
	if !strings.Contains(p, "Current question number: 1.") {
		t.Error("missing question number")
	}
	if !strings.Contains(p, "Start with fundamental concepts") {
		t.Error("empty log should produce first-question guidance")
	}

	l.Add("q", "a")
	p = BuildUserPrompt(baseInput(selector.TypePuzzle, "Gravity"), &l)
	if !strings.Contains(p, "Current question number: 2.") {
		t.Error("question number should track the log")
	}
	if !strings.Contains(p, "Build naturally on the previous question concept") {
		t.Error("non-empty log should produce progression guidance")
	}
}

func TestTruncateText_RuneBoundary(t *testing.T) {
	s := strings.Repeat("π", continuitySnippet)

	got := truncateText(s, continuitySnippet)
	if got != s {
		t.Errorf("text within the rune limit should pass through, got %q", got)
	}

	got = truncateText(s+"r²", continuitySnippet)
	if !utf8.ValidString(got) {
		t.Errorf("truncation produced invalid UTF-8: %q", got)
	}
	if got != s+"..." {
		t.Errorf("got %q, want %d runes plus ellipsis", got, continuitySnippet)
	}
}

func TestBuildUserPrompt_EmptyTopicDefaults(t *testing.T) {
	var l RecentLog
	p := BuildUserPrompt(baseInput(selector.TypeMCQ, ""), &l)
	if !strings.Contains(p, "general knowledge") {
		t.Error("empty topic should fall back to general knowledge")
	}
}
