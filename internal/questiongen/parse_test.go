package questiongen

import (
	"errors"
	"testing"
)

const validMCQ = `{
  "questionType": "MCQ",
  "difficulty": "Beginner",
  "question": "Which organelle performs photosynthesis?",
  "options": ["Chloroplast", "Mitochondrion", "Nucleus", "Ribosome"],
  "correctAnswer": "Chloroplast",
  "expectsConfidence": true
}`

func TestParseQuestion_CleanJSON(t *testing.T) {
	q, err := ParseQuestion(validMCQ)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.Question != "Which organelle performs photosynthesis?" {
		t.Errorf("question = %q", q.Question)
	}
	if q.CorrectAnswer != "Chloroplast" {
		t.Errorf("correctAnswer = %q", q.CorrectAnswer)
	}
	if len(q.Options) != 4 {
		t.Errorf("options = %d, want 4", len(q.Options))
	}
	if !q.ExpectsConfidence {
		t.Error("expectsConfidence = false, want true")
	}
}

func TestParseQuestion_StripsMarkdownFences(t *testing.T) {
	fenced := "```json\n" + validMCQ + "\n```"
	q, err := ParseQuestion(fenced)
	if err != nil {
		t.Fatalf("parse fenced: %v", err)
	}
	if q.CorrectAnswer != "Chloroplast" {
		t.Errorf("correctAnswer = %q", q.CorrectAnswer)
	}

	bare := "```\n" + validMCQ + "\n```"
	if _, err := ParseQuestion(bare); err != nil {
		t.Fatalf("parse bare fence: %v", err)
	}
}

func TestParseQuestion_ExtractsObjectFromProse(t *testing.T) {
	wrapped := "Here is your question:\n" + validMCQ + "\nHope that helps!"
	q, err := ParseQuestion(wrapped)
	if err != nil {
		t.Fatalf("parse wrapped: %v", err)
	}
	if q.Type != "MCQ" {
		t.Errorf("type = %q", q.Type)
	}
}

func TestParseQuestion_RepairsTruncatedObject(t *testing.T) {
	truncated := `{
  "questionType": "MCQ",
  "difficulty": "Beginner",
  "question": "Which gas do plants absorb?",
  "options": ["Carbon dioxide", "Oxygen", "Nitrogen", "Helium"],
  "expectsConfi}`
	q, err := ParseQuestion(truncated)
	if err != nil {
		t.Fatalf("parse truncated: %v", err)
	}
	if q.Question != "Which gas do plants absorb?" {
		t.Errorf("question = %q", q.Question)
	}
	// correctAnswer lost to truncation falls back to the first option.
	if q.CorrectAnswer != "Carbon dioxide" {
		t.Errorf("correctAnswer = %q, want first option", q.CorrectAnswer)
	}
}

func TestParseQuestion_DefaultsCorrectAnswerToFirstOption(t *testing.T) {
	raw := `{
  "questionType": "MCQ",
  "difficulty": "Beginner",
  "question": "Pick one.",
  "options": ["Right", "Wrong", "Wrong", "Wrong"],
  "expectsConfidence": false
}`
	q, err := ParseQuestion(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if q.CorrectAnswer != "Right" {
		t.Errorf("correctAnswer = %q, want Right", q.CorrectAnswer)
	}
}

func TestParseQuestion_MultipleBlanks(t *testing.T) {
	raw := `{
  "questionType": "MultipleBlanksFill",
  "difficulty": "Intermediate",
  "question": "Complete: print(_____1_____)",
  "blanks": [
    {"id": 1, "options": ["\"hi\"", "hi", "'h", "print"], "correctAnswer": "\"hi\""}
  ],
  "expectsConfidence": false
}`
	q, err := ParseQuestion(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(q.Blanks) != 1 {
		t.Fatalf("blanks = %d, want 1", len(q.Blanks))
	}
	if q.Blanks[0].CorrectAnswer != `"hi"` {
		t.Errorf("blank correctAnswer = %q", q.Blanks[0].CorrectAnswer)
	}
	if q.CorrectAnswer != "" {
		t.Errorf("top-level correctAnswer = %q, want empty for blanks type", q.CorrectAnswer)
	}
}

func TestParseQuestion_EmptyResponse(t *testing.T) {
	var genErr *GenerationError

	_, err := ParseQuestion("")
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want *GenerationError", err)
	}

	_, err = ParseQuestion("   ok   ")
	if !errors.As(err, &genErr) {
		t.Fatalf("short response err = %v, want *GenerationError", err)
	}
}

func TestParseQuestion_NoObject(t *testing.T) {
	var genErr *GenerationError
	_, err := ParseQuestion("I cannot generate a question right now, sorry.")
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want *GenerationError", err)
	}
}

func TestParseQuestion_InvalidJSON(t *testing.T) {
	var genErr *GenerationError
	_, err := ParseQuestion(`{"questionType": MCQ, "question": }`)
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want *GenerationError", err)
	}
	if genErr.Unwrap() == nil {
		t.Error("invalid JSON should carry the decode error")
	}
}
