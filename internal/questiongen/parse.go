package questiongen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// minResponseLength is the shortest model output worth parsing. Anything
// shorter is treated as an empty response.
const minResponseLength = 10

// GenerationError reports a failed generation attempt. The raw model
// output is retained for the audit trail.
type GenerationError struct {
	Reason string
	Raw    string
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("question generation: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("question generation: %s", e.Reason)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// ParseQuestion turns raw model text into a GeneratedQuestion. Models
// routinely wrap the JSON in markdown fences, prepend prose, or truncate
// mid-object, so the pipeline is: strip fences, extract the outermost
// brace span, repair a truncated object, decode, then default a missing
// correctAnswer to the first option.
func ParseQuestion(raw string) (*GeneratedQuestion, error) {
	text := strings.TrimSpace(raw)
	if len(text) < minResponseLength {
		return nil, &GenerationError{Reason: "empty response", Raw: raw}
	}

	text = stripFences(text)

	jsonStr, ok := extractObject(text)
	if !ok {
		return nil, &GenerationError{Reason: "no JSON object in response", Raw: raw}
	}

	jsonStr = repairTruncation(jsonStr)

	var q GeneratedQuestion
	if err := json.Unmarshal([]byte(jsonStr), &q); err != nil {
		return nil, &GenerationError{Reason: "invalid JSON", Raw: raw, Err: err}
	}

	if q.CorrectAnswer == "" && len(q.Options) > 0 {
		q.CorrectAnswer = q.Options[0]
	}

	return &q, nil
}

// stripFences removes markdown code fences around the payload.
func stripFences(text string) string {
	if strings.HasPrefix(text, "```json") {
		text = strings.ReplaceAll(text, "```json\n", "")
		text = strings.ReplaceAll(text, "```json", "")
		text = strings.ReplaceAll(text, "```\n", "")
		text = strings.ReplaceAll(text, "```", "")
	} else if strings.HasPrefix(text, "```") {
		text = strings.ReplaceAll(text, "```\n", "")
		text = strings.ReplaceAll(text, "```", "")
	}
	return strings.TrimSpace(text)
}

// extractObject returns the span from the first '{' to the last '}'.
// A greedy span tolerates prose before and after the object.
func extractObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start < 0 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// repairTruncation salvages an object that was cut off after the options
// array but before the correctAnswer field: drop everything after the
// last complete field and close the object. Other truncation shapes are
// left for the JSON decoder to reject.
func repairTruncation(jsonStr string) string {
	if strings.Contains(jsonStr, `"correctAnswer"`) || !strings.Contains(jsonStr, `"options"`) {
		return jsonStr
	}
	if json.Valid([]byte(jsonStr)) {
		return jsonStr
	}
	lastComma := strings.LastIndexByte(jsonStr, ',')
	if lastComma <= 0 {
		return jsonStr
	}
	return jsonStr[:lastComma] + "\n}"
}
