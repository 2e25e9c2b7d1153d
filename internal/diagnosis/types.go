package diagnosis

// ErrorCategory classifies a failed answer.
type ErrorCategory string

const (
	CategoryGuess         ErrorCategory = "guess"
	CategoryCareless      ErrorCategory = "careless"
	CategoryMisconception ErrorCategory = "misconception"
	CategoryUnclassified  ErrorCategory = "unclassified"
)

// ClassifyInput holds the context for classification.
type ClassifyInput struct {
	Question           string
	Topic              string
	Answer             string
	ReportedConfidence float64 // Learner's self-assessment (0.0-1.0)
	ProfileConfidence  float64 // Historical blended confidence (0.0-1.0)
}

// DiagnosisResult is the output of classifying a failed answer.
type DiagnosisResult struct {
	Category        ErrorCategory // guess, careless, misconception, unclassified
	MisconceptionID string        // Non-empty only when Category == misconception
	Confidence      float64       // 0.0-1.0
	ClassifierName  string        // Which classifier/LLM produced this result
	Reasoning       string        // LLM reasoning (empty for rule-based)
}
