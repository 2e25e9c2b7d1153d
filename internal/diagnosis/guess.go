package diagnosis

// GuessConfidenceThreshold is the maximum self-reported confidence
// (exclusive) for a failed answer to be classified as a guess.
const GuessConfidenceThreshold = 0.3

// GuessClassifier flags answers the learner submitted without confidence
// as guesses.
type GuessClassifier struct{}

func (c *GuessClassifier) Name() string { return "guess" }

func (c *GuessClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	if input.ReportedConfidence < GuessConfidenceThreshold {
		return CategoryGuess, 0.9
	}
	return "", 0
}
