package diagnosis

// CarelessConfidenceThreshold is the minimum historical confidence
// (exclusive) for a failed answer to be classified as a careless slip.
const CarelessConfidenceThreshold = 0.80

// CarelessClassifier flags failed answers from high-confidence learners as
// careless slips rather than knowledge gaps.
type CarelessClassifier struct{}

func (c *CarelessClassifier) Name() string { return "careless" }

func (c *CarelessClassifier) Classify(input *ClassifyInput) (ErrorCategory, float64) {
	if input.ProfileConfidence > CarelessConfidenceThreshold {
		return CategoryCareless, 0.8
	}
	return "", 0
}
