package questiongen

// Config controls the behavior of the Generator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0). Question
	// generation wants variety, so the default is well above zero.
	Temperature float64

	// MaxDedupRetries is how many times a duplicate question is
	// regenerated before being accepted anyway.
	MaxDedupRetries int
}

// DefaultConfig returns the recommended generation settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:       1024,
		Temperature:     0.7,
		MaxDedupRetries: 2,
	}
}
