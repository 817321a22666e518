package interview

// Config controls the behavior of the Interviewer.
type Config struct {
	// MaxTokens is the token budget for each LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// BankQuestions is how many skill-bank questions GenerateQuestions draws.
	BankQuestions int

	// AIQuestions is how many extra questions GenerateQuestions asks the LLM for.
	AIQuestions int
}

// DefaultConfig returns a Config with the recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     1024,
		Temperature:   0.7,
		BankQuestions: 3,
		AIQuestions:   2,
	}
}
