package qgen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Validators is the ordered list of checks run on every generated
	// draft. They execute in order; the first failure drops the draft.
	Validators []Validator

	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxPriorPrompts is the maximum number of existing prompts to
	// include in the prompt for deduplication.
	MaxPriorPrompts int
}

// DefaultConfig returns a Config with the standard validator chain and
// recommended defaults.
func DefaultConfig() Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&DuplicateValidator{},
		},
		MaxTokens:       4096,
		Temperature:     0.7,
		MaxPriorPrompts: 20,
	}
}
