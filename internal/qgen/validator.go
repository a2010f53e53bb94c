package qgen

import "fmt"

// Validator checks a generated draft for correctness.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for this validator, for error
	// messages and logging.
	Name() string

	// Validate checks the draft and returns nil if it passes. The
	// validator receives the full GenerateInput for context.
	Validate(d *Draft, input GenerateInput) *ValidationError
}

// ValidationError describes why a draft failed validation.
type ValidationError struct {
	Validator string
	Message   string
	Retryable bool // whether regeneration is likely to fix this
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}
