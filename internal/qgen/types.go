// Package qgen generates GCSE Computer Science practice questions with an
// LLM and validates them before they reach the draft catalogue.
package qgen

import "context"

// GenerateInput is the context for one batch generation call.
type GenerateInput struct {
	TopicCode    string
	TopicName    string
	TopicSummary string
	Type         string // question type, e.g. "multiple_choice"
	Difficulty   string // easy, medium, hard
	Count        int

	// PriorPrompts are existing prompts for this topic, included so the
	// model does not regenerate them.
	PriorPrompts []string
}

// Draft is one generated question before persistence.
type Draft struct {
	Prompt          string
	Type            string
	Difficulty      string
	Options         []string
	CorrectIndex    int
	TrueFalseAnswer bool
	AcceptedAnswers []string
	PairsLeft       []string
	PairsRight      []string
	ModelAnswer     string
	Rubric          string
	Language        string
}

// Generator produces validated question drafts.
type Generator interface {
	// Generate produces up to input.Count drafts. All configured
	// validators run on every draft before returning; drafts that fail a
	// retryable check are dropped rather than failing the whole batch.
	Generate(ctx context.Context, input GenerateInput) ([]Draft, error)
}
