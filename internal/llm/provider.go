// Package llm abstracts the model providers behind one Provider interface
// with retry, event logging and schema-validated structured output layered
// on top as decorators.
package llm

import (
	"context"
	"encoding/json"
)

// Provider sends one prompt and returns one response. Implementations wrap
// a vendor SDK; decorators wrap other Providers.
type Provider interface {
	// Generate performs a single completion. When req.Schema is set the
	// provider requests structured output and validates the result
	// against the schema before returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the configured model identifier.
	ModelID() string
}

// Request is everything a single model call needs.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Generation here is single-turn, so
	// this is normally one user message.
	Messages []Message

	// Schema, when set, constrains the output to this JSON Schema via the
	// provider's native structured-output mechanism.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature in [0, 1]; zero means deterministic.
	Temperature float64
}

// Message is one turn in the conversation.
type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names and defines the JSON shape the model must produce.
type Schema struct {
	// Name is kebab-case, e.g. "question-batch". Providers use it as the
	// structured-output schema name.
	Name string

	// Description guides the model; it is sent alongside the schema.
	Description string

	// Definition is a JSON Schema document as a map.
	Definition map[string]any
}

// Response is the model's output plus accounting metadata.
type Response struct {
	// Content is validated JSON when the request carried a Schema, raw
	// text otherwise.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request, which may be a
	// dated ID behind an alias.
	Model string

	// StopReason is normalised across providers: "end" or "max_tokens".
	StopReason string
}

// Usage counts tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
