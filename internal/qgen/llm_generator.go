package qgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hbennett/revisio/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// batchOutput is the raw LLM response before validation.
type batchOutput struct {
	Questions []questionOutput `json:"questions"`
}

type questionOutput struct {
	Prompt          string   `json:"prompt"`
	Type            string   `json:"type"`
	Difficulty      string   `json:"difficulty"`
	Options         []string `json:"options"`
	CorrectIndex    int      `json:"correct_index"`
	TrueFalseAnswer bool     `json:"true_false_answer"`
	AcceptedAnswers []string `json:"accepted_answers"`
	PairsLeft       []string `json:"pairs_left"`
	PairsRight      []string `json:"pairs_right"`
	ModelAnswer     string   `json:"model_answer"`
	Rubric          string   `json:"rubric"`
	Language        string   `json:"language"`
}

// Generate produces up to input.Count validated drafts. Drafts failing a
// retryable validator are dropped; a batch where every draft fails is an
// error so callers don't mistake it for an empty topic.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) ([]Draft, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input, g.config)},
		},
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if len(raw.Questions) == 0 {
		return nil, fmt.Errorf("LLM returned an empty batch")
	}

	var drafts []Draft
	var lastErr *ValidationError
	for _, out := range raw.Questions {
		d := Draft{
			Prompt:          out.Prompt,
			Type:            out.Type,
			Difficulty:      out.Difficulty,
			Options:         out.Options,
			CorrectIndex:    out.CorrectIndex,
			TrueFalseAnswer: out.TrueFalseAnswer,
			AcceptedAnswers: out.AcceptedAnswers,
			PairsLeft:       out.PairsLeft,
			PairsRight:      out.PairsRight,
			ModelAnswer:     out.ModelAnswer,
			Rubric:          out.Rubric,
			Language:        out.Language,
		}

		if verr := g.validate(&d, input); verr != nil {
			lastErr = verr
			continue
		}
		drafts = append(drafts, d)
		if len(drafts) == input.Count {
			break
		}
	}

	if len(drafts) == 0 {
		return nil, fmt.Errorf("every draft failed validation: %w", lastErr)
	}
	return drafts, nil
}

func (g *LLMGenerator) validate(d *Draft, input GenerateInput) *ValidationError {
	for _, v := range g.config.Validators {
		if verr := v.Validate(d, input); verr != nil {
			return verr
		}
	}
	return nil
}
