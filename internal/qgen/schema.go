package qgen

import "github.com/hbennett/revisio/internal/llm"

// BatchSchema defines the JSON schema for LLM question generation
// responses: an object with a "questions" array so a single call can
// produce a whole batch.
var BatchSchema = &llm.Schema{
	Name:        "question-batch",
	Description: "A batch of GCSE Computer Science practice questions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"prompt": map[string]any{
							"type":        "string",
							"description": "The question shown to the student, plain text",
						},
						"type": map[string]any{
							"type": "string",
							"enum": []any{
								"multiple_choice", "true_false", "fill_blank",
								"matching", "short_answer", "essay", "code",
								"algorithm", "sql",
							},
						},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Exactly 4 options for multiple_choice. Empty otherwise.",
						},
						"correct_index": map[string]any{
							"type":        "integer",
							"description": "Zero-based index of the correct option. -1 when not multiple_choice.",
						},
						"true_false_answer": map[string]any{
							"type":        "boolean",
							"description": "The correct truth value for true_false questions",
						},
						"accepted_answers": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "For fill_blank: one accepted answer per blank, in order",
						},
						"pairs_left": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "For matching: the left column terms",
						},
						"pairs_right": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "For matching: the right column definitions, aligned by index",
						},
						"model_answer": map[string]any{
							"type":        "string",
							"description": "Worked model answer for free-response types. Empty otherwise.",
						},
						"rubric": map[string]any{
							"type":        "string",
							"description": "Mark-scheme style rubric for free-response types",
						},
						"language": map[string]any{
							"type":        "string",
							"description": "Programming language for code questions (python, sql, pseudocode). Empty otherwise.",
						},
					},
					"required": []any{
						"prompt", "type", "difficulty", "options", "correct_index",
						"true_false_answer", "accepted_answers", "pairs_left",
						"pairs_right", "model_answer", "rubric", "language",
					},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}
