package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func questionSchema() *Schema {
	return &Schema{
		Name:        "test-question",
		Description: "A single question",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"prompt":        map[string]any{"type": "string"},
				"correct_index": map[string]any{"type": "integer", "minimum": 0},
				"difficulty":    map[string]any{"type": "string", "enum": []any{"easy", "medium", "hard"}},
			},
			"required": []any{"prompt", "correct_index"},
		},
	}
}

func wantInvalid(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("validateResponse() error = nil, want *ErrInvalidResponse")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("validateResponse() error = %T, want *ErrInvalidResponse", err)
	}
}

func TestValidateResponse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{"valid with optional field", `{"prompt":"What is a CPU?","correct_index":2,"difficulty":"easy"}`, false},
		{"valid without optional", `{"prompt":"What is RAM?","correct_index":0}`, false},
		{"missing required field", `{"prompt":"What is ROM?"}`, true},
		{"wrong type", `{"prompt":"What is a bit?","correct_index":"two"}`, true},
		{"enum violation", `{"prompt":"What is a byte?","correct_index":1,"difficulty":"extreme"}`, true},
		{"malformed JSON", `{not json}`, true},
		{"empty payload", ``, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateResponse(questionSchema(), json.RawMessage(tt.raw))
			if tt.wantErr {
				wantInvalid(t, err)
			} else if err != nil {
				t.Fatalf("validateResponse() error = %v", err)
			}
		})
	}
}

func TestValidateResponseNilSchema(t *testing.T) {
	if err := validateResponse(nil, json.RawMessage(`{"anything":"goes"}`)); err != nil {
		t.Fatalf("validateResponse(nil) error = %v", err)
	}
}

func TestValidateResponseNested(t *testing.T) {
	schema := &Schema{
		Name: "test-batch",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"topic": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"code": map[string]any{"type": "string"},
					},
					"required": []any{"code"},
				},
				"questions": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string"},
				},
			},
			"required": []any{"topic", "questions"},
		},
	}

	valid := json.RawMessage(`{"topic":{"code":"3.1.1"},"questions":["q1","q2"]}`)
	if err := validateResponse(schema, valid); err != nil {
		t.Fatalf("validateResponse() error = %v", err)
	}

	invalid := json.RawMessage(`{"topic":{"code":"3.1.1"},"questions":[1,2]}`)
	wantInvalid(t, validateResponse(schema, invalid))
}
