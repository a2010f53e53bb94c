package llm

import "testing"

func TestNewOpenRouterProvider(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey: "sk-or-test",
		Model:  "google/gemini-2.0-flash-exp",
	})
	if err != nil {
		t.Fatalf("NewOpenRouterProvider() error = %v", err)
	}
	if p.ModelID() != "google/gemini-2.0-flash-exp" {
		t.Errorf("ModelID() = %q, want %q", p.ModelID(), "google/gemini-2.0-flash-exp")
	}
}

func TestNewOpenRouterProviderRequiresKey(t *testing.T) {
	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "meta-llama/llama-3-8b"}); err == nil {
		t.Fatal("NewOpenRouterProvider() error = nil, want error for missing API key")
	}
}

func TestOpenRouterModelPassthrough(t *testing.T) {
	// OpenRouter model IDs are namespaced; they must not hit the OpenAI
	// alias table.
	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey: "sk-or-test",
		Model:  "anthropic/claude-3-haiku",
	})
	if err != nil {
		t.Fatalf("NewOpenRouterProvider() error = %v", err)
	}
	if p.ModelID() != "anthropic/claude-3-haiku" {
		t.Errorf("ModelID() = %q, want %q", p.ModelID(), "anthropic/claude-3-haiku")
	}
}

func TestOpenRouterCustomBaseURL(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{
		APIKey:  "sk-or-test",
		Model:   "google/gemini-2.0-flash-exp",
		BaseURL: "https://router.internal.example/v1",
	})
	if err != nil {
		t.Fatalf("NewOpenRouterProvider() error = %v", err)
	}
	if p == nil {
		t.Fatal("NewOpenRouterProvider() = nil")
	}
}
