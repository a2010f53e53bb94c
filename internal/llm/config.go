package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the model provider.
type Config struct {
	// Provider is one of "anthropic", "openai", "gemini", "openrouter"
	// or "mock".
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional override for OpenAI-compatible endpoints
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig tunes the backoff decorator.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-exp"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// ConfigFromEnv reads REVISIO_* variables over the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	cfg.Provider = envOr("REVISIO_LLM_PROVIDER", cfg.Provider)

	cfg.Anthropic.APIKey = envOr("REVISIO_ANTHROPIC_API_KEY", cfg.Anthropic.APIKey)
	cfg.Anthropic.Model = envOr("REVISIO_ANTHROPIC_MODEL", cfg.Anthropic.Model)

	cfg.OpenAI.APIKey = envOr("REVISIO_OPENAI_API_KEY", cfg.OpenAI.APIKey)
	cfg.OpenAI.Model = envOr("REVISIO_OPENAI_MODEL", cfg.OpenAI.Model)
	cfg.OpenAI.BaseURL = envOr("REVISIO_OPENAI_BASE_URL", cfg.OpenAI.BaseURL)

	cfg.Gemini.APIKey = envOr("REVISIO_GEMINI_API_KEY", cfg.Gemini.APIKey)
	cfg.Gemini.Model = envOr("REVISIO_GEMINI_MODEL", cfg.Gemini.Model)

	cfg.OpenRouter.APIKey = envOr("REVISIO_OPENROUTER_API_KEY", cfg.OpenRouter.APIKey)
	cfg.OpenRouter.Model = envOr("REVISIO_OPENROUTER_MODEL", cfg.OpenRouter.Model)

	return cfg
}

// DiscoverConfig finds a usable provider configuration. An explicit
// REVISIO_LLM_PROVIDER wins; otherwise the bare vendor key env vars are
// probed in priority order. Returns false when nothing is configured.
func DiscoverConfig() (Config, bool) {
	if os.Getenv("REVISIO_LLM_PROVIDER") != "" {
		cfg := ConfigFromEnv()
		if cfg.Validate() == nil {
			return cfg, true
		}
		return Config{}, false
	}

	cfg := DefaultConfig()
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}
	return Config{}, false
}

// Validate checks the selected provider has its API key.
func (c Config) Validate() error {
	switch c.Provider {
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("REVISIO_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("REVISIO_OPENAI_API_KEY is required for the openai provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("REVISIO_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("REVISIO_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "mock":
		// no key needed
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
