package llm

import (
	"fmt"

	"github.com/scrypster/journa/internal/config"
)

// NewTextGenerator creates a TextGenerator based on the configured provider
// and wraps it with the configured rate limit.
func NewTextGenerator(cfg config.LLMConfig) (TextGenerator, error) {
	var gen TextGenerator
	switch cfg.Provider {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("anthropic provider selected but JOURNA_ANTHROPIC_API_KEY not set")
		}
		gen = NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai provider selected but JOURNA_OPENAI_API_KEY not set")
		}
		gen = NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	case "ollama":
		gen = NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel)
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
	return NewRateLimitedGenerator(gen, cfg.RequestsPerMinute), nil
}
