package llm

import (
	"context"
	"fmt"

	"aiact-tutor/internal/config"
	"aiact-tutor/internal/rag/interfaces"
)

// NewClient is a factory that creates the generation client selected by the
// configuration. All clients apply the configured temperature and output
// token bound on every call; retries and timeouts belong to the caller.
func NewClient(ctx context.Context, cfg config.GenerationConfig) (interfaces.LLM, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAI(cfg.Model, cfg.APIKey, cfg.Temperature, cfg.MaxTokens)
	case "gemini":
		return NewGemini(ctx, cfg.Model, cfg.APIKey, cfg.Temperature, cfg.MaxTokens)
	case "ollama":
		return NewOllama(cfg.Model, cfg.Host, cfg.Temperature, cfg.MaxTokens)
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", cfg.Provider)
	}
}
