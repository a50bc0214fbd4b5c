package embedding

import (
	"context"
	"fmt"

	"aiact-tutor/internal/config"
)

// New creates the embedding model pinned by the configuration. The indexer
// and the query path must both construct their embedder through this
// function so the store and the queries share one embedding space.
func New(ctx context.Context, cfg config.EmbeddingConfig) (Embedding, error) {
	switch Provider(cfg.Provider) {
	case Google:
		return NewGoogleModel(ctx, cfg.Model, cfg.APIKey)
	case OpenAI:
		return NewOpenAIModel(cfg.Model, cfg.APIKey)
	case Ollama:
		return NewOllamaModel(cfg.Model, cfg.Host)
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Provider)
	}
}
