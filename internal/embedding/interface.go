package embedding

import "context"

// Embedding is the interface every embedding provider implements. The
// provider and model used to build the document store must be the same
// ones used at query time; the two embedding spaces are not comparable.
type Embedding interface {
	// Embed generates an embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embedding vectors for a batch of texts,
	// in input order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider identifies an embedding model vendor.
type Provider string

const (
	Google Provider = "google" // Google GenAI embedding models
	OpenAI Provider = "openai" // OpenAI embedding models
	Ollama Provider = "ollama" // Locally hosted models via Ollama
)
