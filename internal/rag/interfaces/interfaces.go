package interfaces

import (
	"context"

	"aiact-tutor/internal/rag/schema"
)

// Store is the interface for the persisted document store. Implementations
// must be safe for concurrent read-only use.
type Store interface {
	// Search returns up to topK chunks ranked by similarity to the query
	// vector, most relevant first. A store holding fewer than topK chunks
	// returns all of them; an empty result is not an error.
	Search(ctx context.Context, vector []float32, topK int) ([]schema.Chunk, error)

	// Add inserts chunks with their embeddings. It is only used by the
	// offline indexing job; the query path never writes.
	Add(ctx context.Context, chunks []schema.IndexedChunk) error
}

// EmbeddingModel is the interface for a text embedding model. The same
// implementation and model must be used for indexing and for queries.
type EmbeddingModel interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// LLM is the interface for a language model that answers a structured
// two-role prompt with free text.
type LLM interface {
	Generate(ctx context.Context, prompt schema.Prompt) (string, error)
}
