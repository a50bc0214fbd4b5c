package pipeline

import (
	"context"
	"fmt"

	"aiact-tutor/internal/config"
	"aiact-tutor/internal/rag/interfaces"
	"aiact-tutor/internal/rag/schema"
	"aiact-tutor/pkg/logger"
)

// Retriever embeds a question and finds the most similar stored chunks.
// The embedder must be the same implementation and model that built the
// store; the constructor takes it injected so tests can substitute stubs.
type Retriever struct {
	embedder interfaces.EmbeddingModel
	store    interfaces.Store
	log      *logger.Logger
}

// NewRetriever creates a Retriever over the given embedder and store.
func NewRetriever(embedder interfaces.EmbeddingModel, store interfaces.Store, log *logger.Logger) *Retriever {
	return &Retriever{
		embedder: embedder,
		store:    store,
		log:      log,
	}
}

// Retrieve returns up to topK chunks ranked by similarity to the query,
// most relevant first. A store holding fewer chunks returns all of them,
// and zero results is a valid outcome, not an error. A non-positive topK
// falls back to the default.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) ([]schema.Chunk, error) {
	if query == "" {
		return nil, fmt.Errorf("query must not be empty")
	}
	if topK <= 0 {
		topK = config.DefaultTopK
	}

	vector, err := r.embedder.Embed(ctx, query)
	if err != nil {
		r.log.WithError(err).Error("failed to embed query")
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	chunks, err := r.store.Search(ctx, vector, topK)
	if err != nil {
		r.log.WithError(err).Error("document store search failed")
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	r.log.WithField("count", len(chunks)).Debug("retrieved chunks")
	return chunks, nil
}
