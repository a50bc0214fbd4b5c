package pipeline

import (
	"context"
	"fmt"

	"aiact-tutor/internal/rag/interfaces"
	"aiact-tutor/internal/rag/schema"
	"aiact-tutor/pkg/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// defaultEmbedBatchSize bounds the number of texts sent to the embedding
// provider in a single request.
const defaultEmbedBatchSize = 16

// maxConcurrentBatches limits in-flight embedding requests so a large corpus
// does not trip provider rate limits.
const maxConcurrentBatches = 4

// IndexingPipeline embeds pre-chunked documents and writes them to the
// vector store. It expects chunks that have already been extracted and
// split; it performs no parsing of its own.
type IndexingPipeline struct {
	embedder  interfaces.EmbeddingModel
	store     interfaces.Store
	batchSize int
	log       *logger.Logger
}

// NewIndexingPipeline creates an IndexingPipeline.
func NewIndexingPipeline(embedder interfaces.EmbeddingModel, store interfaces.Store) *IndexingPipeline {
	return &IndexingPipeline{
		embedder:  embedder,
		store:     store,
		batchSize: defaultEmbedBatchSize,
		log:       logger.New("indexing_pipeline"),
	}
}

// Run embeds every chunk and adds the result to the store. It returns the
// number of chunks indexed. Duplicate chunk IDs within the same source are
// rejected up front, before any embedding call is made.
func (p *IndexingPipeline) Run(ctx context.Context, chunks []schema.Chunk) (int, error) {
	if len(chunks) == 0 {
		return 0, fmt.Errorf("no chunks to index")
	}
	if err := validateChunks(chunks); err != nil {
		return 0, err
	}

	p.log.WithField("chunks", len(chunks)).Info("starting indexing run")

	indexed := make([]schema.IndexedChunk, len(chunks))

	eg, gCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentBatches)

	for start := 0; start < len(chunks); start += p.batchSize {
		end := start + p.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]
		offset := start

		eg.Go(func() error {
			texts := make([]string, len(batch))
			for i, c := range batch {
				texts[i] = c.Content
			}
			embeddings, err := p.embedder.EmbedBatch(gCtx, texts)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
			}
			if len(embeddings) != len(batch) {
				return fmt.Errorf("%w: got %d embeddings for %d texts", ErrEmbeddingFailed, len(embeddings), len(batch))
			}
			for i, c := range batch {
				indexed[offset+i] = schema.IndexedChunk{
					Chunk:     c,
					ID:        uuid.NewString(),
					Embedding: embeddings[i],
				}
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return 0, err
	}

	if err := p.store.Add(ctx, indexed); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	p.log.WithField("chunks", len(indexed)).Info("indexing run complete")
	return len(indexed), nil
}

// validateChunks rejects empty content and duplicate chunk IDs per source.
func validateChunks(chunks []schema.Chunk) error {
	type key struct {
		source  string
		chunkID int
	}
	seen := make(map[key]int, len(chunks))
	for i, c := range chunks {
		if c.Content == "" {
			return fmt.Errorf("chunk %d has empty content", i)
		}
		k := key{source: c.Source, chunkID: c.ChunkID}
		if prev, ok := seen[k]; ok {
			return fmt.Errorf("duplicate chunk_id %d for source %q (chunks %d and %d)", c.ChunkID, c.Source, prev, i)
		}
		seen[k] = i
	}
	return nil
}
