package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"aiact-tutor/internal/rag/schema"
)

type recordingStore struct {
	mu    sync.Mutex
	added []schema.IndexedChunk
	err   error
}

func (s *recordingStore) Search(ctx context.Context, vector []float32, topK int) ([]schema.Chunk, error) {
	return nil, nil
}

func (s *recordingStore) Add(ctx context.Context, chunks []schema.IndexedChunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.added = append(s.added, chunks...)
	return nil
}

func manyChunks(n int) []schema.Chunk {
	out := make([]schema.Chunk, n)
	for i := range out {
		out[i] = schema.Chunk{
			Content: "chunk content",
			Section: "Article 1",
			Source:  "ai_act.pdf",
			ChunkID: i,
		}
	}
	return out
}

func TestIndexingRunEmbedsAndStoresAll(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{0.1, 0.2}}
	store := &recordingStore{}
	p := NewIndexingPipeline(embedder, store)

	// More chunks than one embedding batch holds.
	n := defaultEmbedBatchSize*2 + 3
	count, err := p.Run(context.Background(), manyChunks(n))
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if count != n {
		t.Errorf("Run() indexed %d, want %d", count, n)
	}
	if len(store.added) != n {
		t.Errorf("store received %d chunks, want %d", len(store.added), n)
	}

	seen := make(map[string]bool, n)
	for _, c := range store.added {
		if c.ID == "" {
			t.Fatal("indexed chunk missing ID")
		}
		if seen[c.ID] {
			t.Fatalf("duplicate generated ID %s", c.ID)
		}
		seen[c.ID] = true
		if len(c.Embedding) == 0 {
			t.Fatal("indexed chunk missing embedding")
		}
	}
}

func TestIndexingRunRejectsDuplicateChunkIDs(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{0.1}}
	store := &recordingStore{}
	p := NewIndexingPipeline(embedder, store)

	chunks := []schema.Chunk{
		{Content: "a", Source: "ai_act.pdf", ChunkID: 1},
		{Content: "b", Source: "ai_act.pdf", ChunkID: 1},
	}

	if _, err := p.Run(context.Background(), chunks); err == nil {
		t.Error("expected error for duplicate chunk_id within one source")
	}
	if len(store.added) != 0 {
		t.Error("nothing must be stored after a validation failure")
	}
}

func TestIndexingRunAllowsSameChunkIDAcrossSources(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{0.1}}
	store := &recordingStore{}
	p := NewIndexingPipeline(embedder, store)

	chunks := []schema.Chunk{
		{Content: "a", Source: "ai_act.pdf", ChunkID: 1},
		{Content: "b", Source: "annexes.pdf", ChunkID: 1},
	}

	if _, err := p.Run(context.Background(), chunks); err != nil {
		t.Errorf("same chunk_id in different sources must be valid: %v", err)
	}
}

func TestIndexingRunEmptyInput(t *testing.T) {
	p := NewIndexingPipeline(&stubEmbedder{}, &recordingStore{})
	if _, err := p.Run(context.Background(), nil); err == nil {
		t.Error("expected error for empty chunk set")
	}
}

func TestIndexingRunEmbeddingFailure(t *testing.T) {
	embedder := &stubEmbedder{err: errors.New("provider down")}
	store := &recordingStore{}
	p := NewIndexingPipeline(embedder, store)

	_, err := p.Run(context.Background(), manyChunks(3))
	if !errors.Is(err, ErrEmbeddingFailed) {
		t.Errorf("expected ErrEmbeddingFailed, got %v", err)
	}
	if len(store.added) != 0 {
		t.Error("nothing must be stored after an embedding failure")
	}
}

func TestIndexingRunStoreFailure(t *testing.T) {
	embedder := &stubEmbedder{vector: []float32{0.1}}
	store := &recordingStore{err: errors.New("disk full")}
	p := NewIndexingPipeline(embedder, store)

	_, err := p.Run(context.Background(), manyChunks(2))
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Errorf("expected ErrStoreUnavailable, got %v", err)
	}
}
