package vectorstore

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"aiact-tutor/internal/rag/interfaces"
	"aiact-tutor/internal/rag/schema"
	"aiact-tutor/pkg/logger"
)

// localIndex is the on-disk layout of a local index file. The embedding
// identity recorded at build time lets a later open detect a model switch
// instead of silently searching a foreign embedding space.
type localIndex struct {
	EmbeddingProvider string                `json:"embedding_provider,omitempty"`
	EmbeddingModel    string                `json:"embedding_model,omitempty"`
	Chunks            []schema.IndexedChunk `json:"chunks"`
}

// LocalStore is a file-backed document store. It loads the entire index
// into memory and ranks chunks by cosine similarity. It is intended for a
// single-document corpus such as one regulation; larger corpora belong in
// the Milvus backend.
type LocalStore struct {
	mu    sync.RWMutex
	path  string
	index localIndex
	log   *logger.Logger
}

// OpenLocal opens the index file at path. A missing or corrupt file is an
// error; callers treat it as the store being unavailable.
func OpenLocal(path string, log *logger.Logger) (*LocalStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index file %s: %w", path, err)
	}

	var index localIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("corrupt index file %s: %w", path, err)
	}

	log.WithField("chunks", len(index.Chunks)).Info("opened local index")
	return &LocalStore{path: path, index: index, log: log}, nil
}

// CreateLocal creates an empty local index at path, recording the
// embedding identity that will be used to fill it.
func CreateLocal(path, embeddingProvider, embeddingModel string, log *logger.Logger) (*LocalStore, error) {
	s := &LocalStore{
		path: path,
		index: localIndex{
			EmbeddingProvider: embeddingProvider,
			EmbeddingModel:    embeddingModel,
			Chunks:            []schema.IndexedChunk{},
		},
		log: log,
	}
	if err := s.save(); err != nil {
		return nil, err
	}
	return s, nil
}

// EmbeddingIdentity returns the provider and model recorded when the index
// was built. Both are empty for indexes built before identity pinning.
func (s *LocalStore) EmbeddingIdentity() (provider, model string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.EmbeddingProvider, s.index.EmbeddingModel
}

// Search returns up to topK chunks ranked by cosine similarity, most
// similar first. A store with fewer chunks returns all of them.
func (s *LocalStore) Search(ctx context.Context, vector []float32, topK int) ([]schema.Chunk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		chunk schema.Chunk
		score float32
	}

	results := make([]scored, 0, len(s.index.Chunks))
	for _, ic := range s.index.Chunks {
		score := cosine(vector, ic.Embedding)
		results = append(results, scored{chunk: ic.Chunk, score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if topK > len(results) {
		topK = len(results)
	}

	chunks := make([]schema.Chunk, 0, topK)
	for _, r := range results[:topK] {
		c := normalize(r.chunk)
		c.Score = r.score
		chunks = append(chunks, c)
	}
	return chunks, nil
}

// Add appends chunks to the index and persists it. Only the offline
// indexer writes; the query path never calls Add.
func (s *LocalStore) Add(ctx context.Context, chunks []schema.IndexedChunk) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.index.Chunks = append(s.index.Chunks, chunks...)
	return s.save()
}

// save writes the index atomically so a crash never leaves a half-written
// file behind.
func (s *LocalStore) save() error {
	data, err := json.Marshal(s.index)
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace index file: %w", err)
	}
	return nil
}

// cosine computes the cosine similarity of two vectors. Mismatched or
// zero-length vectors score zero rather than erroring.
func cosine(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}

var _ interfaces.Store = (*LocalStore)(nil)
