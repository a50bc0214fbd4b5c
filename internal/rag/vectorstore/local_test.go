package vectorstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"aiact-tutor/internal/rag/schema"
	"aiact-tutor/pkg/logger"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "index.json")
	s, err := CreateLocal(path, "google", "embedding-001", logger.New("test"))
	if err != nil {
		t.Fatalf("CreateLocal() error: %v", err)
	}
	return s
}

func indexedChunk(id string, content, section string, embedding []float32) schema.IndexedChunk {
	return schema.IndexedChunk{
		Chunk: schema.Chunk{
			Content: content,
			Section: section,
			Source:  "ai_act.pdf",
		},
		ID:        id,
		Embedding: embedding,
	}
}

func TestOpenLocalMissingFile(t *testing.T) {
	_, err := OpenLocal(filepath.Join(t.TempDir(), "missing.json"), logger.New("test"))
	if err == nil {
		t.Error("expected error for missing index file")
	}
}

func TestOpenLocalCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := OpenLocal(path, logger.New("test")); err == nil {
		t.Error("expected error for corrupt index file")
	}
}

func TestLocalStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	chunks := []schema.IndexedChunk{
		indexedChunk("a", "prohibited practices", "Article 5", []float32{1, 0, 0}),
		indexedChunk("b", "high-risk systems", "Article 6", []float32{0, 1, 0}),
	}
	if err := s.Add(ctx, chunks); err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	// Reopen from disk: the write must have persisted.
	reopened, err := OpenLocal(s.path, logger.New("test"))
	if err != nil {
		t.Fatalf("OpenLocal() after Add error: %v", err)
	}

	provider, model := reopened.EmbeddingIdentity()
	if provider != "google" || model != "embedding-001" {
		t.Errorf("EmbeddingIdentity() = %s/%s, want google/embedding-001", provider, model)
	}

	got, err := reopened.Search(ctx, []float32{1, 0, 0}, 10)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Search() returned %d chunks, want 2", len(got))
	}
}

func TestLocalStoreSearchRanksBySimilarity(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Add(ctx, []schema.IndexedChunk{
		indexedChunk("far", "unrelated", "Article 99", []float32{0, 0, 1}),
		indexedChunk("near", "exact match", "Article 5", []float32{1, 0, 0}),
		indexedChunk("mid", "partial match", "Article 6", []float32{1, 1, 0}),
	})
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	got, err := s.Search(ctx, []float32{1, 0, 0}, 3)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	wantSections := []string{"Article 5", "Article 6", "Article 99"}
	for i, want := range wantSections {
		if got[i].Section != want {
			t.Errorf("result %d section = %q, want %q", i, got[i].Section, want)
		}
	}

	// Scores must be attached and non-increasing.
	for i := 1; i < len(got); i++ {
		if got[i].Score > got[i-1].Score {
			t.Errorf("results not sorted by score: %v then %v", got[i-1].Score, got[i].Score)
		}
	}
}

func TestLocalStoreSearchClampsTopK(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Add(ctx, []schema.IndexedChunk{
		indexedChunk("a", "one", "Article 1", []float32{1, 0}),
		indexedChunk("b", "two", "Article 2", []float32{0, 1}),
	})
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	got, err := s.Search(ctx, []float32{1, 0}, 100)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Search() returned %d chunks, want all 2", len(got))
	}
}

func TestLocalStoreSearchAppliesMetadataDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.Add(ctx, []schema.IndexedChunk{
		{
			Chunk:     schema.Chunk{Content: "orphan chunk"},
			ID:        "orphan",
			Embedding: []float32{1, 0},
		},
	})
	if err != nil {
		t.Fatalf("Add() error: %v", err)
	}

	got, err := s.Search(ctx, []float32{1, 0}, 1)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if got[0].Section != schema.UnknownSection {
		t.Errorf("Section = %q, want %q", got[0].Section, schema.UnknownSection)
	}
	if got[0].Source != schema.UnknownSource {
		t.Errorf("Source = %q, want %q", got[0].Source, schema.UnknownSource)
	}
}

func TestLocalStoreEmptySearch(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Search(context.Background(), []float32{1, 0}, 4)
	if err != nil {
		t.Fatalf("empty store search must not error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no results, got %d", len(got))
	}
}

func TestCosine(t *testing.T) {
	if got := cosine([]float32{1, 0}, []float32{1, 0}); got < 0.999 {
		t.Errorf("identical vectors should score ~1, got %v", got)
	}
	if got := cosine([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Errorf("orthogonal vectors should score 0, got %v", got)
	}
	if got := cosine([]float32{1, 0}, []float32{1, 0, 0}); got != 0 {
		t.Errorf("mismatched lengths should score 0, got %v", got)
	}
	if got := cosine(nil, nil); got != 0 {
		t.Errorf("empty vectors should score 0, got %v", got)
	}
}
