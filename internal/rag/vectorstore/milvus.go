package vectorstore

import (
	"context"
	"fmt"

	"github.com/milvus-io/milvus-sdk-go/v2/client"
	"github.com/milvus-io/milvus-sdk-go/v2/entity"

	"aiact-tutor/internal/config"
	"aiact-tutor/internal/rag/interfaces"
	"aiact-tutor/internal/rag/schema"
	"aiact-tutor/pkg/logger"
)

// MilvusStore is a document store backed by a Milvus collection. It stores
// the chunk text and its locator metadata alongside the embedding so a
// search needs no second lookup.
type MilvusStore struct {
	log        *logger.Logger
	client     client.Client
	collection string
	dim        int
}

// OpenMilvus connects to Milvus and returns a store bound to the
// configured collection.
func OpenMilvus(ctx context.Context, cfg config.MilvusConfig, log *logger.Logger) (*MilvusStore, error) {
	c, err := client.NewClient(ctx, client.Config{Address: cfg.Address})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to milvus at %s: %w", cfg.Address, err)
	}

	return &MilvusStore{
		log:        log,
		client:     c,
		collection: cfg.Collection,
		dim:        cfg.Dim,
	}, nil
}

// Close releases the Milvus connection.
func (s *MilvusStore) Close() {
	if s.client != nil {
		s.client.Close()
	}
}

// EnsureCollection creates the collection and its vector index if they do
// not exist yet, and loads the collection for searching. The offline
// indexer calls this before the first insert.
func (s *MilvusStore) EnsureCollection(ctx context.Context, dim int) error {
	exists, err := s.client.HasCollection(ctx, s.collection)
	if err != nil {
		return fmt.Errorf("failed to check collection %s: %w", s.collection, err)
	}

	if !exists {
		collSchema := entity.NewSchema().
			WithName(s.collection).
			WithDescription("indexed regulation chunks").
			WithField(entity.NewField().WithName(FieldID).WithDataType(entity.FieldTypeVarChar).WithMaxLength(64).WithIsPrimaryKey(true)).
			WithField(entity.NewField().WithName(FieldEmbedding).WithDataType(entity.FieldTypeFloatVector).WithDim(int64(dim))).
			WithField(entity.NewField().WithName(FieldContent).WithDataType(entity.FieldTypeVarChar).WithMaxLength(65535)).
			WithField(entity.NewField().WithName(FieldSection).WithDataType(entity.FieldTypeVarChar).WithMaxLength(256)).
			WithField(entity.NewField().WithName(FieldSource).WithDataType(entity.FieldTypeVarChar).WithMaxLength(256)).
			WithField(entity.NewField().WithName(FieldChunkID).WithDataType(entity.FieldTypeInt64))

		if err := s.client.CreateCollection(ctx, collSchema, entity.DefaultShardNumber); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", s.collection, err)
		}

		idx, err := entity.NewIndexIvfFlat(entity.L2, 128)
		if err != nil {
			return fmt.Errorf("failed to build index definition: %w", err)
		}
		if err := s.client.CreateIndex(ctx, s.collection, FieldEmbedding, idx, false); err != nil {
			return fmt.Errorf("failed to create index on %s: %w", FieldEmbedding, err)
		}
		s.log.WithField("collection", s.collection).Info("created milvus collection")
	}

	if err := s.client.LoadCollection(ctx, s.collection, false); err != nil {
		return fmt.Errorf("failed to load collection %s: %w", s.collection, err)
	}
	s.dim = dim
	return nil
}

// Search performs a vector similarity search and maps the result columns
// back into chunks, most similar first.
func (s *MilvusStore) Search(ctx context.Context, vector []float32, topK int) ([]schema.Chunk, error) {
	if err := s.client.LoadCollection(ctx, s.collection, false); err != nil {
		return nil, fmt.Errorf("failed to load collection %s: %w", s.collection, err)
	}

	sp, _ := entity.NewIndexIvfFlatSearchParam(10)
	outputFields := []string{FieldContent, FieldSection, FieldSource, FieldChunkID}

	searchResults, err := s.client.Search(
		ctx, s.collection, []string{}, "", outputFields,
		[]entity.Vector{entity.FloatVector(vector)},
		FieldEmbedding, entity.L2, topK, sp,
	)
	if err != nil {
		return nil, fmt.Errorf("milvus search failed: %w", err)
	}

	var chunks []schema.Chunk
	for _, res := range searchResults {
		findColumn := func(name string) entity.Column {
			for _, field := range res.Fields {
				if field.Name() == name {
					return field
				}
			}
			return nil
		}

		contentCol, ok := findColumn(FieldContent).(*entity.ColumnVarChar)
		if !ok {
			s.log.Warn("search result is missing the content field, skipping")
			continue
		}

		var sectionData, sourceData []string
		if col, ok := findColumn(FieldSection).(*entity.ColumnVarChar); ok {
			sectionData = col.Data()
		}
		if col, ok := findColumn(FieldSource).(*entity.ColumnVarChar); ok {
			sourceData = col.Data()
		}
		var chunkIDData []int64
		if col, ok := findColumn(FieldChunkID).(*entity.ColumnInt64); ok {
			chunkIDData = col.Data()
		}

		contentData := contentCol.Data()
		for i := 0; i < res.ResultCount && i < len(contentData); i++ {
			c := schema.Chunk{Content: contentData[i]}
			if i < len(sectionData) {
				c.Section = sectionData[i]
			}
			if i < len(sourceData) {
				c.Source = sourceData[i]
			}
			if i < len(chunkIDData) {
				c.ChunkID = int(chunkIDData[i])
			}
			c = normalize(c)
			if i < len(res.Scores) {
				c.Score = res.Scores[i]
			}
			chunks = append(chunks, c)
		}
	}

	return chunks, nil
}

// Add inserts indexed chunks into the collection and flushes them so they
// are immediately searchable.
func (s *MilvusStore) Add(ctx context.Context, chunks []schema.IndexedChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	ids := make([]string, len(chunks))
	embeddings := make([][]float32, len(chunks))
	contents := make([]string, len(chunks))
	sections := make([]string, len(chunks))
	sources := make([]string, len(chunks))
	chunkIDs := make([]int64, len(chunks))

	dim := s.dim
	for i, c := range chunks {
		ids[i] = c.ID
		embeddings[i] = c.Embedding
		contents[i] = c.Content
		sections[i] = c.Section
		sources[i] = c.Source
		chunkIDs[i] = int64(c.ChunkID)
		if len(c.Embedding) > dim {
			dim = len(c.Embedding)
		}
	}

	idCol := entity.NewColumnVarChar(FieldID, ids)
	embeddingCol := entity.NewColumnFloatVector(FieldEmbedding, dim, embeddings)
	contentCol := entity.NewColumnVarChar(FieldContent, contents)
	sectionCol := entity.NewColumnVarChar(FieldSection, sections)
	sourceCol := entity.NewColumnVarChar(FieldSource, sources)
	chunkIDCol := entity.NewColumnInt64(FieldChunkID, chunkIDs)

	s.log.WithField("count", len(chunks)).Info("inserting chunks into milvus")
	_, err := s.client.Insert(ctx, s.collection, "" /* default partition */, idCol, embeddingCol, contentCol, sectionCol, sourceCol, chunkIDCol)
	if err != nil {
		return fmt.Errorf("failed to insert chunks into milvus: %w", err)
	}

	if err := s.client.Flush(ctx, s.collection, false); err != nil {
		return fmt.Errorf("failed to flush collection %s: %w", s.collection, err)
	}
	return nil
}

var _ interfaces.Store = (*MilvusStore)(nil)
