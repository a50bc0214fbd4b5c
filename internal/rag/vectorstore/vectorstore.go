package vectorstore

import (
	"context"
	"fmt"

	"aiact-tutor/internal/config"
	"aiact-tutor/internal/rag/interfaces"
	"aiact-tutor/internal/rag/schema"
	"aiact-tutor/pkg/logger"
)

// Field names of the stored chunk metadata. Both backends persist and
// return exactly these fields.
const (
	FieldID        = "id"
	FieldEmbedding = "embedding"
	FieldContent   = "content"
	FieldSection   = "section"
	FieldSource    = "source"
	FieldChunkID   = "chunk_id"
)

// Open constructs the document store selected by the configuration.
// A store that cannot be opened (missing index file, unreachable Milvus)
// is reported as an error here, once, rather than on every search.
func Open(ctx context.Context, cfg config.StoreConfig, log *logger.Logger) (interfaces.Store, error) {
	switch cfg.Backend {
	case "local":
		return OpenLocal(cfg.Path, log)
	case "milvus":
		return OpenMilvus(ctx, cfg.Milvus, log)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Backend)
	}
}

// normalize applies the documented defaults for missing locator metadata.
// Defaults live here, at the store boundary, so no consumer ever needs to
// guard against empty fields.
func normalize(c schema.Chunk) schema.Chunk {
	if c.Section == "" {
		c.Section = schema.UnknownSection
	}
	if c.Source == "" {
		c.Source = schema.UnknownSource
	}
	return c
}
