package schema

// Default metadata values applied at the document store boundary when a
// stored chunk is missing its locator fields. Consumers can rely on these
// fields always being populated.
const (
	UnknownSection = "Unknown Section"
	UnknownSource  = "Unknown Source"
)

// Chunk is a unit of retrievable regulation text. Chunks are created once
// by the offline indexer and are read-only at query time.
type Chunk struct {
	// Content is the chunk's text.
	Content string `json:"content"`

	// Section is a human-readable locator within the regulation,
	// such as "Article 5".
	Section string `json:"section"`

	// Source identifies the originating document.
	Source string `json:"source"`

	// ChunkID is the chunk's stable position within its source.
	// It is unique per source.
	ChunkID int `json:"chunk_id"`

	// Score is the similarity score assigned by the store during
	// retrieval. It is zero for chunks that never went through a search.
	Score float32 `json:"score,omitempty"`
}

// IndexedChunk is a chunk together with its embedding vector, as persisted
// by the offline indexer. The embedding never leaves the store layer.
type IndexedChunk struct {
	Chunk
	ID        string    `json:"id"`
	Embedding []float32 `json:"embedding"`
}

// Prompt is a two-role structured request for the language model. The
// system instruction is fixed; user data only ever appears in the user turn.
type Prompt struct {
	// System is the fixed behavioural instruction.
	System string

	// User carries the formatted context and the question.
	User string
}

// Answer pairs a generated response with the chunks that grounded it.
// The chunks are exactly the ones whose text was placed in the prompt
// context, in the same order, so citations always match what the model saw.
type Answer struct {
	Text    string  `json:"answer"`
	Sources []Chunk `json:"sources"`
}
