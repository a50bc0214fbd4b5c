package pipeline

import (
	"fmt"
	"strings"

	"aiact-tutor/internal/rag/schema"
)

// FormatContext renders retrieved chunks into the context block of the
// prompt. It is a pure function: given the same chunks in the same order
// it always produces the same string, which keeps tests stable and prompt
// caches effective. The 1-based document numbers follow the input order
// and are what the model cites, so the caller must pass the chunks in
// retrieval order.
func FormatContext(chunks []schema.Chunk) string {
	if len(chunks) == 0 {
		return ""
	}

	blocks := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		blocks = append(blocks, fmt.Sprintf("[Document %d - %s]\n%s\n", i+1, chunk.Section, chunk.Content))
	}

	return strings.Join(blocks, "\n")
}
