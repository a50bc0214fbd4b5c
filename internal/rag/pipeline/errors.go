package pipeline

import "errors"

// Failure kinds surfaced by the pipeline. Callers distinguish them with
// errors.Is; the wrapped cause carries the detail. An empty retrieval is
// deliberately not represented here: finding zero chunks is a valid state
// and the pipeline still generates an answer from empty context.
var (
	// ErrStoreUnavailable reports that the document store could not be
	// read. Fatal for the call; never retried internally.
	ErrStoreUnavailable = errors.New("document store unavailable")

	// ErrEmbeddingFailed reports that the query could not be embedded.
	ErrEmbeddingFailed = errors.New("query embedding failed")

	// ErrGenerationFailed reports that the generation service rejected
	// the request (auth, quota, malformed input). Surfaced verbatim.
	ErrGenerationFailed = errors.New("answer generation failed")

	// ErrGenerationTimeout reports that the generation service did not
	// respond within the configured bound. Callers may retry this one.
	ErrGenerationTimeout = errors.New("answer generation timed out")
)
