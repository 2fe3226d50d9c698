package rag

import "errors"

// Sentinel errors forming the pipeline's failure taxonomy. Callers
// distinguish validation errors from downstream-capability failures with
// errors.Is; none of these are retried internally.
var (
	// ErrInvalidQuery indicates an empty or whitespace-only query,
	// rejected before any external call.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrEmbeddingFailure indicates the embedding capability failed or
	// timed out. No session state is mutated.
	ErrEmbeddingFailure = errors.New("embedding failure")

	// ErrGenerationFailure indicates the generation capability failed,
	// timed out, or produced no usable output. No session state is
	// mutated: a failed call never leaves an orphan user turn.
	ErrGenerationFailure = errors.New("generation failure")
)
