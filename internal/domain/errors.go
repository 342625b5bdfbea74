package domain

import "errors"

var (
	// ErrEmbeddingUnavailable marks failures of the embedding backend
	// itself (unreachable, model missing). Fatal for the whole run.
	ErrEmbeddingUnavailable = errors.New("embedding backend unavailable")

	// ErrVectorShape is returned when the embedding backend breaks its
	// fixed-dimensionality contract.
	ErrVectorShape = errors.New("embedding vector shape mismatch")

	// ErrMissingContent marks a feed entry that has neither summary nor
	// description. Recovered per entry, never fatal.
	ErrMissingContent = errors.New("entry has no summary or description")
)
