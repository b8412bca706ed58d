package domain

import "errors"

var (
	// ErrCorpusLoad signals a missing or malformed corpus source. Fatal at
	// startup: no partial index is ever published.
	ErrCorpusLoad = errors.New("corpus load failed")
	// ErrNotReady signals a query attempted before indexing completed.
	// Recoverable: the caller retries after readiness.
	ErrNotReady = errors.New("index not ready")
	// ErrInvalidQuery signals empty query text or n_results out of bounds.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrIndexNotReady signals a transform attempted before fit. This is a
	// construction-order bug, not a retryable condition.
	ErrIndexNotReady = errors.New("vectorizer not fitted")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
)
