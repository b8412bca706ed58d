package snipdex

import "github.com/kailas-cloud/snipdex/internal/domain"

// Snippet is a single corpus entry.
type Snippet = domain.Snippet

// QueryResult is one ranked match.
type QueryResult = domain.QueryResult

// CollectionInfo describes the indexed collection.
type CollectionInfo = domain.CollectionInfo

// Sentinel errors surfaced by the SDK. Use errors.Is to match them.
var (
	ErrCorpusLoad   = domain.ErrCorpusLoad
	ErrInvalidQuery = domain.ErrInvalidQuery
)
