package domain

// Snippet is a single corpus entry, externally supplied and immutable once
// loaded.
type Snippet struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// SearchableText returns the canonical text that gets vectorized and returned
// to callers: title and content joined with ": ". Scores depend on this exact
// concatenation.
func (s Snippet) SearchableText() string {
	return s.Title + ": " + s.Content
}

// QueryResult is one ranked match. Content carries the canonical searchable
// text, not the raw stored content field. Distance is derived from the score,
// never computed independently.
type QueryResult struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Content         string  `json:"content"`
	SimilarityScore float64 `json:"similarity_score"`
	Distance        float64 `json:"distance"`
}

// CollectionInfo is the introspection surface. Reading it never triggers
// re-indexing.
type CollectionInfo struct {
	CollectionName   string `json:"collection_name"`
	TotalDocuments   int    `json:"total_documents"`
	VectorDimensions int    `json:"vector_dimensions"`
}
