package retriever

import "context"

// Vectorizer maps text to a fixed-length vector. Fit prepares the vector
// space from the full corpus; Transform must go through the same fitted
// space for documents and queries alike.
type Vectorizer interface {
	Fit(ctx context.Context, texts []string) error
	Transform(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}
