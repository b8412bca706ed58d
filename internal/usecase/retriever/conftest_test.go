package retriever

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/kailas-cloud/snipdex/internal/domain"
)

// stubVectorizer returns canned vectors by exact text lookup. Texts missing
// from the table map to the zero vector.
type stubVectorizer struct {
	dims    int
	vectors map[string][]float32

	fitCalls       atomic.Int32
	transformCalls atomic.Int32
	fitErr         error
	transformErr   error
}

func (m *stubVectorizer) Fit(_ context.Context, _ []string) error {
	m.fitCalls.Add(1)
	return m.fitErr
}

func (m *stubVectorizer) Transform(_ context.Context, text string) ([]float32, error) {
	m.transformCalls.Add(1)
	if m.transformErr != nil {
		return nil, m.transformErr
	}
	if v, ok := m.vectors[text]; ok {
		return v, nil
	}
	return make([]float32, m.dims), nil
}

func (m *stubVectorizer) Dimensions() int { return m.dims }

var testSnippets = []domain.Snippet{
	{ID: "1", Title: "Machine Learning", Content: "Machine learning is a subset of AI."},
	{ID: "2", Title: "Databases", Content: "Databases store structured data."},
}

// geometricVectorizer places the two test documents on orthogonal axes so
// ranking outcomes are exact.
func geometricVectorizer() *stubVectorizer {
	return &stubVectorizer{
		dims: 2,
		vectors: map[string][]float32{
			testSnippets[0].SearchableText(): {1, 0},
			testSnippets[1].SearchableText(): {0, 1},
			"What is machine learning?":      {0.9, 0.1},
			"tie":                            {1, 1},
		},
	}
}

func newTestService(t *testing.T, vec Vectorizer) *Service {
	t.Helper()
	svc, err := New(context.Background(), "test_snippets", vec, testSnippets, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return svc
}
