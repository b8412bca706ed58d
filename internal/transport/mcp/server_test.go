package mcp

import (
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/snipdex/internal/domain"
	"github.com/kailas-cloud/snipdex/internal/usecase/retriever"
	"github.com/kailas-cloud/snipdex/internal/vectorizer/tfidf"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	handle := retriever.NewHandle(func(ctx context.Context) (*retriever.Service, error) {
		return retriever.New(ctx, "tech_snippets", tfidf.New(), []domain.Snippet{
			{ID: "1", Title: "Machine Learning", Content: "Machine learning is a subset of artificial intelligence."},
			{ID: "2", Title: "Databases", Content: "Databases store structured data and answer queries."},
		}, nil)
	})
	return NewServer(handle, 3, 10, zap.NewNop())
}

func TestHandleRagQuery(t *testing.T) {
	s := newTestServer(t)

	res, out, err := s.handleRagQuery(context.Background(), nil, ragQueryInput{
		Question: "What is machine learning?",
		NResults: 1,
	})
	if err != nil {
		t.Fatalf("handleRagQuery: %v", err)
	}
	if out.TotalResults != 1 || len(out.Results) != 1 {
		t.Fatalf("unexpected output: %+v", out)
	}
	if out.Results[0].ID != "1" {
		t.Errorf("top result id = %s", out.Results[0].ID)
	}
	if out.Question != "What is machine learning?" {
		t.Errorf("question echoed as %q", out.Question)
	}
	if res == nil || len(res.Content) == 0 {
		t.Fatal("expected text content in the tool result")
	}
}

func TestHandleRagQuery_DefaultNResults(t *testing.T) {
	s := newTestServer(t)

	_, out, err := s.handleRagQuery(context.Background(), nil, ragQueryInput{Question: "databases"})
	if err != nil {
		t.Fatalf("handleRagQuery: %v", err)
	}
	// Default is 3, clamped to the 2-document corpus.
	if out.TotalResults != 2 {
		t.Errorf("total results = %d, want 2", out.TotalResults)
	}
}

func TestHandleRagQuery_BoundsNResults(t *testing.T) {
	s := newTestServer(t)

	for _, n := range []int{-1, 11} {
		_, _, err := s.handleRagQuery(context.Background(), nil, ragQueryInput{
			Question: "databases",
			NResults: n,
		})
		if err == nil {
			t.Fatalf("n_results=%d must be rejected", n)
		}
		if !strings.Contains(err.Error(), "between 1 and 10") {
			t.Errorf("n_results=%d error = %v", n, err)
		}
	}
}

func TestHandleRagQuery_EmptyQuestion(t *testing.T) {
	s := newTestServer(t)

	_, _, err := s.handleRagQuery(context.Background(), nil, ragQueryInput{Question: "   "})
	if err == nil {
		t.Fatal("expected error for blank question")
	}
}

func TestHandleRagQuery_BuildsIndexLazily(t *testing.T) {
	var builds int
	handle := retriever.NewHandle(func(ctx context.Context) (*retriever.Service, error) {
		builds++
		return retriever.New(ctx, "tech_snippets", tfidf.New(), []domain.Snippet{
			{ID: "1", Title: "ML", Content: "Machine learning."},
		}, nil)
	})
	s := NewServer(handle, 3, 10, zap.NewNop())

	if builds != 0 {
		t.Fatal("index must not be built at server construction")
	}
	for i := 0; i < 2; i++ {
		if _, _, err := s.handleRagQuery(context.Background(), nil, ragQueryInput{Question: "machine learning"}); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if builds != 1 {
		t.Fatalf("index built %d times, want 1", builds)
	}
}
