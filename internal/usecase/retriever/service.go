// Package retriever implements the retrieval engine: it owns the vectorized
// corpus matrix and answers top-k similarity queries over it.
package retriever

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/snipdex/internal/domain"
	"github.com/kailas-cloud/snipdex/internal/metrics"
)

// Service answers top-k similarity queries over an in-memory document
// matrix. All state is built once by New and read-only afterward, so
// concurrent queries run without locking.
type Service struct {
	name     string
	vec      Vectorizer
	snippets []domain.Snippet
	texts    []string
	matrix   [][]float32
	logger   *zap.Logger
}

// New indexes the corpus: fits the vectorizer against every searchable text
// and transforms each document into a matrix row. Any failure aborts
// construction entirely; no half-indexed Service is ever returned.
func New(
	ctx context.Context,
	name string,
	vec Vectorizer,
	snippets []domain.Snippet,
	logger *zap.Logger,
) (*Service, error) {
	if len(snippets) == 0 {
		return nil, fmt.Errorf("%w: corpus is empty", domain.ErrCorpusLoad)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	texts := make([]string, len(snippets))
	for i, s := range snippets {
		texts[i] = s.SearchableText()
	}

	start := time.Now()
	if err := vec.Fit(ctx, texts); err != nil {
		return nil, fmt.Errorf("fit vectorizer: %w", err)
	}

	matrix := make([][]float32, len(texts))
	for i, text := range texts {
		row, err := vec.Transform(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("vectorize document %d (%s): %w", i, snippets[i].ID, err)
		}
		matrix[i] = row
	}

	logger.Info("corpus indexed",
		zap.String("collection", name),
		zap.Int("documents", len(texts)),
		zap.Int("dimensions", vec.Dimensions()),
		zap.Duration("took", time.Since(start)),
	)

	return &Service{
		name:     name,
		vec:      vec,
		snippets: snippets,
		texts:    texts,
		matrix:   matrix,
		logger:   logger,
	}, nil
}

// Query vectorizes text through the fitted space, scores it against every
// matrix row with cosine similarity, and returns the k best matches ordered
// by descending score. Equal scores keep corpus insertion order. k is
// clamped to the corpus size.
func (s *Service) Query(ctx context.Context, text string, k int) ([]domain.QueryResult, error) {
	if strings.TrimSpace(text) == "" {
		metrics.QueriesTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: query text is empty", domain.ErrInvalidQuery)
	}
	if k < 1 {
		metrics.QueriesTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: k must be at least 1, got %d", domain.ErrInvalidQuery, k)
	}
	if k > len(s.snippets) {
		k = len(s.snippets)
	}

	start := time.Now()

	queryVec, err := s.vec.Transform(ctx, text)
	if err != nil {
		metrics.QueriesTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	scores := make([]float64, len(s.matrix))
	for i, row := range s.matrix {
		scores[i] = cosine(queryVec, row)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	// Stable sort on descending score: ties fall back to corpus order.
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	results := make([]domain.QueryResult, 0, k)
	for _, idx := range order[:k] {
		score := scores[idx]
		results = append(results, domain.QueryResult{
			ID:              s.snippets[idx].ID,
			Title:           s.snippets[idx].Title,
			Content:         s.texts[idx],
			SimilarityScore: score,
			Distance:        1 - score,
		})
	}

	metrics.QueriesTotal.WithLabelValues("ok").Inc()
	metrics.QueryDuration.Observe(time.Since(start).Seconds())

	return results, nil
}

// Snapshot returns the full corpus with each entry's content replaced by its
// canonical searchable text. Order matches the corpus.
func (s *Service) Snapshot() []domain.Snippet {
	out := make([]domain.Snippet, len(s.snippets))
	for i, sn := range s.snippets {
		out[i] = domain.Snippet{ID: sn.ID, Title: sn.Title, Content: s.texts[i]}
	}
	return out
}

// Info reports collection name, corpus size, and vector dimensionality.
func (s *Service) Info() domain.CollectionInfo {
	return domain.CollectionInfo{
		CollectionName:   s.name,
		TotalDocuments:   len(s.snippets),
		VectorDimensions: s.vec.Dimensions(),
	}
}

// Size returns the number of indexed documents.
func (s *Service) Size() int {
	return len(s.snippets)
}

// cosine computes the cosine similarity between two vectors, defined as 0
// when either vector has zero norm. Accumulates in float64 for stability.
func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
