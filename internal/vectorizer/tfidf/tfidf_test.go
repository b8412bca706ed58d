package tfidf

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/kailas-cloud/snipdex/internal/domain"
)

var testCorpus = []string{
	"ML: Machine learning is a subset of AI.",
	"DB: Databases store structured data.",
}

func fitted(t *testing.T) *Vectorizer {
	t.Helper()
	v := New()
	if err := v.Fit(context.Background(), testCorpus); err != nil {
		t.Fatalf("Fit: %v", err)
	}
	return v
}

func norm(vec []float32) float64 {
	var sum float64
	for _, x := range vec {
		sum += float64(x) * float64(x)
	}
	return math.Sqrt(sum)
}

func TestTransform_BeforeFit(t *testing.T) {
	v := New()
	_, err := v.Transform(context.Background(), "machine learning")
	if !errors.Is(err, domain.ErrIndexNotReady) {
		t.Fatalf("expected ErrIndexNotReady, got %v", err)
	}
}

func TestFit_EmptyCorpus(t *testing.T) {
	v := New()
	if err := v.Fit(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty corpus")
	}
}

func TestFit_SetsDimensions(t *testing.T) {
	v := New()
	if v.Dimensions() != 0 {
		t.Fatalf("expected 0 dimensions before fit, got %d", v.Dimensions())
	}

	v = fitted(t)
	if v.Dimensions() == 0 {
		t.Fatal("expected non-zero dimensions after fit")
	}
}

func TestTransform_UnitNorm(t *testing.T) {
	v := fitted(t)

	vec, err := v.Transform(context.Background(), "machine learning databases")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if len(vec) != v.Dimensions() {
		t.Fatalf("expected %d components, got %d", v.Dimensions(), len(vec))
	}
	if got := norm(vec); math.Abs(got-1) > 1e-6 {
		t.Errorf("expected unit norm, got %f", got)
	}
}

func TestTransform_OutOfVocabulary(t *testing.T) {
	v := fitted(t)

	vec, err := v.Transform(context.Background(), "quantum entanglement blockchain")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	for i, x := range vec {
		if x != 0 {
			t.Fatalf("expected zero vector for OOV query, component %d = %f", i, x)
		}
	}
}

func TestTransform_StopwordsExcluded(t *testing.T) {
	v := fitted(t)

	// Only stopwords and single-char tokens: nothing reaches the vocabulary.
	vec, err := v.Transform(context.Background(), "the is of a")
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got := norm(vec); got != 0 {
		t.Errorf("expected zero vector for stopword-only query, norm %f", got)
	}
}

func TestTransform_Deterministic(t *testing.T) {
	// Two independently fitted vectorizers must agree on vector layout.
	a := fitted(t)
	b := fitted(t)

	va, _ := a.Transform(context.Background(), "machine learning data")
	vb, _ := b.Transform(context.Background(), "machine learning data")

	if len(va) != len(vb) {
		t.Fatalf("dimension mismatch: %d vs %d", len(va), len(vb))
	}
	for i := range va {
		if va[i] != vb[i] {
			t.Fatalf("component %d differs: %f vs %f", i, va[i], vb[i])
		}
	}
}

func TestTransform_CaseNormalized(t *testing.T) {
	v := fitted(t)

	lower, _ := v.Transform(context.Background(), "machine learning")
	upper, _ := v.Transform(context.Background(), "MACHINE LEARNING")

	for i := range lower {
		if lower[i] != upper[i] {
			t.Fatalf("case normalization broken at component %d: %f vs %f", i, lower[i], upper[i])
		}
	}
	if norm(lower) == 0 {
		t.Fatal("expected non-zero vector for in-vocabulary query")
	}
}
