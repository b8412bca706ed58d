// Package tfidf implements the corpus-statistics vectorization strategy:
// term-frequency/inverse-document-frequency weighting over a vocabulary
// built at fit time.
package tfidf

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/kailas-cloud/snipdex/internal/domain"
)

// Vectorizer builds a vocabulary and IDF table from the corpus and maps text
// to L2-normalized TF-IDF vectors. The vector space is fixed after Fit: no
// online vocabulary growth, and query tokens outside the fit vocabulary
// contribute zero weight.
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
	stopwords  map[string]struct{}
	fitted     bool
}

var _ domain.Vectorizer = (*Vectorizer)(nil)

// New creates an unfitted TF-IDF vectorizer with English stopwords.
func New() *Vectorizer {
	return &Vectorizer{stopwords: englishStopwords()}
}

// Fit builds the vocabulary and IDF values from the corpus texts. The
// vocabulary is sorted so vector layout is deterministic across runs.
func (v *Vectorizer) Fit(_ context.Context, texts []string) error {
	if len(texts) == 0 {
		return fmt.Errorf("%w: empty corpus", domain.ErrCorpusLoad)
	}

	df := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]struct{})
		for _, tok := range v.tokenize(text) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return fmt.Errorf("%w: no indexable tokens in corpus", domain.ErrCorpusLoad)
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(texts))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF, matches the scheme used at fit time forever after.
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	v.fitted = true
	return nil
}

// Transform maps text to a unit-norm TF-IDF vector in the fitted space.
// Out-of-vocabulary tokens are dropped; a query with no known tokens yields
// the zero vector.
func (v *Vectorizer) Transform(_ context.Context, text string) ([]float32, error) {
	if !v.fitted {
		return nil, domain.ErrIndexNotReady
	}

	tf := make(map[int]int)
	total := 0
	for _, tok := range v.tokenize(text) {
		if idx, ok := v.vocabulary[tok]; ok {
			tf[idx]++
			total++
		}
	}

	vec := make([]float64, len(v.idf))
	if total > 0 {
		for idx, count := range tf {
			vec[idx] = float64(count) / float64(total) * v.idf[idx]
		}
	}

	var norm float64
	for _, x := range vec {
		norm += x * x
	}
	norm = math.Sqrt(norm)

	out := make([]float32, len(vec))
	if norm > 0 {
		for i, x := range vec {
			out[i] = float32(x / norm)
		}
	}
	return out, nil
}

// Dimensions returns the vocabulary size, zero before Fit.
func (v *Vectorizer) Dimensions() int {
	return len(v.idf)
}

// tokenize lowercases the text, splits on non-alphanumeric runes, and drops
// stopwords and single-character tokens.
func (v *Vectorizer) tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() < 2 {
			current.Reset()
			return
		}
		tok := current.String()
		current.Reset()
		if _, stop := v.stopwords[tok]; stop {
			return
		}
		tokens = append(tokens, tok)
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}
