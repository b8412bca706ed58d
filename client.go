package snipdex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/snipdex/internal/corpus"
	"github.com/kailas-cloud/snipdex/internal/db"
	dbRedis "github.com/kailas-cloud/snipdex/internal/db/redis"
	"github.com/kailas-cloud/snipdex/internal/domain"
	"github.com/kailas-cloud/snipdex/internal/usecase/retriever"
	openaivec "github.com/kailas-cloud/snipdex/internal/vectorizer/openai"
	"github.com/kailas-cloud/snipdex/internal/vectorizer/tfidf"
	"github.com/kailas-cloud/snipdex/internal/vectorizer/veccache"
)

const defaultReadinessTimeout = 10 * time.Second

// Client is the snipdex SDK entry point. Construction indexes the corpus;
// the Client is read-only afterward and safe for concurrent use.
type Client struct {
	svc   *retriever.Service
	store db.Store
}

// New creates a Client and indexes the configured corpus. Any indexing
// failure aborts construction; no partially indexed Client is returned.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		collectionName: "snippets",
		logger:         zap.NewNop(),
	}
	for _, o := range opts {
		o(cfg)
	}

	if cfg.cache != nil && cfg.openai == nil {
		return nil, errors.New("snipdex: WithRedisCache requires WithOpenAI")
	}

	snippets := cfg.snippets
	if snippets == nil {
		if cfg.corpusPath == "" {
			return nil, errors.New("snipdex: corpus required (use WithCorpusFile or WithSnippets)")
		}
		loaded, err := corpus.Load(cfg.corpusPath)
		if err != nil {
			return nil, fmt.Errorf("snipdex: %w", err)
		}
		snippets = loaded
	}

	vec, store, err := buildVectorizer(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := retriever.New(ctx, cfg.collectionName, vec, snippets, cfg.logger)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("snipdex: index corpus: %w", err)
	}

	return &Client{svc: svc, store: store}, nil
}

func buildVectorizer(cfg *clientConfig) (domain.Vectorizer, db.Store, error) {
	if cfg.openai == nil {
		return tfidf.New(), nil, nil
	}

	base := openaivec.New(&openaivec.Config{
		APIKey:     cfg.openai.APIKey,
		BaseURL:    cfg.openai.BaseURL,
		Model:      cfg.openai.Model,
		Dimensions: cfg.openai.Dimensions,
		Provider:   cfg.openai.Provider,
		Logger:     cfg.logger,
	})
	if cfg.cache == nil {
		return base, nil, nil
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.cache.Addrs,
		Password: cfg.cache.Password,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("snipdex: create cache store: %w", err)
	}
	if err := store.WaitForReady(context.Background(), defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, nil, fmt.Errorf("snipdex: cache store not ready: %w", err)
	}

	cached := veccache.New(base, cfg.openai.Model, store, cfg.cache.TTL, nil, cfg.logger)
	return cached, store, nil
}

// Query returns the k most similar snippets, highest similarity first.
func (c *Client) Query(ctx context.Context, text string, k int) ([]QueryResult, error) {
	results, err := c.svc.Query(ctx, text, k)
	if err != nil {
		return nil, fmt.Errorf("snipdex: %w", err)
	}
	return results, nil
}

// Snapshot returns the corpus with each entry's content replaced by its
// canonical searchable text.
func (c *Client) Snapshot() []Snippet {
	return c.svc.Snapshot()
}

// Info reports collection name, corpus size, and vector dimensionality.
func (c *Client) Info() CollectionInfo {
	return c.svc.Info()
}

// Close releases the cache store connection, if any.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}
