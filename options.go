package snipdex

import (
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/snipdex/internal/domain"
)

// Option configures the Client.
type Option func(*clientConfig)

type clientConfig struct {
	corpusPath     string
	snippets       []domain.Snippet
	collectionName string
	openai         *OpenAIConfig
	cache          *CacheConfig
	logger         *zap.Logger
}

// OpenAIConfig selects the dense vectorization strategy over an
// OpenAI-compatible embeddings API.
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	Provider   string
	Model      string
	Dimensions int
}

// CacheConfig enables the Redis-backed embedding cache for the dense
// strategy.
type CacheConfig struct {
	Addrs    []string
	Password string
	TTL      time.Duration
}

// WithCorpusFile loads the corpus from a JSON file.
func WithCorpusFile(path string) Option {
	return func(c *clientConfig) { c.corpusPath = path }
}

// WithSnippets supplies the corpus directly. Takes precedence over
// WithCorpusFile.
func WithSnippets(snippets []Snippet) Option {
	return func(c *clientConfig) { c.snippets = snippets }
}

// WithCollectionName sets the collection name reported by Info.
func WithCollectionName(name string) Option {
	return func(c *clientConfig) { c.collectionName = name }
}

// WithOpenAI selects the dense strategy. Without it the Client uses the
// sparse TF-IDF strategy, which needs no external services.
func WithOpenAI(cfg OpenAIConfig) Option {
	return func(c *clientConfig) { c.openai = &cfg }
}

// WithRedisCache caches dense embeddings in Redis. Requires WithOpenAI.
func WithRedisCache(cfg CacheConfig) Option {
	return func(c *clientConfig) { c.cache = &cfg }
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *clientConfig) { c.logger = logger }
}
