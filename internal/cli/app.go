package cli

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/snipdex/internal/config"
	"github.com/kailas-cloud/snipdex/internal/corpus"
	"github.com/kailas-cloud/snipdex/internal/db"
	dbRedis "github.com/kailas-cloud/snipdex/internal/db/redis"
	"github.com/kailas-cloud/snipdex/internal/domain"
	"github.com/kailas-cloud/snipdex/internal/metrics"
	"github.com/kailas-cloud/snipdex/internal/usecase/retriever"
	openaivec "github.com/kailas-cloud/snipdex/internal/vectorizer/openai"
	"github.com/kailas-cloud/snipdex/internal/vectorizer/tfidf"
	"github.com/kailas-cloud/snipdex/internal/vectorizer/veccache"
)

// app holds everything a command needs after wiring: the shared engine
// handle plus the optional dense-strategy dependencies for health checks
// and shutdown.
type app struct {
	index *retriever.Handle
	store db.Store
	vec   domain.Vectorizer
}

func (a *app) close() {
	if a.store != nil {
		a.store.Close()
	}
}

// newApp is the composition root: corpus + vectorizer (+ cache) behind a
// guarded one-time-initialization handle. Nothing expensive happens here;
// indexing runs on the handle's first Get.
func newApp(cfg config.Config, logger *zap.Logger) (*app, error) {
	vec, store, err := buildVectorizer(cfg, logger)
	if err != nil {
		return nil, err
	}

	name := cfg.Corpus.CollectionName
	path := cfg.Corpus.Path

	handle := retriever.NewHandle(func(ctx context.Context) (*retriever.Service, error) {
		snippets, err := corpus.Load(path)
		if err != nil {
			return nil, err
		}
		return retriever.New(ctx, name, vec, snippets, logger)
	})

	return &app{index: handle, store: store, vec: vec}, nil
}

// buildVectorizer assembles the configured strategy. For the dense strategy
// the chain is OpenAI -> Cached; the sparse strategy needs no dependencies.
func buildVectorizer(cfg config.Config, logger *zap.Logger) (domain.Vectorizer, db.Store, error) {
	switch cfg.Vectorizer.Strategy {
	case config.StrategyTFIDF:
		return tfidf.New(), nil, nil

	case config.StrategyOpenAI:
		metrics.RegisterEmbeddingMetrics()

		base := openaivec.New(&openaivec.Config{
			APIKey:     cfg.Vectorizer.APIKey,
			BaseURL:    cfg.Vectorizer.BaseURL,
			Model:      cfg.Vectorizer.Model,
			Dimensions: cfg.Vectorizer.Dimensions,
			Provider:   cfg.Vectorizer.Provider,
			Logger:     logger,
		})
		logger.Info("dense vectorizer created",
			zap.String("provider", cfg.Vectorizer.Provider),
			zap.String("model", cfg.Vectorizer.Model),
			zap.Int("dimensions", cfg.Vectorizer.Dimensions),
		)

		if !cfg.Cache.Enabled {
			return base, nil, nil
		}

		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Cache.Addrs,
			Password: cfg.Cache.Password,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("create cache store: %w", err)
		}

		readiness := time.Duration(cfg.Cache.ReadinessTimeoutSec) * time.Second
		if err := store.WaitForReady(context.Background(), readiness); err != nil {
			store.Close()
			return nil, nil, fmt.Errorf("cache store not ready: %w", err)
		}

		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		cached := veccache.New(base, cfg.Vectorizer.Model, store, ttl, metrics.EmbeddingCacheTotal, logger)
		return cached, store, nil

	default:
		return nil, nil, fmt.Errorf("unknown vectorizer strategy %q", cfg.Vectorizer.Strategy)
	}
}

// vectorizerChecker returns the health-check view of the vectorizer, nil for
// strategies without a remote backend.
func (a *app) vectorizerChecker() domain.HealthChecker {
	if hc, ok := a.vec.(domain.HealthChecker); ok {
		return hc
	}
	return nil
}
