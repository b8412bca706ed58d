package health

import "context"

// IndexReader reports index readiness and size without triggering a build.
type IndexReader interface {
	Ready() bool
}

// CachePinger checks embedding cache connectivity.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// VectorizerChecker verifies vectorizer backend availability.
type VectorizerChecker interface {
	HealthCheck(ctx context.Context) error
}
