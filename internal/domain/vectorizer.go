package domain

import "context"

// Vectorizer is the shared text vectorization contract between layers. The
// corpus-statistics strategy and the pretrained embedding strategy are
// interchangeable behind it, selected at configuration time.
type Vectorizer interface {
	// Fit prepares the vector space from the full corpus. Strategies without
	// a corpus-dependent fit step treat this as a no-op.
	Fit(ctx context.Context, texts []string) error

	// Transform vectorizes text through the fitted space. Corpus-fitted
	// strategies return ErrIndexNotReady when called before Fit.
	Transform(ctx context.Context, text string) ([]float32, error)

	// Dimensions reports the vector space dimensionality. Zero before Fit
	// for corpus-fitted strategies.
	Dimensions() int
}

// HealthChecker verifies vectorizer backend availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
