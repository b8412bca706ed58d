// Package health coordinates readiness and dependency checks.
package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates the index is built and all dependencies respond.
	Healthy Status = "healthy"
	// Degraded indicates the index is usable but a dependency is failing.
	Degraded Status = "degraded"
	// Initializing indicates the index is not built yet.
	Initializing Status = "initializing"
)

// CheckResult represents an individual component check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks. Checks never trigger re-indexing.
type Service struct {
	index      IndexReader
	cache      CachePinger
	vectorizer VectorizerChecker
}

// New creates a Service. cache and vectorizer can be nil.
func New(index IndexReader, cache CachePinger, vectorizer VectorizerChecker) *Service {
	return &Service{index: index, cache: cache, vectorizer: vectorizer}
}

// Check runs health checks against all components. An unbuilt index makes
// the whole report Initializing; dependency failures degrade it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	indexReady := s.index.Ready()
	if indexReady {
		checks["index"] = CheckOK
	} else {
		checks["index"] = CheckError
	}

	if s.cache != nil {
		if err := s.cache.Ping(ctx); err != nil {
			checks["cache"] = CheckError
		} else {
			checks["cache"] = CheckOK
		}
	}

	if s.vectorizer != nil {
		if err := s.vectorizer.HealthCheck(ctx); err != nil {
			checks["vectorizer"] = CheckError
		} else {
			checks["vectorizer"] = CheckOK
		}
	}

	if !indexReady {
		return Report{Status: Initializing, Checks: checks}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}
	return Report{Status: status, Checks: checks}
}
