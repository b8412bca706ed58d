package retriever

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/kailas-cloud/snipdex/internal/domain"
)

// Handle shares one Service across transports with guarded one-time
// initialization: the expensive fit/embedding step runs at most once per
// process. The first caller triggers the build, concurrent callers block on
// the same build, and later callers reuse the ready instance.
type Handle struct {
	build func(ctx context.Context) (*Service, error)
	once  sync.Once
	svc   *Service
	err   error
	ready atomic.Bool
}

// NewHandle wraps a build function without invoking it.
func NewHandle(build func(ctx context.Context) (*Service, error)) *Handle {
	return &Handle{build: build}
}

// Get returns the shared Service, building it on the first call. A failed
// build is terminal: every subsequent Get returns the same error.
func (h *Handle) Get(ctx context.Context) (*Service, error) {
	h.once.Do(func() {
		h.svc, h.err = h.build(ctx)
		if h.err == nil {
			h.ready.Store(true)
		}
	})
	return h.svc, h.err
}

// Acquire returns the Service without triggering or waiting for a build.
// Returns ErrNotReady while indexing is pending or in flight.
func (h *Handle) Acquire() (*Service, error) {
	if !h.ready.Load() {
		return nil, domain.ErrNotReady
	}
	return h.svc, nil
}

// Ready reports whether the index is built.
func (h *Handle) Ready() bool {
	return h.ready.Load()
}

// Warm triggers the build in the background. Errors surface on the done
// channel exactly once.
func (h *Handle) Warm(ctx context.Context) <-chan error {
	done := make(chan error, 1)
	go func() {
		_, err := h.Get(ctx)
		done <- err
	}()
	return done
}
