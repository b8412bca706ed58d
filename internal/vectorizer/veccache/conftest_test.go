package veccache

import (
	"context"
	"time"

	"github.com/kailas-cloud/snipdex/internal/db"
)

// memStore is an in-memory stand-in for the redis key-value store.
type memStore struct {
	data    map[string][]byte
	lastTTL time.Duration
	getErr  error
	setErr  error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, &db.Error{Op: db.OpGet, Err: db.ErrKeyNotFound}
	}
	return v, nil
}

func (m *memStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	m.lastTTL = ttl
	return nil
}

// countingVectorizer tracks Transform calls behind a fixed output.
type countingVectorizer struct {
	out        []float32
	err        error
	transforms int
	fits       int
	healthErr  error
}

func (c *countingVectorizer) Fit(context.Context, []string) error {
	c.fits++
	return nil
}

func (c *countingVectorizer) Transform(context.Context, string) ([]float32, error) {
	c.transforms++
	if c.err != nil {
		return nil, c.err
	}
	return c.out, nil
}

func (c *countingVectorizer) Dimensions() int { return len(c.out) }

func (c *countingVectorizer) HealthCheck(context.Context) error { return c.healthErr }
