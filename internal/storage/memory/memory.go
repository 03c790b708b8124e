// Package memory implements an in-process storage.Backend.
// It is the default backend for tests and the "test" environment.
package memory

import (
	"context"
	"sync"

	"github.com/mmynk/nutritrack/internal/storage"
)

// Store keeps documents in nested maps guarded by a RWMutex.
type Store struct {
	mu          sync.RWMutex
	collections map[string]map[string][]byte
}

// Compile-time check that Store implements storage.Backend
var _ storage.Backend = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{collections: make(map[string]map[string][]byte)}
}

func (s *Store) Get(_ context.Context, collection, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clone(doc), nil
}

func (s *Store) Put(_ context.Context, collection, key string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		c = make(map[string][]byte)
		s.collections[collection] = c
	}
	c[key] = clone(doc)
	return nil
}

func (s *Store) Delete(_ context.Context, collection, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collections[collection][key]; !ok {
		return storage.ErrNotFound
	}
	delete(s.collections[collection], key)
	return nil
}

func (s *Store) List(_ context.Context, collection string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c := s.collections[collection]
	out := make([][]byte, 0, len(c))
	for _, doc := range c {
		out = append(out, clone(doc))
	}
	return out, nil
}

// WithinTransaction runs fn directly; the memory store has no rollback.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return storage.Passthrough.WithinTransaction(ctx, fn)
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
