// Package filesystem implements a storage.Backend that keeps one JSON file per document
// under <root>/<collection>/<key>.json. It is the default for the "development" environment.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mmynk/nutritrack/internal/storage"
)

const ext = ".json"

// Store is a directory-backed document store.
type Store struct {
	root string
	mu   sync.RWMutex
}

// Compile-time check that Store implements storage.Backend
var _ storage.Backend = (*Store)(nil)

// New creates the root directory if needed and returns a store rooted there.
func New(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	slog.Debug("Filesystem store opened", "root", root)
	return &Store{root: root}, nil
}

func (s *Store) path(collection, key string) (string, error) {
	for _, part := range []string{collection, key} {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return "", fmt.Errorf("invalid document path segment %q", part)
		}
	}
	return filepath.Join(s.root, collection, key+ext), nil
}

func (s *Store) Get(_ context.Context, collection, key string) ([]byte, error) {
	p, err := s.path(collection, key)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

// Put writes to a temporary file and renames it over the target.
func (s *Store) Put(_ context.Context, collection, key string, doc []byte) error {
	p, err := s.path(collection, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create collection directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(doc); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to move document into place: %w", err)
	}
	return nil
}

func (s *Store) Delete(_ context.Context, collection, key string) error {
	p, err := s.path(collection, key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (s *Store) List(_ context.Context, collection string) ([][]byte, error) {
	if collection == "" || strings.ContainsAny(collection, `/\`) || collection == ".." {
		return nil, fmt.Errorf("invalid collection %q", collection)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	dir := filepath.Join(s.root, collection)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return [][]byte{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list collection: %w", err)
	}

	out := make([][]byte, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ext {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		out = append(out, data)
	}
	return out, nil
}

// WithinTransaction runs fn directly. Each Put is atomic on its own; groups of writes are not.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return storage.Passthrough.WithinTransaction(ctx, fn)
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
