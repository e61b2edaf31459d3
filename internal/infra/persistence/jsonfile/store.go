// Package jsonfile stores snapshots as one indented JSON document, replaced
// atomically on every save.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"propertybook/pkg/domain"
)

var _ domain.SnapshotStore = (*Store)(nil)

// Store reads and writes a single JSON file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore returns a store for path. The file is created on first save.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("jsonfile: path required")
	}
	return &Store{path: path}, nil
}

// Load decodes the file. A missing file yields an empty snapshot.
func (s *Store) Load(context.Context) (domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Snapshot{}, nil
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return snap, nil
}

// Save writes to a temp file in the same directory and renames it over the
// previous document.
func (s *Store) Save(_ context.Context, snapshot domain.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *Store) Close() error { return nil }

// Path returns the document location.
func (s *Store) Path() string { return s.path }
