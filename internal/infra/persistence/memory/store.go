// Package memory keeps snapshots in process memory. It backs tests and the
// "memory" storage driver, where nothing outlives the process.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"propertybook/pkg/domain"
)

var _ domain.SnapshotStore = (*Store)(nil)

// Store holds the last saved snapshot.
type Store struct {
	mu    sync.RWMutex
	snap  domain.Snapshot
	saves int
}

// NewStore returns an empty store.
func NewStore() *Store { return &Store{} }

// Load returns a copy of the last saved snapshot.
func (s *Store) Load(context.Context) (domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneSnapshot(s.snap), nil
}

// Save replaces the stored snapshot with a copy of snapshot.
func (s *Store) Save(_ context.Context, snapshot domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = cloneSnapshot(snapshot)
	s.saves++
	return nil
}

// Saves counts successful saves.
func (s *Store) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

func (s *Store) Close() error { return nil }

func cloneAll[E interface{ Clone() E }](in []E) []E {
	if in == nil {
		return nil
	}
	out := make([]E, len(in))
	for i, e := range in {
		out[i] = e.Clone()
	}
	return out
}

func cloneSnapshot(s domain.Snapshot) domain.Snapshot {
	return domain.Snapshot{
		Persons:     cloneAll(s.Persons),
		Bidders:     cloneAll(s.Bidders),
		Sellers:     cloneAll(s.Sellers),
		Properties:  cloneAll(s.Properties),
		Bids:        slices.Clone(s.Bids),
		Meetings:    slices.Clone(s.Meetings),
		Preferences: maps.Clone(s.Preferences),
	}
}
