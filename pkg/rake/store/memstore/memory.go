package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/cognicore/rake/pkg/rake/internalerr"
	"github.com/cognicore/rake/pkg/rake/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu    sync.RWMutex
	lists map[string]list
	now   func() time.Time
}

type list struct {
	tokens    []string
	updatedAt time.Time
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		lists: make(map[string]list),
		now:   time.Now,
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// Stoplist returns a copy of the named list.
func (s *Store) Stoplist(ctx context.Context, name string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.lists[name]
	if !ok {
		return nil, fmt.Errorf("stoplist %q: %w", name, internalerr.ErrNotFound)
	}
	out := make([]string, len(l.tokens))
	copy(out, l.tokens)
	return out, nil
}

// UpsertStoplist replaces the named list.
func (s *Store) UpsertStoplist(ctx context.Context, name string, tokens []string) error {
	if name == "" {
		return fmt.Errorf("stoplist name is required: %w", internalerr.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.lists[name] = list{
		tokens:    store.Normalize(tokens),
		updatedAt: s.now().UTC(),
	}
	return nil
}

// Stoplists describes every list, ordered by name.
func (s *Store) Stoplists(ctx context.Context) ([]store.StoplistInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.StoplistInfo, 0, len(s.lists))
	for name, l := range s.lists {
		out = append(out, store.StoplistInfo{
			Name:      name,
			Count:     len(l.tokens),
			UpdatedAt: l.updatedAt,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}
