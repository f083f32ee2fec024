package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/kinetree/pkg/domain"
	"github.com/aretw0/kinetree/pkg/model"
)

// Store implements ports.ModelStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]model.Description
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]model.Description),
	}
}

// Save persists a deep copy of the description.
func (s *Store) Save(ctx context.Context, d model.Description) error {
	if d.Name == "" {
		return fmt.Errorf("cannot save model without a name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[d.Name] = d.Clone()
	return nil
}

// Load retrieves a copy so callers can't mutate the stored description.
func (s *Store) Load(ctx context.Context, name string) (model.Description, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.data[name]
	if !ok {
		return model.Description{}, fmt.Errorf("%w: %q", domain.ErrModelNotFound, name)
	}
	return d.Clone(), nil
}

// Delete removes the description.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns stored model names, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
