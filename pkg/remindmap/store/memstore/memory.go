package memstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/theokkk4/remindmap/pkg/remindmap/internalerr"
	"github.com/theokkk4/remindmap/pkg/remindmap/item"
	"github.com/theokkk4/remindmap/pkg/remindmap/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu    sync.RWMutex
	order []string
	items map[string]item.Item
}

var _ store.Store = (*Store)(nil)

// New creates a new in-memory store.
func New() *Store {
	return &Store{items: make(map[string]item.Item)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// UpsertItem inserts or replaces an item by id.
func (s *Store) UpsertItem(ctx context.Context, it item.Item) error {
	if err := it.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[it.ID]; !ok {
		s.order = append(s.order, it.ID)
	}
	s.items[it.ID] = copyItem(it)
	return nil
}

// GetItem returns an item by id.
func (s *Store) GetItem(ctx context.Context, id string) (item.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	it, ok := s.items[id]
	if !ok {
		return item.Item{}, fmt.Errorf("item %q: %w", id, internalerr.ErrNotFound)
	}
	return copyItem(it), nil
}

// ListItems returns every item in insertion order.
func (s *Store) ListItems(ctx context.Context) ([]item.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]item.Item, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, copyItem(s.items[id]))
	}
	return out, nil
}

// DeleteItem removes an item by id.
func (s *Store) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return fmt.Errorf("item %q: %w", id, internalerr.ErrNotFound)
	}
	delete(s.items, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count returns the number of stored items.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items), nil
}

// copyItem detaches the due date pointer from the caller's value.
func copyItem(it item.Item) item.Item {
	if it.DueDate != nil {
		due := *it.DueDate
		it.DueDate = &due
	}
	return it
}
