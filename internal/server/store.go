package server

import (
	"sync"

	"shoplist/internal/shared"
)

// Store persists the shopping list. Implementations keep insertion order.
type Store interface {
	ListItems() ([]shared.Item, error)
	AddItem(item shared.Item) error
	// UpdateItem applies in to the item with the given id and returns the
	// result, or ErrNotFound.
	UpdateItem(id string, in shared.ItemInput) (*shared.Item, error)
	DeleteItem(id string) error
}

// MemoryStore keeps items in process memory only.
type MemoryStore struct {
	mu    sync.Mutex
	items []shared.Item
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: []shared.Item{}}
}

func (s *MemoryStore) ListItems() ([]shared.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]shared.Item, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemoryStore) AddItem(item shared.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, item)
	return nil
}

func (s *MemoryStore) UpdateItem(id string, in shared.ItemInput) (*shared.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.items, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	s.items[i] = s.items[i].Merge(in)
	updated := s.items[i]
	return &updated, nil
}

func (s *MemoryStore) DeleteItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := indexOf(s.items, id)
	if i < 0 {
		return ErrNotFound
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return nil
}

func indexOf(items []shared.Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
