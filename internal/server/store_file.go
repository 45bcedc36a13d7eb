package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"shoplist/internal/shared"
)

// FileStore keeps the whole list as one pretty-printed JSON array. Every
// operation reloads the file; nothing is cached between calls.
type FileStore struct {
	// mu serializes read-modify-write cycles. ReadAll and WriteAll do not
	// take it.
	mu     sync.Mutex
	path   string
	logger *log.Logger
}

func NewFileStore(path string, logger *log.Logger) *FileStore {
	if logger == nil {
		logger = log.Default()
	}
	return &FileStore{path: path, logger: logger}
}

func (s *FileStore) Path() string { return s.path }

// Init creates the data directory, and the file holding an empty array if
// it does not exist yet.
func (s *FileStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir %s: %w", dir, err)
	}
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", s.path, err)
	}
	return s.WriteAll([]shared.Item{})
}

// ReadAll returns the stored list. Read failures and a file that is not a
// JSON array are logged and reported as an empty list. Entries are decoded
// one at a time; an entry that is not an object is logged and skipped
// without affecting the rest.
func (s *FileStore) ReadAll() []shared.Item {
	b, err := os.ReadFile(s.path)
	if err != nil {
		s.logger.Printf("store: read %s: %v", s.path, err)
		return []shared.Item{}
	}
	var raw []json.RawMessage
	if err := shared.DecodeJSON(b, &raw); err != nil {
		s.logger.Printf("store: parse %s: %v", s.path, err)
		return []shared.Item{}
	}
	items := make([]shared.Item, 0, len(raw))
	for i, entry := range raw {
		if bytes.Equal(bytes.TrimSpace(entry), []byte("null")) {
			s.logger.Printf("store: skip entry %d in %s: null", i, s.path)
			continue
		}
		var it shared.Item
		if err := json.Unmarshal(entry, &it); err != nil {
			s.logger.Printf("store: skip entry %d in %s: %v", i, s.path, err)
			continue
		}
		items = append(items, it)
	}
	return items
}

// WriteAll replaces the file contents with items. The new contents are
// written to a temp file first and renamed over the old one.
func (s *FileStore) WriteAll(items []shared.Item) error {
	if items == nil {
		items = []shared.Item{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".shopping-list-*.tmp")
	if err != nil {
		return fmt.Errorf("write shopping list: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write shopping list: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write shopping list: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write shopping list: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("write shopping list: %w", err)
	}
	return nil
}

func (s *FileStore) ListItems() ([]shared.Item, error) {
	return s.ReadAll(), nil
}

func (s *FileStore) AddItem(item shared.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.ReadAll()
	items = append(items, item)
	return s.WriteAll(items)
}

func (s *FileStore) UpdateItem(id string, in shared.ItemInput) (*shared.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.ReadAll()
	i := indexOf(items, id)
	if i < 0 {
		return nil, ErrNotFound
	}
	items[i] = items[i].Merge(in)
	if err := s.WriteAll(items); err != nil {
		return nil, err
	}
	updated := items[i]
	return &updated, nil
}

func (s *FileStore) DeleteItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.ReadAll()
	kept := make([]shared.Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(items) {
		return ErrNotFound
	}
	return s.WriteAll(kept)
}
