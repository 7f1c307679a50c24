// Package prefs persists user preferences as key-value records. The storage
// backend is an injected interface so filter logic never touches the disk
// directly.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/projects42/projects42-cli/internal/query"
)

// FiltersKey is the fixed storage key for the saved filter selections.
const FiltersKey = "projectFilters"

// Store is a process-wide key-value persistence interface.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Clear(key string) error
}

// FileStore keeps each key as a JSON file in a directory.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

func (s *FileStore) Set(key string, value []byte) error {
	return os.WriteFile(s.path(key), value, 0644)
}

func (s *FileStore) Clear(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	values map[string][]byte
}

func NewMemStore() *MemStore {
	return &MemStore{values: map[string][]byte{}}
}

func (s *MemStore) Get(key string) ([]byte, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *MemStore) Set(key string, value []byte) error {
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemStore) Clear(key string) error {
	delete(s.values, key)
	return nil
}

// LoadFilters reads the saved filter state. Missing or corrupt data yields
// the built-in defaults without error: stale preferences must never block
// the listing.
func LoadFilters(store Store) query.FilterState {
	data, ok := store.Get(FiltersKey)
	if !ok {
		return query.DefaultFilters()
	}

	var f query.FilterState
	if err := json.Unmarshal(data, &f); err != nil {
		return query.DefaultFilters()
	}
	if f.Languages == nil {
		f.Languages = []string{}
	}

	return f
}

// SaveFilters writes the filter state through to the store.
func SaveFilters(store Store, f query.FilterState) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return store.Set(FiltersKey, data)
}
