// Package session remembers the last viewpoint between runs in a small
// key/value store.
package session

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Store is a string key/value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Flush() error
}

// MemoryStore keeps values for the life of the process.
type MemoryStore map[string]string

func (m MemoryStore) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MemoryStore) Set(key, value string) { m[key] = value }
func (m MemoryStore) Flush() error          { return nil }

// FileStore is a Store persisted as a flat TOML table.
type FileStore struct {
	path   string
	values map[string]string
	dirty  bool
}

// Open loads the store at path. A missing file yields an empty store that
// is created on the first Flush.
func Open(path string) (*FileStore, error) {
	s := NewFileStore(path)
	if _, err := toml.DecodeFile(path, &s.values); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading session %s: %w", path, err)
	}
	return s, nil
}

// NewFileStore returns an empty store that replaces whatever is at path on
// the first Flush.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, values: map[string]string{}}
}

func (s *FileStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) {
	if old, ok := s.values[key]; ok && old == value {
		return
	}
	s.values[key] = value
	s.dirty = true
}

// Flush writes the store if anything changed since it was loaded.
func (s *FileStore) Flush() error {
	if !s.dirty {
		return nil
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(s.values); err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("writing session %s: %w", s.path, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing session %s: %w", s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("writing session %s: %w", s.path, err)
	}
	s.dirty = false
	return nil
}
