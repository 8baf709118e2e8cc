// ABOUTME: Local key/value preference store persisted as a JSON file
// ABOUTME: Typed State[T] wraps one key with a default and explicit Save

package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a flat map of JSON values persisted to a single file.
// A nil *Store is not valid; use Open or NewMemory.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]json.RawMessage
}

// Open loads the store at path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, values: make(map[string]json.RawMessage)}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// NewMemory returns a store that never touches disk.
func NewMemory() *Store {
	return &Store{values: make(map[string]json.RawMessage)}
}

// Get decodes the value under key into out. It reports whether the key existed.
func (s *Store) Get(key string, out any) (bool, error) {
	s.mu.Lock()
	raw, ok := s.values[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, fmt.Errorf("decoding %q: %w", key, err)
	}
	return true, nil
}

// GetString returns the string under key, or "" when absent or not a string.
func (s *Store) GetString(key string) string {
	var v string
	if _, err := s.Get(key, &v); err != nil {
		return ""
	}
	return v
}

// Set stores value under key and persists the store.
func (s *Store) Set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = raw
	return s.flushLocked()
}

// Delete removes key and persists the store.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flushLocked()
}

// Has reports whether key is set.
func (s *Store) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.values[key]
	return ok
}

// flushLocked writes the store atomically via a temp file. Must hold mu.
func (s *Store) flushLocked() error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating store dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing store: %w", err)
	}
	return nil
}

// State binds one key of a Store to a typed value with a default.
type State[T any] struct {
	store *Store
	key   string
	Value T
}

// NewState loads key from store, falling back to def when missing or unreadable.
func NewState[T any](store *Store, key string, def T) *State[T] {
	st := &State[T]{store: store, key: key, Value: def}
	var v T
	if ok, err := store.Get(key, &v); ok && err == nil {
		st.Value = v
	}
	return st
}

// Save sets Value and persists it.
func (st *State[T]) Save(v T) error {
	st.Value = v
	return st.store.Set(st.key, v)
}

// Clear removes the key; Value keeps its last in-memory contents.
func (st *State[T]) Clear() error {
	return st.store.Delete(st.key)
}

// Key returns the storage key.
func (st *State[T]) Key() string { return st.key }
