// Package prefs provides the preference model for a desktop application's
// settings screen: a live key-value preference store, a pane-grouped catalog
// of preference descriptors, and an augmenter that synthesizes descriptors
// for stored keys no static panel claims.
//
// Features:
//   - Minimal read interface over any live preference store
//   - Concurrency-safe in-memory store with TOML persistence
//   - Ordered pane/group/descriptor catalog with in-place group mutation
//   - Dynamic augmentation of a designated group from unclaimed store keys
//   - Declarative binding of preference values onto typed structs
//   - Observability hooks for tracing and metrics
//
// Example:
//
//	store := prefs.NewMemStore()
//	store.Set("preferences.show_other", "true")
//	store.Set("editor.wrapLines", "true")
//
//	catalog := prefs.NewCatalog()
//	group := catalog.AddPane("Advanced").AddGroup("Other")
//	group.Add(prefs.Descriptor{
//	    Key:     "preferences.show_other",
//	    Control: prefs.Control{Kind: prefs.ControlToggle},
//	})
//
//	aug := prefs.NewAugmenter(catalog, store, "preferences.show_other", nil)
//	aug.Augment() // adds a toggle for editor.wrapLines
//	defer aug.Reset()
package prefs

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// Store is the read interface over a live preference store. Values are raw,
// untyped strings; the store is the source of truth for both static and
// dynamically discovered preferences.
type Store interface {
	// Get returns the raw value for key, or the empty string when absent.
	Get(key string) string

	// Has reports whether key is present in the store.
	Has(key string) bool

	// Keys returns all stored keys.
	Keys() []string
}

// MemStore is a concurrency-safe in-memory Store with mutation and TOML
// persistence. It is the reference implementation used by tests and the CLI.
type MemStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemStore creates an empty store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

// Get returns the raw value for key, or the empty string when absent.
func (s *MemStore) Get(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key]
}

// Has reports whether key is present in the store.
func (s *MemStore) Has(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

// Keys returns all stored keys in sorted order.
func (s *MemStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Set stores a raw value for key.
func (s *MemStore) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Delete removes key from the store.
func (s *MemStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

// Len returns the number of stored preferences.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}

// Snapshot returns a copy of the store's contents.
func (s *MemStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// LoadTOML reads a preferences file into a new store. Nested tables are
// flattened with dots, so both `"editor.fontSize" = "12"` and an
// `[editor]` table with `fontSize = "12"` produce the key
// "editor.fontSize". Non-string scalar values are rendered to strings.
func LoadTOML(path string) (*MemStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences file: %v", err)
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse preferences file %s: %v", path, err)
	}

	store := NewMemStore()
	flatten("", raw, store)
	return store, nil
}

func flatten(prefix string, value interface{}, store *MemStore) {
	switch v := value.(type) {
	case map[string]interface{}:
		for key, sub := range v {
			name := key
			if prefix != "" {
				name = prefix + "." + key
			}
			flatten(name, sub, store)
		}
	default:
		if prefix != "" {
			store.Set(prefix, fmt.Sprintf("%v", v))
		}
	}
}

// SaveTOML writes the store's contents to a preferences file, one quoted
// key per line in sorted order.
func (s *MemStore) SaveTOML(path string) error {
	snapshot := s.Snapshot()

	keys := make([]string, 0, len(snapshot))
	for key := range snapshot {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buffer strings.Builder
	for _, key := range keys {
		buffer.WriteString(fmt.Sprintf("%q = %q\n", key, snapshot[key]))
	}

	if err := os.WriteFile(path, []byte(buffer.String()), 0644); err != nil {
		return fmt.Errorf("failed to write preferences file: %v", err)
	}
	return nil
}

// isBoolLiteral reports whether value is a strict boolean literal. Only the
// exact strings "true" and "false" qualify; the permissive forms accepted
// by strconv.ParseBool ("1", "t", "TRUE", ...) do not.
func isBoolLiteral(value string) bool {
	return value == "true" || value == "false"
}
