package discovery

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemStore is an in-memory Store. Keys are backslash-separated paths as in
// the registry. Safe for concurrent use.
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]map[string]string
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{entries: map[string]map[string]string{}}
}

// SetKey registers a key with the given values, replacing any previous
// values. A nil values map registers an empty key.
func (s *MemStore) SetKey(path string, values map[string]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	s.entries[path] = copied
}

// DeleteKey removes a key and all keys below it.
func (s *MemStore) DeleteKey(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.entries {
		if k == path || strings.HasPrefix(k, path+`\`) {
			delete(s.entries, k)
		}
	}
}

// ListChildren returns the sorted names of the direct children of key.
func (s *MemStore) ListChildren(key string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := key + `\`
	seen := map[string]bool{}
	exists := false
	if _, ok := s.entries[key]; ok {
		exists = true
	}
	for path := range s.entries {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		exists = true
		rest := path[len(prefix):]
		if i := strings.IndexByte(rest, '\\'); i >= 0 {
			rest = rest[:i]
		}
		seen[rest] = true
	}
	if !exists {
		return nil, fmt.Errorf("configuration key %q not found", key)
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

// GetValue returns the string value called name under key.
func (s *MemStore) GetValue(key, name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	values, ok := s.entries[key]
	if !ok {
		return "", fmt.Errorf("configuration key %q not found", key)
	}
	v, ok := values[name]
	if !ok {
		return "", fmt.Errorf("value %q not found under %q", name, key)
	}
	return v, nil
}
