package deck

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// CardMap holds the symbol-to-resource table: canonical card key to the
// URL a reply should point at. Keys absent from the table are treated as
// unmapped and skipped during intake until the file gains an entry.
//
// The map is reloadable so serve mode can pick up edits to the backing
// file without a restart.
type CardMap struct {
	path string

	mu      sync.RWMutex
	entries map[string]string
}

// LoadCardMap reads the JSON table at path.
func LoadCardMap(path string) (*CardMap, error) {
	m := &CardMap{path: path}
	if err := m.Reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// Reload re-reads the backing file, replacing the table on success and
// leaving the previous table in place on failure.
func (m *CardMap) Reload() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("read card map: %w", err)
	}
	entries := map[string]string{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse card map %s: %w", m.path, err)
	}
	m.mu.Lock()
	m.entries = entries
	m.mu.Unlock()
	return nil
}

// Lookup returns the resource URL for a card key, if one is mapped.
func (m *CardMap) Lookup(key Key) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	url, ok := m.entries[key]
	return url, ok
}

// Path returns the backing file path, used by the serve-mode watcher.
func (m *CardMap) Path() string {
	return m.path
}

// Len reports the number of mapped cards.
func (m *CardMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
