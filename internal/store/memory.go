// internal/store/memory.go
//
// In-memory implementation of Store.
// Used in tests and when no database is configured; state is lost on restart.

package store

import (
	"context"
	"sync"
)

// memory is a map-based Store implementation.
type memory struct {
	mu     sync.RWMutex      // guards values
	values map[string]string // keyed by TargetKey/DefinitionKey/GuessesKey
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{values: make(map[string]string)}
}

// Save writes all keys of r.WordLength under one lock.
func (m *memory) Save(ctx context.Context, r Record) error {
	kv, err := encode(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range kv {
		m.values[k] = v
	}
	return nil
}

// Load returns a copy of the stored record for wordLength.
func (m *memory) Load(ctx context.Context, wordLength int) (Record, error) {
	m.mu.RLock()
	kv := map[string]string{}
	for _, k := range []string{TargetKey(wordLength), DefinitionKey(wordLength), GuessesKey(wordLength)} {
		if v, ok := m.values[k]; ok {
			kv[k] = v
		}
	}
	m.mu.RUnlock()
	return decode(wordLength, kv)
}
