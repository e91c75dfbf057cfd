package dictionary

import (
	"context"
	"sync"
)

type memory struct {
	mu    sync.RWMutex
	words map[string]SavedWord
}

// NewMemoryStore returns a Store that lives only as long as the process.
func NewMemoryStore() Store {
	return &memory{words: make(map[string]SavedWord)}
}

func (m *memory) Create(ctx context.Context, word, definition string) (SavedWord, error) {
	w, err := newSavedWord(word, definition)
	if err != nil {
		return SavedWord{}, err
	}
	m.mu.Lock()
	m.words[w.ID] = w
	m.mu.Unlock()
	return w, nil
}

func (m *memory) List(ctx context.Context) ([]SavedWord, error) {
	m.mu.RLock()
	out := make([]SavedWord, 0, len(m.words))
	for _, w := range m.words {
		out = append(out, w)
	}
	m.mu.RUnlock()
	sortWords(out)
	return out, nil
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.words[id]; !ok {
		return ErrNotFound
	}
	delete(m.words, id)
	return nil
}
