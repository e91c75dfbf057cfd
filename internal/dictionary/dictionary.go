// Package dictionary stores the words a player chose to keep after a game.
//
// Entries are listed by word ascending; ties keep creation order.
// Duplicates are allowed, so entries are addressed by ID.
package dictionary

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned by Delete for an unknown ID.
var ErrNotFound = errors.New("learned word not found")

// ErrEmptyWord is returned by Create when word is blank.
var ErrEmptyWord = errors.New("word is required")

// SavedWord is one learned word.
type SavedWord struct {
	ID         string    `json:"id"`
	Word       string    `json:"word"`
	Definition string    `json:"definition"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Store is the learned-words collection. A failed Create or Delete leaves
// the store unchanged.
type Store interface {
	Create(ctx context.Context, word, definition string) (SavedWord, error)
	List(ctx context.Context) ([]SavedWord, error)
	Delete(ctx context.Context, id string) error
}

// newSavedWord validates input and stamps a fresh ID.
func newSavedWord(word, definition string) (SavedWord, error) {
	word = strings.TrimSpace(word)
	if word == "" {
		return SavedWord{}, ErrEmptyWord
	}
	return SavedWord{
		ID:         uuid.New().String(),
		Word:       word,
		Definition: strings.TrimSpace(definition),
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// sortWords orders by word, then creation time, then ID.
func sortWords(ws []SavedWord) {
	sort.SliceStable(ws, func(i, j int) bool {
		a, b := ws[i], ws[j]
		if a.Word != b.Word {
			return a.Word < b.Word
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
