// internal/store/store.go
//
// Session persistence keyed by word length.
//
// Each word length owns three logical keys:
//   target<N>      → the secret word ("" when unconfigured)
//   definition<N>  → its definition
//   guesses<N>     → JSON array of guesses, chronological
//
// Missing keys read back as zero values, never as errors. Save overwrites
// all keys of one length together; there is no cross-length transaction.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// Record is the persisted state of one game session.
type Record struct {
	WordLength int
	Target     string
	Definition string
	Guesses    []string
}

// Store persists session records. Implementations are safe for concurrent use.
type Store interface {
	// Load returns the record for wordLength, or a zero record (with
	// WordLength set) when nothing was saved yet.
	Load(ctx context.Context, wordLength int) (Record, error)

	// Save overwrites the record for r.WordLength.
	Save(ctx context.Context, r Record) error
}

func TargetKey(wordLength int) string     { return "target" + strconv.Itoa(wordLength) }
func DefinitionKey(wordLength int) string { return "definition" + strconv.Itoa(wordLength) }
func GuessesKey(wordLength int) string    { return "guesses" + strconv.Itoa(wordLength) }

// encode flattens r into its key/value form.
func encode(r Record) (map[string]string, error) {
	guesses := r.Guesses
	if guesses == nil {
		guesses = []string{}
	}
	b, err := json.Marshal(guesses)
	if err != nil {
		return nil, fmt.Errorf("encode guesses: %w", err)
	}
	return map[string]string{
		TargetKey(r.WordLength):     r.Target,
		DefinitionKey(r.WordLength): r.Definition,
		GuessesKey(r.WordLength):    string(b),
	}, nil
}

// decode rebuilds a record from whatever keys are present in kv.
func decode(wordLength int, kv map[string]string) (Record, error) {
	r := Record{
		WordLength: wordLength,
		Target:     kv[TargetKey(wordLength)],
		Definition: kv[DefinitionKey(wordLength)],
		Guesses:    []string{},
	}
	if raw := kv[GuessesKey(wordLength)]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &r.Guesses); err != nil {
			return Record{WordLength: wordLength, Guesses: []string{}}, fmt.Errorf("decode guesses: %w", err)
		}
	}
	return r, nil
}
