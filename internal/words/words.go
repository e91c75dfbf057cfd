// internal/words/words.go
//
// Word list management for the word-authority server.
//
// Responsibilities:
//   - Load word/definition pairs from a file (WORDS_FILE) or fall back to
//     the embedded assets/words.tsv.
//   - Group words by length and keep a lookup index for membership checks.
//   - Supply Random, Lookup, IsWord, ByLength, Lengths and Stats.
//
// Constraints:
//   • Words must be MinLength..MaxLength alphabetic letters (a–z).
//   • Lists are normalized to lowercase; the first definition wins on duplicates.

package words

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"

	"github.com/robalobadob/wordleplus/assets"
)

const (
	MinLength = 4
	MaxLength = 8
)

// ErrEmpty is returned by Load when no usable words were found.
var ErrEmpty = errors.New("words: list is empty")

// Entry is a dictionary word with its definition.
type Entry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// List is an immutable, length-grouped word list. Safe for concurrent reads.
type List struct {
	byLength map[int][]Entry
	index    map[string]Entry
}

// Load reads the list at path, or the embedded default when path is empty.
func Load(path string) (*List, error) {
	var (
		lines []assets.Line
		err   error
	)
	if path == "" {
		lines, err = assets.WordList()
	} else {
		lines, err = readWordFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("load words: %w", err)
	}
	l := New(lines)
	if len(l.index) == 0 {
		return nil, ErrEmpty
	}
	return l, nil
}

// readWordFile loads "word<TAB>definition" lines from a file on disk.
func readWordFile(path string) ([]assets.Line, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ParseLines(f)
}

// New builds a List from raw lines, dropping anything that is not a valid word.
func New(lines []assets.Line) *List {
	l := &List{
		byLength: make(map[int][]Entry),
		index:    make(map[string]Entry, len(lines)),
	}
	for _, ln := range lines {
		w := strings.TrimSpace(strings.ToLower(ln.Word))
		if !Valid(w) {
			continue
		}
		if _, dup := l.index[w]; dup {
			continue
		}
		e := Entry{Word: w, Definition: ln.Definition}
		l.index[w] = e
		l.byLength[len(w)] = append(l.byLength[len(w)], e)
	}
	return l
}

// Valid reports whether w is a lowercase a–z word of a supported length.
func Valid(w string) bool {
	return ValidLength(len(w)) && isAlpha(w)
}

// ValidLength reports whether n is a supported word length.
func ValidLength(n int) bool {
	return n >= MinLength && n <= MaxLength
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// Random returns a cryptographically random entry of the given length.
// ok is false when no word of that length is loaded.
func (l *List) Random(length int) (Entry, bool) {
	list := l.byLength[length]
	if len(list) == 0 {
		return Entry{}, false
	}
	nBig, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
	if err != nil {
		return list[0], true
	}
	return list[nBig.Int64()], true
}

// Lookup returns the entry for w, case-insensitively.
func (l *List) Lookup(w string) (Entry, bool) {
	e, ok := l.index[strings.ToLower(w)]
	return e, ok
}

// IsWord reports whether w is a known word.
func (l *List) IsWord(w string) bool {
	_, ok := l.Lookup(w)
	return ok
}

// ByLength returns the entries of the given length in load order.
// The returned slice must not be modified.
func (l *List) ByLength(length int) []Entry {
	return l.byLength[length]
}

// Lengths returns the word lengths that have at least one entry, ascending.
func (l *List) Lengths() []int {
	out := make([]int, 0, len(l.byLength))
	for n := range l.byLength {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Stats returns the number of loaded words per length.
func (l *List) Stats() map[int]int {
	out := make(map[int]int, len(l.byLength))
	for n, list := range l.byLength {
		out[n] = len(list)
	}
	return out
}
