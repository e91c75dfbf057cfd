// internal/game/session.go
//
// Game session state machine for one word length.
// Responsibilities:
//   - Restore target/guesses from the session store on construction.
//   - Start new games with a word fetched from the word authority.
//   - Check attempts against the authority (validity only, no mutation).
//   - Score guesses letter by letter and track won/lost.
//   - Persist state on explicit SaveCurrentState calls.
//
// States: unconfigured → in_progress → won | lost; StartNewGame re-enters
// in_progress from any state. Invalid guesses are silent no-ops.

package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordleplus/internal/authority"
	"github.com/robalobadob/wordleplus/internal/store"
)

// DefaultMaxAttempts is the number of guesses allowed per game.
const DefaultMaxAttempts = 6

// ErrSuperseded is returned by StartNewGame when a later StartNewGame call
// began before this one completed. The stale word is discarded.
var ErrSuperseded = errors.New("game: superseded by a newer game")

// Authority is the subset of the word-authority client a session needs.
type Authority interface {
	FetchNewWord(ctx context.Context, length int) (authority.Word, error)
	CheckWord(ctx context.Context, candidate string) (bool, error)
}

// Session is the mutable game state for one word length.
// Methods are safe to call from any goroutine, but callers should not
// overlap StartNewGame calls on one session.
type Session struct {
	authority   Authority
	store       store.Store
	wordLength  int
	maxAttempts int

	mu         sync.Mutex
	target     string
	definition string
	guesses    []string
	won        bool
	lost       bool
	generation uint64 // bumped by each StartNewGame
}

// Option configures a Session.
type Option func(*Session)

// WithMaxAttempts overrides DefaultMaxAttempts. Non-positive values are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// New restores the session for wordLength from st.
//
// A store read failure leaves the session unconfigured. The won flag is
// inferred from the last guess; the lost flag from the guess count.
func New(ctx context.Context, wordLength int, auth Authority, st store.Store, opts ...Option) *Session {
	s := &Session{
		authority:   auth,
		store:       st,
		wordLength:  wordLength,
		maxAttempts: DefaultMaxAttempts,
		guesses:     []string{},
	}
	for _, o := range opts {
		o(s)
	}

	rec, err := st.Load(ctx, wordLength)
	if err != nil {
		log.Warn().Err(err).Int("length", wordLength).Msg("load session, starting empty")
		return s
	}
	s.target = strings.ToLower(rec.Target)
	s.definition = rec.Definition
	for _, g := range rec.Guesses {
		s.guesses = append(s.guesses, strings.ToLower(g))
	}
	if n := len(s.guesses); n > 0 && s.target != "" && s.guesses[n-1] == s.target {
		s.won = true
	} else if s.target != "" && n >= s.maxAttempts {
		s.lost = true
	}
	return s
}

// WordLength returns the immutable word length of the session.
func (s *Session) WordLength() int { return s.wordLength }

// MaxAttempts returns the immutable guess limit.
func (s *Session) MaxAttempts() int { return s.maxAttempts }

// IsConfigured reports whether a target word is set.
func (s *Session) IsConfigured() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target != ""
}

// HasWon reports whether the last guess matched the target.
func (s *Session) HasWon() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.won
}

// HasLost reports whether all attempts were used without a win.
func (s *Session) HasLost() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lost
}

// Guesses returns a copy of the guesses so far.
func (s *Session) Guesses() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.guesses...)
}

// Status returns the lifecycle state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status()
}

func (s *Session) status() Status {
	switch {
	case s.target == "":
		return StatusUnconfigured
	case s.won:
		return StatusWon
	case s.lost:
		return StatusLost
	default:
		return StatusInProgress
	}
}

// Snapshot returns a copy of the observable state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		WordLength:  s.wordLength,
		MaxAttempts: s.maxAttempts,
		Target:      s.target,
		Definition:  s.definition,
		Guesses:     append([]string{}, s.guesses...),
		HasWon:      s.won,
		HasLost:     s.lost,
		Status:      s.status(),
	}
}

// StartNewGame fetches a new target word and resets the session.
//
// On failure the previous state is left untouched and the authority error
// is returned. The new state is not persisted; call SaveCurrentState.
func (s *Session) StartNewGame(ctx context.Context) error {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.mu.Unlock()

	w, err := s.authority.FetchNewWord(ctx, s.wordLength)
	if err != nil {
		return err
	}
	target := strings.ToLower(strings.TrimSpace(w.Word))
	if utf8.RuneCountInString(target) != s.wordLength {
		return &authority.FetchError{
			Op:   "new_word",
			Kind: authority.ErrDecoding,
			Err:  fmt.Errorf("got %d-letter word, want %d", utf8.RuneCountInString(target), s.wordLength),
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.generation {
		log.Debug().Int("length", s.wordLength).Msg("discarding stale new word")
		return ErrSuperseded
	}
	s.target = target
	s.definition = w.Definition
	s.guesses = []string{}
	s.won = false
	s.lost = false
	log.Debug().Int("length", s.wordLength).Msg("new game started")
	return nil
}

// CheckAttempt asks the authority whether attempt is a dictionary word.
// It never mutates the session. A not-found word is (false, nil).
func (s *Session) CheckAttempt(ctx context.Context, attempt string) (bool, error) {
	return s.authority.CheckWord(ctx, strings.ToLower(attempt))
}

// EvaluateGuess scores guess against the current target. See Evaluate.
func (s *Session) EvaluateGuess(guess string) []LetterStatus {
	s.mu.Lock()
	target := s.target
	s.mu.Unlock()
	return Evaluate(target, strings.ToLower(guess))
}

// MakeGuess records guess and updates the won/lost flags.
//
// It is a no-op when the session is unconfigured, the guess length
// differs from the target's, or the game is already over. It does not persist.
func (s *Session) MakeGuess(guess string) {
	guess = strings.ToLower(guess)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.target == "" || s.won || s.lost || utf8.RuneCountInString(guess) != utf8.RuneCountInString(s.target) {
		return
	}
	s.guesses = append(s.guesses, guess)
	if guess == s.target {
		s.won = true
	} else if len(s.guesses) == s.maxAttempts {
		s.lost = true
	}
}

// SaveCurrentState writes target, definition and guesses to the store,
// keyed by the session's word length.
func (s *Session) SaveCurrentState(ctx context.Context) error {
	s.mu.Lock()
	rec := store.Record{
		WordLength: s.wordLength,
		Target:     s.target,
		Definition: s.definition,
		Guesses:    append([]string{}, s.guesses...),
	}
	s.mu.Unlock()

	if err := s.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("save session %d: %w", s.wordLength, err)
	}
	return nil
}

// Evaluate scores guess against target position by position.
//
// A letter is Correct when it matches the target at the same index,
// Present when the target contains it anywhere, Absent otherwise.
// Present is not count-limited: a letter that occurs once in the target
// marks every misplaced copy in the guess as Present. Positions past the
// end of target are always Absent.
func Evaluate(target, guess string) []LetterStatus {
	t := []rune(target)
	g := []rune(guess)
	out := make([]LetterStatus, len(g))
	for i, r := range g {
		switch {
		case i >= len(t):
			out[i] = Absent
		case t[i] == r:
			out[i] = Correct
		case strings.ContainsRune(target, r):
			out[i] = Present
		default:
			out[i] = Absent
		}
	}
	return out
}
