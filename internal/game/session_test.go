package game

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"testing"

	"pgregory.net/rapid"

	"github.com/robalobadob/wordleplus/internal/authority"
	"github.com/robalobadob/wordleplus/internal/store"
)

// fakeAuthority serves words and validity answers from memory.
type fakeAuthority struct {
	mu       sync.Mutex
	fetch    func(ctx context.Context, n int) (authority.Word, error)
	valid    map[string]bool
	checkErr error
	checks   []string
}

func (f *fakeAuthority) FetchNewWord(ctx context.Context, n int) (authority.Word, error) {
	return f.fetch(ctx, n)
}

func (f *fakeAuthority) CheckWord(ctx context.Context, w string) (bool, error) {
	f.mu.Lock()
	f.checks = append(f.checks, w)
	f.mu.Unlock()
	if f.checkErr != nil {
		return false, f.checkErr
	}
	return f.valid[w], nil
}

func fixedWord(word, def string) func(context.Context, int) (authority.Word, error) {
	return func(context.Context, int) (authority.Word, error) {
		return authority.Word{Word: word, Definition: def}, nil
	}
}

// tb is the part of testing.TB that *rapid.T also provides.
type tb interface {
	Helper()
	Fatalf(format string, args ...any)
}

// newSession returns a session whose target is already configured.
func newSession(t tb, target string) (*Session, store.Store) {
	t.Helper()
	st := store.NewMemoryStore()
	if err := st.Save(context.Background(), store.Record{WordLength: len(target), Target: target}); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return New(context.Background(), len(target), &fakeAuthority{}, st), st
}

func TestEvaluateGuessScenario(t *testing.T) {
	s, _ := newSession(t, "crane")
	got := s.EvaluateGuess("trace")
	want := []LetterStatus{Absent, Correct, Correct, Present, Correct}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestEvaluateDuplicateLettersNotCountLimited(t *testing.T) {
	// "l" occurs once in the target, but both misplaced copies are present.
	got := Evaluate("apple", "lolly")
	want := []LetterStatus{Present, Absent, Present, Correct, Absent}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestEvaluateLengthMismatch(t *testing.T) {
	got := Evaluate("cat", "tacos")
	want := []LetterStatus{Present, Correct, Present, Absent, Absent}
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestEvaluatePastTargetIsAbsent(t *testing.T) {
	// "t" at index 4 occurs in the target but lies past its end.
	got := Evaluate("cat", "tacot")
	want := []LetterStatus{Present, Correct, Present, Absent, Absent}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestEvaluateProperties(t *testing.T) {
	letters := rapid.RuneFrom([]rune("abcdef"))
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(4, 8).Draw(t, "n")
		target := rapid.StringOfN(letters, n, n, -1).Draw(t, "target")
		guess := rapid.StringOfN(letters, n, n, -1).Draw(t, "guess")

		got := Evaluate(target, guess)
		if len(got) != len(guess) {
			t.Fatalf("len = %d, want %d", len(got), len(guess))
		}
		for i := 0; i < n; i++ {
			g, tg := guess[i], target[i]
			switch {
			case g == tg:
				if got[i] != Correct {
					t.Fatalf("pos %d: %c==%c but got %s", i, g, tg, got[i])
				}
			case strings.IndexByte(target, g) >= 0:
				if got[i] != Present {
					t.Fatalf("pos %d: %c in %q but got %s", i, g, target, got[i])
				}
			default:
				if got[i] != Absent {
					t.Fatalf("pos %d: %c not in %q but got %s", i, g, target, got[i])
				}
			}
		}
	})
}

func TestMakeGuessWins(t *testing.T) {
	s, _ := newSession(t, "crane")
	s.MakeGuess("trace")
	s.MakeGuess("CRANE")
	if !s.HasWon() || s.HasLost() {
		t.Fatalf("won=%v lost=%v, want won", s.HasWon(), s.HasLost())
	}
	if s.Status() != StatusWon {
		t.Errorf("status = %s", s.Status())
	}
	s.MakeGuess("trace")
	if got := s.Guesses(); len(got) != 2 {
		t.Errorf("guesses after win = %v, want 2 entries", got)
	}
}

func TestMakeGuessLosesOnFourLetterSession(t *testing.T) {
	s, _ := newSession(t, "bark")
	for _, g := range []string{"calm", "dusk", "fern", "glow", "hike", "jolt"} {
		s.MakeGuess(g)
	}
	if !s.HasLost() || s.HasWon() {
		t.Fatalf("won=%v lost=%v, want lost", s.HasWon(), s.HasLost())
	}
	if n := len(s.Guesses()); n != 6 {
		t.Errorf("guesses = %d, want 6", n)
	}
	s.MakeGuess("bark")
	if s.HasWon() || len(s.Guesses()) != 6 {
		t.Errorf("guess after loss mutated state: %+v", s.Snapshot())
	}
}

func TestMakeGuessIgnoresWrongLength(t *testing.T) {
	s, _ := newSession(t, "crane")
	s.MakeGuess("cran")
	s.MakeGuess("cranes")
	if n := len(s.Guesses()); n != 0 {
		t.Errorf("guesses = %d, want 0", n)
	}
}

func TestMakeGuessIgnoredWhenUnconfigured(t *testing.T) {
	s := New(context.Background(), 5, &fakeAuthority{}, store.NewMemoryStore())
	if s.IsConfigured() {
		t.Fatal("fresh session should be unconfigured")
	}
	s.MakeGuess("")
	s.MakeGuess("crane")
	if n := len(s.Guesses()); n != 0 || s.HasWon() {
		t.Errorf("unconfigured session mutated: %+v", s.Snapshot())
	}
}

func TestMakeGuessStateMachineProperties(t *testing.T) {
	letters := rapid.RuneFrom([]rune("abc"))
	rapid.Check(t, func(t *rapid.T) {
		target := rapid.StringOfN(letters, 4, 4, -1).Draw(t, "target")
		s, _ := newSession(t, target)
		guesses := rapid.SliceOfN(rapid.StringOfN(letters, 3, 5, -1), 0, 10).Draw(t, "guesses")

		for _, g := range guesses {
			before := s.Snapshot()
			s.MakeGuess(g)
			after := s.Snapshot()

			if before.HasWon || before.HasLost || len(g) != len(target) {
				if len(after.Guesses) != len(before.Guesses) {
					t.Fatalf("guess %q mutated a finished or mismatched session", g)
				}
				continue
			}
			if len(after.Guesses) != len(before.Guesses)+1 {
				t.Fatalf("guess %q was not appended", g)
			}
			if after.HasWon && after.HasLost {
				t.Fatal("won and lost at once")
			}
			if after.HasWon != (g == target) {
				t.Fatalf("won=%v after %q (target %q)", after.HasWon, g, target)
			}
			if after.HasLost != (!after.HasWon && len(after.Guesses) == after.MaxAttempts) {
				t.Fatalf("lost=%v with %d guesses", after.HasLost, len(after.Guesses))
			}
		}
		if n := len(s.Guesses()); n > s.MaxAttempts() {
			t.Fatalf("%d guesses exceed max %d", n, s.MaxAttempts())
		}
	})
}

func TestStartNewGameResets(t *testing.T) {
	s, _ := newSession(t, "crane")
	s.MakeGuess("crane")
	s.authority = &fakeAuthority{fetch: fixedWord("Flame", "A hot glowing body of ignited gas.")}

	if err := s.StartNewGame(context.Background()); err != nil {
		t.Fatalf("StartNewGame: %v", err)
	}
	st := s.Snapshot()
	if st.Target != "flame" || st.Definition == "" {
		t.Errorf("target=%q definition=%q", st.Target, st.Definition)
	}
	if len(st.Guesses) != 0 || st.HasWon || st.HasLost || st.Status != StatusInProgress {
		t.Errorf("state not reset: %+v", st)
	}
}

func TestStartNewGameFailureLeavesState(t *testing.T) {
	s, _ := newSession(t, "crane")
	s.MakeGuess("trace")
	fetchErr := &authority.FetchError{Op: "new_word", Kind: authority.ErrRequestFailed}
	s.authority = &fakeAuthority{fetch: func(context.Context, int) (authority.Word, error) {
		return authority.Word{}, fetchErr
	}}

	err := s.StartNewGame(context.Background())
	if !errors.Is(err, authority.ErrRequestFailed) {
		t.Fatalf("err = %v, want ErrRequestFailed", err)
	}
	st := s.Snapshot()
	if st.Target != "crane" || len(st.Guesses) != 1 {
		t.Errorf("state changed on failure: %+v", st)
	}
}

func TestStartNewGameRejectsWrongLengthWord(t *testing.T) {
	s := New(context.Background(), 5, &fakeAuthority{fetch: fixedWord("bark", "")}, store.NewMemoryStore())
	err := s.StartNewGame(context.Background())
	if !errors.Is(err, authority.ErrDecoding) {
		t.Fatalf("err = %v, want ErrDecoding", err)
	}
	if s.IsConfigured() {
		t.Error("session configured with a wrong-length word")
	}
}

func TestStartNewGameDiscardsStaleCompletion(t *testing.T) {
	release := make(chan struct{})
	calls := 0
	var mu sync.Mutex
	fa := &fakeAuthority{fetch: func(ctx context.Context, n int) (authority.Word, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			<-release
			return authority.Word{Word: "stale"}, nil
		}
		return authority.Word{Word: "fresh"}, nil
	}}
	s := New(context.Background(), 5, fa, store.NewMemoryStore())

	firstErr := make(chan error, 1)
	go func() { firstErr <- s.StartNewGame(context.Background()) }()

	// Wait until the first fetch is in flight.
	for {
		mu.Lock()
		c := calls
		mu.Unlock()
		if c == 1 {
			break
		}
		runtime.Gosched()
	}
	if err := s.StartNewGame(context.Background()); err != nil {
		t.Fatalf("second StartNewGame: %v", err)
	}
	close(release)

	if err := <-firstErr; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("first StartNewGame err = %v, want ErrSuperseded", err)
	}
	if got := s.Snapshot().Target; got != "fresh" {
		t.Errorf("target = %q, want fresh", got)
	}
}

func TestCheckAttempt(t *testing.T) {
	fa := &fakeAuthority{valid: map[string]bool{"trace": true}}
	s := New(context.Background(), 5, fa, store.NewMemoryStore())

	ok, err := s.CheckAttempt(context.Background(), "TRACE")
	if err != nil || !ok {
		t.Errorf("CheckAttempt(TRACE) = %v, %v", ok, err)
	}
	ok, err = s.CheckAttempt(context.Background(), "zzzzz")
	if err != nil || ok {
		t.Errorf("CheckAttempt(zzzzz) = %v, %v; want false, nil", ok, err)
	}

	fa.checkErr = &authority.FetchError{Op: "check_word", Kind: authority.ErrInvalidStatusCode, StatusCode: 500}
	if _, err := s.CheckAttempt(context.Background(), "trace"); !errors.Is(err, authority.ErrInvalidStatusCode) {
		t.Errorf("err = %v, want ErrInvalidStatusCode", err)
	}
	if len(s.Guesses()) != 0 {
		t.Error("CheckAttempt mutated guesses")
	}
}

func TestSaveAndRestore(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	s := New(ctx, 5, &fakeAuthority{fetch: fixedWord("crane", "A lifting machine.")}, st)
	if err := s.StartNewGame(ctx); err != nil {
		t.Fatal(err)
	}
	s.MakeGuess("trace")
	s.MakeGuess("stone")
	if err := s.SaveCurrentState(ctx); err != nil {
		t.Fatalf("SaveCurrentState: %v", err)
	}

	restored := New(ctx, 5, &fakeAuthority{}, st)
	got := restored.Snapshot()
	if got.Target != "crane" || got.Definition != "A lifting machine." {
		t.Errorf("restored target=%q definition=%q", got.Target, got.Definition)
	}
	if strings.Join(got.Guesses, ",") != "trace,stone" {
		t.Errorf("restored guesses = %v", got.Guesses)
	}
	if got.HasWon || got.HasLost {
		t.Errorf("restored flags won=%v lost=%v", got.HasWon, got.HasLost)
	}

	// Other lengths are independent.
	if New(ctx, 6, &fakeAuthority{}, st).IsConfigured() {
		t.Error("length 6 should be unconfigured")
	}
}

func TestRestoreDerivesTerminalFlags(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	_ = st.Save(ctx, store.Record{WordLength: 4, Target: "bark", Guesses: []string{"calm", "bark"}})
	if s := New(ctx, 4, &fakeAuthority{}, st); !s.HasWon() {
		t.Error("restored winning session not won")
	}

	_ = st.Save(ctx, store.Record{WordLength: 4, Target: "bark", Guesses: []string{"calm", "dusk", "fern", "glow", "hike", "jolt"}})
	s := New(ctx, 4, &fakeAuthority{}, st)
	if !s.HasLost() || s.HasWon() {
		t.Errorf("restored exhausted session: won=%v lost=%v", s.HasWon(), s.HasLost())
	}
}

func TestRestoreNormalisesGuessCase(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	_ = st.Save(ctx, store.Record{WordLength: 5, Target: "CRANE", Guesses: []string{"Trace", "CRANE"}})

	s := New(ctx, 5, &fakeAuthority{}, st)
	if !s.HasWon() || s.Status() != StatusWon {
		t.Errorf("won=%v status=%s, want won", s.HasWon(), s.Status())
	}
	if g := s.Guesses(); g[0] != "trace" || g[1] != "crane" {
		t.Errorf("guesses = %v, want lowercased", g)
	}
}

type failingStore struct{ store.Store }

func (failingStore) Load(ctx context.Context, n int) (store.Record, error) {
	return store.Record{}, errors.New("disk on fire")
}

func TestRestoreDegradesOnStoreError(t *testing.T) {
	s := New(context.Background(), 5, &fakeAuthority{}, failingStore{store.NewMemoryStore()})
	if s.IsConfigured() || len(s.Guesses()) != 0 || s.Status() != StatusUnconfigured {
		t.Errorf("session after failed load: %+v", s.Snapshot())
	}
}

func TestWithMaxAttempts(t *testing.T) {
	st := store.NewMemoryStore()
	_ = st.Save(context.Background(), store.Record{WordLength: 4, Target: "bark"})
	s := New(context.Background(), 4, &fakeAuthority{}, st, WithMaxAttempts(2))
	s.MakeGuess("calm")
	s.MakeGuess("dusk")
	if !s.HasLost() {
		t.Error("expected loss after 2 attempts")
	}
}
