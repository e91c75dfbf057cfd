// internal/game/types.go
//
// Core type definitions for the game session.
// Defines:
//   - LetterStatus: per-letter result of a guess (correct/present/absent).
//   - Status: coarse lifecycle state of a session.
//   - State: a copy of a session's observable state.

package game

// LetterStatus is the evaluation result for a single letter in a guess.
//   - "correct": letter is in the target at the same position.
//   - "present": letter occurs somewhere else in the target.
//   - "absent":  letter does not occur in the target.
type LetterStatus string

const (
	Correct LetterStatus = "correct"
	Present LetterStatus = "present"
	Absent  LetterStatus = "absent"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusUnconfigured Status = "unconfigured"
	StatusInProgress   Status = "in_progress"
	StatusWon          Status = "won"
	StatusLost         Status = "lost"
)

// State is a point-in-time copy of a Session.
type State struct {
	WordLength  int      `json:"wordLength"`
	MaxAttempts int      `json:"maxAttempts"`
	Target      string   `json:"target"`
	Definition  string   `json:"definition"`
	Guesses     []string `json:"guesses"`
	HasWon      bool     `json:"hasWon"`
	HasLost     bool     `json:"hasLost"`
	Status      Status   `json:"status"`
}
