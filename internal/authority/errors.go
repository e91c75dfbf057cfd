package authority

import (
	"errors"
	"fmt"
)

// Failure kinds. Match them with errors.Is against any error returned by Client.
var (
	ErrBadURL            = errors.New("bad url")
	ErrRequestFailed     = errors.New("request failed")
	ErrInvalidStatusCode = errors.New("invalid status code")
	ErrDecoding          = errors.New("decoding error")
)

// FetchError describes a failed call to the word authority.
type FetchError struct {
	Op         string // "new_word" or "check_word"
	Kind       error  // one of the Err* kinds above
	StatusCode int    // set for ErrInvalidStatusCode
	Err        error  // underlying cause, may be nil
}

func (e *FetchError) Error() string {
	msg := e.Op + ": " + e.Kind.Error()
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (%d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is makes errors.Is(err, ErrDecoding) and friends work on *FetchError.
func (e *FetchError) Is(target error) bool { return e.Kind == target }

func (e *FetchError) Unwrap() error { return e.Err }
