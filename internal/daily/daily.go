// Package daily picks a deterministic word of the day per word length.
//
// Every caller sees the same word for a given UTC date and salt; the
// choice rotates at midnight UTC.
package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordleplus/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Index maps a date key onto 0..n-1 using HMAC-SHA256(salt, key).
func Index(key, salt string, n int) int {
	if n <= 0 {
		return 0
	}
	mac := hmac.New(sha256.New, []byte(salt))
	mac.Write([]byte(key))
	sum := mac.Sum(nil)
	return int(binary.BigEndian.Uint64(sum[:8]) % uint64(n))
}

// Picker chooses the word of the day.
type Picker struct {
	Salt string
	Now  func() time.Time // defaults to time.Now
}

// Pick returns today's entry from candidates and the date key it was
// chosen for. ok is false when candidates is empty.
func (p Picker) Pick(candidates []words.Entry) (e words.Entry, date string, ok bool) {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	date = DateKey(now())
	if len(candidates) == 0 {
		return words.Entry{}, date, false
	}
	return candidates[Index(date, p.Salt, len(candidates))], date, true
}
