// internal/httpserver/routes_daily.go
//
// Word of the day. GET /daily_word/?length=N returns the same word for
// every caller on a given UTC date, chosen by HMAC(salt, date).

package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/robalobadob/wordleplus/internal/daily"
)

// dailyRes is returned by /daily_word/.
type dailyRes struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Date       string `json:"date"`
}

// mountDaily registers the daily word routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Get("/daily_word", s.handleDailyWord)
	r.Get("/daily_word/", s.handleDailyWord)
}

// handleDailyWord picks today's word for the requested length.
func (s *Server) handleDailyWord(w http.ResponseWriter, r *http.Request) {
	n, ok := parseLength(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_length")
		return
	}
	picker := daily.Picker{Salt: s.opts.DailySalt, Now: s.opts.Now}
	e, date, ok := picker.Pick(s.words.ByLength(n))
	if !ok {
		writeError(w, http.StatusNotFound, "no_words")
		return
	}
	_ = json.NewEncoder(w).Encode(dailyRes{Word: e.Word, Definition: e.Definition, Date: date})
}
