// internal/httpserver/server.go
//
// HTTP server for the reference word authority.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, panic recovery, timeouts,
//     JSON content type, CORS, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Word endpoints: GET /new_word/?length=N, GET /check_word/{word}.
//   - Daily endpoint: GET /daily_word/?length=N (routes_daily.go).
//
// Status contract consumed by internal/authority:
//   - /new_word/: 200 with {word, definition}; 400 bad length; 404 no words of that length.
//   - /check_word/{word}: 200 when known, 404 when not.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordleplus/internal/words"
)

// Options configures a Server.
type Options struct {
	ClientOrigin string // CORS origin; defaults to http://localhost:5173
	DailySalt    string // HMAC salt for the daily word
	Now          func() time.Time
}

// Server bundles the router and the word list it serves.
type Server struct {
	r     *chi.Mux
	words *words.List
	opts  Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(list *words.List, opts Options) *Server {
	if opts.ClientOrigin == "" {
		opts.ClientOrigin = "http://localhost:5173"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{r: chi.NewRouter(), words: list, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordleplus-authority","endpoints":["/health","/new_word/?length=N","/check_word/{word}","/daily_word/?length=N"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		counts := map[string]int{}
		for n, c := range s.words.Stats() {
			counts[strconv.Itoa(n)] = c
		}
		_ = json.NewEncoder(w).Encode(counts)
	})

	// --- words ---
	s.r.Get("/new_word", s.handleNewWord)
	s.r.Get("/new_word/", s.handleNewWord)
	s.r.Get("/check_word/{word}", s.handleCheckWord)
	s.mountDaily(s.r)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes method, path, status and duration at debug level.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("reqId", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ------------------------------ WORDS --------------------------------------

// handleNewWord returns a random word of the requested length.
func (s *Server) handleNewWord(w http.ResponseWriter, r *http.Request) {
	n, ok := parseLength(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_length")
		return
	}
	e, ok := s.words.Random(n)
	if !ok {
		writeError(w, http.StatusNotFound, "no_words")
		return
	}
	_ = json.NewEncoder(w).Encode(e)
}

// handleCheckWord replies 200 with the entry when the word is known, 404 otherwise.
func (s *Server) handleCheckWord(w http.ResponseWriter, r *http.Request) {
	word := strings.ToLower(strings.TrimSpace(chi.URLParam(r, "word")))
	e, ok := s.words.Lookup(word)
	if !ok {
		writeError(w, http.StatusNotFound, "not_a_word")
		return
	}
	_ = json.NewEncoder(w).Encode(e)
}

// ------------------------------- small util --------------------------------

// parseLength reads and validates the "length" query parameter.
func parseLength(r *http.Request) (int, bool) {
	n, err := strconv.Atoi(r.URL.Query().Get("length"))
	if err != nil || !words.ValidLength(n) {
		return 0, false
	}
	return n, true
}

// writeError writes {"error": code} with the given status.
func writeError(w http.ResponseWriter, status int, code string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
