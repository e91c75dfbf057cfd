// internal/authority/client.go
//
// HTTP client for the remote word authority.
//
// Contract:
//   GET {base}/new_word/?length=N  → 2xx + {"word","definition"}; anything else is an error.
//   GET {base}/check_word/{word}   → 200 valid, 404 not a word, anything else is an error.
//
// No retries are performed; callers own retry policy.

package authority

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// Word is a target word with its dictionary definition.
type Word struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}

// Client talks to a word-authority server. Safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default http client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// New returns a Client for the authority at baseURL (e.g. http://localhost:8080).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// FetchNewWord requests a random word of exactly length letters plus its definition.
func (c *Client) FetchNewWord(ctx context.Context, length int) (Word, error) {
	const op = "new_word"
	u, err := c.endpoint("/new_word/")
	if err != nil {
		return Word{}, &FetchError{Op: op, Kind: ErrBadURL, Err: err}
	}
	q := u.Query()
	q.Set("length", strconv.Itoa(length))
	u.RawQuery = q.Encode()

	resp, err := c.get(ctx, u)
	if err != nil {
		return Word{}, &FetchError{Op: op, Kind: ErrRequestFailed, Err: err}
	}
	defer drain(resp)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Word{}, &FetchError{Op: op, Kind: ErrInvalidStatusCode, StatusCode: resp.StatusCode}
	}

	var w Word
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(&w); err != nil {
		return Word{}, &FetchError{Op: op, Kind: ErrDecoding, Err: err}
	}
	if w.Word == "" {
		return Word{}, &FetchError{Op: op, Kind: ErrDecoding, Err: fmt.Errorf("missing word field")}
	}
	log.Debug().Int("length", length).Msg("fetched new word")
	return w, nil
}

// CheckWord reports whether candidate is a recognized dictionary word.
// A 404 from the authority is a normal negative result, not an error.
func (c *Client) CheckWord(ctx context.Context, candidate string) (bool, error) {
	const op = "check_word"
	if strings.TrimSpace(candidate) == "" {
		return false, &FetchError{Op: op, Kind: ErrBadURL, Err: fmt.Errorf("empty word")}
	}
	u, err := c.endpoint("/check_word/" + url.PathEscape(candidate))
	if err != nil {
		return false, &FetchError{Op: op, Kind: ErrBadURL, Err: err}
	}

	resp, err := c.get(ctx, u)
	if err != nil {
		return false, &FetchError{Op: op, Kind: ErrRequestFailed, Err: err}
	}
	defer drain(resp)

	log.Debug().Str("word", candidate).Int("status", resp.StatusCode).Msg("checked word")
	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, &FetchError{Op: op, Kind: ErrInvalidStatusCode, StatusCode: resp.StatusCode}
	}
}

// endpoint joins the base URL with path and checks the result is absolute.
func (c *Client) endpoint(path string) (*url.URL, error) {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("not an absolute url: %q", c.baseURL)
	}
	return u, nil
}

func (c *Client) get(ctx context.Context, u *url.URL) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	return c.http.Do(req)
}

// drain discards the rest of the body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
	_ = resp.Body.Close()
}
