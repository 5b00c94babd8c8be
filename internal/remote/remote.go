// Package remote implements the HTTP client for the shared document store:
// cache-busted reads and form-encoded partial-update patches.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"weekly/internal/document"
)

// APITimeout is the timeout for remote calls.
const APITimeout = 10 * time.Second

// FetchError reports a failed document read.
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch failed: HTTP %d", e.Status)
	}
	return fmt.Sprintf("fetch failed: %v", e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// PatchError reports a mutation that did not persist. Message carries the
// store's error string when the response body had one.
type PatchError struct {
	Status  int
	Message string
	Err     error
}

func (e *PatchError) Error() string { return e.Message }

func (e *PatchError) Unwrap() error { return e.Err }

// Client talks to one remote document URL. Safe for concurrent use.
type Client struct {
	url    string
	http   *http.Client
	logger *log.Logger
	seq    atomic.Uint64
}

// New creates a client for the given document URL.
func New(rawURL string, logger *log.Logger) (*Client, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, errors.New("remote url is empty")
	}
	if _, err := url.Parse(rawURL); err != nil {
		return nil, fmt.Errorf("invalid remote url: %w", err)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		url:    rawURL,
		http:   &http.Client{},
		logger: logger,
	}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(rawURL string, httpClient *http.Client, logger *log.Logger) (*Client, error) {
	c, err := New(rawURL, logger)
	if err != nil {
		return nil, err
	}
	c.http = httpClient
	return c, nil
}

// bustValue returns a value distinct from every previous call, so each read
// defeats intermediary caching.
func (c *Client) bustValue() string {
	return fmt.Sprintf("%d-%d", time.Now().UnixMilli(), c.seq.Add(1))
}

// FetchDocument performs a cache-busting read of the shared document.
// Transport failures, non-2xx responses, and malformed bodies are all
// FetchError.
func (c *Client) FetchDocument(ctx context.Context) (*document.Shared, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	sep := "?"
	if strings.Contains(c.url, "?") {
		sep = "&"
	}
	reqURL := c.url + sep + "v=" + c.bustValue()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Status: resp.StatusCode, Err: err}
	}

	doc, err := document.Decode(body)
	if err != nil {
		return nil, &FetchError{Status: resp.StatusCode, Err: err}
	}

	c.logger.Debug("fetched document", "tasks", len(doc.TaskConfig), "weeks", len(doc.Completion))
	return doc, nil
}

// patchResponse is the store's write acknowledgment.
type patchResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// SubmitPatch sends a partial-document update authenticated by the acting
// role's token. Success requires a 2xx response with a well-formed body
// carrying the explicit success marker; anything else is a PatchError.
// Never retries.
func (c *Client) SubmitPatch(ctx context.Context, token, who string, patch document.Patch) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	raw, err := json.Marshal(patch)
	if err != nil {
		return &PatchError{Message: "patch not serializable", Err: err}
	}

	form := url.Values{}
	form.Set("token", token)
	form.Set("who", who)
	form.Set("patch", string(raw))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(form.Encode()))
	if err != nil {
		return &PatchError{Message: err.Error(), Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("patch transport failed", "err", err)
		return &PatchError{Message: wrapTransport(err), Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	var ack patchResponse
	parsed := json.Unmarshal(body, &ack) == nil

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !parsed || !ack.OK {
		msg := ack.Error
		if msg == "" {
			msg = fmt.Sprintf("save failed (HTTP %d)", resp.StatusCode)
		}
		c.logger.Warn("patch rejected", "status", resp.StatusCode, "msg", msg)
		return &PatchError{Status: resp.StatusCode, Message: msg}
	}

	c.logger.Debug("patch accepted", "who", who)
	return nil
}

// wrapTransport maps transport errors to user-facing messages.
func wrapTransport(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "request timed out"
	}
	return err.Error()
}
