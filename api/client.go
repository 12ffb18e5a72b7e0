// Package api is the HTTP client for the library backend. It owns the base
// URL, the session cookie jar, the request timeout and JSON codec, and
// normalizes the backend's error and list shapes so callers only ever see
// canonical Go values.
package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// DefaultBaseURL is where the backend listens unless configured otherwise.
const DefaultBaseURL = "http://localhost:3000/api"

// DefaultTimeout bounds every request; the backend configures none itself.
const DefaultTimeout = 15 * time.Second

var codec = jsoniter.ConfigFastest

// Client issues requests against the backend REST API. The cookie jar keeps
// the session cookie set by /auth/login for the lifetime of the process;
// nothing is persisted across runs.
type Client struct {
	base string
	http *http.Client
	log  *slog.Logger
}

// New builds a client for the given base URL. A zero timeout falls back to
// DefaultTimeout, an empty baseURL to DefaultBaseURL.
func New(baseURL string, timeout time.Duration, log *slog.Logger) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	return &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: &http.Client{Timeout: timeout, Jar: jar},
		log:  log,
	}, nil
}

// Error is a non-2xx response from the backend. Message carries the
// backend's own message verbatim when it sent one.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.Status)
}

// do issues one request and decodes the response into out (ignored when out
// is nil). Non-2xx responses become *Error; nothing is ever retried.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := codec.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, payload)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set("X-Request-ID", reqID)

	c.log.Debug("api request", "method", method, "path", path, "request_id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode}
		var msg struct {
			Message string `json:"message"`
		}
		if codec.Unmarshal(data, &msg) == nil {
			apiErr.Message = msg.Message
		}
		c.log.Debug("api error", "method", method, "path", path,
			"status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := codec.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// raw decodes into a RawMessage so list and record helpers can sniff the
// shape afterwards.
func (c *Client) raw(ctx context.Context, method, path string, body any) (jsoniter.RawMessage, error) {
	var raw jsoniter.RawMessage
	if err := c.do(ctx, method, path, body, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// decodeList accepts both response shapes the backend produces for
// collections: a bare JSON array, or an object wrapping it as {"data":[...]}.
func decodeList[T any](raw jsoniter.RawMessage) ([]T, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped struct {
			Data []T `json:"data"`
		}
		if err := codec.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("decode wrapped list: %w", err)
		}
		return wrapped.Data, nil
	}
	var list []T
	if err := codec.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return list, nil
}

// decodeRecord accepts a bare record or the {"data":{...}} wrapper.
func decodeRecord[T any](raw jsoniter.RawMessage) (T, error) {
	var wrapped struct {
		Data *T `json:"data"`
	}
	if err := codec.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		return *wrapped.Data, nil
	}
	var record T
	if err := codec.Unmarshal(raw, &record); err != nil {
		return record, fmt.Errorf("decode record: %w", err)
	}
	return record, nil
}
