// Package rtdb reads and writes JSON documents in a Firebase-style realtime
// database over its REST interface: every document lives at {base}/{key}.json.
package rtdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var (
	// ErrNoDocument means the store answered but holds nothing under the key.
	ErrNoDocument = errors.New("rtdb: no document")
	// ErrMalformedDocument means the response body is not valid JSON.
	ErrMalformedDocument = errors.New("rtdb: malformed document")
	// ErrEmptyKey is returned for blank document keys.
	ErrEmptyKey = errors.New("rtdb: empty document key")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rtdb: unexpected status %d: %s", e.StatusCode, e.Body)
}

// HTTPDoer defines http.Client interface subset.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client addresses documents below one database URL.
type Client struct {
	baseURL string
	client  HTTPDoer
}

// NewClient builds client with base URL.
func NewClient(baseURL string, client HTTPDoer) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		client:  client,
	}
}

// NewDefaultHTTPClient returns *http.Client with timeout.
func NewDefaultHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// BaseURL returns the normalised database URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// DocumentURL returns the REST URL of the document stored under key.
func (c *Client) DocumentURL(key string) string {
	return fmt.Sprintf("%s/%s.json", c.baseURL, url.PathEscape(key))
}

// Get returns the raw JSON stored under key.
func (c *Client) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrEmptyKey
	}
	status, body, err := c.do(ctx, http.MethodGet, c.DocumentURL(key), nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		return nil, ErrNoDocument
	}
	if status < 200 || status >= 300 {
		return nil, &StatusError{StatusCode: status, Body: truncate(body)}
	}
	return decodeDocument(body)
}

// Put replaces the document stored under key with v and returns what the
// store echoed back.
func (c *Client) Put(ctx context.Context, key string, v any) (json.RawMessage, error) {
	if strings.TrimSpace(key) == "" {
		return nil, ErrEmptyKey
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("rtdb: encode document: %w", err)
	}
	status, body, err := c.do(ctx, http.MethodPut, c.DocumentURL(key), payload)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, &StatusError{StatusCode: status, Body: truncate(body)}
	}
	return json.RawMessage(body), nil
}

func (c *Client) do(ctx context.Context, method, target string, body []byte) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, respBody, nil
}

func decodeDocument(body []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, ErrNoDocument
	}
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("%w: %q", ErrMalformedDocument, truncate(trimmed))
	}
	return json.RawMessage(trimmed), nil
}

func truncate(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
