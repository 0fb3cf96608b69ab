// Package apiclient talks to the REST backend behind the console.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxErrorBody = 16 << 10

// Observer receives one callback per backend call. Status 0 means the
// request never produced a response.
type Observer interface {
	ObserveBackend(resource, method string, status int, elapsed time.Duration)
}

// Client issues single-attempt JSON requests against <base>/api/<resource>.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	observer   Observer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver attaches a metrics observer.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New constructs a client for the given base URL (scheme and host, no /api).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 20 * time.Second},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend base.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type errorBody struct {
	Message string `json:"message"`
}

// do performs one request. out is decoded from 2xx bodies except 204.
// When wantStatus is non-zero any other status is a failure.
func (c *Client) do(ctx context.Context, method, resource, path string, query url.Values, body, out any, wantStatus int) error {
	endpoint := c.baseURL + "/api/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode %s body: %v", ErrRequestFailed, resource, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(resource, method, 0, start)
		c.logger.Warn("backend request failed", slog.String("method", method), slog.String("url", endpoint), slog.Any("error", err))
		return fmt.Errorf("%w: %s %s: %v", ErrRequestFailed, method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	c.observe(resource, method, resp.StatusCode, start)
	c.logger.Debug("backend request", slog.String("method", method), slog.String("url", endpoint), slog.Int("status", resp.StatusCode))

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if wantStatus != 0 {
		ok = resp.StatusCode == wantStatus
	}
	if !ok {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrRequestFailed, resource, err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return apiErr
	}
	var parsed errorBody
	if json.Unmarshal(data, &parsed) == nil {
		apiErr.Message = strings.TrimSpace(parsed.Message)
	}
	return apiErr
}

func (c *Client) observe(resource, method string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveBackend(resource, method, status, time.Since(start))
	}
}
