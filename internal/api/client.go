package api

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

	"github.com/productbazar/bazaaradmin/pkg/logger"
	"golang.org/x/sync/semaphore"
)

// APIPrefix is appended to the server URL to form the API base.
const APIPrefix = "/api/v1"

// DefaultConcurrency bounds the number of non-priority requests in flight.
const DefaultConcurrency = 4

// Client wraps HTTP calls to the ProductBazar API.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client

	limiter *semaphore.Weighted
}

// NewClient creates a Client from a server URL (e.g. http://localhost:8080) and bearer token.
func NewClient(serverURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(serverURL, "/") + APIPrefix,
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 60 * time.Second, // upper bound; per-call timeouts are set through the context
		},
		limiter: semaphore.NewWeighted(DefaultConcurrency),
	}
}

// Response is the standard { status, data, message } envelope.
type Response[T any] struct {
	Status  string `json:"status"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// OK reports whether the envelope signals success.
func (r Response[T]) OK() bool {
	return r.Status == "success"
}

// CallOption adjusts a single request.
type CallOption func(*callOptions)

type callOptions struct {
	priority bool
	timeout  time.Duration
}

// Priority marks the request as a priority request: it bypasses the client's
// concurrency limiter.
func Priority() CallOption {
	return func(o *callOptions) { o.priority = true }
}

// Timeout bounds the request to d, including the time spent waiting for a slot.
func Timeout(d time.Duration) CallOption {
	return func(o *callOptions) { o.timeout = d }
}

// --- low-level helpers ---

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	req.Header.Set("X-Request-ID", logger.GenerateRequestID())
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, out interface{}, opts []CallOption) error {
	var o callOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	if !o.priority && c.limiter != nil {
		if err := c.limiter.Acquire(ctx, 1); err != nil {
			return normalizeTransportError(err)
		}
		defer c.limiter.Release(1)
	}

	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(data)
	}

	req, err := c.newRequest(ctx, method, path, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.doJSON(req, out)
}

func (c *Client) doJSON(req *http.Request, out interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return normalizeTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", normalizeTransportError(err))
	}

	if resp.StatusCode >= 400 {
		return parseErrorBody(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}
	return nil
}

// normalizeTransportError maps context errors raised anywhere in the
// transport onto the bare sentinels so callers can use errors.Is.
func normalizeTransportError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("request aborted: %w", context.Canceled)
	case errors.Is(err, context.DeadlineExceeded):
		return &APIError{Message: "request timed out", cause: context.DeadlineExceeded}
	default:
		return err
	}
}

// Get sends a GET request and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, path string, params url.Values, out interface{}, opts ...CallOption) error {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil, out, opts)
}

// Post sends a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}, out interface{}, opts ...CallOption) error {
	return c.do(ctx, http.MethodPost, path, body, out, opts)
}

// Put sends a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}, out interface{}, opts ...CallOption) error {
	return c.do(ctx, http.MethodPut, path, body, out, opts)
}

// Delete sends a DELETE.
func (c *Client) Delete(ctx context.Context, path string, out interface{}, opts ...CallOption) error {
	return c.do(ctx, http.MethodDelete, path, nil, out, opts)
}
