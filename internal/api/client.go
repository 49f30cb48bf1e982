// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Venmogo Contributors

// Package api provides the HTTP transport for Venmo's private REST API:
// a thin client over net/http, a deterministic builder for the login
// protocol's header set, and the mapping from wire-level failures to
// coded errors.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/samber/oops"
)

// DefaultBaseURL is the production endpoint of the private API.
const DefaultBaseURL = "https://api.venmo.com/v1"

const defaultTimeout = 30 * time.Second

// Client issues requests against the Venmo API. It carries no
// authentication state of its own; callers supply whatever headers a
// request needs.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used by tests and by callers
// pointed at a proxy.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient supplies the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithLogger enables debug logging of request outcomes. Without it the
// client stays silent.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithMetrics enables request counters.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient creates a Client for the production endpoint unless options
// say otherwise.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the endpoint the client is pointed at.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends one request and returns the raw response. path is joined to
// the base URL; body, when non-nil, is marshalled as JSON. Transport
// failures (no response at all) come back as NETWORK_FAILURE. HTTP error
// statuses are NOT turned into errors here - the login protocol reads
// meaning out of status codes and response headers, so callers inspect
// the response themselves or hand it to FailureFromResponse.
//
// The caller owns resp.Body and must close it.
func (c *Client) Do(ctx context.Context, method, path string, hdr http.Header, body any) (*http.Response, error) {
	var payload io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, oops.Code(CodeInvalidRequest).
				With("operation", "marshal request body").
				Wrap(err)
		}
		payload = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return nil, oops.Code(CodeInvalidRequest).
			With("method", method).
			With("path", path).
			Wrap(err)
	}
	for k, vs := range hdr {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil && req.Header.Get(headerContentType) == "" {
		req.Header.Set(headerContentType, contentTypeJSON)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.count(path, "transport_error")
		return nil, oops.Code(CodeNetworkFailure).
			With("method", method).
			With("path", path).
			Wrap(err)
	}

	c.count(path, strconv.Itoa(resp.StatusCode))
	c.logger.DebugContext(ctx, "api request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
	)
	return resp, nil
}

func (c *Client) count(path, status string) {
	if c.metrics == nil {
		return
	}
	c.metrics.Requests.WithLabelValues(path, status).Inc()
	if status == strconv.Itoa(http.StatusTooManyRequests) {
		c.metrics.RateLimits.Inc()
	}
}

// DecodeJSON reads resp.Body into v. A body that does not parse on a
// success status is a MALFORMED_RESPONSE.
func DecodeJSON(resp *http.Response, v any) error {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return oops.Code(CodeMalformedResponse).
			With("http_status", resp.StatusCode).
			Wrap(err)
	}
	return nil
}
