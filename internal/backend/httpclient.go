// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend is the HTTP transport to the admin backend. It knows how to
// resolve endpoint references against the base URL and how to GET a JSON document,
// and reports every failure as a network_error.
package backend

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"golang.org/x/time/rate"

	apperrors "restadmin/cli/internal/errors"
	"restadmin/cli/internal/logging"
)

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of a failed response body is kept in the error.
const maxErrorBody = 512

// Doer is the request/response capability the client needs. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client implements JSON GETs against the admin backend.
type Client struct {
	// baseURL is prepended to relative endpoint references (e.g., "http://localhost:5000")
	baseURL string
	// doer executes requests; defaults to an *http.Client with DefaultTimeout
	doer Doer
	// limiter throttles outgoing requests when a rate limit is configured
	limiter   *rate.Limiter
	userAgent string
	log       *pterm.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithDoer replaces the underlying HTTP capability.
func WithDoer(d Doer) Option {
	return func(c *Client) { c.doer = d }
}

// WithTimeout sets the per-request timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.doer = &http.Client{Timeout: d}
		}
	}
}

// WithRateLimit throttles requests to rps per second with the given burst. rps <= 0 disables it.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), max(burst, 1))
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *pterm.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

// New creates a client for the backend rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		doer:      &http.Client{Timeout: DefaultTimeout},
		userAgent: "restadmin-cli/1.0",
		log:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Resolve turns an endpoint reference into an absolute URL. Absolute references are
// returned as-is; anything else is appended to the base URL.
func (c *Client) Resolve(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.IsAbs() {
		return ref
	}
	if ref == "" {
		return c.baseURL
	}
	return c.baseURL + "/" + strings.TrimLeft(ref, "/")
}

// GetJSON issues a GET for rawURL and returns the response body.
// Transport failures and non-2xx statuses are returned as network_error.
func (c *Client) GetJSON(ctx context.Context, rawURL string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, apperrors.Wrap(apperrors.Network, "rate limit wait", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Network, "create request", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)

	started := time.Now()
	c.log.Debug("backend request", c.log.Args("method", req.Method, "url", logging.Mask(rawURL), "request_id", requestID))

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Network, "GET "+logging.Mask(rawURL), err)
	}
	defer resp.Body.Close()

	c.log.Debug("backend response", c.log.Args("status", resp.StatusCode, "request_id", requestID, "elapsed", time.Since(started).Round(time.Millisecond)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := fmt.Sprintf("GET %s: %d %s", logging.Mask(rawURL), resp.StatusCode, strings.TrimSpace(string(b)))
		return nil, apperrors.Status(resp.StatusCode, strings.TrimSpace(msg))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Network, "read response", err)
	}
	return body, nil
}
