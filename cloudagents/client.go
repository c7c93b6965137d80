package cloudagents

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/s0up4200/cloudagents/auth"
)

const (
	defaultTimeout     = 30 * time.Second
	defaultUserAgent   = "cloudagents-go"
	defaultConcurrency = 10
)

// Client is a Cloud Agents API client bound to one environment URL.
//
// A Client is safe for concurrent use. Requests fail with ErrConfiguration
// until a strategy is bound with Use or WithStrategy.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	concurrency int
	logger      zerolog.Logger

	binding atomic.Pointer[binding]
}

// binding pairs a strategy with the header computed from it. Replacing the
// binding is the only way to drop a cached header.
type binding struct {
	strategy auth.Strategy
	header   atomic.Pointer[string]
}

// request is the transient description of a single API call
type request struct {
	method string
	path   string
	query  url.Values
	body   any
}

// New creates a new Cloud Agents client for the given environment, e.g.
// "https://api.cloudagents.example/api/v1".
func New(baseURL string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: cloud agents URL is required", ErrConfiguration)
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("%w: invalid cloud agents URL %q: %v", ErrConfiguration, baseURL, err)
	}

	options := clientOptions{
		timeout:     defaultTimeout,
		userAgent:   defaultUserAgent,
		concurrency: defaultConcurrency,
		debug:       debugLoggingRequested(),
	}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: options.timeout}
	}
	if options.debug {
		wrapped := *httpClient
		wrapped.Transport = &debugTransport{base: httpClient.Transport, logger: logger}
		httpClient = &wrapped
	}

	c := &Client{
		baseURL:     baseURL,
		httpClient:  httpClient,
		userAgent:   options.userAgent,
		concurrency: options.concurrency,
		logger:      logger,
	}

	if options.strategy != nil {
		if err := c.Use(options.strategy); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// BaseURL returns the environment URL requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Use binds strategy to the client and drops any cached Authorization
// header, so the next request recomputes it from the new strategy.
func (c *Client) Use(strategy auth.Strategy) error {
	if strategy == nil {
		return fmt.Errorf("%w: a strategy must be defined", ErrConfiguration)
	}

	c.binding.Store(&binding{strategy: strategy})
	c.logger.Debug().Str("strategy", strategy.Name()).Msg("Bound authentication strategy")
	return nil
}

// Strategy returns the bound strategy, or nil if none is bound
func (c *Client) Strategy() auth.Strategy {
	if b := c.binding.Load(); b != nil {
		return b.strategy
	}
	return nil
}

// authorization returns the header for the current binding, computing and
// caching it on first use. Concurrent first calls may both compute it; the
// value is identical so the last store wins.
func (c *Client) authorization() (string, error) {
	b := c.binding.Load()
	if b == nil {
		return "", fmt.Errorf("%w: a strategy must be defined before calling the API", ErrConfiguration)
	}

	if header := b.header.Load(); header != nil {
		return *header, nil
	}

	header := b.strategy.Authorization()
	b.header.Store(&header)
	return header, nil
}

// authenticatedRequest performs req and decodes a 2xx JSON body into out.
// Every endpoint method goes through here.
func (c *Client) authenticatedRequest(ctx context.Context, req request, out any) error {
	authorization, err := c.authorization()
	if err != nil {
		return err
	}

	requestURL := c.baseURL + req.path
	if len(req.query) > 0 {
		requestURL += "?" + req.query.Encode()
	}

	var body io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, requestURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", authorization)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		observeRequest(req.method, "error", time.Since(start))
		return &TransportError{Method: req.method, URL: requestURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		observeRequest(req.method, "error", time.Since(start))
		return &TransportError{Method: req.method, URL: requestURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	observeRequest(req.method, statusLabel(resp.StatusCode), time.Since(start))

	c.logger.Debug().
		Str("method", req.method).
		Str("path", req.path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("Cloud Agents API request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to parse response from %s %s: %w", req.method, req.path, err)
	}

	return nil
}

// getObject runs req and returns a single JSON object
func (c *Client) getObject(ctx context.Context, req request) (Object, error) {
	var obj Object
	if err := c.authenticatedRequest(ctx, req, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		obj = Object{}
	}
	return obj, nil
}

// getList runs req and returns a JSON array of objects
func (c *Client) getList(ctx context.Context, req request) ([]Object, error) {
	var list []Object
	if err := c.authenticatedRequest(ctx, req, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []Object{}
	}
	return list, nil
}

// resourcePath joins path segments, escaping caller-supplied identifiers
func resourcePath(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

// requireID rejects empty path identifiers before any request is built
func requireID(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidArgument, name)
	}
	return nil
}
