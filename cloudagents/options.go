package cloudagents

import (
	"net/http"
	"time"

	"github.com/s0up4200/cloudagents/auth"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	httpClient  *http.Client
	timeout     time.Duration
	userAgent   string
	strategy    auth.Strategy
	concurrency int
	debug       bool
}

// WithTimeout sets the HTTP client timeout. Ignored when WithHTTPClient is used.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the HTTP transport collaborator.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithUserAgent sets a custom user agent string.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithStrategy binds an authentication strategy at construction time,
// equivalent to calling Use right after New.
func WithStrategy(strategy auth.Strategy) Option {
	return func(o *clientOptions) {
		o.strategy = strategy
	}
}

// WithConcurrency bounds the number of in-flight requests issued by batch
// helpers such as GetLastSynchronizations.
func WithConcurrency(n int) Option {
	return func(o *clientOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithDebugLogging dumps every request and response at debug level.
// The Authorization header is redacted. Do not enable in production.
func WithDebugLogging(enabled bool) Option {
	return func(o *clientOptions) {
		o.debug = enabled
	}
}
